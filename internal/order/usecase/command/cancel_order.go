package command

import (
	"fmt"

	"github.com/farmgate/marketplace/internal/order/domain"
)

// CancelOrderCommand represents a buyer cancelling their own order
type CancelOrderCommand struct {
	OrderID uint
	BuyerID uint
}

// CancelOrderHandler handles buyer-side cancellation
type CancelOrderHandler struct {
	repo domain.OrderRepository
}

// NewCancelOrderHandler creates a new handler
func NewCancelOrderHandler(repo domain.OrderRepository) *CancelOrderHandler {
	return &CancelOrderHandler{repo: repo}
}

// Handle executes the command
func (h *CancelOrderHandler) Handle(cmd CancelOrderCommand) (*domain.Order, error) {
	order, err := h.repo.FindByID(cmd.OrderID)
	if err != nil {
		return nil, err
	}

	if order.BuyerID != cmd.BuyerID {
		return nil, fmt.Errorf("order does not belong to this buyer")
	}
	if !order.CanTransitionTo(domain.StatusCancelled) {
		return nil, fmt.Errorf("cannot cancel an order in status %s", order.Status)
	}

	order.Status = domain.StatusCancelled
	if err := h.repo.Update(order); err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	return order, nil
}
