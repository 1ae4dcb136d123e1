package command

import (
	"fmt"

	"github.com/farmgate/marketplace/internal/order/domain"
)

// UpdateStatusCommand represents the command to move an order through its
// lifecycle
type UpdateStatusCommand struct {
	OrderID uint
	Status  string
}

// UpdateStatusHandler handles order status updates
type UpdateStatusHandler struct {
	repo domain.OrderRepository
}

// NewUpdateStatusHandler creates a new handler
func NewUpdateStatusHandler(repo domain.OrderRepository) *UpdateStatusHandler {
	return &UpdateStatusHandler{repo: repo}
}

// Handle executes the command
func (h *UpdateStatusHandler) Handle(cmd UpdateStatusCommand) (*domain.Order, error) {
	if !domain.ValidStatus(cmd.Status) {
		return nil, fmt.Errorf("invalid status: %s", cmd.Status)
	}

	order, err := h.repo.FindByID(cmd.OrderID)
	if err != nil {
		return nil, err
	}

	if !order.CanTransitionTo(cmd.Status) {
		return nil, fmt.Errorf("cannot move order from %s to %s", order.Status, cmd.Status)
	}

	order.Status = cmd.Status
	if err := h.repo.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return order, nil
}
