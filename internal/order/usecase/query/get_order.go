package query

import (
	"github.com/farmgate/marketplace/internal/order/domain"
)

// GetOrderQuery represents a single order lookup
type GetOrderQuery struct {
	ID uint
}

// GetOrderHandler handles single order queries
type GetOrderHandler struct {
	repo domain.OrderRepository
}

// NewGetOrderHandler creates a new handler
func NewGetOrderHandler(repo domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{repo: repo}
}

// Handle executes the query
func (h *GetOrderHandler) Handle(query GetOrderQuery) (*domain.Order, error) {
	return h.repo.FindByID(query.ID)
}
