package query

import (
	"fmt"

	"github.com/farmgate/marketplace/internal/order/domain"
)

// ListOrdersQuery lists all orders with an optional status filter
type ListOrdersQuery struct {
	Limit  int
	Offset int
	Status string
}

// ListOrdersHandler handles admin order listings
type ListOrdersHandler struct {
	repo domain.OrderRepository
}

// NewListOrdersHandler creates a new handler
func NewListOrdersHandler(repo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle executes the query
func (h *ListOrdersHandler) Handle(query ListOrdersQuery) ([]domain.Order, error) {
	if query.Status != "" && !domain.ValidStatus(query.Status) {
		return nil, fmt.Errorf("invalid status: %s", query.Status)
	}
	limit, offset := normalize(query.Limit, query.Offset)
	return h.repo.FindAll(limit, offset, query.Status)
}
