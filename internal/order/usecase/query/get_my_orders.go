package query

import (
	"github.com/farmgate/marketplace/internal/order/domain"
)

// GetMyOrdersQuery lists a buyer's own orders
type GetMyOrdersQuery struct {
	BuyerID uint
	Limit   int
	Offset  int
}

// GetMyOrdersHandler handles buyer order listings
type GetMyOrdersHandler struct {
	repo domain.OrderRepository
}

// NewGetMyOrdersHandler creates a new handler
func NewGetMyOrdersHandler(repo domain.OrderRepository) *GetMyOrdersHandler {
	return &GetMyOrdersHandler{repo: repo}
}

// Handle executes the query
func (h *GetMyOrdersHandler) Handle(query GetMyOrdersQuery) ([]domain.Order, error) {
	limit, offset := normalize(query.Limit, query.Offset)
	return h.repo.FindByBuyer(query.BuyerID, limit, offset)
}

func normalize(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
