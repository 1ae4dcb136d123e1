package query

import (
	"github.com/farmgate/marketplace/internal/inventory/domain"
)

// ListStockQuery represents the query to list stock records
type ListStockQuery struct {
	Limit  int
	Offset int
	Status string
}

// ListStockHandler handles list stock queries
type ListStockHandler struct {
	repo domain.StockRepository
}

// NewListStockHandler creates a new list stock handler
func NewListStockHandler(repo domain.StockRepository) *ListStockHandler {
	return &ListStockHandler{repo: repo}
}

// Handle executes the list stock query
func (h *ListStockHandler) Handle(q ListStockQuery) ([]domain.StockRecord, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	if q.Status != "" {
		return h.repo.FindByStatus(q.Status, q.Limit, q.Offset)
	}
	return h.repo.FindAll(q.Limit, q.Offset)
}
