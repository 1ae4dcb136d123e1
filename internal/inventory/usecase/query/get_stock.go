package query

import (
	"fmt"

	"github.com/farmgate/marketplace/internal/inventory/domain"
)

// GetStockQuery represents the query to get a stock record
type GetStockQuery struct {
	ID uint
}

// GetStockHandler handles get stock queries
type GetStockHandler struct {
	repo domain.StockRepository
}

// NewGetStockHandler creates a new get stock handler
func NewGetStockHandler(repo domain.StockRepository) *GetStockHandler {
	return &GetStockHandler{repo: repo}
}

// Handle executes the get stock query
func (h *GetStockHandler) Handle(q GetStockQuery) (*domain.StockRecord, error) {
	record, err := h.repo.FindByID(q.ID)
	if err != nil {
		return nil, fmt.Errorf("stock record not found: %w", err)
	}
	return record, nil
}
