package query

import (
	"fmt"

	"github.com/farmgate/marketplace/internal/catalog/domain"
)

// CatalogStats represents catalog statistics
type CatalogStats struct {
	TotalProducts  int64 `json:"total_products"`
	ActiveProducts int64 `json:"active_products"`
}

// GetStatsHandler handles statistics queries
type GetStatsHandler struct {
	repo domain.ProductRepository
}

// NewGetStatsHandler creates a new handler
func NewGetStatsHandler(repo domain.ProductRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the query
func (h *GetStatsHandler) Handle() (*CatalogStats, error) {
	total, err := h.repo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	active, err := h.repo.CountActive()
	if err != nil {
		return nil, fmt.Errorf("failed to count active products: %w", err)
	}

	return &CatalogStats{
		TotalProducts:  total,
		ActiveProducts: active,
	}, nil
}
