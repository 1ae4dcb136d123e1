package query

import (
	"fmt"

	"github.com/farmgate/marketplace/internal/catalog/domain"
)

// ListFarmerProductsQuery lists everything a farmer has listed,
// including inactive produce.
type ListFarmerProductsQuery struct {
	FarmerID uint
	Limit    int
	Offset   int
}

// ListFarmerProductsHandler handles farmer catalog queries
type ListFarmerProductsHandler struct {
	repo domain.ProductRepository
}

// NewListFarmerProductsHandler creates a new handler
func NewListFarmerProductsHandler(repo domain.ProductRepository) *ListFarmerProductsHandler {
	return &ListFarmerProductsHandler{repo: repo}
}

// Handle executes the query
func (h *ListFarmerProductsHandler) Handle(query ListFarmerProductsQuery) ([]domain.Product, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	products, err := h.repo.FindByFarmer(query.FarmerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
