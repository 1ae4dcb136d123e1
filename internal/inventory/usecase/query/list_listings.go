package query

import (
	"fmt"

	"github.com/farmgate/marketplace/internal/inventory/domain"
)

// ListListingsQuery represents the query for a record's listings
type ListListingsQuery struct {
	StockRecordID uint
}

// ListListingsHandler handles listing queries
type ListListingsHandler struct {
	repo domain.StockRepository
}

// NewListListingsHandler creates a new list listings handler
func NewListListingsHandler(repo domain.StockRepository) *ListListingsHandler {
	return &ListListingsHandler{repo: repo}
}

// Handle executes the list listings query
func (h *ListListingsHandler) Handle(q ListListingsQuery) ([]domain.Listing, error) {
	if q.StockRecordID == 0 {
		return nil, fmt.Errorf("stock_record_id is required")
	}
	return h.repo.FindListings(q.StockRecordID)
}

// GetListingQuery represents the query for a single listing
type GetListingQuery struct {
	ID uint
}

// GetListingHandler handles single listing queries
type GetListingHandler struct {
	repo domain.StockRepository
}

// NewGetListingHandler creates a new get listing handler
func NewGetListingHandler(repo domain.StockRepository) *GetListingHandler {
	return &GetListingHandler{repo: repo}
}

// Handle executes the get listing query
func (h *GetListingHandler) Handle(q GetListingQuery) (*domain.Listing, error) {
	listing, err := h.repo.FindListingByID(q.ID)
	if err != nil {
		return nil, fmt.Errorf("listing not found: %w", err)
	}
	return listing, nil
}
