package query

import (
	"fmt"
	"time"

	"github.com/farmgate/marketplace/internal/catalog/domain"
	"github.com/farmgate/marketplace/pkg/geo"
)

// GetProductQuery represents a single product lookup, optionally
// relative to a buyer location.
type GetProductQuery struct {
	ID             uint
	BuyerLatitude  *float64
	BuyerLongitude *float64
}

// GetProductHandler handles single product queries
type GetProductHandler struct {
	repo domain.ProductRepository
	now  func() time.Time
}

// NewGetProductHandler creates a new handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo, now: time.Now}
}

// Handle executes the query
func (h *GetProductHandler) Handle(query GetProductQuery) (*ProductView, error) {
	if (query.BuyerLatitude == nil) != (query.BuyerLongitude == nil) {
		return nil, fmt.Errorf("latitude and longitude must be set together")
	}

	var buyer *geo.Point
	if query.BuyerLatitude != nil {
		point := geo.Point{Latitude: *query.BuyerLatitude, Longitude: *query.BuyerLongitude}
		if err := point.Validate(); err != nil {
			return nil, err
		}
		buyer = &point
	}

	product, err := h.repo.FindByID(query.ID)
	if err != nil {
		return nil, err
	}

	view := decorate(product, buyer, h.now())
	return &view, nil
}
