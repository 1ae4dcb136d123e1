package query

import (
	"fmt"
	"time"

	"github.com/farmgate/marketplace/internal/catalog/domain"
	"github.com/farmgate/marketplace/pkg/geo"
)

const (
	// SortByDistance orders results nearest-first.
	SortByDistance = "distance"
	// SortByFreshness orders results by remaining shelf life.
	SortByFreshness = "freshness"
)

// BrowseProductsQuery represents a buyer browsing the marketplace.
// Coordinates are optional; without them no delivery decoration or
// distance ordering is applied.
type BrowseProductsQuery struct {
	BuyerLatitude  *float64
	BuyerLongitude *float64
	Category       string
	SortBy         string
	MaxDistanceKm  *float64
	FreshFastOnly  bool
	Limit          int
	Offset         int
}

// ProductView is a product decorated with delivery and freshness
// information relative to the buyer.
type ProductView struct {
	Product      domain.Product `json:"product"`
	Delivery     *geo.Estimate  `json:"delivery,omitempty"`
	Badge        *geo.Badge     `json:"badge,omitempty"`
	Freshness    geo.Freshness  `json:"freshness"`
	FreshAndFast bool           `json:"fresh_and_fast"`
}

// BrowseProductsHandler handles marketplace browse queries
type BrowseProductsHandler struct {
	repo domain.ProductRepository
	now  func() time.Time
}

// NewBrowseProductsHandler creates a new handler
func NewBrowseProductsHandler(repo domain.ProductRepository) *BrowseProductsHandler {
	return &BrowseProductsHandler{repo: repo, now: time.Now}
}

// Handle executes the query
func (h *BrowseProductsHandler) Handle(query BrowseProductsQuery) ([]ProductView, error) {
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

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = SortByDistance
	}
	if sortBy != SortByDistance && sortBy != SortByFreshness {
		return nil, fmt.Errorf("unknown sort: %s", sortBy)
	}
	if sortBy == SortByDistance && buyer == nil {
		sortBy = SortByFreshness
	}
	if query.MaxDistanceKm != nil && *query.MaxDistanceKm < 0 {
		return nil, fmt.Errorf("max distance cannot be negative")
	}

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

	// The repository page is fetched oversized so that distance and
	// freshness filters still yield a full page after trimming.
	products, err := h.repo.FindActive(query.Category, fetchWindow(limit, offset), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if buyer != nil && query.MaxDistanceKm != nil {
		products = geo.FilterByDistance(products, buyer, *query.MaxDistanceKm, productLocation)
	}

	now := h.now()
	views := make([]ProductView, 0, len(products))
	for i := range products {
		view := decorate(&products[i], buyer, now)
		if query.FreshFastOnly && !view.FreshAndFast {
			continue
		}
		views = append(views, view)
	}

	switch sortBy {
	case SortByDistance:
		views = geo.SortByDeliveryTime(views, buyer, func(v ProductView) *geo.Point {
			return v.Product.Location()
		})
	case SortByFreshness:
		views = geo.SortByFreshness(views, func(v ProductView) geo.Freshness {
			return v.Freshness
		})
	}

	if offset >= len(views) {
		return []ProductView{}, nil
	}
	views = views[offset:]
	if len(views) > limit {
		views = views[:limit]
	}
	return views, nil
}

// fetchWindow returns the repository page size for a browse request.
func fetchWindow(limit, offset int) int {
	window := (limit + offset) * 5
	if window < 200 {
		window = 200
	}
	return window
}

func productLocation(p domain.Product) *geo.Point {
	return p.Location()
}

// decorate computes the buyer-relative view of a product.
func decorate(p *domain.Product, buyer *geo.Point, now time.Time) ProductView {
	view := ProductView{
		Product:   *p,
		Freshness: geo.ComputeFreshness(p.Harvest(), now),
	}

	loc := p.Location()
	if buyer != nil && loc != nil {
		distance := geo.Distance(*buyer, *loc)
		estimate := geo.EstimateDelivery(distance)
		badge := geo.DeliveryBadge(distance)
		view.Delivery = &estimate
		view.Badge = &badge
		view.FreshAndFast = geo.IsFreshAndFast(distance, view.Freshness)
	}

	return view
}
