package query_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmgate/marketplace/internal/catalog/domain"
	"github.com/farmgate/marketplace/internal/catalog/usecase/query"
	"github.com/farmgate/marketplace/pkg/geo"
)

type fakeProductRepo struct {
	products []domain.Product
}

func (f *fakeProductRepo) Create(p *domain.Product) error {
	p.ID = uint(len(f.products) + 1)
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeProductRepo) FindByID(id uint) (*domain.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeProductRepo) FindActive(category string, limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		if !p.IsActive {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeProductRepo) FindByFarmer(farmerID uint, limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		if p.FarmerID == farmerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(p *domain.Product) error {
	for i := range f.products {
		if f.products[i].ID == p.ID {
			f.products[i] = *p
			return nil
		}
	}
	return errNotFound
}

func (f *fakeProductRepo) Delete(id uint) error {
	for i := range f.products {
		if f.products[i].ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (f *fakeProductRepo) Count() (int64, error) {
	return int64(len(f.products)), nil
}

func (f *fakeProductRepo) CountActive() (int64, error) {
	var n int64
	for _, p := range f.products {
		if p.IsActive {
			n++
		}
	}
	return n, nil
}

var errNotFound = &notFoundError{}

type notFoundError struct{}

func (e *notFoundError) Error() string { return "record not found" }

func floatp(v float64) *float64 { return &v }

// Bengaluru city centre as the reference buyer location. Offsets of
// 0.01 degrees of latitude are roughly 1.1 km.
var buyerLat, buyerLon = 12.9716, 77.5946

func marketplaceProduct(id, farmerID uint, name string, latOffset float64, harvestedDaysAgo int, perishability geo.Perishability) domain.Product {
	return domain.Product{
		ID:            id,
		FarmerID:      farmerID,
		Name:          name,
		Category:      "vegetables",
		Perishability: perishability,
		Price:         decimal.NewFromInt(40),
		Quantity:      25,
		Unit:          "kg",
		HarvestedAt:   time.Now().Add(-time.Duration(harvestedDaysAgo) * 24 * time.Hour),
		Latitude:      floatp(buyerLat + latOffset),
		Longitude:     floatp(buyerLon),
		IsActive:      true,
	}
}

func TestBrowseSortsByDistance(t *testing.T) {
	repo := &fakeProductRepo{products: []domain.Product{
		marketplaceProduct(1, 10, "far spinach", 0.40, 0, geo.Perishable),
		marketplaceProduct(2, 11, "near tomatoes", 0.02, 0, geo.SemiPerishable),
		marketplaceProduct(3, 12, "mid onions", 0.10, 0, geo.SemiPerishable),
	}}
	handler := query.NewBrowseProductsHandler(repo)

	views, err := handler.Handle(query.BrowseProductsQuery{
		BuyerLatitude:  floatp(buyerLat),
		BuyerLongitude: floatp(buyerLon),
		SortBy:         query.SortByDistance,
	})
	if err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 products, got %d", len(views))
	}
	got := []string{views[0].Product.Name, views[1].Product.Name, views[2].Product.Name}
	want := []string{"near tomatoes", "mid onions", "far spinach"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestBrowseDecoratesDeliveryAndBadge(t *testing.T) {
	repo := &fakeProductRepo{products: []domain.Product{
		marketplaceProduct(1, 10, "near tomatoes", 0.02, 0, geo.SemiPerishable),
		marketplaceProduct(2, 11, "far spinach", 0.40, 0, geo.Perishable),
	}}
	handler := query.NewBrowseProductsHandler(repo)

	views, err := handler.Handle(query.BrowseProductsQuery{
		BuyerLatitude:  floatp(buyerLat),
		BuyerLongitude: floatp(buyerLon),
	})
	if err != nil {
		t.Fatalf("browse failed: %v", err)
	}

	near := views[0]
	if near.Delivery == nil || near.Badge == nil {
		t.Fatal("expected delivery decoration for located buyer")
	}
	if near.Badge.Label != "Near You" {
		t.Errorf("expected Near You badge, got %q", near.Badge.Label)
	}
	if near.Delivery.ETAUnit != geo.UnitMinutes || near.Delivery.ETAValue != 30 {
		t.Errorf("expected 30 minute estimate, got %d %s", near.Delivery.ETAValue, near.Delivery.ETAUnit)
	}
	if !near.FreshAndFast {
		t.Error("expected near fresh product to be fresh and fast")
	}

	far := views[1]
	if far.Badge.Label != "Far Seller" {
		t.Errorf("expected Far Seller badge, got %q", far.Badge.Label)
	}
	if far.FreshAndFast {
		t.Error("far product must not be fresh and fast")
	}
}

func TestBrowseWithoutLocationSkipsDelivery(t *testing.T) {
	repo := &fakeProductRepo{products: []domain.Product{
		marketplaceProduct(1, 10, "tomatoes", 0.02, 0, geo.SemiPerishable),
	}}
	handler := query.NewBrowseProductsHandler(repo)

	views, err := handler.Handle(query.BrowseProductsQuery{})
	if err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 product, got %d", len(views))
	}
	if views[0].Delivery != nil || views[0].Badge != nil {
		t.Error("expected no delivery decoration without buyer location")
	}
	if views[0].FreshAndFast {
		t.Error("fresh and fast requires a buyer location")
	}
	if views[0].Freshness.Status != geo.StatusFresh {
		t.Errorf("freshness must still be computed, got %s", views[0].Freshness.Status)
	}
}

func TestBrowseSortsByFreshness(t *testing.T) {
	repo := &fakeProductRepo{products: []domain.Product{
		marketplaceProduct(1, 10, "old spinach", 0.02, 2, geo.Perishable),
		marketplaceProduct(2, 11, "fresh carrots", 0.02, 0, geo.SemiPerishable),
		marketplaceProduct(3, 12, "rice", 0.02, 30, geo.NonPerishable),
	}}
	handler := query.NewBrowseProductsHandler(repo)

	views, err := handler.Handle(query.BrowseProductsQuery{SortBy: query.SortByFreshness})
	if err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if views[0].Product.Name != "fresh carrots" {
		t.Errorf("expected freshest first, got %q", views[0].Product.Name)
	}
	if views[len(views)-1].Product.Name != "rice" {
		t.Errorf("expected non-perishable last, got %q", views[len(views)-1].Product.Name)
	}
}

func TestBrowseMaxDistanceFilter(t *testing.T) {
	repo := &fakeProductRepo{products: []domain.Product{
		marketplaceProduct(1, 10, "near tomatoes", 0.02, 0, geo.SemiPerishable),
		marketplaceProduct(2, 11, "far spinach", 0.40, 0, geo.Perishable),
	}}
	handler := query.NewBrowseProductsHandler(repo)

	views, err := handler.Handle(query.BrowseProductsQuery{
		BuyerLatitude:  floatp(buyerLat),
		BuyerLongitude: floatp(buyerLon),
		MaxDistanceKm:  floatp(10),
	})
	if err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 product within 10km, got %d", len(views))
	}
	if views[0].Product.Name != "near tomatoes" {
		t.Errorf("expected near tomatoes, got %q", views[0].Product.Name)
	}
}

func TestBrowseFreshFastOnly(t *testing.T) {
	repo := &fakeProductRepo{products: []domain.Product{
		marketplaceProduct(1, 10, "near fresh", 0.02, 0, geo.SemiPerishable),
		marketplaceProduct(2, 11, "near expiring", 0.02, 6, geo.SemiPerishable),
		marketplaceProduct(3, 12, "far fresh", 0.40, 0, geo.Perishable),
	}}
	handler := query.NewBrowseProductsHandler(repo)

	views, err := handler.Handle(query.BrowseProductsQuery{
		BuyerLatitude:  floatp(buyerLat),
		BuyerLongitude: floatp(buyerLon),
		FreshFastOnly:  true,
	})
	if err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected exactly one fresh and fast product, got %d", len(views))
	}
	if views[0].Product.Name != "near fresh" {
		t.Errorf("expected near fresh, got %q", views[0].Product.Name)
	}
}

func TestBrowseValidation(t *testing.T) {
	handler := query.NewBrowseProductsHandler(&fakeProductRepo{})

	tests := []struct {
		name  string
		query query.BrowseProductsQuery
	}{
		{
			name:  "latitude without longitude",
			query: query.BrowseProductsQuery{BuyerLatitude: floatp(12.9)},
		},
		{
			name: "latitude out of range",
			query: query.BrowseProductsQuery{
				BuyerLatitude:  floatp(95),
				BuyerLongitude: floatp(77.5),
			},
		},
		{
			name: "unknown sort",
			query: query.BrowseProductsQuery{
				SortBy: "price",
			},
		},
		{
			name: "negative max distance",
			query: query.BrowseProductsQuery{
				BuyerLatitude:  floatp(buyerLat),
				BuyerLongitude: floatp(buyerLon),
				MaxDistanceKm:  floatp(-1),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := handler.Handle(tt.query); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestBrowseDistanceSortIsStable(t *testing.T) {
	// Two products at the same coordinates keep their repository order.
	repo := &fakeProductRepo{products: []domain.Product{
		marketplaceProduct(1, 10, "first stall", 0.05, 0, geo.SemiPerishable),
		marketplaceProduct(2, 11, "second stall", 0.05, 0, geo.SemiPerishable),
	}}
	handler := query.NewBrowseProductsHandler(repo)

	views, err := handler.Handle(query.BrowseProductsQuery{
		BuyerLatitude:  floatp(buyerLat),
		BuyerLongitude: floatp(buyerLon),
		SortBy:         query.SortByDistance,
	})
	if err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if views[0].Product.Name != "first stall" || views[1].Product.Name != "second stall" {
		t.Errorf("expected stable order, got %q then %q", views[0].Product.Name, views[1].Product.Name)
	}
}

func TestBrowseProductWithoutLocationSortsLast(t *testing.T) {
	noLoc := marketplaceProduct(3, 12, "mystery farm", 0, 0, geo.SemiPerishable)
	noLoc.Latitude = nil
	noLoc.Longitude = nil

	repo := &fakeProductRepo{products: []domain.Product{
		noLoc,
		marketplaceProduct(1, 10, "near tomatoes", 0.02, 0, geo.SemiPerishable),
	}}
	handler := query.NewBrowseProductsHandler(repo)

	views, err := handler.Handle(query.BrowseProductsQuery{
		BuyerLatitude:  floatp(buyerLat),
		BuyerLongitude: floatp(buyerLon),
		SortBy:         query.SortByDistance,
	})
	if err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 products, got %d", len(views))
	}
	if views[1].Product.Name != "mystery farm" {
		t.Errorf("expected product without coordinates last, got %q", views[1].Product.Name)
	}
	if views[1].Delivery != nil {
		t.Error("expected no delivery estimate without farm coordinates")
	}
}
