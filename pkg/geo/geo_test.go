package geo_test

import (
	"math"
	"testing"
	"time"

	"github.com/farmgate/marketplace/pkg/geo"
)

var (
	newDelhi = geo.Point{Latitude: 28.6139, Longitude: 77.2090}
	mumbai   = geo.Point{Latitude: 19.0760, Longitude: 72.8777}
)

func TestPoint_Validate(t *testing.T) {
	tests := []struct {
		name      string
		point     geo.Point
		expectErr bool
	}{
		{"valid", geo.Point{Latitude: 28.6, Longitude: 77.2}, false},
		{"boundary north pole", geo.Point{Latitude: 90, Longitude: 0}, false},
		{"boundary antimeridian", geo.Point{Latitude: 0, Longitude: -180}, false},
		{"latitude too high", geo.Point{Latitude: 90.1, Longitude: 0}, true},
		{"latitude too low", geo.Point{Latitude: -91, Longitude: 0}, true},
		{"longitude too high", geo.Point{Latitude: 0, Longitude: 180.5}, true},
		{"longitude too low", geo.Point{Latitude: 0, Longitude: -181}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.point.Validate()
			if tt.expectErr && err == nil {
				t.Errorf("expected validation error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDistance_IdenticalPointsIsZero(t *testing.T) {
	if d := geo.Distance(newDelhi, newDelhi); d != 0 {
		t.Errorf("expected 0, got %v", d)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	ab := geo.Distance(newDelhi, mumbai)
	ba := geo.Distance(mumbai, newDelhi)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestDistance_DelhiToMumbai(t *testing.T) {
	d := geo.Distance(newDelhi, mumbai)
	if d < 1140 || d > 1165 {
		t.Errorf("expected Delhi-Mumbai distance in [1140, 1165] km, got %v", d)
	}
}

func TestEstimateDelivery(t *testing.T) {
	tests := []struct {
		name       string
		distanceKm float64
		etaValue   int
		etaUnit    geo.ETAUnit
		proximity  geo.Proximity
	}{
		{"inside first tier", 4, 30, geo.UnitMinutes, geo.ProximityNear},
		{"first tier boundary inclusive", 5, 30, geo.UnitMinutes, geo.ProximityNear},
		{"just past first tier", 5.01, 1, geo.UnitHours, geo.ProximityNear},
		{"second tier boundary", 15, 1, geo.UnitHours, geo.ProximityNear},
		{"medium tier", 50, 2, geo.UnitHours, geo.ProximityMedium},
		{"far tier rounds up", 100, 4, geo.UnitHours, geo.ProximityFar},
		{"far tier exact multiple", 90, 3, geo.UnitHours, geo.ProximityFar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := geo.EstimateDelivery(tt.distanceKm)
			if est.ETAValue != tt.etaValue || est.ETAUnit != tt.etaUnit || est.Proximity != tt.proximity {
				t.Errorf("EstimateDelivery(%v) = {%d %s %s}, want {%d %s %s}",
					tt.distanceKm, est.ETAValue, est.ETAUnit, est.Proximity,
					tt.etaValue, tt.etaUnit, tt.proximity)
			}
		})
	}
}

func TestDeliveryBadge(t *testing.T) {
	if b := geo.DeliveryBadge(15); b.Label != "Near You" || b.Proximity != geo.ProximityNear {
		t.Errorf("expected Near You badge at 15 km, got %+v", b)
	}
	if b := geo.DeliveryBadge(15.1); b.Label != "Far Seller" || b.Proximity != geo.ProximityFar {
		t.Errorf("expected Far Seller badge past 15 km, got %+v", b)
	}
}

func TestComputeFreshness(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		harvestedAgo  time.Duration
		class         geo.Perishability
		status        geo.FreshnessStatus
		daysRemaining *int
	}{
		{"perishable just harvested", 0, geo.Perishable, geo.StatusFresh, intp(3)},
		{"perishable one day old", 24 * time.Hour, geo.Perishable, geo.StatusExpiringSoon, intp(2)},
		{"perishable expiring tomorrow", 2 * 24 * time.Hour, geo.Perishable, geo.StatusExpiringSoon, intp(1)},
		{"perishable at shelf life", 3 * 24 * time.Hour, geo.Perishable, geo.StatusExpired, intp(0)},
		{"perishable long expired clamps to zero", 10 * 24 * time.Hour, geo.Perishable, geo.StatusExpired, intp(0)},
		{"semi perishable fresh", 2 * 24 * time.Hour, geo.SemiPerishable, geo.StatusFresh, intp(5)},
		{"semi perishable expiring", 5 * 24 * time.Hour, geo.SemiPerishable, geo.StatusExpiringSoon, intp(2)},
		{"non perishable ignores elapsed time", 100 * 24 * time.Hour, geo.NonPerishable, geo.StatusLongShelfLife, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := geo.Harvest{HarvestedAt: now.Add(-tt.harvestedAgo), Perishability: tt.class}
			f := geo.ComputeFreshness(h, now)
			if f.Status != tt.status {
				t.Errorf("status = %s, want %s", f.Status, tt.status)
			}
			switch {
			case tt.daysRemaining == nil && f.DaysRemaining != nil:
				t.Errorf("days remaining = %d, want nil", *f.DaysRemaining)
			case tt.daysRemaining != nil && f.DaysRemaining == nil:
				t.Errorf("days remaining = nil, want %d", *tt.daysRemaining)
			case tt.daysRemaining != nil && *f.DaysRemaining != *tt.daysRemaining:
				t.Errorf("days remaining = %d, want %d", *f.DaysRemaining, *tt.daysRemaining)
			}
		})
	}
}

func TestIsFreshAndFast(t *testing.T) {
	fresh := geo.Freshness{Status: geo.StatusFresh}
	expired := geo.Freshness{Status: geo.StatusExpired}

	if !geo.IsFreshAndFast(10, fresh) {
		t.Error("10 km fresh product should qualify")
	}
	if geo.IsFreshAndFast(20, fresh) {
		t.Error("20 km product should not qualify")
	}
	if geo.IsFreshAndFast(10, expired) {
		t.Error("expired product should not qualify")
	}
}

type testItem struct {
	name     string
	location *geo.Point
	harvest  geo.Harvest
}

func TestSortByDeliveryTime(t *testing.T) {
	ref := newDelhi
	near := testItem{name: "near", location: &geo.Point{Latitude: 28.70, Longitude: 77.20}}
	far := testItem{name: "far", location: &mumbai}
	nowhere := testItem{name: "nowhere", location: nil}

	sorted := geo.SortByDeliveryTime([]testItem{far, nowhere, near}, &ref, func(i testItem) *geo.Point {
		return i.location
	})

	got := []string{sorted[0].name, sorted[1].name, sorted[2].name}
	want := []string{"near", "far", "nowhere"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSortByDeliveryTime_NilReferenceIsNoop(t *testing.T) {
	items := []testItem{{name: "b", location: &mumbai}, {name: "a", location: &newDelhi}}
	sorted := geo.SortByDeliveryTime(items, nil, func(i testItem) *geo.Point { return i.location })
	if sorted[0].name != "b" || sorted[1].name != "a" {
		t.Errorf("input order should be preserved without a reference point")
	}
}

func TestSortByFreshness(t *testing.T) {
	now := time.Now()
	items := []testItem{
		{name: "rice", harvest: geo.Harvest{HarvestedAt: now.Add(-40 * 24 * time.Hour), Perishability: geo.NonPerishable}},
		{name: "potato", harvest: geo.Harvest{HarvestedAt: now.Add(-2 * 24 * time.Hour), Perishability: geo.SemiPerishable}},
		{name: "spinach", harvest: geo.Harvest{HarvestedAt: now.Add(-2 * 24 * time.Hour), Perishability: geo.Perishable}},
	}

	sorted := geo.SortByFreshness(items, func(i testItem) geo.Freshness {
		return geo.ComputeFreshness(i.harvest, now)
	})

	// potato has 5 days left, spinach 1, rice is non-perishable and sinks last.
	got := []string{sorted[0].name, sorted[1].name, sorted[2].name}
	want := []string{"potato", "spinach", "rice"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSortByFreshness_NilsKeepInputOrder(t *testing.T) {
	now := time.Now()
	items := []testItem{
		{name: "rice", harvest: geo.Harvest{Perishability: geo.NonPerishable}},
		{name: "wheat", harvest: geo.Harvest{Perishability: geo.NonPerishable}},
	}
	sorted := geo.SortByFreshness(items, func(i testItem) geo.Freshness {
		return geo.ComputeFreshness(i.harvest, now)
	})
	if sorted[0].name != "rice" || sorted[1].name != "wheat" {
		t.Error("equal nil keys should preserve relative input order")
	}
}

func TestFilterByDistance(t *testing.T) {
	ref := newDelhi
	items := []testItem{
		{name: "near", location: &geo.Point{Latitude: 28.70, Longitude: 77.20}},
		{name: "far", location: &mumbai},
		{name: "nowhere", location: nil},
	}

	filtered := geo.FilterByDistance(items, &ref, 50, func(i testItem) *geo.Point { return i.location })
	if len(filtered) != 1 || filtered[0].name != "near" {
		t.Errorf("expected only the near item, got %d items", len(filtered))
	}
}

func TestFilterByDistance_NilReferenceIsNoop(t *testing.T) {
	items := []testItem{{name: "far", location: &mumbai}, {name: "nowhere"}}
	filtered := geo.FilterByDistance(items, nil, 50, func(i testItem) *geo.Point { return i.location })
	if len(filtered) != len(items) {
		t.Errorf("expected input returned unmodified, got %d of %d items", len(filtered), len(items))
	}
}

func intp(v int) *int { return &v }
