// Package geo provides the distance, delivery-time and freshness
// computations used by the catalog service to decorate marketplace
// products. Everything in this package is pure: no I/O, no persistence,
// no mutation of inputs.
package geo

import (
	"fmt"
	"math"
	"time"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Point is a WGS84 coordinate pair.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ValidationError reports a coordinate or input outside its valid range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the coordinate ranges.
func (p Point) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return &ValidationError{Field: "latitude", Reason: fmt.Sprintf("%v is outside [-90, 90]", p.Latitude)}
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return &ValidationError{Field: "longitude", Reason: fmt.Sprintf("%v is outside [-180, 180]", p.Longitude)}
	}
	return nil
}

// Distance returns the great-circle distance between two points in
// kilometers using the haversine formula. It is symmetric and returns 0
// for identical points. Inputs are assumed to be validated; see Validate.
func Distance(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// ETAUnit is the unit of a delivery estimate value.
type ETAUnit string

const (
	UnitMinutes ETAUnit = "minutes"
	UnitHours   ETAUnit = "hours"
)

// Proximity buckets a distance for UI badges.
type Proximity string

const (
	ProximityNear   Proximity = "near"
	ProximityMedium Proximity = "medium"
	ProximityFar    Proximity = "far"
)

// Estimate is a derived delivery-time estimate. It is recomputed on every
// query and never persisted.
type Estimate struct {
	DistanceKm float64   `json:"distance_km"`
	ETAValue   int       `json:"eta_value"`
	ETAUnit    ETAUnit   `json:"eta_unit"`
	Proximity  Proximity `json:"proximity"`
}

// EstimateDelivery maps a distance onto a delivery-time tier. Tiers are
// evaluated in ascending order; the first match wins, so every
// non-negative distance maps to exactly one row.
func EstimateDelivery(distanceKm float64) Estimate {
	switch {
	case distanceKm <= 5:
		return Estimate{DistanceKm: distanceKm, ETAValue: 30, ETAUnit: UnitMinutes, Proximity: ProximityNear}
	case distanceKm <= 15:
		return Estimate{DistanceKm: distanceKm, ETAValue: 1, ETAUnit: UnitHours, Proximity: ProximityNear}
	case distanceKm <= 50:
		return Estimate{DistanceKm: distanceKm, ETAValue: 2, ETAUnit: UnitHours, Proximity: ProximityMedium}
	default:
		return Estimate{
			DistanceKm: distanceKm,
			ETAValue:   int(math.Ceil(distanceKm / 30)),
			ETAUnit:    UnitHours,
			Proximity:  ProximityFar,
		}
	}
}

// Badge is the coarse seller-proximity label shown on product cards.
type Badge struct {
	Label     string    `json:"label"`
	Proximity Proximity `json:"proximity"`
}

// DeliveryBadge classifies a distance on the two-bucket badge scale. This
// scale is intentionally coarser than EstimateDelivery and the two are kept
// separate: callers key UI text off each independently.
func DeliveryBadge(distanceKm float64) Badge {
	if distanceKm <= 15 {
		return Badge{Label: "Near You", Proximity: ProximityNear}
	}
	return Badge{Label: "Far Seller", Proximity: ProximityFar}
}

// Perishability is the shelf-life bucket of a crop.
type Perishability string

const (
	Perishable     Perishability = "perishable"
	SemiPerishable Perishability = "semi_perishable"
	NonPerishable  Perishability = "non_perishable"
)

// Shelf life in days per perishability class. The non-perishable entry is
// a sentinel only; ComputeFreshness short-circuits before consulting it.
var shelfLifeDays = map[Perishability]int{
	Perishable:     3,
	SemiPerishable: 7,
	NonPerishable:  365,
}

// Harvest is the immutable harvest metadata captured at product creation.
type Harvest struct {
	HarvestedAt   time.Time     `json:"harvested_at"`
	Perishability Perishability `json:"perishability"`
}

// FreshnessStatus is the decay state of a harvested product.
type FreshnessStatus string

const (
	StatusFresh         FreshnessStatus = "fresh"
	StatusExpiringSoon  FreshnessStatus = "expiring_soon"
	StatusExpired       FreshnessStatus = "expired"
	StatusLongShelfLife FreshnessStatus = "long_shelf_life"
)

// Freshness is a derived decay state. DaysRemaining is nil only for
// non-perishable crops. The result depends on the evaluation time: the
// same harvest yields different answers on different days.
type Freshness struct {
	Status        FreshnessStatus `json:"status"`
	DaysRemaining *int            `json:"days_remaining"`
}

// ComputeFreshness derives the freshness state of a harvest at the given
// evaluation time. Non-perishable crops never decay. For the rest, the
// remaining days are clamped at zero: an expired product reports 0, never
// a negative number.
func ComputeFreshness(h Harvest, now time.Time) Freshness {
	if h.Perishability == NonPerishable {
		return Freshness{Status: StatusLongShelfLife, DaysRemaining: nil}
	}

	daysSinceHarvest := int(math.Floor(now.Sub(h.HarvestedAt).Hours() / 24))
	remaining := shelfLifeDays[h.Perishability] - daysSinceHarvest

	switch {
	case remaining <= 0:
		zero := 0
		return Freshness{Status: StatusExpired, DaysRemaining: &zero}
	case remaining <= 2:
		return Freshness{Status: StatusExpiringSoon, DaysRemaining: &remaining}
	default:
		return Freshness{Status: StatusFresh, DaysRemaining: &remaining}
	}
}

// IsFreshAndFast reports whether a product qualifies for the combined
// "fresh & fast" highlight: within 15 km and still fresh. Callers with no
// reference location simply never call this and render no highlight, so
// absence of location is not an error here.
func IsFreshAndFast(distanceKm float64, f Freshness) bool {
	return distanceKm <= 15 && f.Status == StatusFresh
}
