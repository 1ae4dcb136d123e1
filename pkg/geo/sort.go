package geo

import (
	"math"
	"sort"
)

// SortByDeliveryTime returns the items ordered by ascending distance from
// the reference point. Items without a location sort last. A nil reference
// point makes this a no-op returning the input unchanged, which lets
// callers skip the "has the buyer shared a location" check.
func SortByDeliveryTime[T any](items []T, ref *Point, location func(T) *Point) []T {
	if ref == nil {
		return items
	}

	out := make([]T, len(items))
	copy(out, items)

	dist := func(item T) float64 {
		loc := location(item)
		if loc == nil {
			return math.Inf(1)
		}
		return Distance(*ref, *loc)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return dist(out[i]) < dist(out[j])
	})
	return out
}

// SortByFreshness returns the items ordered by descending days remaining.
// Non-perishables (nil days remaining) sink below every numeric value
// regardless of how fresh the rest are; ties keep their input order.
func SortByFreshness[T any](items []T, freshness func(T) Freshness) []T {
	out := make([]T, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		a := freshness(out[i]).DaysRemaining
		b := freshness(out[j]).DaysRemaining
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})
	return out
}

// FilterByDistance keeps items that have a location within maxDistanceKm of
// the reference point. A nil reference point is a no-op returning the input
// unchanged; items without a location are dropped.
func FilterByDistance[T any](items []T, ref *Point, maxDistanceKm float64, location func(T) *Point) []T {
	if ref == nil {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		loc := location(item)
		if loc == nil {
			continue
		}
		if Distance(*ref, *loc) <= maxDistanceKm {
			out = append(out, item)
		}
	}
	return out
}
