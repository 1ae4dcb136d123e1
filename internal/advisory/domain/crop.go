package domain

import (
	"time"

	"github.com/farmgate/marketplace/pkg/geo"
)

// CropProfile describes the growing conditions a crop wants. Profiles
// drive the rule-based recommendation engine.
type CropProfile struct {
	Name          string            `json:"name"`
	Category      string            `json:"category"`
	Perishability geo.Perishability `json:"perishability"`
	MinTempC      float64           `json:"min_temp_c"`
	MaxTempC      float64           `json:"max_temp_c"`
	MinRainfallMm float64           `json:"min_rainfall_mm"`
	MaxRainfallMm float64           `json:"max_rainfall_mm"`
	SowingMonths  []time.Month      `json:"sowing_months"`
}

// SowableIn reports whether the month is in the crop's sowing window.
func (c CropProfile) SowableIn(month time.Month) bool {
	for _, m := range c.SowingMonths {
		if m == month {
			return true
		}
	}
	return false
}

// Recommendation is a scored crop suggestion.
type Recommendation struct {
	Crop    CropProfile `json:"crop"`
	Score   float64     `json:"score"`
	Reasons []string    `json:"reasons"`
}

// DefaultCropProfiles returns the built-in crop profile table. Temperature
// and rainfall windows are daily values compared against the current
// forecast.
func DefaultCropProfiles() []CropProfile {
	return []CropProfile{
		{
			Name: "tomato", Category: "vegetables", Perishability: geo.SemiPerishable,
			MinTempC: 18, MaxTempC: 32, MinRainfallMm: 0, MaxRainfallMm: 8,
			SowingMonths: []time.Month{time.June, time.July, time.October, time.November},
		},
		{
			Name: "spinach", Category: "leafy_greens", Perishability: geo.Perishable,
			MinTempC: 10, MaxTempC: 25, MinRainfallMm: 0, MaxRainfallMm: 6,
			SowingMonths: []time.Month{time.September, time.October, time.November, time.February},
		},
		{
			Name: "rice", Category: "grains", Perishability: geo.NonPerishable,
			MinTempC: 20, MaxTempC: 37, MinRainfallMm: 4, MaxRainfallMm: 50,
			SowingMonths: []time.Month{time.June, time.July},
		},
		{
			Name: "wheat", Category: "grains", Perishability: geo.NonPerishable,
			MinTempC: 10, MaxTempC: 25, MinRainfallMm: 0, MaxRainfallMm: 5,
			SowingMonths: []time.Month{time.October, time.November, time.December},
		},
		{
			Name: "maize", Category: "grains", Perishability: geo.NonPerishable,
			MinTempC: 18, MaxTempC: 32, MinRainfallMm: 2, MaxRainfallMm: 20,
			SowingMonths: []time.Month{time.June, time.July, time.February},
		},
		{
			Name: "onion", Category: "vegetables", Perishability: geo.SemiPerishable,
			MinTempC: 13, MaxTempC: 28, MinRainfallMm: 0, MaxRainfallMm: 6,
			SowingMonths: []time.Month{time.October, time.November, time.December, time.January},
		},
		{
			Name: "lentil", Category: "pulses", Perishability: geo.NonPerishable,
			MinTempC: 15, MaxTempC: 27, MinRainfallMm: 0, MaxRainfallMm: 4,
			SowingMonths: []time.Month{time.October, time.November},
		},
		{
			Name: "okra", Category: "vegetables", Perishability: geo.Perishable,
			MinTempC: 22, MaxTempC: 35, MinRainfallMm: 1, MaxRainfallMm: 15,
			SowingMonths: []time.Month{time.February, time.March, time.June, time.July},
		},
		{
			Name: "mustard", Category: "spices", Perishability: geo.NonPerishable,
			MinTempC: 10, MaxTempC: 25, MinRainfallMm: 0, MaxRainfallMm: 4,
			SowingMonths: []time.Month{time.September, time.October},
		},
		{
			Name: "strawberry", Category: "berries", Perishability: geo.Perishable,
			MinTempC: 10, MaxTempC: 26, MinRainfallMm: 0, MaxRainfallMm: 6,
			SowingMonths: []time.Month{time.September, time.October},
		},
	}
}
