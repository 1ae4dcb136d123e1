package query

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/farmgate/marketplace/internal/advisory/domain"
	"github.com/farmgate/marketplace/internal/advisory/weather"
	"github.com/farmgate/marketplace/pkg/geo"
)

// Score weights. Sowing season dominates: a crop out of season never
// outranks one in season on conditions alone.
const (
	seasonWeight   = 0.5
	tempWeight     = 0.3
	rainfallWeight = 0.2
)

// RecommendCropsQuery represents a crop recommendation request
type RecommendCropsQuery struct {
	Latitude  float64
	Longitude float64
	Limit     int
}

// CropAdvisory bundles the forecast with the scored suggestions.
type CropAdvisory struct {
	Forecast        *weather.Forecast       `json:"forecast"`
	Month           string                  `json:"month"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

// RecommendCropsHandler scores crop profiles against the season and the
// current forecast
type RecommendCropsHandler struct {
	forecaster Forecaster
	profiles   []domain.CropProfile
	now        func() time.Time
}

// NewRecommendCropsHandler creates a new handler
func NewRecommendCropsHandler(forecaster Forecaster, profiles []domain.CropProfile) *RecommendCropsHandler {
	if len(profiles) == 0 {
		profiles = domain.DefaultCropProfiles()
	}
	return &RecommendCropsHandler{
		forecaster: forecaster,
		profiles:   profiles,
		now:        time.Now,
	}
}

// WithClock overrides the time source used to resolve the current month.
func (h *RecommendCropsHandler) WithClock(now func() time.Time) *RecommendCropsHandler {
	h.now = now
	return h
}

// Handle executes the query
func (h *RecommendCropsHandler) Handle(ctx context.Context, query RecommendCropsQuery) (*CropAdvisory, error) {
	point := geo.Point{Latitude: query.Latitude, Longitude: query.Longitude}
	if err := point.Validate(); err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 5
	}

	forecast, err := h.forecaster.CurrentForecast(ctx, point)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}

	month := h.now().Month()

	recommendations := make([]domain.Recommendation, 0, len(h.profiles))
	for _, crop := range h.profiles {
		rec := score(crop, month, forecast)
		if rec.Score > 0 {
			recommendations = append(recommendations, rec)
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})
	if len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}

	return &CropAdvisory{
		Forecast:        forecast,
		Month:           month.String(),
		Recommendations: recommendations,
	}, nil
}

// score rates one crop against the month and the forecast.
func score(crop domain.CropProfile, month time.Month, f *weather.Forecast) domain.Recommendation {
	rec := domain.Recommendation{Crop: crop}

	if crop.SowableIn(month) {
		rec.Score += seasonWeight
		rec.Reasons = append(rec.Reasons, fmt.Sprintf("%s is in the sowing window", month))
	}
	if f.TemperatureC >= crop.MinTempC && f.TemperatureC <= crop.MaxTempC {
		rec.Score += tempWeight
		rec.Reasons = append(rec.Reasons, fmt.Sprintf("temperature %.1f°C suits %.0f-%.0f°C", f.TemperatureC, crop.MinTempC, crop.MaxTempC))
	}
	if f.RainfallMm >= crop.MinRainfallMm && f.RainfallMm <= crop.MaxRainfallMm {
		rec.Score += rainfallWeight
		rec.Reasons = append(rec.Reasons, fmt.Sprintf("rainfall %.1fmm suits %.0f-%.0fmm", f.RainfallMm, crop.MinRainfallMm, crop.MaxRainfallMm))
	}

	return rec
}
