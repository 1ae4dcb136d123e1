package query

import (
	"context"
	"fmt"

	"github.com/farmgate/marketplace/internal/advisory/weather"
	"github.com/farmgate/marketplace/pkg/geo"
)

// Forecaster fetches current conditions for a point.
type Forecaster interface {
	CurrentForecast(ctx context.Context, point geo.Point) (*weather.Forecast, error)
}

// GetWeatherQuery represents a weather lookup for a location
type GetWeatherQuery struct {
	Latitude  float64
	Longitude float64
}

// GetWeatherHandler handles weather lookups
type GetWeatherHandler struct {
	forecaster Forecaster
}

// NewGetWeatherHandler creates a new handler
func NewGetWeatherHandler(forecaster Forecaster) *GetWeatherHandler {
	return &GetWeatherHandler{forecaster: forecaster}
}

// Handle executes the query
func (h *GetWeatherHandler) Handle(ctx context.Context, query GetWeatherQuery) (*weather.Forecast, error) {
	point := geo.Point{Latitude: query.Latitude, Longitude: query.Longitude}
	if err := point.Validate(); err != nil {
		return nil, err
	}

	forecast, err := h.forecaster.CurrentForecast(ctx, point)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	return forecast, nil
}
