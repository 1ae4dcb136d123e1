// Package weather fetches current conditions from an Open-Meteo
// compatible forecast API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/farmgate/marketplace/pkg/geo"
	"github.com/farmgate/marketplace/pkg/logger"
)

// Forecast is the current-conditions snapshot the advisory engine needs.
type Forecast struct {
	TemperatureC    float64   `json:"temperature_c"`
	HumidityPercent float64   `json:"humidity_percent"`
	RainfallMm      float64   `json:"rainfall_mm"`
	FetchedAt       time.Time `json:"fetched_at"`
}

// Client calls an Open-Meteo compatible forecast endpoint
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new forecast API client
func NewClient(baseURL string) *Client {
	logger.Logger.Info().
		Str("base_url", baseURL).
		Msg("Weather client initialized")

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// openMeteoResponse mirrors the relevant slice of the Open-Meteo current
// weather payload.
type openMeteoResponse struct {
	Current struct {
		Temperature2m      float64 `json:"temperature_2m"`
		RelativeHumidity2m float64 `json:"relative_humidity_2m"`
		Precipitation      float64 `json:"precipitation"`
	} `json:"current"`
}

// CurrentForecast fetches the current conditions at a point
func (c *Client) CurrentForecast(ctx context.Context, point geo.Point) (*Forecast, error) {
	if err := point.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", point.Latitude))
	params.Set("longitude", fmt.Sprintf("%.4f", point.Longitude))
	params.Set("current", "temperature_2m,relative_humidity_2m,precipitation")

	endpoint := fmt.Sprintf("%s/v1/forecast?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast API returned status %d", resp.StatusCode)
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode forecast: %w", err)
	}

	return &Forecast{
		TemperatureC:    payload.Current.Temperature2m,
		HumidityPercent: payload.Current.RelativeHumidity2m,
		RainfallMm:      payload.Current.Precipitation,
		FetchedAt:       time.Now(),
	}, nil
}
