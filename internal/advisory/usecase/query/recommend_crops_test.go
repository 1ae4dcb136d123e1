package query_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/farmgate/marketplace/internal/advisory/domain"
	"github.com/farmgate/marketplace/internal/advisory/usecase/query"
	"github.com/farmgate/marketplace/internal/advisory/weather"
	"github.com/farmgate/marketplace/pkg/geo"
)

type fakeForecaster struct {
	forecast *weather.Forecast
	err      error
}

func (f *fakeForecaster) CurrentForecast(ctx context.Context, point geo.Point) (*weather.Forecast, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.forecast, nil
}

func testProfiles() []domain.CropProfile {
	return []domain.CropProfile{
		{
			Name: "winter greens", Category: "leafy_greens", Perishability: geo.Perishable,
			MinTempC: 10, MaxTempC: 25, MinRainfallMm: 0, MaxRainfallMm: 6,
			SowingMonths: []time.Month{time.October, time.November},
		},
		{
			Name: "monsoon rice", Category: "grains", Perishability: geo.NonPerishable,
			MinTempC: 20, MaxTempC: 37, MinRainfallMm: 4, MaxRainfallMm: 50,
			SowingMonths: []time.Month{time.June, time.July},
		},
	}
}

func octoberClock() time.Time {
	return time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
}

func TestRecommendScoresSeasonAndConditions(t *testing.T) {
	// 22°C, light rain: both crops match temperature and rainfall, and
	// October puts only winter greens in its sowing window.
	forecaster := &fakeForecaster{forecast: &weather.Forecast{
		TemperatureC: 22,
		RainfallMm:   5,
	}}
	handler := query.NewRecommendCropsHandler(forecaster, testProfiles()).WithClock(octoberClock)

	advisory, err := handler.Handle(context.Background(), query.RecommendCropsQuery{
		Latitude:  12.97,
		Longitude: 77.59,
	})
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if advisory.Month != "October" {
		t.Errorf("month = %s, want October", advisory.Month)
	}
	if len(advisory.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(advisory.Recommendations))
	}

	var greens, rice domain.Recommendation
	for _, rec := range advisory.Recommendations {
		switch rec.Crop.Name {
		case "winter greens":
			greens = rec
		case "monsoon rice":
			rice = rec
		}
	}

	// Accumulated in the engine's order: season, temperature, rainfall.
	wantGreens := 0.5
	wantGreens += 0.3
	wantGreens += 0.2
	if greens.Score != wantGreens {
		t.Errorf("winter greens: expected score %.1f, got %.1f", wantGreens, greens.Score)
	}
	if len(greens.Reasons) != 3 {
		t.Errorf("winter greens: expected 3 reasons, got %v", greens.Reasons)
	}

	var wantRice float64
	wantRice += 0.3
	wantRice += 0.2
	if rice.Score != wantRice {
		t.Errorf("monsoon rice: expected score %.1f, got %.1f", wantRice, rice.Score)
	}
}

func TestRecommendDropsZeroScores(t *testing.T) {
	// Freezing and bone dry: winter greens fail temperature but match
	// rainfall; rice fails both windows outside its season.
	forecaster := &fakeForecaster{forecast: &weather.Forecast{
		TemperatureC: -5,
		RainfallMm:   0,
	}}
	handler := query.NewRecommendCropsHandler(forecaster, []domain.CropProfile{
		{
			Name: "summer melon", Category: "fruits", Perishability: geo.SemiPerishable,
			MinTempC: 24, MaxTempC: 38, MinRainfallMm: 1, MaxRainfallMm: 10,
			SowingMonths: []time.Month{},
		},
	})

	advisory, err := handler.Handle(context.Background(), query.RecommendCropsQuery{
		Latitude:  12.97,
		Longitude: 77.59,
	})
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(advisory.Recommendations) != 0 {
		t.Errorf("expected no recommendations, got %d", len(advisory.Recommendations))
	}
}

func TestRecommendOrdersByScore(t *testing.T) {
	forecaster := &fakeForecaster{forecast: &weather.Forecast{
		TemperatureC: 22,
		RainfallMm:   5,
	}}
	handler := query.NewRecommendCropsHandler(forecaster, testProfiles()).WithClock(octoberClock)

	advisory, err := handler.Handle(context.Background(), query.RecommendCropsQuery{
		Latitude:  12.97,
		Longitude: 77.59,
	})
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}

	// The in-season crop outranks the out-of-season one.
	if advisory.Recommendations[0].Crop.Name != "winter greens" {
		t.Errorf("expected winter greens first, got %s", advisory.Recommendations[0].Crop.Name)
	}
	for i := 1; i < len(advisory.Recommendations); i++ {
		if advisory.Recommendations[i-1].Score < advisory.Recommendations[i].Score {
			t.Errorf("recommendations not ordered by score: %.1f before %.1f",
				advisory.Recommendations[i-1].Score, advisory.Recommendations[i].Score)
		}
	}
}

func TestRecommendValidatesCoordinates(t *testing.T) {
	handler := query.NewRecommendCropsHandler(&fakeForecaster{}, nil)

	if _, err := handler.Handle(context.Background(), query.RecommendCropsQuery{
		Latitude:  95,
		Longitude: 77.59,
	}); err == nil {
		t.Error("expected validation error for latitude 95")
	}
}

func TestRecommendPropagatesForecastFailure(t *testing.T) {
	handler := query.NewRecommendCropsHandler(&fakeForecaster{err: errors.New("upstream down")}, nil)

	if _, err := handler.Handle(context.Background(), query.RecommendCropsQuery{
		Latitude:  12.97,
		Longitude: 77.59,
	}); err == nil {
		t.Error("expected forecast failure to propagate")
	}
}

func TestWeatherLookupValidatesCoordinates(t *testing.T) {
	handler := query.NewGetWeatherHandler(&fakeForecaster{forecast: &weather.Forecast{}})

	if _, err := handler.Handle(context.Background(), query.GetWeatherQuery{
		Latitude:  12.97,
		Longitude: -200,
	}); err == nil {
		t.Error("expected validation error for longitude -200")
	}
}
