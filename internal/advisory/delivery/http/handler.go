package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/farmgate/marketplace/internal/advisory/usecase/query"
	"github.com/farmgate/marketplace/pkg/geo"
	"github.com/farmgate/marketplace/pkg/logger"
)

// AdvisoryHandler handles HTTP requests for weather and crop advisory
type AdvisoryHandler struct {
	weatherHandler   *query.GetWeatherHandler
	recommendHandler *query.RecommendCropsHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewAdvisoryHandler creates a new advisory handler
func NewAdvisoryHandler(forecaster query.Forecaster) *AdvisoryHandler {
	// Initialize Prometheus metrics
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisory_service_requests_total",
			Help: "Total number of requests to advisory service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "advisory_service_request_duration_seconds",
			Help:    "Duration of advisory service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &AdvisoryHandler{
		weatherHandler:   query.NewGetWeatherHandler(forecaster),
		recommendHandler: query.NewRecommendCropsHandler(forecaster, nil),
		requestCounter:   requestCounter,
		requestLatency:   requestLatency,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *AdvisoryHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// GetWeather handles GET /api/advisory/weather
func (h *AdvisoryHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := parseCoordinates(w, r)
	if !ok {
		return
	}

	forecast, err := h.weatherHandler.Handle(r.Context(), query.GetWeatherQuery{
		Latitude:  lat,
		Longitude: lon,
	})
	if err != nil {
		h.respondAdvisoryError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    forecast,
	})
}

// RecommendCrops handles GET /api/advisory/crops
func (h *AdvisoryHandler) RecommendCrops(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := parseCoordinates(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	advisory, err := h.recommendHandler.Handle(r.Context(), query.RecommendCropsQuery{
		Latitude:  lat,
		Longitude: lon,
		Limit:     limit,
	})
	if err != nil {
		h.respondAdvisoryError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    advisory,
	})
}

// respondAdvisoryError maps advisory errors to HTTP status codes
func (h *AdvisoryHandler) respondAdvisoryError(w http.ResponseWriter, err error) {
	var validationErr *geo.ValidationError
	if errors.As(err, &validationErr) {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   validationErr.Error(),
		})
		return
	}

	logger.Logger.Error().Err(err).Msg("Advisory lookup failed")
	respondJSON(w, http.StatusBadGateway, Response{
		Success: false,
		Error:   "Forecast service unavailable",
	})
}

// parseCoordinates extracts the required latitude and longitude params
func parseCoordinates(w http.ResponseWriter, r *http.Request) (float64, float64, bool) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("latitude"), 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "latitude is required",
		})
		return 0, 0, false
	}

	lon, err := strconv.ParseFloat(q.Get("longitude"), 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "longitude is required",
		})
		return 0, 0, false
	}

	return lat, lon, true
}

// RegisterRoutes registers all advisory routes
func (h *AdvisoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/advisory/weather", h.metricsMiddleware("/api/advisory/weather", h.GetWeather)).Methods("GET")
	router.HandleFunc("/api/advisory/crops", h.metricsMiddleware("/api/advisory/crops", h.RecommendCrops)).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint
func (h *AdvisoryHandler) RegisterHealthCheck(router *mux.Router) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Advisory service is healthy",
		})
	}).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
