package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/farmgate/marketplace/internal/catalog/domain"
	"github.com/farmgate/marketplace/internal/catalog/usecase/command"
	"github.com/farmgate/marketplace/internal/catalog/usecase/query"
	"github.com/farmgate/marketplace/pkg/geo"
	"github.com/farmgate/marketplace/pkg/logger"
)

// ProductHandler handles HTTP requests for the marketplace catalog
type ProductHandler struct {
	// Command handlers
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler

	// Query handlers
	browseHandler     *query.BrowseProductsHandler
	getProductHandler *query.GetProductHandler
	listFarmerHandler *query.ListFarmerProductsHandler
	getStatsHandler   *query.GetStatsHandler

	repo           domain.ProductRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	activeProducts prometheus.Gauge
}

// NewProductHandler creates a new product handler
func NewProductHandler(repo domain.ProductRepository) *ProductHandler {
	// Initialize Prometheus metrics
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_service_requests_total",
			Help: "Total number of requests to catalog service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_service_request_duration_seconds",
			Help:    "Duration of catalog service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	activeProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_service_active_products",
			Help: "Number of active products in the marketplace",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(activeProducts)

	return &ProductHandler{
		createHandler:     command.NewCreateProductHandler(repo),
		updateHandler:     command.NewUpdateProductHandler(repo),
		deleteHandler:     command.NewDeleteProductHandler(repo),
		browseHandler:     query.NewBrowseProductsHandler(repo),
		getProductHandler: query.NewGetProductHandler(repo),
		listFarmerHandler: query.NewListFarmerProductsHandler(repo),
		getStatsHandler:   query.NewGetStatsHandler(repo),
		repo:              repo,
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
		activeProducts:    activeProducts,
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
func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

type productRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Perishability string   `json:"perishability"`
	Price         string   `json:"price"`
	Quantity      int      `json:"quantity"`
	Unit          string   `json:"unit"`
	HarvestedAt   string   `json:"harvested_at"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid price",
		})
		return
	}

	harvestedAt, err := time.Parse(time.RFC3339, req.HarvestedAt)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid harvested_at, expected RFC3339",
		})
		return
	}

	farmerID, _ := r.Context().Value(UserIDKey).(uint)

	product, err := h.createHandler.Handle(command.CreateProductCommand{
		FarmerID:      farmerID,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Perishability: geo.Perishability(req.Perishability),
		Price:         price,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		HarvestedAt:   harvestedAt,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.updateActiveProductsMetric()
	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// BrowseProducts handles GET /api/products
func (h *ProductHandler) BrowseProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	browse := query.BrowseProductsQuery{
		Category:      q.Get("category"),
		SortBy:        q.Get("sort"),
		FreshFastOnly: q.Get("fresh_fast_only") == "true",
	}
	browse.Limit, _ = strconv.Atoi(q.Get("limit"))
	browse.Offset, _ = strconv.Atoi(q.Get("offset"))

	var ok bool
	if browse.BuyerLatitude, ok = parseFloatParam(w, q.Get("latitude"), "latitude"); !ok {
		return
	}
	if browse.BuyerLongitude, ok = parseFloatParam(w, q.Get("longitude"), "longitude"); !ok {
		return
	}
	if browse.MaxDistanceKm, ok = parseFloatParam(w, q.Get("max_distance_km"), "max_distance_km"); !ok {
		return
	}

	views, err := h.browseHandler.Handle(browse)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.updateActiveProductsMetric()
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    views,
	})
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	q := r.URL.Query()
	get := query.GetProductQuery{ID: id}
	if get.BuyerLatitude, ok = parseFloatParam(w, q.Get("latitude"), "latitude"); !ok {
		return
	}
	if get.BuyerLongitude, ok = parseFloatParam(w, q.Get("longitude"), "longitude"); !ok {
		return
	}

	view, err := h.getProductHandler.Handle(get)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    view,
	})
}

// UpdateProduct handles PATCH /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *string  `json:"price"`
		Quantity    *int     `json:"quantity"`
		HarvestedAt *string  `json:"harvested_at"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
		IsActive    *bool    `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.UpdateProductCommand{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		IsActive:    req.IsActive,
	}
	cmd.FarmerID, _ = r.Context().Value(UserIDKey).(uint)

	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "Invalid price",
			})
			return
		}
		cmd.Price = &price
	}
	if req.HarvestedAt != nil {
		harvestedAt, err := time.Parse(time.RFC3339, *req.HarvestedAt)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "Invalid harvested_at, expected RFC3339",
			})
			return
		}
		cmd.HarvestedAt = &harvestedAt
	}

	product, err := h.updateHandler.Handle(cmd)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.updateActiveProductsMetric()
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	farmerID, _ := r.Context().Value(UserIDKey).(uint)
	role, _ := r.Context().Value(RoleKey).(string)

	err := h.deleteHandler.Handle(command.DeleteProductCommand{
		ID:       id,
		FarmerID: farmerID,
		IsAdmin:  role == "admin",
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.updateActiveProductsMetric()
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}

// ListMyProducts handles GET /api/products/mine
func (h *ProductHandler) ListMyProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	farmerID, _ := r.Context().Value(UserIDKey).(uint)

	products, err := h.listFarmerHandler.Handle(query.ListFarmerProductsQuery{
		FarmerID: farmerID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list farmer products")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list products",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    products,
	})
}

// GetStats handles GET /api/catalog/stats
func (h *ProductHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.getStatsHandler.Handle()
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to get catalog stats")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get statistics",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    stats,
	})
}

// respondDomainError maps domain errors to HTTP status codes
func (h *ProductHandler) respondDomainError(w http.ResponseWriter, err error) {
	var validationErr *geo.ValidationError

	switch {
	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   validationErr.Error(),
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Product not found",
		})
	default:
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
	}
}

// updateActiveProductsMetric updates the active products gauge
func (h *ProductHandler) updateActiveProductsMetric() {
	count, err := h.repo.CountActive()
	if err == nil {
		h.activeProducts.Set(float64(count))
	}
}

// parseID extracts a numeric path variable
func parseID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars[name], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}

// parseFloatParam parses an optional float query parameter
func parseFloatParam(w http.ResponseWriter, raw, name string) (*float64, bool) {
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid " + name,
		})
		return nil, false
	}
	return &value, true
}

// RegisterRoutes registers all catalog routes
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	// Public browse operations
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.BrowseProducts)).Methods("GET")
	router.HandleFunc("/api/products/mine", h.metricsMiddleware("/api/products/mine", FarmerMiddleware(h.ListMyProducts))).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.GetProduct)).Methods("GET")

	// Farmer operations
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", FarmerMiddleware(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", FarmerMiddleware(h.UpdateProduct))).Methods("PATCH")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", FarmerMiddleware(h.DeleteProduct))).Methods("DELETE")

	// Statistics
	router.HandleFunc("/api/catalog/stats", h.metricsMiddleware("/api/catalog/stats", h.GetStats)).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint
func (h *ProductHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Catalog service is healthy",
		})
	}).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
