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

	"github.com/farmgate/marketplace/internal/inventory/domain"
	"github.com/farmgate/marketplace/internal/inventory/usecase/command"
	"github.com/farmgate/marketplace/internal/inventory/usecase/query"
	"github.com/farmgate/marketplace/pkg/logger"
)

// StockHandler handles HTTP requests for warehouse stock
type StockHandler struct {
	// Command handlers
	purchaseHandler *command.RecordPurchaseHandler
	listingHandler  *command.ListInMarketplaceHandler
	saleHandler     *command.RecordSaleHandler
	archiveHandler  *command.ArchiveStockHandler

	// Query handlers
	getStockHandler     *query.GetStockHandler
	listStockHandler    *query.ListStockHandler
	listListingsHandler *query.ListListingsHandler
	getListingHandler   *query.GetListingHandler

	repo           domain.StockRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	stockRecords   prometheus.Gauge
}

// NewStockHandler creates a new stock handler
func NewStockHandler(repo domain.StockRepository, lowStockThreshold int) *StockHandler {
	// Initialize Prometheus metrics
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_service_requests_total",
			Help: "Total number of requests to inventory service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_service_request_duration_seconds",
			Help:    "Duration of inventory service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	stockRecords := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_service_stock_records",
			Help: "Number of stock records in the system",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(stockRecords)

	return &StockHandler{
		purchaseHandler:     command.NewRecordPurchaseHandler(repo),
		listingHandler:      command.NewListInMarketplaceHandler(repo, lowStockThreshold),
		saleHandler:         command.NewRecordSaleHandler(repo, lowStockThreshold),
		archiveHandler:      command.NewArchiveStockHandler(repo),
		getStockHandler:     query.NewGetStockHandler(repo),
		listStockHandler:    query.NewListStockHandler(repo),
		listListingsHandler: query.NewListListingsHandler(repo),
		getListingHandler:   query.NewGetListingHandler(repo),
		repo:                repo,
		requestCounter:      requestCounter,
		requestLatency:      requestLatency,
		stockRecords:        stockRecords,
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
func (h *StockHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// RecordPurchase handles POST /api/stock
func (h *StockHandler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SourceFarmerID    uint   `json:"source_farmer_id"`
		ProduceName       string `json:"produce_name"`
		Quantity          int    `json:"quantity"`
		PurchasePrice     string `json:"purchase_price"`
		WarehouseLocation string `json:"warehouse_location"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	price, err := decimal.NewFromString(req.PurchasePrice)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid purchase_price",
		})
		return
	}

	cmd := command.RecordPurchaseCommand{
		SourceFarmerID:    req.SourceFarmerID,
		ProduceName:       req.ProduceName,
		Quantity:          req.Quantity,
		PurchasePrice:     price,
		WarehouseLocation: req.WarehouseLocation,
	}

	record, err := h.purchaseHandler.Handle(cmd)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.updateStockRecordsMetric()
	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Purchase recorded successfully",
		Data:    record,
	})
}

// GetStock handles GET /api/stock/{id}
func (h *StockHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	record, err := h.getStockHandler.Handle(query.GetStockQuery{ID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Stock record not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    record,
	})
}

// ListStock handles GET /api/stock
func (h *StockHandler) ListStock(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	status := r.URL.Query().Get("status")

	records, err := h.listStockHandler.Handle(query.ListStockQuery{
		Limit:  limit,
		Offset: offset,
		Status: status,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list stock records")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list stock records",
		})
		return
	}

	h.updateStockRecordsMetric()
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    records,
	})
}

// ListInMarketplace handles POST /api/stock/{id}/listings
func (h *StockHandler) ListInMarketplace(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Quantity     int    `json:"quantity"`
		SellingPrice string `json:"selling_price"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	price, err := decimal.NewFromString(req.SellingPrice)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid selling_price",
		})
		return
	}

	cmd := command.ListInMarketplaceCommand{
		StockRecordID: id,
		Quantity:      req.Quantity,
		SellingPrice:  price,
	}

	record, listing, err := h.listingHandler.Handle(cmd)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Stock listed in marketplace",
		Data: map[string]interface{}{
			"stock_record": record,
			"listing":      listing,
		},
	})
}

// RecordSale handles POST /api/stock/{id}/sales
func (h *StockHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.RecordSaleCommand{
		StockRecordID: id,
		Quantity:      req.Quantity,
	}

	record, err := h.saleHandler.Handle(cmd)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Sale recorded successfully",
		Data:    record,
	})
}

// ArchiveStock handles POST /api/stock/{id}/archive
func (h *StockHandler) ArchiveStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	record, err := h.archiveHandler.Handle(command.ArchiveStockCommand{StockRecordID: id})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock record archived",
		Data:    record,
	})
}

// ListListings handles GET /api/stock/{id}/listings
func (h *StockHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	listings, err := h.listListingsHandler.Handle(query.ListListingsQuery{StockRecordID: id})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list listings")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list listings",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    listings,
	})
}

// GetListing handles GET /api/listings/{id}
func (h *StockHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	listing, err := h.getListingHandler.Handle(query.GetListingQuery{ID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Listing not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    listing,
	})
}

// respondDomainError maps domain errors to HTTP status codes
func (h *StockHandler) respondDomainError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	var stockErr *domain.InsufficientStockError

	switch {
	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   validationErr.Error(),
		})
	case errors.As(err, &stockErr):
		respondJSON(w, http.StatusConflict, Response{
			Success: false,
			Error:   stockErr.Error(),
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Stock record not found",
		})
	default:
		logger.Logger.Error().Err(err).Msg("Stock operation failed")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Internal server error",
		})
	}
}

// updateStockRecordsMetric updates the stock records gauge
func (h *StockHandler) updateStockRecordsMetric() {
	count, err := h.repo.Count()
	if err == nil {
		h.stockRecords.Set(float64(count))
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

// RegisterRoutes registers all stock routes
func (h *StockHandler) RegisterRoutes(router *mux.Router) {
	// Admin operations
	router.HandleFunc("/api/stock", h.metricsMiddleware("/api/stock", AdminMiddleware(h.RecordPurchase))).Methods("POST")
	router.HandleFunc("/api/stock/{id}/listings", h.metricsMiddleware("/api/stock/{id}/listings", AdminMiddleware(h.ListInMarketplace))).Methods("POST")
	router.HandleFunc("/api/stock/{id}/sales", h.metricsMiddleware("/api/stock/{id}/sales", AdminMiddleware(h.RecordSale))).Methods("POST")
	router.HandleFunc("/api/stock/{id}/archive", h.metricsMiddleware("/api/stock/{id}/archive", AdminMiddleware(h.ArchiveStock))).Methods("POST")

	// Read operations
	router.HandleFunc("/api/stock", h.metricsMiddleware("/api/stock", AuthMiddleware(h.ListStock))).Methods("GET")
	router.HandleFunc("/api/stock/{id}", h.metricsMiddleware("/api/stock/{id}", AuthMiddleware(h.GetStock))).Methods("GET")
	router.HandleFunc("/api/stock/{id}/listings", h.metricsMiddleware("/api/stock/{id}/listings", AuthMiddleware(h.ListListings))).Methods("GET")
	router.HandleFunc("/api/listings/{id}", h.metricsMiddleware("/api/listings/{id}", h.GetListing)).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint
func (h *StockHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
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
			Message: "Inventory service is healthy",
		})
	}).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
