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
	"gorm.io/gorm"

	"github.com/farmgate/marketplace/internal/order/client"
	"github.com/farmgate/marketplace/internal/order/domain"
	"github.com/farmgate/marketplace/internal/order/usecase/command"
	"github.com/farmgate/marketplace/internal/order/usecase/query"
	"github.com/farmgate/marketplace/pkg/logger"
)

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	// Command handlers
	placeHandler  *command.PlaceOrderHandler
	statusHandler *command.UpdateStatusHandler
	cancelHandler *command.CancelOrderHandler

	// Query handlers
	getHandler      *query.GetOrderHandler
	myOrdersHandler *query.GetMyOrdersHandler
	listHandler     *query.ListOrdersHandler
	getStatsHandler *query.GetStatsHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	ordersPlaced   prometheus.Counter
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(repo domain.OrderRepository, listings command.ListingFetcher, buyers command.BuyerFetcher, publisher command.EventPublisher) *OrderHandler {
	// Initialize Prometheus metrics
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_service_requests_total",
			Help: "Total number of requests to order service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "order_service_request_duration_seconds",
			Help:    "Duration of order service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	ordersPlaced := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_service_orders_placed_total",
			Help: "Total number of orders placed",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(ordersPlaced)

	return &OrderHandler{
		placeHandler:    command.NewPlaceOrderHandler(repo, listings, buyers, publisher),
		statusHandler:   command.NewUpdateStatusHandler(repo),
		cancelHandler:   command.NewCancelOrderHandler(repo),
		getHandler:      query.NewGetOrderHandler(repo),
		myOrdersHandler: query.NewGetMyOrdersHandler(repo),
		listHandler:     query.NewListOrdersHandler(repo),
		getStatsHandler: query.NewGetStatsHandler(repo),
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
		ordersPlaced:    ordersPlaced,
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
func (h *OrderHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// PlaceOrder handles POST /api/orders
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ListingID    uint   `json:"listing_id"`
		Quantity     int    `json:"quantity"`
		DeliveryNote string `json:"delivery_note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	buyerID, _ := r.Context().Value(UserIDKey).(uint)

	order, err := h.placeHandler.Handle(r.Context(), command.PlaceOrderCommand{
		BuyerID:      buyerID,
		ListingID:    req.ListingID,
		Quantity:     req.Quantity,
		DeliveryNote: req.DeliveryNote,
	})
	if err != nil {
		h.respondOrderError(w, err)
		return
	}

	h.ordersPlaced.Inc()
	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Order placed successfully",
		Data:    order,
	})
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.getHandler.Handle(query.GetOrderQuery{ID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Order not found",
		})
		return
	}

	buyerID, _ := r.Context().Value(UserIDKey).(uint)
	role, _ := r.Context().Value(RoleKey).(string)
	if order.BuyerID != buyerID && role != "admin" {
		respondJSON(w, http.StatusForbidden, Response{
			Success: false,
			Error:   "Access denied",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    order,
	})
}

// GetMyOrders handles GET /api/orders/mine
func (h *OrderHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	buyerID, _ := r.Context().Value(UserIDKey).(uint)

	orders, err := h.myOrdersHandler.Handle(query.GetMyOrdersQuery{
		BuyerID: buyerID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list buyer orders")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list orders",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    orders,
	})
}

// ListOrders handles GET /api/orders (admin only)
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	status := r.URL.Query().Get("status")

	orders, err := h.listHandler.Handle(query.ListOrdersQuery{
		Limit:  limit,
		Offset: offset,
		Status: status,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    orders,
	})
}

// UpdateStatus handles PATCH /api/orders/{id}/status (admin only)
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	order, err := h.statusHandler.Handle(command.UpdateStatusCommand{
		OrderID: id,
		Status:  req.Status,
	})
	if err != nil {
		h.respondOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Order status updated",
		Data:    order,
	})
}

// CancelOrder handles POST /api/orders/{id}/cancel
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	buyerID, _ := r.Context().Value(UserIDKey).(uint)

	order, err := h.cancelHandler.Handle(command.CancelOrderCommand{
		OrderID: id,
		BuyerID: buyerID,
	})
	if err != nil {
		h.respondOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Order cancelled",
		Data:    order,
	})
}

// GetStats handles GET /api/orders/stats (admin only)
func (h *OrderHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.getStatsHandler.Handle()
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to get order stats")
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

// respondOrderError maps order errors to HTTP status codes
func (h *OrderHandler) respondOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, client.ErrListingNotFound), errors.Is(err, client.ErrUserNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   err.Error(),
		})
	default:
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
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

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	// Buyer operations
	router.HandleFunc("/api/orders", h.metricsMiddleware("/api/orders", AuthMiddleware(h.PlaceOrder))).Methods("POST")
	router.HandleFunc("/api/orders/mine", h.metricsMiddleware("/api/orders/mine", AuthMiddleware(h.GetMyOrders))).Methods("GET")
	router.HandleFunc("/api/orders/{id:[0-9]+}", h.metricsMiddleware("/api/orders/{id}", AuthMiddleware(h.GetOrder))).Methods("GET")
	router.HandleFunc("/api/orders/{id:[0-9]+}/cancel", h.metricsMiddleware("/api/orders/{id}/cancel", AuthMiddleware(h.CancelOrder))).Methods("POST")

	// Admin operations
	router.HandleFunc("/api/orders", h.metricsMiddleware("/api/orders", AdminMiddleware(h.ListOrders))).Methods("GET")
	router.HandleFunc("/api/orders/{id:[0-9]+}/status", h.metricsMiddleware("/api/orders/{id}/status", AdminMiddleware(h.UpdateStatus))).Methods("PATCH")
	router.HandleFunc("/api/orders/stats", h.metricsMiddleware("/api/orders/stats", AdminMiddleware(h.GetStats))).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint
func (h *OrderHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
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
			Message: "Order service is healthy",
		})
	}).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
