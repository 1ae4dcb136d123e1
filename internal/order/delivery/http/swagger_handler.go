package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for Order Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// PlaceOrder godoc
// @Summary Place an order
// @Description Order a quantity of a marketplace listing; publishes an order placed event
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{listing_id=int,quantity=int,delivery_note=string} true "Order data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/orders [post]
func (h *OrderHandler) PlaceOrderDoc() {}

// GetMyOrders godoc
// @Summary List own orders
// @Description List the authenticated buyer's orders
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/orders/mine [get]
func (h *OrderHandler) GetMyOrdersDoc() {}

// GetOrder godoc
// @Summary Get order by ID
// @Description Get a specific order; buyers see only their own
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/orders/{id} [get]
func (h *OrderHandler) GetOrderDoc() {}

// CancelOrder godoc
// @Summary Cancel an order
// @Description Cancel an own pending or confirmed order
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrderDoc() {}

// ListOrders godoc
// @Summary List all orders
// @Description List orders with pagination and optional status filter (Admin only)
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Param status query string false "Status filter (pending, confirmed, delivered, cancelled)"
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/orders [get]
func (h *OrderHandler) ListOrdersDoc() {}

// UpdateStatus godoc
// @Summary Update order status
// @Description Move an order through pending, confirmed, delivered or cancelled (Admin only)
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body object{status=string} true "New status"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatusDoc() {}

// GetStats godoc
// @Summary Order statistics
// @Description Get order counts by status (Admin only)
// @Tags Statistics
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/orders/stats [get]
func (h *OrderHandler) GetStatsDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *OrderHandler) HealthCheckDoc() {}
