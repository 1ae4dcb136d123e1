package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for Inventory Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// RecordPurchase godoc
// @Summary Record a purchase from a farmer
// @Description Create a new stock record for produce bought from a farmer (Admin only)
// @Tags Stock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{source_farmer_id=int,produce_name=string,quantity=int,purchase_price=string,warehouse_location=string} true "Purchase data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/stock [post]
func (h *StockHandler) RecordPurchaseDoc() {}

// ListStock godoc
// @Summary List stock records
// @Description Get a list of stock records with pagination and optional status filter
// @Tags Stock
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Param status query string false "Status filter (in_stock, low_stock, out_of_stock, listed, archived)"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/stock [get]
func (h *StockHandler) ListStockDoc() {}

// GetStock godoc
// @Summary Get stock record by ID
// @Description Get a specific stock record by its ID
// @Tags Stock
// @Security BearerAuth
// @Produce json
// @Param id path int true "Stock record ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/stock/{id} [get]
func (h *StockHandler) GetStockDoc() {}

// ListInMarketplace godoc
// @Summary List stock in the marketplace
// @Description Offer a sub-quantity of a stock record for sale at a selling price (Admin only)
// @Tags Stock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Stock record ID"
// @Param request body object{quantity=int,selling_price=string} true "Listing data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/stock/{id}/listings [post]
func (h *StockHandler) ListInMarketplaceDoc() {}

// RecordSale godoc
// @Summary Record a sale
// @Description Count sold units against a stock record (Admin only)
// @Tags Stock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Stock record ID"
// @Param request body object{quantity=int} true "Sale data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/stock/{id}/sales [post]
func (h *StockHandler) RecordSaleDoc() {}

// ArchiveStock godoc
// @Summary Archive a stock record
// @Description Mark a stock record as archived; archiving is terminal and idempotent (Admin only)
// @Tags Stock
// @Security BearerAuth
// @Produce json
// @Param id path int true "Stock record ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/stock/{id}/archive [post]
func (h *StockHandler) ArchiveStockDoc() {}

// ListListings godoc
// @Summary List marketplace listings for a stock record
// @Description Get the listings created from a specific stock record
// @Tags Listings
// @Security BearerAuth
// @Produce json
// @Param id path int true "Stock record ID"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/stock/{id}/listings [get]
func (h *StockHandler) ListListingsDoc() {}

// GetListing godoc
// @Summary Get listing by ID
// @Description Get a specific marketplace listing by its ID
// @Tags Listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/listings/{id} [get]
func (h *StockHandler) GetListingDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *StockHandler) HealthCheckDoc() {}
