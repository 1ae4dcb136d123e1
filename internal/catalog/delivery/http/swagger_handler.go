package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for Catalog Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// BrowseProducts godoc
// @Summary Browse marketplace products
// @Description List active products decorated with delivery estimates, proximity badges and freshness relative to the buyer location
// @Tags Products
// @Produce json
// @Param latitude query number false "Buyer latitude"
// @Param longitude query number false "Buyer longitude"
// @Param category query string false "Category filter"
// @Param sort query string false "Sort order (distance, freshness)"
// @Param max_distance_km query number false "Maximum distance filter in km"
// @Param fresh_fast_only query bool false "Only fresh products within 15 km"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/products [get]
func (h *ProductHandler) BrowseProductsDoc() {}

// GetProduct godoc
// @Summary Get product by ID
// @Description Get a single product, decorated relative to the buyer when coordinates are given
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Param latitude query number false "Buyer latitude"
// @Param longitude query number false "Buyer longitude"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [get]
func (h *ProductHandler) GetProductDoc() {}

// CreateProduct godoc
// @Summary Create a product
// @Description List new produce in the marketplace (Farmer only)
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,description=string,category=string,perishability=string,price=string,quantity=int,unit=string,harvested_at=string,latitude=number,longitude=number} true "Product data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/products [post]
func (h *ProductHandler) CreateProductDoc() {}

// UpdateProduct godoc
// @Summary Update a product
// @Description Update fields of an owned product (Farmer only)
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [patch]
func (h *ProductHandler) UpdateProductDoc() {}

// DeleteProduct godoc
// @Summary Delete a product
// @Description Remove an owned product from the marketplace (Farmer or Admin)
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [delete]
func (h *ProductHandler) DeleteProductDoc() {}

// ListMyProducts godoc
// @Summary List own products
// @Description List everything the authenticated farmer has listed, including inactive produce
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/products/mine [get]
func (h *ProductHandler) ListMyProductsDoc() {}

// GetStats godoc
// @Summary Catalog statistics
// @Description Get total and active product counts
// @Tags Statistics
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/catalog/stats [get]
func (h *ProductHandler) GetStatsDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *ProductHandler) HealthCheckDoc() {}
