package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for Advisory Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// GetWeather godoc
// @Summary Current weather for a farm location
// @Description Fetch the current temperature, humidity and rainfall for the given coordinates
// @Tags Advisory
// @Produce json
// @Param latitude query number true "Latitude"
// @Param longitude query number true "Longitude"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 502 {object} object{success=bool,error=string}
// @Router /api/advisory/weather [get]
func (h *AdvisoryHandler) GetWeatherDoc() {}

// RecommendCrops godoc
// @Summary Crop recommendations for a farm location
// @Description Score crop profiles against the current season and weather and return the best matches
// @Tags Advisory
// @Produce json
// @Param latitude query number true "Latitude"
// @Param longitude query number true "Longitude"
// @Param limit query int false "Maximum number of recommendations"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 502 {object} object{success=bool,error=string}
// @Router /api/advisory/crops [get]
func (h *AdvisoryHandler) RecommendCropsDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Router /health [get]
func (h *AdvisoryHandler) HealthCheckDoc() {}
