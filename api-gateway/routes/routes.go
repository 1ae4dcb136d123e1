package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/farmgate/marketplace/api-gateway/config"
	"github.com/farmgate/marketplace/api-gateway/health"
	"github.com/farmgate/marketplace/api-gateway/middleware"
	"github.com/farmgate/marketplace/api-gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix       string
	ServiceName  string
	Description  string
	RequireAuth  bool // Requires authentication
	RequireAdmin bool // Requires admin role
}

// Routes holds all route definitions. Backend services enforce role rules
// on their own endpoints; the gateway only guards the outer perimeter.
var Routes = []RouteDefinition{
	// Public routes (no auth required)
	{
		Prefix:      "/auth",
		ServiceName: "user",
		Description: "Authentication endpoints (register, login)",
	},
	{
		Prefix:      "/users",
		ServiceName: "user",
		Description: "User profiles (mixed: /users/me needs auth downstream)",
	},
	{
		Prefix:      "/api/products",
		ServiceName: "catalog",
		Description: "Marketplace browse and product management (writes need farmer role downstream)",
	},
	{
		Prefix:      "/api/catalog",
		ServiceName: "catalog",
		Description: "Catalog statistics",
	},
	{
		Prefix:      "/api/listings",
		ServiceName: "inventory",
		Description: "Marketplace listings",
	},
	{
		Prefix:      "/api/advisory",
		ServiceName: "advisory",
		Description: "Weather and crop recommendations",
	},

	// Authenticated routes
	{
		Prefix:      "/api/stock",
		ServiceName: "inventory",
		Description: "Stock record lifecycle (admin only downstream)",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/orders",
		ServiceName: "order",
		Description: "Order placement and tracking",
		RequireAuth: true,
	},
	{
		Prefix:      "/messages",
		ServiceName: "user",
		Description: "Buyer-farmer messaging",
		RequireAuth: true,
	},
	{
		Prefix:      "/conversations",
		ServiceName: "user",
		Description: "Message threads",
		RequireAuth: true,
	},

	// Admin routes
	{
		Prefix:       "/admin",
		ServiceName:  "user",
		Description:  "User administration",
		RequireAuth:  true,
		RequireAdmin: true,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, cbManager *middleware.CircuitBreakerManager) {
	// Create reverse proxy
	reverseProxy := proxy.NewReverseProxy(cfg)

	// Create health checker
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream checks)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe (for Kubernetes)
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness probe (checks downstream services)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)

		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(healthStatus)
	})

	// Detailed service health checks
	app.Get("/health/services", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)
		return c.JSON(healthStatus)
	})

	// Gateway internals (load balancer and circuit breaker state)
	app.Get("/gateway/stats", func(c *fiber.Ctx) error {
		lbStats := make(map[string]interface{})
		for name, lb := range reverseProxy.GetLoadBalancers() {
			lbStats[name] = lb.GetStats()
		}

		return c.JSON(fiber.Map{
			"load_balancers":   lbStats,
			"circuit_breakers": cbManager.GetAllStats(),
		})
	})

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Marketplace API Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	// Register all service routes
	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	// Apply middleware based on route requirements
	var middlewares []fiber.Handler

	if route.RequireAdmin {
		// Admin routes need both auth and admin check
		middlewares = append(middlewares, middleware.AuthMiddleware(), middleware.AdminMiddleware())
	} else if route.RequireAuth {
		middlewares = append(middlewares, middleware.AuthMiddleware())
	}
	// Public routes have no middleware

	// Create a route group for this service
	group := app.Group(route.Prefix, middlewares...)

	// Handle all HTTP methods with wildcard path
	group.All("/*", handler)

	// Also handle the exact prefix path (without /*)
	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}
