package config

import (
	"os"
	"strings"
	"time"
)

// ServiceConfig holds configuration for a backend service
type ServiceConfig struct {
	Name        string
	Instances   []string
	Timeout     time.Duration
	HealthCheck string
}

// GatewayConfig holds the main gateway configuration
type GatewayConfig struct {
	Port     string
	Services map[string]ServiceConfig
}

// LoadConfig loads the gateway configuration
func LoadConfig() *GatewayConfig {
	return &GatewayConfig{
		Port: getEnv("GATEWAY_PORT", "8000"),
		Services: map[string]ServiceConfig{
			"user": {
				Name:        "user-service",
				Instances:   getInstances("USER_SERVICE_URL", "http://localhost:8081"),
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
			"inventory": {
				Name:        "inventory-service",
				Instances:   getInstances("INVENTORY_SERVICE_URL", "http://localhost:8082"),
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
			"catalog": {
				Name:        "catalog-service",
				Instances:   getInstances("CATALOG_SERVICE_URL", "http://localhost:8083"),
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
			"order": {
				Name:        "order-service",
				Instances:   getInstances("ORDER_SERVICE_URL", "http://localhost:8084"),
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
			"advisory": {
				Name:        "advisory-service",
				Instances:   getInstances("ADVISORY_SERVICE_URL", "http://localhost:8085"),
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
		},
	}
}

// getInstances reads a comma-separated list of instance URLs from an env var
func getInstances(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)

	var instances []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			instances = append(instances, strings.TrimSuffix(part, "/"))
		}
	}
	return instances
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
