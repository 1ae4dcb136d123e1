package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/farmgate/marketplace/internal/inventory"
	httpDelivery "github.com/farmgate/marketplace/internal/inventory/delivery/http"
	"github.com/farmgate/marketplace/internal/inventory/domain"
	"github.com/farmgate/marketplace/internal/inventory/events"
	"github.com/farmgate/marketplace/internal/inventory/usecase/command"
	"github.com/farmgate/marketplace/kafka"
	"github.com/farmgate/marketplace/pkg/database"
	"github.com/farmgate/marketplace/pkg/logger"
	"github.com/farmgate/marketplace/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "inventory-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting inventory service")

	// Initialize tracing
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer tracing.Shutdown(context.Background(), tp)

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "inventorydb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := db.AutoMigrate(&domain.StockRecord{}, &domain.Listing{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	lowStockThreshold := getEnvInt("LOW_STOCK_THRESHOLD", 10)

	// Initialize handler with Wire DI
	handler, err := inventory.InitializeStockHandler(db, lowStockThreshold)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	logger.Logger.Info().
		Int("low_stock_threshold", lowStockThreshold).
		Msg("Inventory handler initialized")

	// Start Kafka consumer for order events
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	saleHandler := command.NewRecordSaleHandler(inventory.ProvideStockRepository(db), lowStockThreshold)
	consumer := startOrderConsumer(ctx, saleHandler)
	if consumer != nil {
		defer consumer.Close()
	}

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8082")
	go startHTTPServer(handler, sqlDB, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

// startOrderConsumer subscribes to placed orders and records them as sales.
// A broken Kafka setup is not fatal: the HTTP API keeps serving.
func startOrderConsumer(ctx context.Context, saleHandler *command.RecordSaleHandler) *kafka.Consumer {
	brokers := kafkaBrokers()
	groupID := getEnv("KAFKA_GROUP_ID", "inventory-service")

	consumer, err := kafka.NewConsumer(brokers, groupID, []string{kafka.TopicOrderPlaced})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create Kafka consumer, order events disabled")
		return nil
	}

	consumer.RegisterHandler(kafka.EventTypeOrderPlaced, events.OrderPlacedHandler(saleHandler))

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to start Kafka consumer, order events disabled")
		consumer.Close()
		return nil
	}

	return consumer
}

func startHTTPServer(handler *httpDelivery.StockHandler, db *sql.DB, port string) {
	// Setup router
	router := mux.NewRouter()

	// Register middlewares
	middlewareConfig := httpDelivery.DefaultMiddlewareConfig()
	httpDelivery.RegisterMiddlewares(router, middlewareConfig)

	// Register routes
	handler.RegisterRoutes(router)

	// Health check endpoint
	handler.RegisterHealthCheck(router, db)

	// Swagger documentation
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func kafkaBrokers() []string {
	return strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
}
