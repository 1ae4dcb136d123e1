//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/farmgate/marketplace/internal/inventory/delivery/http"
	"github.com/farmgate/marketplace/internal/inventory/domain"
	"github.com/farmgate/marketplace/internal/inventory/repository"
)

// ProvideStockRepository provides the stock repository with tracing
func ProvideStockRepository(db *gorm.DB) domain.StockRepository {
	return repository.NewGormStockRepositoryWithTracing(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideStockRepository,
)

// InitializeStockHandler initializes the HTTP handler with all dependencies
func InitializeStockHandler(db *gorm.DB, lowStockThreshold int) (*http.StockHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewStockHandler,
	)
	return nil, nil
}
