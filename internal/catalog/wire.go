//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/farmgate/marketplace/internal/catalog/delivery/http"
	"github.com/farmgate/marketplace/internal/catalog/domain"
	"github.com/farmgate/marketplace/internal/catalog/repository"
)

// ProvideProductRepository provides the product repository with tracing
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepositoryWithTracing(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
)

// InitializeProductHandler initializes the HTTP handler with all dependencies
func InitializeProductHandler(db *gorm.DB) (*http.ProductHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewProductHandler,
	)
	return nil, nil
}
