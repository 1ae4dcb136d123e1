//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/farmgate/marketplace/internal/user/delivery/http"
	"github.com/farmgate/marketplace/internal/user/domain"
	"github.com/farmgate/marketplace/internal/user/repository"
)

// ProvideUserRepository provides the user repository with tracing
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepositoryWithTracing(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

// InitializeUserHandler initializes the HTTP handler with all dependencies
func InitializeUserHandler(db *gorm.DB) (*http.UserHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewUserHandler,
	)
	return nil, nil
}
