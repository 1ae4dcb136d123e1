package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/farmgate/marketplace/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// GormStockRepositoryWithTracing wraps GormStockRepository with tracing
type GormStockRepositoryWithTracing struct {
	*GormStockRepository
}

// NewGormStockRepositoryWithTracing creates a new repository with tracing
func NewGormStockRepositoryWithTracing(db *gorm.DB) *GormStockRepositoryWithTracing {
	return &GormStockRepositoryWithTracing{
		GormStockRepository: NewGormStockRepository(db),
	}
}

// CreateWithContext records a purchase with tracing
func (r *GormStockRepositoryWithTracing) CreateWithContext(ctx context.Context, record *domain.StockRecord) error {
	_, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.Int("stock.source_farmer_id", int(record.SourceFarmerID)),
			attribute.String("stock.produce_name", record.ProduceName),
			attribute.Int("stock.total_quantity", record.TotalQuantity),
		),
	)
	defer span.End()

	err := r.GormStockRepository.Create(record)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("stock.id", int(record.ID)))
	return nil
}

// FindByIDWithContext loads a record with tracing
func (r *GormStockRepositoryWithTracing) FindByIDWithContext(ctx context.Context, id uint) (*domain.StockRecord, error) {
	_, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.Int("stock.id", int(id))),
	)
	defer span.End()

	record, err := r.GormStockRepository.FindByID(id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("stock.available_quantity", record.AvailableQuantity),
		attribute.String("stock.status", record.Status),
	)
	return record, nil
}

// UpdateWithLockWithContext applies a locked mutation with tracing
func (r *GormStockRepositoryWithTracing) UpdateWithLockWithContext(ctx context.Context, id uint, apply func(*domain.StockRecord) (*domain.Listing, error)) (*domain.StockRecord, *domain.Listing, error) {
	_, span := tracer.Start(ctx, "repository.UpdateWithLock",
		trace.WithAttributes(attribute.Int("stock.id", int(id))),
	)
	defer span.End()

	record, listing, err := r.GormStockRepository.UpdateWithLock(id, apply)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}

	span.SetAttributes(
		attribute.Int("stock.available_quantity", record.AvailableQuantity),
		attribute.Int("stock.sold_quantity", record.SoldQuantity),
		attribute.String("stock.status", record.Status),
	)
	if listing != nil {
		span.SetAttributes(attribute.Int("listing.quantity", listing.Quantity))
	}
	return record, listing, nil
}
