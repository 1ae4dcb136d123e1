package command

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmgate/marketplace/internal/catalog/domain"
	"github.com/farmgate/marketplace/pkg/geo"
)

// UpdateProductCommand carries the mutable fields of a listing. Nil
// pointers leave the stored value untouched.
type UpdateProductCommand struct {
	ID          uint
	FarmerID    uint
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Quantity    *int
	HarvestedAt *time.Time
	Latitude    *float64
	Longitude   *float64
	IsActive    *bool
}

// UpdateProductHandler handles product updates
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the command
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	product, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if product.FarmerID != cmd.FarmerID {
		return nil, fmt.Errorf("product does not belong to this farmer")
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, fmt.Errorf("product name cannot be empty")
		}
		product.Name = *cmd.Name
	}
	if cmd.Description != nil {
		product.Description = *cmd.Description
	}
	if cmd.Price != nil {
		if cmd.Price.IsNegative() || cmd.Price.IsZero() {
			return nil, fmt.Errorf("price must be greater than zero")
		}
		product.Price = *cmd.Price
	}
	if cmd.Quantity != nil {
		if *cmd.Quantity < 0 {
			return nil, fmt.Errorf("quantity cannot be negative")
		}
		product.Quantity = *cmd.Quantity
	}
	if cmd.HarvestedAt != nil {
		if cmd.HarvestedAt.After(time.Now()) {
			return nil, fmt.Errorf("harvest date cannot be in the future")
		}
		product.HarvestedAt = *cmd.HarvestedAt
	}
	if (cmd.Latitude == nil) != (cmd.Longitude == nil) {
		return nil, fmt.Errorf("latitude and longitude must be set together")
	}
	if cmd.Latitude != nil {
		point := geo.Point{Latitude: *cmd.Latitude, Longitude: *cmd.Longitude}
		if err := point.Validate(); err != nil {
			return nil, err
		}
		product.Latitude = cmd.Latitude
		product.Longitude = cmd.Longitude
	}
	if cmd.IsActive != nil {
		product.IsActive = *cmd.IsActive
	}

	if err := h.repo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}
