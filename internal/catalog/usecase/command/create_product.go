package command

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmgate/marketplace/internal/catalog/domain"
	"github.com/farmgate/marketplace/pkg/geo"
)

// CreateProductCommand represents the intent to list new produce
type CreateProductCommand struct {
	FarmerID      uint
	Name          string
	Description   string
	Category      string
	Perishability geo.Perishability
	Price         decimal.Decimal
	Quantity      int
	Unit          string
	HarvestedAt   time.Time
	Latitude      *float64
	Longitude     *float64
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.FarmerID == 0 {
		return nil, fmt.Errorf("farmer id is required")
	}
	if cmd.Price.IsNegative() || cmd.Price.IsZero() {
		return nil, fmt.Errorf("price must be greater than zero")
	}
	if cmd.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}
	if cmd.HarvestedAt.IsZero() {
		return nil, fmt.Errorf("harvest date is required")
	}
	if cmd.HarvestedAt.After(time.Now()) {
		return nil, fmt.Errorf("harvest date cannot be in the future")
	}

	perishability := cmd.Perishability
	if perishability == "" {
		perishability = domain.DefaultPerishability(cmd.Category)
	}
	if !domain.ValidPerishability(perishability) {
		return nil, fmt.Errorf("invalid perishability: %s", perishability)
	}

	if (cmd.Latitude == nil) != (cmd.Longitude == nil) {
		return nil, fmt.Errorf("latitude and longitude must be set together")
	}
	if cmd.Latitude != nil {
		point := geo.Point{Latitude: *cmd.Latitude, Longitude: *cmd.Longitude}
		if err := point.Validate(); err != nil {
			return nil, err
		}
	}

	unit := cmd.Unit
	if unit == "" {
		unit = "kg"
	}

	product := &domain.Product{
		FarmerID:      cmd.FarmerID,
		Name:          cmd.Name,
		Description:   cmd.Description,
		Category:      cmd.Category,
		Perishability: perishability,
		Price:         cmd.Price,
		Quantity:      cmd.Quantity,
		Unit:          unit,
		HarvestedAt:   cmd.HarvestedAt,
		Latitude:      cmd.Latitude,
		Longitude:     cmd.Longitude,
		IsActive:      true,
	}

	if err := h.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
