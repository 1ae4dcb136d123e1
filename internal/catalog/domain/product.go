package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/farmgate/marketplace/pkg/geo"
)

// Product is produce a farmer sells directly in the marketplace.
type Product struct {
	ID            uint              `json:"id" gorm:"primaryKey"`
	FarmerID      uint              `json:"farmer_id" gorm:"not null;index"`
	Name          string            `json:"name" gorm:"not null"`
	Description   string            `json:"description"`
	Category      string            `json:"category" gorm:"index"`
	Perishability geo.Perishability `json:"perishability" gorm:"not null"`
	Price         decimal.Decimal   `json:"price" gorm:"type:numeric(12,2);not null"`
	Quantity      int               `json:"quantity" gorm:"not null;default:0"`
	Unit          string            `json:"unit" gorm:"default:'kg'"`
	HarvestedAt   time.Time         `json:"harvested_at" gorm:"not null"`
	Latitude      *float64          `json:"latitude,omitempty"`
	Longitude     *float64          `json:"longitude,omitempty"`
	IsActive      bool              `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Location returns the farm coordinates, or nil when the farmer has not
// shared them.
func (p *Product) Location() *geo.Point {
	if p.Latitude == nil || p.Longitude == nil {
		return nil
	}
	return &geo.Point{Latitude: *p.Latitude, Longitude: *p.Longitude}
}

// Harvest returns the harvest metadata used for freshness decay.
func (p *Product) Harvest() geo.Harvest {
	return geo.Harvest{HarvestedAt: p.HarvestedAt, Perishability: p.Perishability}
}

// IsAvailable checks if the product can be ordered
func (p *Product) IsAvailable() bool {
	return p.Quantity > 0 && p.IsActive
}

// categoryPerishability maps produce categories onto their shelf-life
// bucket when the farmer does not set one explicitly.
var categoryPerishability = map[string]geo.Perishability{
	"leafy_greens": geo.Perishable,
	"berries":      geo.Perishable,
	"dairy":        geo.Perishable,
	"mushrooms":    geo.Perishable,
	"fruits":       geo.SemiPerishable,
	"vegetables":   geo.SemiPerishable,
	"tubers":       geo.SemiPerishable,
	"grains":       geo.NonPerishable,
	"pulses":       geo.NonPerishable,
	"spices":       geo.NonPerishable,
	"honey":        geo.NonPerishable,
}

// DefaultPerishability returns the shelf-life bucket for a category.
// Unknown categories default to semi-perishable.
func DefaultPerishability(category string) geo.Perishability {
	if p, ok := categoryPerishability[category]; ok {
		return p
	}
	return geo.SemiPerishable
}

// ValidPerishability reports whether the value is a known bucket.
func ValidPerishability(p geo.Perishability) bool {
	return p == geo.Perishable || p == geo.SemiPerishable || p == geo.NonPerishable
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindActive(category string, limit, offset int) ([]Product, error)
	FindByFarmer(farmerID uint, limit, offset int) ([]Product, error)
	Update(product *Product) error
	Delete(id uint) error
	Count() (int64, error)
	CountActive() (int64, error)
}
