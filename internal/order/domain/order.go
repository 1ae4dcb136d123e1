package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Order represents a buyer's purchase against a marketplace listing.
type Order struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	OrderCode      string          `json:"order_code" gorm:"uniqueIndex;not null"`
	BuyerID        uint            `json:"buyer_id" gorm:"not null;index"`
	ListingID      uint            `json:"listing_id" gorm:"not null;index"`
	StockRecordID  uint            `json:"stock_record_id" gorm:"not null"`
	ListingRef     string          `json:"listing_ref"`
	Quantity       int             `json:"quantity" gorm:"not null"`
	UnitPrice      decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2);not null"`
	TotalAmount    decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2);not null"`
	Status         string          `json:"status" gorm:"not null;default:'pending';index"`
	DeliveryNote   string          `json:"delivery_note"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// validTransitions maps a status onto the statuses it may move to.
// Delivered and cancelled are terminal.
var validTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusDelivered, StatusCancelled},
}

// CanTransitionTo reports whether the order may move to the given status.
func (o *Order) CanTransitionTo(status string) bool {
	for _, next := range validTransitions[o.Status] {
		if next == status {
			return true
		}
	}
	return false
}

// ValidStatus reports whether the value is a known order status.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// OrderRepository defines the contract for order data access
type OrderRepository interface {
	Create(order *Order) error
	FindByID(id uint) (*Order, error)
	FindByCode(code string) (*Order, error)
	FindByBuyer(buyerID uint, limit, offset int) ([]Order, error)
	FindAll(limit, offset int, status string) ([]Order, error)
	Update(order *Order) error
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
}
