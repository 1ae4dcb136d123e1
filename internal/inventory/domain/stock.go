package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stock statuses. A record is never deleted; archived is terminal.
const (
	StatusInStock    = "in_stock"
	StatusLowStock   = "low_stock"
	StatusOutOfStock = "out_of_stock"
	StatusListed     = "listed"
	StatusArchived   = "archived"
)

// StockRecord tracks a batch purchased from a farmer as it moves from the
// warehouse into marketplace listings and through sales. The quantity
// fields conserve the batch: what is not available is either committed to
// listings or already sold.
type StockRecord struct {
	ID                uint                `json:"id" gorm:"primaryKey"`
	SourceFarmerID    uint                `json:"source_farmer_id" gorm:"not null;index"`
	ProduceName       string              `json:"produce_name" gorm:"not null"`
	TotalQuantity     int                 `json:"total_quantity" gorm:"not null"`
	AvailableQuantity int                 `json:"available_quantity" gorm:"not null"`
	SoldQuantity      int                 `json:"sold_quantity" gorm:"not null;default:0"`
	PurchasePrice     decimal.Decimal     `json:"purchase_price" gorm:"type:numeric(12,2);not null"`
	SellingPrice      decimal.NullDecimal `json:"selling_price" gorm:"type:numeric(12,2)"`
	Status            string              `json:"status" gorm:"not null;default:'in_stock';index"`
	WarehouseLocation string              `json:"warehouse_location"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
	DeletedAt         gorm.DeletedAt      `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (StockRecord) TableName() string {
	return "stock_records"
}

// Listing is a sub-quantity of a stock record offered on the marketplace at
// a set price. Its quantity was drawn from the parent record's available
// quantity at creation time and never exceeds it.
type Listing struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	StockRecordID uint            `json:"stock_record_id" gorm:"not null;index"`
	Reference     string          `json:"reference" gorm:"uniqueIndex;not null"`
	SellingPrice  decimal.Decimal `json:"selling_price" gorm:"type:numeric(12,2);not null"`
	Quantity      int             `json:"quantity" gorm:"not null"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TableName specifies the table name
func (Listing) TableName() string {
	return "listings"
}

// NewStockRecord records an admin purchase from a farmer. The whole batch
// starts available and unsold.
func NewStockRecord(farmerID uint, produceName string, quantity int, purchasePrice decimal.Decimal, warehouse string) (*StockRecord, error) {
	if farmerID == 0 {
		return nil, &ValidationError{Op: "record_purchase", Field: "source_farmer_id", Reason: "is required"}
	}
	if produceName == "" {
		return nil, &ValidationError{Op: "record_purchase", Field: "produce_name", Reason: "is required"}
	}
	if quantity <= 0 {
		return nil, &ValidationError{Op: "record_purchase", Field: "quantity", Reason: "must be greater than 0"}
	}
	if purchasePrice.IsNegative() {
		return nil, &ValidationError{Op: "record_purchase", Field: "purchase_price", Reason: "cannot be negative"}
	}

	return &StockRecord{
		SourceFarmerID:    farmerID,
		ProduceName:       produceName,
		TotalQuantity:     quantity,
		AvailableQuantity: quantity,
		SoldQuantity:      0,
		PurchasePrice:     purchasePrice,
		Status:            StatusInStock,
		WarehouseLocation: warehouse,
	}, nil
}

// ListedQuantity is the part of the batch committed to listings but not yet
// sold. It is derived, not stored: total = available + listed + sold.
func (r *StockRecord) ListedQuantity() int {
	return r.TotalQuantity - r.AvailableQuantity - r.SoldQuantity
}

// List commits a sub-quantity of the record to a new marketplace listing.
// The selling price is taken as given: reselling below the purchase price
// is permitted. The status assignment is skipped for archived records,
// which never transition again.
func (r *StockRecord) List(quantity int, sellingPrice decimal.Decimal, reference string, threshold int) (*Listing, error) {
	if quantity <= 0 {
		return nil, &ValidationError{Op: "list_in_marketplace", Field: "quantity", Reason: "must be greater than 0"}
	}
	if sellingPrice.IsNegative() {
		return nil, &ValidationError{Op: "list_in_marketplace", Field: "selling_price", Reason: "cannot be negative"}
	}
	if quantity > r.AvailableQuantity {
		return nil, &InsufficientStockError{
			RecordID:  r.ID,
			Requested: quantity,
			Available: r.AvailableQuantity,
		}
	}

	r.AvailableQuantity -= quantity
	r.SellingPrice = decimal.NewNullDecimal(sellingPrice)
	r.RefreshStatus(threshold)

	return &Listing{
		StockRecordID: r.ID,
		Reference:     reference,
		SellingPrice:  sellingPrice,
		Quantity:      quantity,
	}, nil
}

// RecordSale counts units sold out of previously listed quantity. Available
// quantity is untouched here: it was already decremented when the listing
// was created. Sales are not re-validated against listing totals.
func (r *StockRecord) RecordSale(quantity int, threshold int) error {
	if quantity <= 0 {
		return &ValidationError{Op: "record_sale", Field: "quantity", Reason: "must be greater than 0"}
	}

	r.SoldQuantity += quantity
	r.RefreshStatus(threshold)
	return nil
}

// Archive marks the record terminal. Archiving an archived record is a
// no-op, not an error.
func (r *StockRecord) Archive() {
	r.Status = StatusArchived
}

// RefreshStatus rederives the status from the quantities. The low-stock
// threshold comes from configuration, not from this package. Archived
// records keep their status unconditionally.
func (r *StockRecord) RefreshStatus(threshold int) {
	if r.Status == StatusArchived {
		return
	}

	switch {
	case r.AvailableQuantity == 0:
		r.Status = StatusOutOfStock
	case r.ListedQuantity() > 0 || r.SoldQuantity > 0:
		r.Status = StatusListed
	case threshold > 0 && r.AvailableQuantity < threshold:
		r.Status = StatusLowStock
	default:
		r.Status = StatusInStock
	}
}

// StockRepository defines the contract for stock data access
type StockRepository interface {
	Create(record *StockRecord) error
	FindByID(id uint) (*StockRecord, error)
	FindAll(limit, offset int) ([]StockRecord, error)
	FindByStatus(status string, limit, offset int) ([]StockRecord, error)
	Count() (int64, error)

	FindListingByID(id uint) (*Listing, error)
	FindListingByReference(reference string) (*Listing, error)
	FindListings(recordID uint) ([]Listing, error)

	// UpdateWithLock loads the record under a row-level lock, applies the
	// mutation and persists the record (and the returned listing, if any)
	// in one transaction. Two concurrent listings against the same record
	// cannot both read the same available quantity.
	UpdateWithLock(id uint, apply func(*StockRecord) (*Listing, error)) (*StockRecord, *Listing, error)
}
