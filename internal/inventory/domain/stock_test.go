package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/farmgate/marketplace/internal/inventory/domain"
)

const lowStockThreshold = 10

func newRecord(t *testing.T, quantity int) *domain.StockRecord {
	t.Helper()
	rec, err := domain.NewStockRecord(1, "Tomatoes", quantity, decimal.NewFromInt(10), "warehouse-a")
	if err != nil {
		t.Fatalf("NewStockRecord: %v", err)
	}
	rec.ID = 42
	return rec
}

func TestNewStockRecord(t *testing.T) {
	rec := newRecord(t, 100)

	if rec.TotalQuantity != 100 || rec.AvailableQuantity != 100 || rec.SoldQuantity != 0 {
		t.Errorf("new record quantities = %d/%d/%d, want 100/100/0",
			rec.TotalQuantity, rec.AvailableQuantity, rec.SoldQuantity)
	}
	if rec.Status != domain.StatusInStock {
		t.Errorf("status = %s, want %s", rec.Status, domain.StatusInStock)
	}
	if rec.SellingPrice.Valid {
		t.Error("selling price should be unset until the record is listed")
	}
}

func TestNewStockRecord_Validation(t *testing.T) {
	tests := []struct {
		name     string
		farmerID uint
		produce  string
		quantity int
		price    decimal.Decimal
	}{
		{"zero quantity", 1, "Tomatoes", 0, decimal.NewFromInt(10)},
		{"negative quantity", 1, "Tomatoes", -5, decimal.NewFromInt(10)},
		{"negative price", 1, "Tomatoes", 10, decimal.NewFromInt(-1)},
		{"missing farmer", 0, "Tomatoes", 10, decimal.NewFromInt(10)},
		{"missing produce name", 1, "", 10, decimal.NewFromInt(10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewStockRecord(tt.farmerID, tt.produce, tt.quantity, tt.price, "")
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestStockRecord_List(t *testing.T) {
	rec := newRecord(t, 100)

	listing, err := rec.List(40, decimal.NewFromInt(15), "LST-1", lowStockThreshold)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if rec.AvailableQuantity != 60 {
		t.Errorf("available = %d, want 60", rec.AvailableQuantity)
	}
	if listing.Quantity != 40 || listing.StockRecordID != rec.ID {
		t.Errorf("listing = %+v, want quantity 40 on record %d", listing, rec.ID)
	}
	if rec.Status != domain.StatusListed {
		t.Errorf("status = %s, want %s", rec.Status, domain.StatusListed)
	}
	if !rec.SellingPrice.Valid || !rec.SellingPrice.Decimal.Equal(decimal.NewFromInt(15)) {
		t.Errorf("selling price = %v, want 15", rec.SellingPrice)
	}
	if rec.ListedQuantity() != 40 {
		t.Errorf("listed quantity = %d, want 40", rec.ListedQuantity())
	}
}

func TestStockRecord_List_InsufficientStock(t *testing.T) {
	rec := newRecord(t, 100)

	_, err := rec.List(101, decimal.NewFromInt(15), "LST-1", lowStockThreshold)
	var stockErr *domain.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Requested != 101 || stockErr.Available != 100 {
		t.Errorf("error detail = %+v, want requested 101, available 100", stockErr)
	}
	if rec.AvailableQuantity != 100 {
		t.Errorf("failed listing must not mutate the record, available = %d", rec.AvailableQuantity)
	}
}

func TestStockRecord_List_BelowCostIsAllowed(t *testing.T) {
	rec := newRecord(t, 100)

	// Purchase price is 10; reselling at 5 is permitted, not an error.
	if _, err := rec.List(10, decimal.NewFromInt(5), "LST-1", lowStockThreshold); err != nil {
		t.Errorf("listing below cost should succeed, got %v", err)
	}
}

func TestStockRecord_RecordSale_LeavesAvailableUntouched(t *testing.T) {
	rec := newRecord(t, 100)
	if _, err := rec.List(40, decimal.NewFromInt(15), "LST-1", lowStockThreshold); err != nil {
		t.Fatalf("List: %v", err)
	}

	if err := rec.RecordSale(5, lowStockThreshold); err != nil {
		t.Fatalf("RecordSale: %v", err)
	}

	if rec.AvailableQuantity != 60 {
		t.Errorf("available = %d, want 60 (sale must not touch availability)", rec.AvailableQuantity)
	}
	if rec.SoldQuantity != 5 {
		t.Errorf("sold = %d, want 5", rec.SoldQuantity)
	}
	if rec.ListedQuantity() != 35 {
		t.Errorf("listed quantity = %d, want 35", rec.ListedQuantity())
	}
}

func TestStockRecord_RecordSale_Validation(t *testing.T) {
	rec := newRecord(t, 100)
	var verr *domain.ValidationError
	if err := rec.RecordSale(0, lowStockThreshold); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for zero quantity, got %v", err)
	}
	if err := rec.RecordSale(-3, lowStockThreshold); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for negative quantity, got %v", err)
	}
}

func TestStockRecord_Archive_Idempotent(t *testing.T) {
	rec := newRecord(t, 100)

	rec.Archive()
	if rec.Status != domain.StatusArchived {
		t.Fatalf("status = %s, want %s", rec.Status, domain.StatusArchived)
	}

	rec.Archive()
	if rec.Status != domain.StatusArchived {
		t.Errorf("second archive changed status to %s", rec.Status)
	}
}

func TestStockRecord_Archive_IsTerminal(t *testing.T) {
	rec := newRecord(t, 100)
	rec.Archive()

	// A later status refresh must not resurrect the record.
	rec.RefreshStatus(lowStockThreshold)
	if rec.Status != domain.StatusArchived {
		t.Errorf("refresh transitioned archived record to %s", rec.Status)
	}
}

func TestStockRecord_RefreshStatus(t *testing.T) {
	tests := []struct {
		name      string
		available int
		sold      int
		total     int
		want      string
	}{
		{"full batch in stock", 100, 0, 100, domain.StatusInStock},
		{"below threshold", 5, 0, 5, domain.StatusLowStock},
		{"partly listed", 60, 0, 100, domain.StatusListed},
		{"listed and partly sold", 60, 5, 100, domain.StatusListed},
		{"fully committed", 0, 10, 100, domain.StatusOutOfStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecord(t, tt.total)
			rec.TotalQuantity = tt.total
			rec.AvailableQuantity = tt.available
			rec.SoldQuantity = tt.sold

			rec.RefreshStatus(lowStockThreshold)
			if rec.Status != tt.want {
				t.Errorf("status = %s, want %s", rec.Status, tt.want)
			}
		})
	}
}
