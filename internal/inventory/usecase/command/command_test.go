package command_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/farmgate/marketplace/internal/inventory/domain"
	"github.com/farmgate/marketplace/internal/inventory/usecase/command"
)

const threshold = 10

// fakeStockRepo is an in-memory StockRepository for handler tests.
type fakeStockRepo struct {
	nextID   uint
	records  map[uint]*domain.StockRecord
	listings []domain.Listing
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{nextID: 1, records: map[uint]*domain.StockRecord{}}
}

func (f *fakeStockRepo) Create(record *domain.StockRecord) error {
	record.ID = f.nextID
	f.nextID++
	cp := *record
	f.records[record.ID] = &cp
	return nil
}

func (f *fakeStockRepo) FindByID(id uint) (*domain.StockRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, fmt.Errorf("record %d not found", id)
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeStockRepo) FindAll(limit, offset int) ([]domain.StockRecord, error) {
	var out []domain.StockRecord
	for _, rec := range f.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (f *fakeStockRepo) FindByStatus(status string, limit, offset int) ([]domain.StockRecord, error) {
	var out []domain.StockRecord
	for _, rec := range f.records {
		if rec.Status == status {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) Count() (int64, error) { return int64(len(f.records)), nil }

func (f *fakeStockRepo) FindListingByID(id uint) (*domain.Listing, error) {
	for _, l := range f.listings {
		if l.ID == id {
			cp := l
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("listing %d not found", id)
}

func (f *fakeStockRepo) FindListingByReference(reference string) (*domain.Listing, error) {
	for _, l := range f.listings {
		if l.Reference == reference {
			cp := l
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("listing %s not found", reference)
}

func (f *fakeStockRepo) FindListings(recordID uint) ([]domain.Listing, error) {
	var out []domain.Listing
	for _, l := range f.listings {
		if l.StockRecordID == recordID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) UpdateWithLock(id uint, apply func(*domain.StockRecord) (*domain.Listing, error)) (*domain.StockRecord, *domain.Listing, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, nil, fmt.Errorf("record %d not found", id)
	}

	work := *rec
	listing, err := apply(&work)
	if err != nil {
		return nil, nil, err
	}

	*rec = work
	if listing != nil {
		listing.ID = uint(len(f.listings) + 1)
		f.listings = append(f.listings, *listing)
	}

	cp := work
	return &cp, listing, nil
}

func recordPurchase(t *testing.T, repo *fakeStockRepo, quantity int) *domain.StockRecord {
	t.Helper()
	handler := command.NewRecordPurchaseHandler(repo)
	rec, err := handler.Handle(command.RecordPurchaseCommand{
		SourceFarmerID: 7,
		ProduceName:    "Alphonso Mangoes",
		Quantity:       quantity,
		PurchasePrice:  decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("RecordPurchase: %v", err)
	}
	return rec
}

func TestRecordPurchase(t *testing.T) {
	repo := newFakeStockRepo()
	rec := recordPurchase(t, repo, 100)

	if rec.TotalQuantity != 100 || rec.AvailableQuantity != 100 || rec.SoldQuantity != 0 {
		t.Errorf("quantities = %d/%d/%d, want 100/100/0",
			rec.TotalQuantity, rec.AvailableQuantity, rec.SoldQuantity)
	}
	if rec.Status != domain.StatusInStock {
		t.Errorf("status = %s, want %s", rec.Status, domain.StatusInStock)
	}
}

func TestRecordPurchase_RejectsInvalidInput(t *testing.T) {
	repo := newFakeStockRepo()
	handler := command.NewRecordPurchaseHandler(repo)

	_, err := handler.Handle(command.RecordPurchaseCommand{
		SourceFarmerID: 7,
		ProduceName:    "Alphonso Mangoes",
		Quantity:       -1,
		PurchasePrice:  decimal.NewFromInt(10),
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
	if len(repo.records) != 0 {
		t.Error("failed purchase must not persist a record")
	}
}

func TestListInMarketplace(t *testing.T) {
	repo := newFakeStockRepo()
	rec := recordPurchase(t, repo, 100)

	handler := command.NewListInMarketplaceHandler(repo, threshold)
	updated, listing, err := handler.Handle(command.ListInMarketplaceCommand{
		StockRecordID: rec.ID,
		Quantity:      40,
		SellingPrice:  decimal.NewFromInt(15),
	})
	if err != nil {
		t.Fatalf("ListInMarketplace: %v", err)
	}

	if updated.AvailableQuantity != 60 {
		t.Errorf("available = %d, want 60", updated.AvailableQuantity)
	}
	if updated.Status != domain.StatusListed {
		t.Errorf("status = %s, want %s", updated.Status, domain.StatusListed)
	}
	if listing == nil || listing.Quantity != 40 {
		t.Fatalf("listing = %+v, want quantity 40", listing)
	}
	if listing.Reference == "" {
		t.Error("listing must carry a reference code")
	}

	persisted, err := repo.FindListings(rec.ID)
	if err != nil || len(persisted) != 1 {
		t.Errorf("expected 1 persisted listing, got %d (%v)", len(persisted), err)
	}
}

func TestListInMarketplace_InsufficientStock(t *testing.T) {
	repo := newFakeStockRepo()
	rec := recordPurchase(t, repo, 100)

	handler := command.NewListInMarketplaceHandler(repo, threshold)
	_, _, err := handler.Handle(command.ListInMarketplaceCommand{
		StockRecordID: rec.ID,
		Quantity:      101,
		SellingPrice:  decimal.NewFromInt(15),
	})

	var stockErr *domain.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}

	unchanged, _ := repo.FindByID(rec.ID)
	if unchanged.AvailableQuantity != 100 {
		t.Errorf("failed listing mutated the record: available = %d", unchanged.AvailableQuantity)
	}
}

func TestRecordSale_AfterListing(t *testing.T) {
	repo := newFakeStockRepo()
	rec := recordPurchase(t, repo, 100)

	listHandler := command.NewListInMarketplaceHandler(repo, threshold)
	if _, _, err := listHandler.Handle(command.ListInMarketplaceCommand{
		StockRecordID: rec.ID,
		Quantity:      40,
		SellingPrice:  decimal.NewFromInt(15),
	}); err != nil {
		t.Fatalf("ListInMarketplace: %v", err)
	}

	saleHandler := command.NewRecordSaleHandler(repo, threshold)
	updated, err := saleHandler.Handle(command.RecordSaleCommand{StockRecordID: rec.ID, Quantity: 5})
	if err != nil {
		t.Fatalf("RecordSale: %v", err)
	}

	if updated.AvailableQuantity != 60 {
		t.Errorf("sale must leave available untouched, got %d", updated.AvailableQuantity)
	}
	if updated.SoldQuantity != 5 {
		t.Errorf("sold = %d, want 5", updated.SoldQuantity)
	}
}

func TestArchive_Idempotent(t *testing.T) {
	repo := newFakeStockRepo()
	rec := recordPurchase(t, repo, 100)

	handler := command.NewArchiveStockHandler(repo)
	for i := 0; i < 2; i++ {
		updated, err := handler.Handle(command.ArchiveStockCommand{StockRecordID: rec.ID})
		if err != nil {
			t.Fatalf("Archive attempt %d: %v", i+1, err)
		}
		if updated.Status != domain.StatusArchived {
			t.Errorf("attempt %d: status = %s, want %s", i+1, updated.Status, domain.StatusArchived)
		}
	}
}

func TestArchive_BlocksStatusTransitions(t *testing.T) {
	repo := newFakeStockRepo()
	rec := recordPurchase(t, repo, 100)

	archive := command.NewArchiveStockHandler(repo)
	if _, err := archive.Handle(command.ArchiveStockCommand{StockRecordID: rec.ID}); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	// Listing from an archived record still moves quantity but must not
	// resurrect the status.
	list := command.NewListInMarketplaceHandler(repo, threshold)
	updated, _, err := list.Handle(command.ListInMarketplaceCommand{
		StockRecordID: rec.ID,
		Quantity:      10,
		SellingPrice:  decimal.NewFromInt(15),
	})
	if err != nil {
		t.Fatalf("ListInMarketplace: %v", err)
	}
	if updated.Status != domain.StatusArchived {
		t.Errorf("archived record transitioned to %s", updated.Status)
	}
}
