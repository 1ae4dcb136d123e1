package command

import (
	"github.com/farmgate/marketplace/internal/inventory/domain"
)

// RecordSaleCommand counts sold units against a stock record
type RecordSaleCommand struct {
	StockRecordID uint
	Quantity      int
}

// RecordSaleHandler handles the record sale command
type RecordSaleHandler struct {
	repo              domain.StockRepository
	lowStockThreshold int
}

// NewRecordSaleHandler creates a new record sale handler
func NewRecordSaleHandler(repo domain.StockRepository, lowStockThreshold int) *RecordSaleHandler {
	return &RecordSaleHandler{repo: repo, lowStockThreshold: lowStockThreshold}
}

// Handle executes the record sale command. Availability is untouched: it
// was committed when the listing was created.
func (h *RecordSaleHandler) Handle(cmd RecordSaleCommand) (*domain.StockRecord, error) {
	if cmd.StockRecordID == 0 {
		return nil, &domain.ValidationError{Op: "record_sale", Field: "stock_record_id", Reason: "is required"}
	}

	record, _, err := h.repo.UpdateWithLock(cmd.StockRecordID, func(rec *domain.StockRecord) (*domain.Listing, error) {
		return nil, rec.RecordSale(cmd.Quantity, h.lowStockThreshold)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}
