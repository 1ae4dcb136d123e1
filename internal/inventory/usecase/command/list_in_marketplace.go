package command

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmgate/marketplace/internal/inventory/domain"
)

// ListInMarketplaceCommand offers a sub-quantity of a stock record for sale
type ListInMarketplaceCommand struct {
	StockRecordID uint
	Quantity      int
	SellingPrice  decimal.Decimal
}

// ListInMarketplaceHandler handles the listing command
type ListInMarketplaceHandler struct {
	repo              domain.StockRepository
	lowStockThreshold int
}

// NewListInMarketplaceHandler creates a new listing handler. The low-stock
// threshold is deployment configuration.
func NewListInMarketplaceHandler(repo domain.StockRepository, lowStockThreshold int) *ListInMarketplaceHandler {
	return &ListInMarketplaceHandler{repo: repo, lowStockThreshold: lowStockThreshold}
}

// Handle executes the listing command under a per-record lock.
func (h *ListInMarketplaceHandler) Handle(cmd ListInMarketplaceCommand) (*domain.StockRecord, *domain.Listing, error) {
	if cmd.StockRecordID == 0 {
		return nil, nil, &domain.ValidationError{Op: "list_in_marketplace", Field: "stock_record_id", Reason: "is required"}
	}

	reference := fmt.Sprintf("LST-%s", uuid.New().String()[:8])

	record, listing, err := h.repo.UpdateWithLock(cmd.StockRecordID, func(rec *domain.StockRecord) (*domain.Listing, error) {
		return rec.List(cmd.Quantity, cmd.SellingPrice, reference, h.lowStockThreshold)
	})
	if err != nil {
		return nil, nil, err
	}

	return record, listing, nil
}
