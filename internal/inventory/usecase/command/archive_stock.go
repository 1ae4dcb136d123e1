package command

import (
	"github.com/farmgate/marketplace/internal/inventory/domain"
)

// ArchiveStockCommand retires a stock record
type ArchiveStockCommand struct {
	StockRecordID uint
}

// ArchiveStockHandler handles the archive command
type ArchiveStockHandler struct {
	repo domain.StockRepository
}

// NewArchiveStockHandler creates a new archive handler
func NewArchiveStockHandler(repo domain.StockRepository) *ArchiveStockHandler {
	return &ArchiveStockHandler{repo: repo}
}

// Handle executes the archive command. Archiving is idempotent: an already
// archived record stays archived and no error is returned.
func (h *ArchiveStockHandler) Handle(cmd ArchiveStockCommand) (*domain.StockRecord, error) {
	if cmd.StockRecordID == 0 {
		return nil, &domain.ValidationError{Op: "archive", Field: "stock_record_id", Reason: "is required"}
	}

	record, _, err := h.repo.UpdateWithLock(cmd.StockRecordID, func(rec *domain.StockRecord) (*domain.Listing, error) {
		rec.Archive()
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}
