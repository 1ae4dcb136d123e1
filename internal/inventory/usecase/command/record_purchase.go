package command

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/farmgate/marketplace/internal/inventory/domain"
)

// RecordPurchaseCommand represents an admin purchase from a farmer
type RecordPurchaseCommand struct {
	SourceFarmerID    uint
	ProduceName       string
	Quantity          int
	PurchasePrice     decimal.Decimal
	WarehouseLocation string
}

// RecordPurchaseHandler handles the record purchase command
type RecordPurchaseHandler struct {
	repo domain.StockRepository
}

// NewRecordPurchaseHandler creates a new record purchase handler
func NewRecordPurchaseHandler(repo domain.StockRepository) *RecordPurchaseHandler {
	return &RecordPurchaseHandler{repo: repo}
}

// Handle executes the record purchase command
func (h *RecordPurchaseHandler) Handle(cmd RecordPurchaseCommand) (*domain.StockRecord, error) {
	record, err := domain.NewStockRecord(
		cmd.SourceFarmerID,
		cmd.ProduceName,
		cmd.Quantity,
		cmd.PurchasePrice,
		cmd.WarehouseLocation,
	)
	if err != nil {
		return nil, err
	}

	if err := h.repo.Create(record); err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	return record, nil
}
