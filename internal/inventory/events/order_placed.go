package events

import (
	"context"
	"errors"

	"github.com/farmgate/marketplace/internal/inventory/domain"
	"github.com/farmgate/marketplace/internal/inventory/usecase/command"
	"github.com/farmgate/marketplace/kafka"
	"github.com/farmgate/marketplace/pkg/logger"
)

// OrderPlacedHandler returns an event handler that records a sale against
// the stock record referenced by a placed order.
func OrderPlacedHandler(saleHandler *command.RecordSaleHandler) kafka.EventHandler {
	return func(ctx context.Context, event kafka.OrderPlacedEvent) error {
		cmd := command.RecordSaleCommand{
			StockRecordID: event.StockRecordID,
			Quantity:      event.Quantity,
		}

		record, err := saleHandler.Handle(cmd)
		if err != nil {
			// Malformed events are logged and dropped so the consumer
			// group does not re-deliver them forever.
			var validationErr *domain.ValidationError
			if errors.As(err, &validationErr) {
				logger.WithContext(ctx).Error().
					Err(err).
					Str("event_id", event.EventID).
					Uint("stock_record_id", event.StockRecordID).
					Msg("Dropping order event with invalid sale data")
				return nil
			}
			return err
		}

		logger.WithContext(ctx).Info().
			Str("event_id", event.EventID).
			Uint("order_id", event.OrderID).
			Uint("stock_record_id", record.ID).
			Int("quantity", event.Quantity).
			Int("sold_total", record.SoldQuantity).
			Msg("Sale recorded from order event")
		return nil
	}
}
