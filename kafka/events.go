package kafka

import "time"

// OrderPlacedEvent is emitted by the order service when a buyer places an
// order against a marketplace listing. The inventory service consumes it
// to record the sale on the backing stock record.
type OrderPlacedEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	OrderID       uint      `json:"order_id"`
	OrderCode     string    `json:"order_code"`
	ListingID     uint      `json:"listing_id"`
	StockRecordID uint      `json:"stock_record_id"`
	Quantity      int       `json:"quantity"`
	BuyerID       uint      `json:"buyer_id"`
	TotalAmount   string    `json:"total_amount"`
	Timestamp     time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderPlaced = "order.placed"
)

// Kafka topics
const (
	TopicOrderPlaced = "order-placed"
)
