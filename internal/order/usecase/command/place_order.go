package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmgate/marketplace/internal/order/client"
	"github.com/farmgate/marketplace/internal/order/domain"
	"github.com/farmgate/marketplace/kafka"
	"github.com/farmgate/marketplace/pkg/logger"
)

// ListingFetcher fetches marketplace listings from the inventory service.
type ListingFetcher interface {
	GetListing(ctx context.Context, listingID uint) (*client.Listing, error)
}

// BuyerFetcher fetches buyer profiles from the user service.
type BuyerFetcher interface {
	GetUser(ctx context.Context, userID uint) (*client.UserProfile, error)
}

// EventPublisher publishes order events to the message bus.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event kafka.OrderPlacedEvent) error
}

// PlaceOrderCommand represents a buyer ordering against a listing
type PlaceOrderCommand struct {
	BuyerID      uint
	ListingID    uint
	Quantity     int
	DeliveryNote string
}

// PlaceOrderHandler handles order placement
type PlaceOrderHandler struct {
	repo      domain.OrderRepository
	listings  ListingFetcher
	buyers    BuyerFetcher
	publisher EventPublisher
}

// NewPlaceOrderHandler creates a new handler
func NewPlaceOrderHandler(repo domain.OrderRepository, listings ListingFetcher, buyers BuyerFetcher, publisher EventPublisher) *PlaceOrderHandler {
	return &PlaceOrderHandler{
		repo:      repo,
		listings:  listings,
		buyers:    buyers,
		publisher: publisher,
	}
}

// Handle executes the command
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error) {
	if cmd.BuyerID == 0 {
		return nil, fmt.Errorf("buyer id is required")
	}
	if cmd.ListingID == 0 {
		return nil, fmt.Errorf("listing id is required")
	}
	if cmd.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be greater than 0")
	}

	buyer, err := h.buyers.GetUser(ctx, cmd.BuyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify buyer: %w", err)
	}
	if !buyer.IsActive {
		return nil, fmt.Errorf("buyer account is deactivated")
	}

	listing, err := h.listings.GetListing(ctx, cmd.ListingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}
	if cmd.Quantity > listing.Quantity {
		return nil, fmt.Errorf("requested quantity %d exceeds listed quantity %d", cmd.Quantity, listing.Quantity)
	}

	total := listing.SellingPrice.Mul(decimal.NewFromInt(int64(cmd.Quantity)))

	order := &domain.Order{
		OrderCode:     fmt.Sprintf("ORD-%s", uuid.New().String()[:8]),
		BuyerID:       cmd.BuyerID,
		ListingID:     listing.ID,
		StockRecordID: listing.StockRecordID,
		ListingRef:    listing.Reference,
		Quantity:      cmd.Quantity,
		UnitPrice:     listing.SellingPrice,
		TotalAmount:   total,
		Status:        domain.StatusPending,
		DeliveryNote:  cmd.DeliveryNote,
	}

	if err := h.repo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	event := kafka.OrderPlacedEvent{
		OrderID:       order.ID,
		OrderCode:     order.OrderCode,
		ListingID:     order.ListingID,
		StockRecordID: order.StockRecordID,
		Quantity:      order.Quantity,
		BuyerID:       order.BuyerID,
		TotalAmount:   order.TotalAmount.String(),
	}

	// The order stands even when the bus is down; the sale is recorded
	// on redelivery or by reconciliation.
	if err := h.publisher.PublishOrderPlaced(ctx, event); err != nil {
		logger.WithContext(ctx).Error().
			Err(err).
			Str("order_code", order.OrderCode).
			Msg("Failed to publish order placed event")
	}

	return order, nil
}
