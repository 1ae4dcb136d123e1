package command_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/farmgate/marketplace/internal/order/client"
	"github.com/farmgate/marketplace/internal/order/domain"
	"github.com/farmgate/marketplace/internal/order/usecase/command"
	"github.com/farmgate/marketplace/kafka"
)

type fakeOrderRepo struct {
	orders map[uint]*domain.Order
	nextID uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*domain.Order), nextID: 1}
}

func (f *fakeOrderRepo) Create(o *domain.Order) error {
	o.ID = f.nextID
	f.nextID++
	copied := *o
	f.orders[o.ID] = &copied
	return nil
}

func (f *fakeOrderRepo) FindByID(id uint) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOrderRepo) FindByCode(code string) (*domain.Order, error) {
	for _, o := range f.orders {
		if o.OrderCode == code {
			copied := *o
			return &copied, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeOrderRepo) FindByBuyer(buyerID uint, limit, offset int) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.BuyerID == buyerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) FindAll(limit, offset int, status string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if status == "" || o.Status == status {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) Update(o *domain.Order) error {
	if _, ok := f.orders[o.ID]; !ok {
		return errors.New("record not found")
	}
	copied := *o
	f.orders[o.ID] = &copied
	return nil
}

func (f *fakeOrderRepo) Count() (int64, error) { return int64(len(f.orders)), nil }

func (f *fakeOrderRepo) CountByStatus(status string) (int64, error) {
	var n int64
	for _, o := range f.orders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeListings struct {
	listing *client.Listing
	err     error
}

func (f *fakeListings) GetListing(ctx context.Context, id uint) (*client.Listing, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.listing, nil
}

type fakeBuyers struct {
	profile *client.UserProfile
	err     error
}

func (f *fakeBuyers) GetUser(ctx context.Context, id uint) (*client.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

type fakePublisher struct {
	events []kafka.OrderPlacedEvent
	err    error
}

func (f *fakePublisher) PublishOrderPlaced(ctx context.Context, event kafka.OrderPlacedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func tomatoListing() *client.Listing {
	return &client.Listing{
		ID:            5,
		StockRecordID: 3,
		Reference:     "LST-tomatoes-1",
		SellingPrice:  decimal.RequireFromString("45.50"),
		Quantity:      20,
	}
}

func activeBuyer() *client.UserProfile {
	return &client.UserProfile{ID: 9, Username: "asha", Role: "consumer", IsActive: true}
}

func TestPlaceOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	publisher := &fakePublisher{}
	handler := command.NewPlaceOrderHandler(repo,
		&fakeListings{listing: tomatoListing()},
		&fakeBuyers{profile: activeBuyer()},
		publisher,
	)

	order, err := handler.Handle(context.Background(), command.PlaceOrderCommand{
		BuyerID:   9,
		ListingID: 5,
		Quantity:  4,
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if !strings.HasPrefix(order.OrderCode, "ORD-") {
		t.Errorf("expected ORD- prefix, got %q", order.OrderCode)
	}
	if order.Status != domain.StatusPending {
		t.Errorf("expected pending status, got %s", order.Status)
	}
	if order.StockRecordID != 3 {
		t.Errorf("expected stock record from listing, got %d", order.StockRecordID)
	}
	if want := decimal.RequireFromString("182.00"); !order.TotalAmount.Equal(want) {
		t.Errorf("expected total %s, got %s", want, order.TotalAmount)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.StockRecordID != 3 || event.Quantity != 4 || event.BuyerID != 9 {
		t.Errorf("event carries wrong identifiers: %+v", event)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	tests := []struct {
		name     string
		cmd      command.PlaceOrderCommand
		listings command.ListingFetcher
		buyers   command.BuyerFetcher
	}{
		{
			name:     "zero quantity",
			cmd:      command.PlaceOrderCommand{BuyerID: 9, ListingID: 5, Quantity: 0},
			listings: &fakeListings{listing: tomatoListing()},
			buyers:   &fakeBuyers{profile: activeBuyer()},
		},
		{
			name:     "quantity exceeds listing",
			cmd:      command.PlaceOrderCommand{BuyerID: 9, ListingID: 5, Quantity: 21},
			listings: &fakeListings{listing: tomatoListing()},
			buyers:   &fakeBuyers{profile: activeBuyer()},
		},
		{
			name:     "listing not found",
			cmd:      command.PlaceOrderCommand{BuyerID: 9, ListingID: 5, Quantity: 4},
			listings: &fakeListings{err: client.ErrListingNotFound},
			buyers:   &fakeBuyers{profile: activeBuyer()},
		},
		{
			name:     "deactivated buyer",
			cmd:      command.PlaceOrderCommand{BuyerID: 9, ListingID: 5, Quantity: 4},
			listings: &fakeListings{listing: tomatoListing()},
			buyers:   &fakeBuyers{profile: &client.UserProfile{ID: 9, IsActive: false}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := command.NewPlaceOrderHandler(newFakeOrderRepo(), tt.listings, tt.buyers, &fakePublisher{})
			if _, err := handler.Handle(context.Background(), tt.cmd); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestPlaceOrderSurvivesPublishFailure(t *testing.T) {
	repo := newFakeOrderRepo()
	handler := command.NewPlaceOrderHandler(repo,
		&fakeListings{listing: tomatoListing()},
		&fakeBuyers{profile: activeBuyer()},
		&fakePublisher{err: errors.New("broker down")},
	)

	order, err := handler.Handle(context.Background(), command.PlaceOrderCommand{
		BuyerID:   9,
		ListingID: 5,
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("order must survive a publish failure: %v", err)
	}
	if _, err := repo.FindByID(order.ID); err != nil {
		t.Errorf("order not persisted: %v", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{domain.StatusPending, domain.StatusConfirmed, true},
		{domain.StatusPending, domain.StatusCancelled, true},
		{domain.StatusPending, domain.StatusDelivered, false},
		{domain.StatusConfirmed, domain.StatusDelivered, true},
		{domain.StatusConfirmed, domain.StatusCancelled, true},
		{domain.StatusConfirmed, domain.StatusPending, false},
		{domain.StatusDelivered, domain.StatusCancelled, false},
		{domain.StatusCancelled, domain.StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			repo := newFakeOrderRepo()
			repo.Create(&domain.Order{OrderCode: "ORD-test", BuyerID: 9, Status: tt.from})

			handler := command.NewUpdateStatusHandler(repo)
			_, err := handler.Handle(command.UpdateStatusCommand{OrderID: 1, Status: tt.to})

			if tt.allowed && err != nil {
				t.Errorf("expected transition %s->%s to succeed: %v", tt.from, tt.to, err)
			}
			if !tt.allowed && err == nil {
				t.Errorf("expected transition %s->%s to fail", tt.from, tt.to)
			}
		})
	}
}

func TestCancelOrderOwnership(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.Create(&domain.Order{OrderCode: "ORD-test", BuyerID: 9, Status: domain.StatusPending})

	handler := command.NewCancelOrderHandler(repo)

	if _, err := handler.Handle(command.CancelOrderCommand{OrderID: 1, BuyerID: 2}); err == nil {
		t.Error("expected ownership error for another buyer")
	}

	order, err := handler.Handle(command.CancelOrderCommand{OrderID: 1, BuyerID: 9})
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if order.Status != domain.StatusCancelled {
		t.Errorf("expected cancelled, got %s", order.Status)
	}

	if _, err := handler.Handle(command.CancelOrderCommand{OrderID: 1, BuyerID: 9}); err == nil {
		t.Error("cancelling a cancelled order must fail")
	}
}
