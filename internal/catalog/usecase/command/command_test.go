package command_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmgate/marketplace/internal/catalog/domain"
	"github.com/farmgate/marketplace/internal/catalog/usecase/command"
	"github.com/farmgate/marketplace/pkg/geo"
)

type fakeProductRepo struct {
	products map[uint]*domain.Product
	nextID   uint
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uint]*domain.Product), nextID: 1}
}

func (f *fakeProductRepo) Create(p *domain.Product) error {
	p.ID = f.nextID
	f.nextID++
	copied := *p
	f.products[p.ID] = &copied
	return nil
}

func (f *fakeProductRepo) FindByID(id uint) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, errNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductRepo) FindActive(category string, limit, offset int) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) FindByFarmer(farmerID uint, limit, offset int) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Update(p *domain.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return errNotFound
	}
	copied := *p
	f.products[p.ID] = &copied
	return nil
}

func (f *fakeProductRepo) Delete(id uint) error {
	if _, ok := f.products[id]; !ok {
		return errNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) Count() (int64, error)       { return int64(len(f.products)), nil }
func (f *fakeProductRepo) CountActive() (int64, error) { return int64(len(f.products)), nil }

var errNotFound = &notFoundError{}

type notFoundError struct{}

func (e *notFoundError) Error() string { return "record not found" }

func floatp(v float64) *float64 { return &v }

func validCreate() command.CreateProductCommand {
	return command.CreateProductCommand{
		FarmerID:    7,
		Name:        "Heirloom Tomatoes",
		Category:    "vegetables",
		Price:       decimal.NewFromInt(55),
		Quantity:    30,
		HarvestedAt: time.Now().Add(-12 * time.Hour),
		Latitude:    floatp(12.95),
		Longitude:   floatp(77.60),
	}
}

func TestCreateProductDefaults(t *testing.T) {
	repo := newFakeProductRepo()
	handler := command.NewCreateProductHandler(repo)

	product, err := handler.Handle(validCreate())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.Perishability != geo.SemiPerishable {
		t.Errorf("expected vegetables to default to semi_perishable, got %s", product.Perishability)
	}
	if product.Unit != "kg" {
		t.Errorf("expected default unit kg, got %q", product.Unit)
	}
	if !product.IsActive {
		t.Error("new products must be active")
	}
}

func TestCreateProductCategoryDefaults(t *testing.T) {
	tests := []struct {
		category string
		want     geo.Perishability
	}{
		{"leafy_greens", geo.Perishable},
		{"dairy", geo.Perishable},
		{"fruits", geo.SemiPerishable},
		{"grains", geo.NonPerishable},
		{"exotic_unknown", geo.SemiPerishable},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			handler := command.NewCreateProductHandler(newFakeProductRepo())
			cmd := validCreate()
			cmd.Category = tt.category
			product, err := handler.Handle(cmd)
			if err != nil {
				t.Fatalf("create failed: %v", err)
			}
			if product.Perishability != tt.want {
				t.Errorf("category %q: expected %s, got %s", tt.category, tt.want, product.Perishability)
			}
		})
	}
}

func TestCreateProductExplicitPerishabilityWins(t *testing.T) {
	handler := command.NewCreateProductHandler(newFakeProductRepo())
	cmd := validCreate()
	cmd.Category = "grains"
	cmd.Perishability = geo.Perishable

	product, err := handler.Handle(cmd)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.Perishability != geo.Perishable {
		t.Errorf("explicit perishability must win, got %s", product.Perishability)
	}
}

func TestCreateProductValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*command.CreateProductCommand)
		errPart string
	}{
		{
			name:    "missing name",
			mutate:  func(c *command.CreateProductCommand) { c.Name = "" },
			errPart: "name",
		},
		{
			name:    "zero price",
			mutate:  func(c *command.CreateProductCommand) { c.Price = decimal.Zero },
			errPart: "price",
		},
		{
			name:    "negative quantity",
			mutate:  func(c *command.CreateProductCommand) { c.Quantity = -1 },
			errPart: "quantity",
		},
		{
			name:    "future harvest",
			mutate:  func(c *command.CreateProductCommand) { c.HarvestedAt = time.Now().Add(48 * time.Hour) },
			errPart: "harvest",
		},
		{
			name:    "latitude without longitude",
			mutate:  func(c *command.CreateProductCommand) { c.Longitude = nil },
			errPart: "together",
		},
		{
			name:    "latitude out of range",
			mutate:  func(c *command.CreateProductCommand) { c.Latitude = floatp(91) },
			errPart: "latitude",
		},
		{
			name:    "unknown perishability",
			mutate:  func(c *command.CreateProductCommand) { c.Perishability = "frozen" },
			errPart: "perishability",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := command.NewCreateProductHandler(newFakeProductRepo())
			cmd := validCreate()
			tt.mutate(&cmd)

			_, err := handler.Handle(cmd)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(strings.ToLower(err.Error()), tt.errPart) {
				t.Errorf("expected error mentioning %q, got %q", tt.errPart, err.Error())
			}
		})
	}
}

func TestUpdateProductOwnership(t *testing.T) {
	repo := newFakeProductRepo()
	created, err := command.NewCreateProductHandler(repo).Handle(validCreate())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	handler := command.NewUpdateProductHandler(repo)
	newName := "Cherry Tomatoes"

	if _, err := handler.Handle(command.UpdateProductCommand{ID: created.ID, FarmerID: 99, Name: &newName}); err == nil {
		t.Error("expected ownership error for another farmer")
	}

	updated, err := handler.Handle(command.UpdateProductCommand{ID: created.ID, FarmerID: 7, Name: &newName})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != newName {
		t.Errorf("expected %q, got %q", newName, updated.Name)
	}
	if updated.Quantity != created.Quantity {
		t.Error("fields not in the command must be untouched")
	}
}

func TestDeleteProduct(t *testing.T) {
	repo := newFakeProductRepo()
	created, err := command.NewCreateProductHandler(repo).Handle(validCreate())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	handler := command.NewDeleteProductHandler(repo)

	if err := handler.Handle(command.DeleteProductCommand{ID: created.ID, FarmerID: 99}); err == nil {
		t.Error("expected ownership error for another farmer")
	}
	if err := handler.Handle(command.DeleteProductCommand{ID: created.ID, FarmerID: 99, IsAdmin: true}); err != nil {
		t.Errorf("admin delete failed: %v", err)
	}
	if _, err := repo.FindByID(created.ID); err == nil {
		t.Error("expected product to be gone")
	}
}
