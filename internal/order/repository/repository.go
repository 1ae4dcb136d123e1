package repository

import (
	"gorm.io/gorm"

	"github.com/farmgate/marketplace/internal/order/domain"
)

// GormOrderRepository implements domain.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM-based order repository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts a new order
func (r *GormOrderRepository) Create(order *domain.Order) error {
	return r.db.Create(order).Error
}

// FindByID retrieves an order by its ID
func (r *GormOrderRepository) FindByID(id uint) (*domain.Order, error) {
	var order domain.Order
	if err := r.db.First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByCode retrieves an order by its order code
func (r *GormOrderRepository) FindByCode(code string) (*domain.Order, error) {
	var order domain.Order
	if err := r.db.Where("order_code = ?", code).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByBuyer retrieves orders placed by a buyer
func (r *GormOrderRepository) FindByBuyer(buyerID uint, limit, offset int) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.Where("buyer_id = ?", buyerID).
		Limit(limit).Offset(offset).Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll retrieves orders with pagination and optional status filter
func (r *GormOrderRepository) FindAll(limit, offset int, status string) ([]domain.Order, error) {
	var orders []domain.Order
	query := r.db.Limit(limit).Offset(offset).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Update saves changes to an existing order
func (r *GormOrderRepository) Update(order *domain.Order) error {
	return r.db.Save(order).Error
}

// Count returns the total number of orders
func (r *GormOrderRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Order{}).Count(&count).Error
	return count, err
}

// CountByStatus returns the number of orders in a given status
func (r *GormOrderRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Order{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
