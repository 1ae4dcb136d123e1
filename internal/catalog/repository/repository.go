package repository

import (
	"gorm.io/gorm"

	"github.com/farmgate/marketplace/internal/catalog/domain"
)

// GormProductRepository implements domain.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM-based product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create inserts a new product
func (r *GormProductRepository) Create(product *domain.Product) error {
	return r.db.Create(product).Error
}

// FindByID retrieves a product by its ID
func (r *GormProductRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindActive retrieves active products, optionally filtered by category.
func (r *GormProductRepository) FindActive(category string, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	query := r.db.Where("is_active = ?", true).Limit(limit).Offset(offset).Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByFarmer retrieves all products owned by a farmer.
func (r *GormProductRepository) FindByFarmer(farmerID uint, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Where("farmer_id = ?", farmerID).
		Limit(limit).Offset(offset).Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Update saves changes to an existing product
func (r *GormProductRepository) Update(product *domain.Product) error {
	return r.db.Save(product).Error
}

// Delete soft-deletes a product by ID
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Product{}, id).Error
}

// Count returns the total number of products
func (r *GormProductRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Product{}).Count(&count).Error
	return count, err
}

// CountActive returns the number of active products
func (r *GormProductRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Product{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
