package repository

import (
	"github.com/farmgate/marketplace/internal/inventory/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStockRepository struct {
	db *gorm.DB
}

func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

func (r *GormStockRepository) Create(record *domain.StockRecord) error {
	return r.db.Create(record).Error
}

func (r *GormStockRepository) FindByID(id uint) (*domain.StockRecord, error) {
	var record domain.StockRecord
	err := r.db.First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *GormStockRepository) FindAll(limit, offset int) ([]domain.StockRecord, error) {
	var records []domain.StockRecord
	err := r.db.Limit(limit).Offset(offset).Order("id").Find(&records).Error
	return records, err
}

func (r *GormStockRepository) FindByStatus(status string, limit, offset int) ([]domain.StockRecord, error) {
	var records []domain.StockRecord
	err := r.db.Where("status = ?", status).Limit(limit).Offset(offset).Order("id").Find(&records).Error
	return records, err
}

func (r *GormStockRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.StockRecord{}).Count(&count).Error
	return count, err
}

func (r *GormStockRepository) FindListingByID(id uint) (*domain.Listing, error) {
	var listing domain.Listing
	err := r.db.First(&listing, id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *GormStockRepository) FindListingByReference(reference string) (*domain.Listing, error) {
	var listing domain.Listing
	err := r.db.Where("reference = ?", reference).First(&listing).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *GormStockRepository) FindListings(recordID uint) ([]domain.Listing, error) {
	var listings []domain.Listing
	err := r.db.Where("stock_record_id = ?", recordID).Order("id").Find(&listings).Error
	return listings, err
}

// UpdateWithLock applies a mutation under SELECT ... FOR UPDATE so that
// concurrent listings against the same record serialize instead of both
// reading the same available quantity.
func (r *GormStockRepository) UpdateWithLock(id uint, apply func(*domain.StockRecord) (*domain.Listing, error)) (*domain.StockRecord, *domain.Listing, error) {
	var record domain.StockRecord
	var listing *domain.Listing

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&record, id).Error; err != nil {
			return err
		}

		created, err := apply(&record)
		if err != nil {
			return err
		}

		if err := tx.Save(&record).Error; err != nil {
			return err
		}
		if created != nil {
			if err := tx.Create(created).Error; err != nil {
				return err
			}
			listing = created
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &record, listing, nil
}
