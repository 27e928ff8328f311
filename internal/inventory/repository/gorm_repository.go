package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/myduka/myduka-backend/internal/inventory/domain"
)

// GormInventoryRepository implements InventoryRepository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GORM-based inventory repository
func NewGormInventoryRepository(db *gorm.DB) (*GormInventoryRepository, error) {
	if err := db.AutoMigrate(&domain.InventoryRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate inventory schema: %w", err)
	}
	return &GormInventoryRepository{db: db}, nil
}

// Create inserts a new inventory record
func (r *GormInventoryRepository) Create(record *domain.InventoryRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create inventory record: %w", err)
	}
	return nil
}

// FindByID retrieves an inventory record by its ID
func (r *GormInventoryRepository) FindByID(id uint) (*domain.InventoryRecord, error) {
	var record domain.InventoryRecord
	if err := r.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory record: %w", err)
	}
	return &record, nil
}

// FindAll retrieves inventory records ordered newest first
func (r *GormInventoryRepository) FindAll(limit, offset int) ([]domain.InventoryRecord, error) {
	var records []domain.InventoryRecord
	if err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory records: %w", err)
	}
	return records, nil
}

// FindByStore retrieves inventory records for a store, newest first
func (r *GormInventoryRepository) FindByStore(storeID uint, limit, offset int) ([]domain.InventoryRecord, error) {
	var records []domain.InventoryRecord
	err := r.db.Where("store_id = ?", storeID).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory records by store: %w", err)
	}
	return records, nil
}

// FindByClerk retrieves inventory records entered by a clerk, newest first
func (r *GormInventoryRepository) FindByClerk(clerkID uint, limit, offset int) ([]domain.InventoryRecord, error) {
	var records []domain.InventoryRecord
	err := r.db.Where("clerk_id = ?", clerkID).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory records by clerk: %w", err)
	}
	return records, nil
}

// FindLatest retrieves the most recent record for a product in a store
func (r *GormInventoryRepository) FindLatest(productID, storeID uint) (*domain.InventoryRecord, error) {
	var record domain.InventoryRecord
	err := r.db.Where("product_id = ? AND store_id = ?", productID, storeID).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest inventory record: %w", err)
	}
	return &record, nil
}

// Update persists changes to an inventory record
func (r *GormInventoryRepository) Update(record *domain.InventoryRecord) error {
	if err := r.db.Save(record).Error; err != nil {
		return fmt.Errorf("failed to update inventory record: %w", err)
	}
	return nil
}

// Delete soft-deletes an inventory record
func (r *GormInventoryRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.InventoryRecord{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete inventory record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
