package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/myduka/myduka-backend/internal/store/domain"
)

// GormStoreRepository implements StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GORM store repository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormStoreRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Store{})
}

// Create inserts a new store
func (r *GormStoreRepository) Create(store *domain.Store) error {
	if err := r.db.Create(store).Error; err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

// FindByID retrieves a store by ID
func (r *GormStoreRepository) FindByID(id uint) (*domain.Store, error) {
	var store domain.Store
	if err := r.db.First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find store: %w", err)
	}
	return &store, nil
}

// FindByName retrieves a store by its unique name
func (r *GormStoreRepository) FindByName(name string) (*domain.Store, error) {
	var store domain.Store
	if err := r.db.Where("name = ?", name).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find store: %w", err)
	}
	return &store, nil
}

// FindAll retrieves all stores with pagination
func (r *GormStoreRepository) FindAll(limit, offset int) ([]domain.Store, error) {
	var stores []domain.Store
	query := r.db.Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to find stores: %w", err)
	}
	return stores, nil
}

// FindByMerchant retrieves all stores owned by a merchant
func (r *GormStoreRepository) FindByMerchant(merchantID uint) ([]domain.Store, error) {
	var stores []domain.Store
	if err := r.db.Where("merchant_id = ?", merchantID).Order("created_at DESC").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to find stores by merchant: %w", err)
	}
	return stores, nil
}

// Update updates a store
func (r *GormStoreRepository) Update(store *domain.Store) error {
	if err := r.db.Save(store).Error; err != nil {
		return fmt.Errorf("failed to update store: %w", err)
	}
	return nil
}

// Delete soft deletes a store
func (r *GormStoreRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Store{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete store: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
