package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/myduka/myduka-backend/internal/supply/domain"
)

// GormSupplyRepository implements SupplyRequestRepository using GORM
type GormSupplyRepository struct {
	db *gorm.DB
}

// NewGormSupplyRepository creates a new GORM-based supply request repository
func NewGormSupplyRepository(db *gorm.DB) (*GormSupplyRepository, error) {
	if err := db.AutoMigrate(&domain.SupplyRequest{}); err != nil {
		return nil, fmt.Errorf("failed to migrate supply request schema: %w", err)
	}
	return &GormSupplyRepository{db: db}, nil
}

// Create inserts a new supply request
func (r *GormSupplyRepository) Create(request *domain.SupplyRequest) error {
	if err := r.db.Create(request).Error; err != nil {
		return fmt.Errorf("failed to create supply request: %w", err)
	}
	return nil
}

// FindByID retrieves a supply request by its ID
func (r *GormSupplyRepository) FindByID(id uint) (*domain.SupplyRequest, error) {
	var request domain.SupplyRequest
	if err := r.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supply request: %w", err)
	}
	return &request, nil
}

// FindAll retrieves supply requests, newest first
func (r *GormSupplyRepository) FindAll(limit, offset int) ([]domain.SupplyRequest, error) {
	var requests []domain.SupplyRequest
	if err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list supply requests: %w", err)
	}
	return requests, nil
}

// FindByStore retrieves supply requests for a store, newest first
func (r *GormSupplyRepository) FindByStore(storeID uint, limit, offset int) ([]domain.SupplyRequest, error) {
	var requests []domain.SupplyRequest
	err := r.db.Where("store_id = ?", storeID).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list supply requests by store: %w", err)
	}
	return requests, nil
}

// FindByClerk retrieves supply requests raised by a clerk, newest first
func (r *GormSupplyRepository) FindByClerk(clerkID uint, limit, offset int) ([]domain.SupplyRequest, error) {
	var requests []domain.SupplyRequest
	err := r.db.Where("clerk_id = ?", clerkID).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list supply requests by clerk: %w", err)
	}
	return requests, nil
}

// Update persists changes to a supply request
func (r *GormSupplyRepository) Update(request *domain.SupplyRequest) error {
	if err := r.db.Save(request).Error; err != nil {
		return fmt.Errorf("failed to update supply request: %w", err)
	}
	return nil
}

// Delete soft-deletes a supply request
func (r *GormSupplyRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.SupplyRequest{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete supply request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
