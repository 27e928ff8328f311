package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	inventorydomain "github.com/myduka/myduka-backend/internal/inventory/domain"
	"github.com/myduka/myduka-backend/internal/transaction/domain"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GORM-based transaction repository
func NewGormTransactionRepository(db *gorm.DB) (*GormTransactionRepository, error) {
	if err := db.AutoMigrate(&domain.Transaction{}); err != nil {
		return nil, fmt.Errorf("failed to migrate transaction schema: %w", err)
	}
	return &GormTransactionRepository{db: db}, nil
}

// RecordSale decrements stock on the inventory record and inserts the sale in
// one database transaction. The decrement is conditional on sufficient stock,
// so concurrent sales cannot drive the count negative.
func (r *GormTransactionRepository) RecordSale(txn *domain.Transaction, inventoryRecordID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&inventorydomain.InventoryRecord{}).
			Where("id = ? AND items_in_stock >= ?", inventoryRecordID, txn.Quantity).
			Update("items_in_stock", gorm.Expr("items_in_stock - ?", txn.Quantity))
		if result.Error != nil {
			return fmt.Errorf("failed to decrement stock: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return inventorydomain.ErrInsufficientStock
		}
		if err := tx.Create(txn).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		return nil
	})
	return err
}

// FindByID retrieves a transaction by its ID
func (r *GormTransactionRepository) FindByID(id uint) (*domain.Transaction, error) {
	var txn domain.Transaction
	if err := r.db.First(&txn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return &txn, nil
}

// FindAll retrieves transactions, newest first
func (r *GormTransactionRepository) FindAll(limit, offset int) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	if err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

// FindByStore retrieves transactions for a store, newest first
func (r *GormTransactionRepository) FindByStore(storeID uint, limit, offset int) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	err := r.db.Where("store_id = ?", storeID).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions by store: %w", err)
	}
	return txns, nil
}

// FindByClerk retrieves transactions recorded by a clerk, newest first
func (r *GormTransactionRepository) FindByClerk(clerkID uint, limit, offset int) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	err := r.db.Where("clerk_id = ?", clerkID).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions by clerk: %w", err)
	}
	return txns, nil
}

// Delete soft-deletes a transaction
func (r *GormTransactionRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Transaction{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
