package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("transaction not found")

// Transaction is a completed point-of-sale event. UnitPrice is the selling
// price snapshotted from the inventory record the sale drew from, so revenue
// reporting is stable under later price changes.
type Transaction struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	ProductID   uint           `json:"product_id" gorm:"not null;index"`
	StoreID     uint           `json:"store_id" gorm:"not null;index"`
	ClerkID     *uint          `json:"clerk_id,omitempty" gorm:"index"`
	Quantity    int            `json:"quantity" gorm:"not null"`
	UnitPrice   float64        `json:"unit_price" gorm:"not null"`
	TotalAmount float64        `json:"total_amount" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionRepository defines the contract for sales data access.
// RecordSale must atomically decrement stock on the given inventory record
// and insert the transaction, or do neither.
type TransactionRepository interface {
	RecordSale(txn *Transaction, inventoryRecordID uint) error
	FindByID(id uint) (*Transaction, error)
	FindAll(limit, offset int) ([]Transaction, error)
	FindByStore(storeID uint, limit, offset int) ([]Transaction, error)
	FindByClerk(clerkID uint, limit, offset int) ([]Transaction, error)
	Delete(id uint) error
}
