package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Payment statuses for received stock
const (
	PaymentPaid   = "paid"
	PaymentUnpaid = "unpaid"
)

var (
	ErrNotFound          = errors.New("inventory record not found")
	ErrNegativeQuantity  = errors.New("quantities cannot be negative")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InventoryRecord tracks a stock receipt for a product in a store, recorded
// by a clerk. Prices are snapshotted from the product at record time so later
// price changes do not rewrite history. Stock and spoilt counts are never
// negative.
type InventoryRecord struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	ProductID        uint           `json:"product_id" gorm:"not null;index:idx_inventory_product_store"`
	StoreID          uint           `json:"store_id" gorm:"not null;index:idx_inventory_product_store"`
	ClerkID          *uint          `json:"clerk_id,omitempty" gorm:"index"`
	QuantityReceived int            `json:"quantity_received" gorm:"not null"`
	ItemsInStock     int            `json:"items_in_stock" gorm:"not null"`
	ItemsSpoilt      int            `json:"items_spoilt" gorm:"not null;default:0"`
	PaymentStatus    string         `json:"payment_status" gorm:"not null;default:'unpaid'"`
	BuyingPrice      float64        `json:"buying_price" gorm:"not null"`
	SellingPrice     float64        `json:"selling_price" gorm:"not null"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (InventoryRecord) TableName() string {
	return "inventory_records"
}

// ValidPaymentStatus reports whether status is a known payment status
func ValidPaymentStatus(status string) bool {
	return status == PaymentPaid || status == PaymentUnpaid
}

// InventoryRepository defines the contract for inventory data access
type InventoryRepository interface {
	Create(record *InventoryRecord) error
	FindByID(id uint) (*InventoryRecord, error)
	FindAll(limit, offset int) ([]InventoryRecord, error)
	FindByStore(storeID uint, limit, offset int) ([]InventoryRecord, error)
	FindByClerk(clerkID uint, limit, offset int) ([]InventoryRecord, error)
	// FindLatest returns the newest record for a (product, store) pair; sales
	// are validated and applied against this record.
	FindLatest(productID, storeID uint) (*InventoryRecord, error)
	Update(record *InventoryRecord) error
	Delete(id uint) error
}
