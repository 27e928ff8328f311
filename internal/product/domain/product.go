package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrNameTaken     = errors.New("product with this name already exists")
	ErrNegativePrice = errors.New("prices cannot be negative")
)

// Product represents a product item in the merchant's catalog. Prices on the
// product are the current prices; inventory and transaction records snapshot
// them at record time.
type Product struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"uniqueIndex;not null"`
	Description  string         `json:"description"`
	BuyingPrice  float64        `json:"buying_price" gorm:"not null"`
	SellingPrice float64        `json:"selling_price" gorm:"not null"`
	MerchantID   uint           `json:"merchant_id" gorm:"not null;index"`
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindByName(name string) (*Product, error)
	FindAll(limit, offset int) ([]Product, error)
	Update(product *Product) error
	Delete(id uint) error
}
