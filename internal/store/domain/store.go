package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("store not found")
	ErrNameTaken = errors.New("store with this name already exists")
)

// Store represents a physical store location owned by the merchant and
// managed by an assigned admin
type Store struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Name       string         `json:"name" gorm:"uniqueIndex;not null"`
	Location   string         `json:"location" gorm:"not null"`
	IsActive   bool           `json:"is_active" gorm:"default:true"`
	MerchantID uint           `json:"merchant_id" gorm:"not null;index"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Store) TableName() string {
	return "stores"
}

// StoreRepository defines the contract for store data access
type StoreRepository interface {
	Create(store *Store) error
	FindByID(id uint) (*Store, error)
	FindByName(name string) (*Store, error)
	FindAll(limit, offset int) ([]Store, error)
	FindByMerchant(merchantID uint) ([]Store, error)
	Update(store *Store) error
	Delete(id uint) error
}
