package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Request statuses. Pending requests may be approved or declined once;
// approved and declined are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDeclined = "declined"
)

var (
	ErrNotFound      = errors.New("supply request not found")
	ErrRequestClosed = errors.New("supply request already resolved")
	ErrBadStatus     = errors.New("invalid supply request status")
)

// SupplyRequest is a clerk's ask for restocking a product, routed to the
// admin of the clerk's store for approval.
type SupplyRequest struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	ProductID   uint           `json:"product_id" gorm:"not null;index"`
	StoreID     uint           `json:"store_id" gorm:"not null;index"`
	ClerkID     uint           `json:"clerk_id" gorm:"not null;index"`
	Quantity    int            `json:"quantity" gorm:"not null"`
	Status      string         `json:"status" gorm:"not null;default:'pending';index"`
	RespondedBy *uint          `json:"responded_by,omitempty"`
	RespondedAt *time.Time     `json:"responded_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (SupplyRequest) TableName() string {
	return "supply_requests"
}

// IsPending reports whether the request can still be resolved
func (s *SupplyRequest) IsPending() bool {
	return s.Status == StatusPending
}

// SupplyRequestRepository defines the contract for supply request data access
type SupplyRequestRepository interface {
	Create(request *SupplyRequest) error
	FindByID(id uint) (*SupplyRequest, error)
	FindAll(limit, offset int) ([]SupplyRequest, error)
	FindByStore(storeID uint, limit, offset int) ([]SupplyRequest, error)
	FindByClerk(clerkID uint, limit, offset int) ([]SupplyRequest, error)
	Update(request *SupplyRequest) error
	Delete(id uint) error
}
