package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Role types. Merchant is the store-owning superuser; Admins are store-level
// managers created by a Merchant; Clerks are operational staff created by an
// Admin.
const (
	RoleMerchant = "merchant"
	RoleAdmin    = "admin"
	RoleClerk    = "clerk"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already exists")
	ErrUsernameTaken  = errors.New("username already exists")
	ErrInvalidRole    = errors.New("invalid role")
	ErrInactive       = errors.New("account is deactivated")
	ErrBadCredentials = errors.New("invalid credentials")
	ErrForbidden      = errors.New("not allowed")
	ErrMerchantExists = errors.New("merchant already registered")
)

// User represents any account in the system; the role field decides what the
// account may do. Admins reference the Merchant that created them and the
// Store they manage; Clerks reference their Admin and inherit its Store.
type User struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Username   string         `json:"username" gorm:"uniqueIndex;not null"`
	Email      string         `json:"email" gorm:"uniqueIndex;not null"`
	Password   string         `json:"-" gorm:"not null"` // Never expose password in JSON
	Role       string         `json:"role" gorm:"not null;index"`
	IsActive   bool           `json:"is_active" gorm:"default:true"`
	MerchantID *uint          `json:"merchant_id,omitempty" gorm:"index"`
	AdminID    *uint          `json:"admin_id,omitempty" gorm:"index"`
	StoreID    *uint          `json:"store_id,omitempty" gorm:"index"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"` // Soft delete
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// IsMerchant checks if the user has the merchant role
func (u *User) IsMerchant() bool {
	return u.Role == RoleMerchant
}

// IsAdmin checks if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsClerk checks if the user has the clerk role
func (u *User) IsClerk() bool {
	return u.Role == RoleClerk
}

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	return role == RoleMerchant || role == RoleAdmin || role == RoleClerk
}

// Actor is the authenticated caller as resolved from the live user row, used
// by usecases for ownership and store scoping.
type Actor struct {
	ID      uint
	Role    string
	StoreID *uint
}

// Actor derives the caller identity from a user row
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role, StoreID: u.StoreID}
}

// InStore reports whether the actor is bound to the given store
func (a Actor) InStore(storeID uint) bool {
	return a.StoreID != nil && *a.StoreID == storeID
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(user *User) error
	FindByID(id uint) (*User, error)
	FindByUsername(username string) (*User, error)
	FindByEmail(email string) (*User, error)
	FindAll(limit, offset int) ([]User, error)
	FindByRole(role string, limit, offset int) ([]User, error)
	Update(user *User) error
	Delete(id uint) error
	CountByRole(role string) (int64, error)
}
