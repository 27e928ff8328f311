package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("invitation not found")
	ErrExpired  = errors.New("invitation has expired")
	ErrUsed     = errors.New("invitation already used")
)

// Invitation is a single-use token a merchant sends to an email address to
// let its owner register as an admin. Consuming it sets AcceptedAt.
type Invitation struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Email      string         `json:"email" gorm:"not null;index"`
	Token      string         `json:"-" gorm:"uniqueIndex;not null"`
	InvitedBy  uint           `json:"invited_by" gorm:"not null"`
	StoreID    *uint          `json:"store_id,omitempty"`
	ExpiresAt  time.Time      `json:"expires_at" gorm:"not null"`
	AcceptedAt *time.Time     `json:"accepted_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Invitation) TableName() string {
	return "invitations"
}

// IsExpired reports whether the invitation is past its expiry
func (i *Invitation) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// IsUsed reports whether the invitation has already been consumed
func (i *Invitation) IsUsed() bool {
	return i.AcceptedAt != nil
}

// InvitationRepository defines the contract for invitation data access
type InvitationRepository interface {
	Create(invitation *Invitation) error
	FindByToken(token string) (*Invitation, error)
	FindByInviter(inviterID uint, limit, offset int) ([]Invitation, error)
	Update(invitation *Invitation) error
}
