package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/myduka/myduka-backend/internal/invitation/domain"
)

// GormInvitationRepository implements InvitationRepository using GORM
type GormInvitationRepository struct {
	db *gorm.DB
}

// NewGormInvitationRepository creates a new GORM-based invitation repository
func NewGormInvitationRepository(db *gorm.DB) (*GormInvitationRepository, error) {
	if err := db.AutoMigrate(&domain.Invitation{}); err != nil {
		return nil, fmt.Errorf("failed to migrate invitation schema: %w", err)
	}
	return &GormInvitationRepository{db: db}, nil
}

// Create inserts a new invitation
func (r *GormInvitationRepository) Create(invitation *domain.Invitation) error {
	if err := r.db.Create(invitation).Error; err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	return nil
}

// FindByToken retrieves an invitation by its token
func (r *GormInvitationRepository) FindByToken(token string) (*domain.Invitation, error) {
	var invitation domain.Invitation
	if err := r.db.Where("token = ?", token).First(&invitation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}
	return &invitation, nil
}

// FindByInviter retrieves invitations sent by a user, newest first
func (r *GormInvitationRepository) FindByInviter(inviterID uint, limit, offset int) ([]domain.Invitation, error) {
	var invitations []domain.Invitation
	err := r.db.Where("invited_by = ?", inviterID).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&invitations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}

// Update persists changes to an invitation
func (r *GormInvitationRepository) Update(invitation *domain.Invitation) error {
	if err := r.db.Save(invitation).Error; err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}
	return nil
}
