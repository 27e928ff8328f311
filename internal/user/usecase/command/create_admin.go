package command

import (
	"fmt"

	"github.com/myduka/myduka-backend/internal/user/domain"
	"github.com/myduka/myduka-backend/pkg/auth"
)

// CreateAdminCommand represents the command for a merchant to create an admin
// account directly (the invitation flow is the alternative path)
type CreateAdminCommand struct {
	Actor    domain.Actor
	Username string
	Email    string
	Password string
	StoreID  *uint
}

// CreateAdminHandler handles admin creation by a merchant
type CreateAdminHandler struct {
	repo domain.UserRepository
}

// NewCreateAdminHandler creates a new create admin handler
func NewCreateAdminHandler(repo domain.UserRepository) *CreateAdminHandler {
	return &CreateAdminHandler{repo: repo}
}

// Handle executes the create admin command
func (h *CreateAdminHandler) Handle(cmd CreateAdminCommand) (*domain.User, error) {
	if cmd.Actor.Role != domain.RoleMerchant {
		return nil, domain.ErrForbidden
	}
	if cmd.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if !auth.ValidateEmail(cmd.Email) {
		return nil, fmt.Errorf("invalid email format")
	}
	if !auth.ValidatePassword(cmd.Password) {
		return nil, fmt.Errorf("password does not meet requirements")
	}

	if existing, _ := h.repo.FindByUsername(cmd.Username); existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	if existing, _ := h.repo.FindByEmail(cmd.Email); existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	merchantID := cmd.Actor.ID
	user := &domain.User{
		Username:   cmd.Username,
		Email:      cmd.Email,
		Password:   hashedPassword,
		Role:       domain.RoleAdmin,
		IsActive:   true,
		MerchantID: &merchantID,
		StoreID:    cmd.StoreID,
	}

	if err := h.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return user, nil
}
