package command

import (
	"fmt"

	"github.com/myduka/myduka-backend/internal/user/domain"
	"github.com/myduka/myduka-backend/pkg/auth"
)

// CreateClerkCommand represents the command for an admin to create a clerk.
// The clerk is bound to the admin's store.
type CreateClerkCommand struct {
	Actor    domain.Actor
	Username string
	Email    string
	Password string
}

// CreateClerkHandler handles clerk creation by an admin
type CreateClerkHandler struct {
	repo domain.UserRepository
}

// NewCreateClerkHandler creates a new create clerk handler
func NewCreateClerkHandler(repo domain.UserRepository) *CreateClerkHandler {
	return &CreateClerkHandler{repo: repo}
}

// Handle executes the create clerk command
func (h *CreateClerkHandler) Handle(cmd CreateClerkCommand) (*domain.User, error) {
	if cmd.Actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if cmd.Actor.StoreID == nil {
		return nil, fmt.Errorf("admin is not assigned to a store")
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

	adminID := cmd.Actor.ID
	user := &domain.User{
		Username: cmd.Username,
		Email:    cmd.Email,
		Password: hashedPassword,
		Role:     domain.RoleClerk,
		IsActive: true,
		AdminID:  &adminID,
		StoreID:  cmd.Actor.StoreID,
	}

	if err := h.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create clerk: %w", err)
	}

	return user, nil
}
