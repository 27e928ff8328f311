package command

import (
	"fmt"

	"github.com/myduka/myduka-backend/internal/user/domain"
	"github.com/myduka/myduka-backend/pkg/auth"
)

// RegisterMerchantCommand represents the command to register the merchant
// (superuser) account
type RegisterMerchantCommand struct {
	Username string
	Email    string
	Password string
}

// RegisterMerchantHandler handles merchant registration
type RegisterMerchantHandler struct {
	repo domain.UserRepository
}

// NewRegisterMerchantHandler creates a new register merchant handler
func NewRegisterMerchantHandler(repo domain.UserRepository) *RegisterMerchantHandler {
	return &RegisterMerchantHandler{repo: repo}
}

// Handle executes the register merchant command. Only one merchant account may
// exist; later registrations are rejected.
func (h *RegisterMerchantHandler) Handle(cmd RegisterMerchantCommand) (*domain.User, error) {
	if cmd.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if !auth.ValidateEmail(cmd.Email) {
		return nil, fmt.Errorf("invalid email format")
	}
	if !auth.ValidatePassword(cmd.Password) {
		return nil, fmt.Errorf("password does not meet requirements")
	}

	count, err := h.repo.CountByRole(domain.RoleMerchant)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing merchants: %w", err)
	}
	if count > 0 {
		return nil, domain.ErrMerchantExists
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

	user := &domain.User{
		Username: cmd.Username,
		Email:    cmd.Email,
		Password: hashedPassword,
		Role:     domain.RoleMerchant,
		IsActive: true,
	}

	if err := h.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create merchant: %w", err)
	}

	return user, nil
}
