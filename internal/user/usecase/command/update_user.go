package command

import (
	"fmt"

	"github.com/myduka/myduka-backend/internal/user/domain"
	"github.com/myduka/myduka-backend/pkg/auth"
)

// UpdateUserCommand represents the command to update a user account. Zero
// values mean "leave unchanged".
type UpdateUserCommand struct {
	Actor    domain.Actor
	TargetID uint
	Username string
	Email    string
	Password string
}

// UpdateUserHandler handles user update command
type UpdateUserHandler struct {
	repo domain.UserRepository
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(repo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo}
}

// Handle executes the update user command. Anyone may edit their own profile;
// a merchant may edit any admin or clerk; an admin may edit clerks of their
// own store.
func (h *UpdateUserHandler) Handle(cmd UpdateUserCommand) (*domain.User, error) {
	target, err := h.repo.FindByID(cmd.TargetID)
	if err != nil {
		return nil, err
	}

	if !canManage(cmd.Actor, target) {
		return nil, domain.ErrForbidden
	}

	if cmd.Username != "" && cmd.Username != target.Username {
		if existing, _ := h.repo.FindByUsername(cmd.Username); existing != nil {
			return nil, domain.ErrUsernameTaken
		}
		target.Username = cmd.Username
	}
	if cmd.Email != "" && cmd.Email != target.Email {
		if !auth.ValidateEmail(cmd.Email) {
			return nil, fmt.Errorf("invalid email format")
		}
		if existing, _ := h.repo.FindByEmail(cmd.Email); existing != nil {
			return nil, domain.ErrEmailTaken
		}
		target.Email = cmd.Email
	}
	if cmd.Password != "" {
		if !auth.ValidatePassword(cmd.Password) {
			return nil, fmt.Errorf("password does not meet requirements")
		}
		hashed, err := auth.HashPassword(cmd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		target.Password = hashed
	}

	if err := h.repo.Update(target); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return target, nil
}

// canManage implements the flat management matrix: self, merchant over
// admins/clerks, admin over own-store clerks.
func canManage(actor domain.Actor, target *domain.User) bool {
	if actor.ID == target.ID {
		return true
	}
	switch actor.Role {
	case domain.RoleMerchant:
		return !target.IsMerchant()
	case domain.RoleAdmin:
		return target.IsClerk() && target.StoreID != nil && actor.InStore(*target.StoreID)
	default:
		return false
	}
}
