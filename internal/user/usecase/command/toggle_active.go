package command

import (
	"fmt"

	"github.com/myduka/myduka-backend/internal/user/domain"
)

// ToggleActiveCommand represents the command to activate or deactivate a user
type ToggleActiveCommand struct {
	Actor    domain.Actor
	TargetID uint
	IsActive bool
}

// ToggleActiveHandler handles toggle active command
type ToggleActiveHandler struct {
	repo domain.UserRepository
}

// NewToggleActiveHandler creates a new toggle active handler
func NewToggleActiveHandler(repo domain.UserRepository) *ToggleActiveHandler {
	return &ToggleActiveHandler{repo: repo}
}

// Handle executes the toggle active command. Only the merchant may change an
// account's active status, and never their own.
func (h *ToggleActiveHandler) Handle(cmd ToggleActiveCommand) (*domain.User, error) {
	if cmd.Actor.Role != domain.RoleMerchant {
		return nil, domain.ErrForbidden
	}
	if cmd.Actor.ID == cmd.TargetID {
		return nil, fmt.Errorf("cannot change own active status")
	}

	target, err := h.repo.FindByID(cmd.TargetID)
	if err != nil {
		return nil, err
	}

	target.IsActive = cmd.IsActive
	if err := h.repo.Update(target); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return target, nil
}
