package command

import (
	"fmt"

	"github.com/myduka/myduka-backend/internal/user/domain"
)

// DeleteUserCommand represents the command to delete a user account
type DeleteUserCommand struct {
	Actor    domain.Actor
	TargetID uint
}

// DeleteUserHandler handles user deletion
type DeleteUserHandler struct {
	repo domain.UserRepository
}

// NewDeleteUserHandler creates a new delete user handler
func NewDeleteUserHandler(repo domain.UserRepository) *DeleteUserHandler {
	return &DeleteUserHandler{repo: repo}
}

// Handle executes the delete user command. A merchant may delete any admin or
// clerk (or their own account); an admin may delete clerks of their own store.
func (h *DeleteUserHandler) Handle(cmd DeleteUserCommand) error {
	target, err := h.repo.FindByID(cmd.TargetID)
	if err != nil {
		return err
	}

	allowed := false
	switch cmd.Actor.Role {
	case domain.RoleMerchant:
		allowed = true
	case domain.RoleAdmin:
		allowed = target.IsClerk() && target.StoreID != nil && cmd.Actor.InStore(*target.StoreID)
	}
	if !allowed {
		return domain.ErrForbidden
	}

	if err := h.repo.Delete(cmd.TargetID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
