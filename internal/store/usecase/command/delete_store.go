package command

import (
	"fmt"

	"github.com/myduka/myduka-backend/internal/store/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// DeleteStoreCommand represents the command to delete a store
type DeleteStoreCommand struct {
	Actor   userdomain.Actor
	StoreID uint
}

// DeleteStoreHandler handles store deletion
type DeleteStoreHandler struct {
	repo domain.StoreRepository
}

// NewDeleteStoreHandler creates a new delete store handler
func NewDeleteStoreHandler(repo domain.StoreRepository) *DeleteStoreHandler {
	return &DeleteStoreHandler{repo: repo}
}

// Handle executes the delete store command (merchant only)
func (h *DeleteStoreHandler) Handle(cmd DeleteStoreCommand) error {
	if cmd.Actor.Role != userdomain.RoleMerchant {
		return userdomain.ErrForbidden
	}

	store, err := h.repo.FindByID(cmd.StoreID)
	if err != nil {
		return err
	}
	if store.MerchantID != cmd.Actor.ID {
		return userdomain.ErrForbidden
	}

	if err := h.repo.Delete(cmd.StoreID); err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}
	return nil
}
