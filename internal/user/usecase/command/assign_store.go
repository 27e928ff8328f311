package command

import (
	"fmt"

	storedomain "github.com/myduka/myduka-backend/internal/store/domain"
	"github.com/myduka/myduka-backend/internal/user/domain"
)

// AssignStoreCommand represents the command to assign an admin to a store.
// A zero StoreID unassigns the admin.
type AssignStoreCommand struct {
	Actor    domain.Actor
	TargetID uint
	StoreID  uint
}

// AssignStoreHandler handles store assignment for admins
type AssignStoreHandler struct {
	users  domain.UserRepository
	stores storedomain.StoreRepository
}

// NewAssignStoreHandler creates a new assign store handler
func NewAssignStoreHandler(users domain.UserRepository, stores storedomain.StoreRepository) *AssignStoreHandler {
	return &AssignStoreHandler{users: users, stores: stores}
}

// Handle executes the assign store command. Merchant only, and only to stores
// the merchant owns.
func (h *AssignStoreHandler) Handle(cmd AssignStoreCommand) (*domain.User, error) {
	if cmd.Actor.Role != domain.RoleMerchant {
		return nil, domain.ErrForbidden
	}

	target, err := h.users.FindByID(cmd.TargetID)
	if err != nil {
		return nil, err
	}
	if !target.IsAdmin() {
		return nil, fmt.Errorf("only admins can be assigned to stores")
	}

	if cmd.StoreID == 0 {
		target.StoreID = nil
	} else {
		store, err := h.stores.FindByID(cmd.StoreID)
		if err != nil {
			return nil, err
		}
		if store.MerchantID != cmd.Actor.ID {
			return nil, domain.ErrForbidden
		}
		storeID := cmd.StoreID
		target.StoreID = &storeID
	}

	if err := h.users.Update(target); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return target, nil
}
