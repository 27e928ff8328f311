package command

import (
	"fmt"

	"github.com/myduka/myduka-backend/internal/store/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// UpdateStoreCommand represents the command to update a store. Zero values
// mean "leave unchanged"; IsActive uses a pointer so false is expressible.
type UpdateStoreCommand struct {
	Actor    userdomain.Actor
	StoreID  uint
	Name     string
	Location string
	IsActive *bool
}

// UpdateStoreHandler handles store updates
type UpdateStoreHandler struct {
	repo domain.StoreRepository
}

// NewUpdateStoreHandler creates a new update store handler
func NewUpdateStoreHandler(repo domain.StoreRepository) *UpdateStoreHandler {
	return &UpdateStoreHandler{repo: repo}
}

// Handle executes the update store command. The merchant may update any owned
// store; an admin only the store they manage, and never the active flag.
func (h *UpdateStoreHandler) Handle(cmd UpdateStoreCommand) (*domain.Store, error) {
	store, err := h.repo.FindByID(cmd.StoreID)
	if err != nil {
		return nil, err
	}

	switch cmd.Actor.Role {
	case userdomain.RoleMerchant:
		if store.MerchantID != cmd.Actor.ID {
			return nil, userdomain.ErrForbidden
		}
	case userdomain.RoleAdmin:
		if !cmd.Actor.InStore(cmd.StoreID) {
			return nil, userdomain.ErrForbidden
		}
		if cmd.IsActive != nil && *cmd.IsActive != store.IsActive {
			return nil, userdomain.ErrForbidden
		}
	default:
		return nil, userdomain.ErrForbidden
	}

	if cmd.Name != "" && cmd.Name != store.Name {
		if existing, _ := h.repo.FindByName(cmd.Name); existing != nil {
			return nil, domain.ErrNameTaken
		}
		store.Name = cmd.Name
	}
	if cmd.Location != "" {
		store.Location = cmd.Location
	}
	if cmd.IsActive != nil && cmd.Actor.Role == userdomain.RoleMerchant {
		store.IsActive = *cmd.IsActive
	}

	if err := h.repo.Update(store); err != nil {
		return nil, fmt.Errorf("failed to update store: %w", err)
	}
	return store, nil
}
