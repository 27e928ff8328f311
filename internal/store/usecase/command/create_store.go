package command

import (
	"fmt"

	"github.com/myduka/myduka-backend/internal/store/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// CreateStoreCommand represents the command to create a store
type CreateStoreCommand struct {
	Actor    userdomain.Actor
	Name     string
	Location string
}

// CreateStoreHandler handles store creation
type CreateStoreHandler struct {
	repo domain.StoreRepository
}

// NewCreateStoreHandler creates a new create store handler
func NewCreateStoreHandler(repo domain.StoreRepository) *CreateStoreHandler {
	return &CreateStoreHandler{repo: repo}
}

// Handle executes the create store command (merchant only)
func (h *CreateStoreHandler) Handle(cmd CreateStoreCommand) (*domain.Store, error) {
	if cmd.Actor.Role != userdomain.RoleMerchant {
		return nil, userdomain.ErrForbidden
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Location == "" {
		return nil, fmt.Errorf("location is required")
	}

	if existing, _ := h.repo.FindByName(cmd.Name); existing != nil {
		return nil, domain.ErrNameTaken
	}

	store := &domain.Store{
		Name:       cmd.Name,
		Location:   cmd.Location,
		IsActive:   true,
		MerchantID: cmd.Actor.ID,
	}

	if err := h.repo.Create(store); err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	return store, nil
}
