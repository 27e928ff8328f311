package query

import (
	"github.com/myduka/myduka-backend/internal/store/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// GetStoreQuery represents the query to get a store by ID
type GetStoreQuery struct {
	Actor   userdomain.Actor
	StoreID uint
}

// GetStoreHandler handles get store query
type GetStoreHandler struct {
	repo domain.StoreRepository
}

// NewGetStoreHandler creates a new get store handler
func NewGetStoreHandler(repo domain.StoreRepository) *GetStoreHandler {
	return &GetStoreHandler{repo: repo}
}

// Handle executes the get store query. The merchant sees every store; admins
// and clerks only the store they belong to.
func (h *GetStoreHandler) Handle(q GetStoreQuery) (*domain.Store, error) {
	store, err := h.repo.FindByID(q.StoreID)
	if err != nil {
		return nil, err
	}

	if q.Actor.Role != userdomain.RoleMerchant && !q.Actor.InStore(q.StoreID) {
		return nil, userdomain.ErrForbidden
	}
	return store, nil
}
