package query

import (
	"github.com/myduka/myduka-backend/internal/store/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// ListStoresQuery represents the query to list stores
type ListStoresQuery struct {
	Actor  userdomain.Actor
	Limit  int
	Offset int
}

// ListStoresHandler handles list stores query
type ListStoresHandler struct {
	repo domain.StoreRepository
}

// NewListStoresHandler creates a new list stores handler
func NewListStoresHandler(repo domain.StoreRepository) *ListStoresHandler {
	return &ListStoresHandler{repo: repo}
}

// Handle executes the list stores query. The merchant lists all stores;
// admins and clerks get the single store they belong to.
func (h *ListStoresHandler) Handle(q ListStoresQuery) ([]domain.Store, error) {
	if q.Actor.Role == userdomain.RoleMerchant {
		return h.repo.FindAll(q.Limit, q.Offset)
	}

	if q.Actor.StoreID == nil {
		return []domain.Store{}, nil
	}
	store, err := h.repo.FindByID(*q.Actor.StoreID)
	if err != nil {
		return nil, err
	}
	return []domain.Store{*store}, nil
}
