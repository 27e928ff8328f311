package query

import (
	"github.com/myduka/myduka-backend/internal/user/domain"
)

// GetUserQuery represents the query to get a user by ID
type GetUserQuery struct {
	Actor    domain.Actor
	TargetID uint
}

// GetUserHandler handles get user query
type GetUserHandler struct {
	repo domain.UserRepository
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(repo domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{repo: repo}
}

// Handle executes the get user query. Anyone sees their own account; a
// merchant sees everyone; an admin sees clerks of their own store.
func (h *GetUserHandler) Handle(q GetUserQuery) (*domain.User, error) {
	user, err := h.repo.FindByID(q.TargetID)
	if err != nil {
		return nil, err
	}

	switch {
	case q.Actor.ID == user.ID:
	case q.Actor.Role == domain.RoleMerchant:
	case q.Actor.Role == domain.RoleAdmin && user.IsClerk() && user.StoreID != nil && q.Actor.InStore(*user.StoreID):
	default:
		return nil, domain.ErrForbidden
	}

	return user, nil
}
