package query

import (
	"github.com/myduka/myduka-backend/internal/user/domain"
)

// ListUsersQuery represents the query to list users
type ListUsersQuery struct {
	Actor  domain.Actor
	Role   string // Optional role filter
	Limit  int
	Offset int
}

// ListUsersHandler handles list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query (merchant only)
func (h *ListUsersHandler) Handle(q ListUsersQuery) ([]domain.User, error) {
	if q.Actor.Role != domain.RoleMerchant {
		return nil, domain.ErrForbidden
	}

	if q.Role != "" {
		if !domain.ValidRole(q.Role) {
			return nil, domain.ErrInvalidRole
		}
		return h.repo.FindByRole(q.Role, q.Limit, q.Offset)
	}
	return h.repo.FindAll(q.Limit, q.Offset)
}
