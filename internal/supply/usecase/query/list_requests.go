package query

import (
	"github.com/myduka/myduka-backend/internal/supply/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// ListRequestsQuery represents listing supply requests
type ListRequestsQuery struct {
	Actor  userdomain.Actor
	Limit  int
	Offset int
}

// ListRequestsHandler handles supply request listing
type ListRequestsHandler struct {
	requests domain.SupplyRequestRepository
}

// NewListRequestsHandler creates a new list requests handler
func NewListRequestsHandler(requests domain.SupplyRequestRepository) *ListRequestsHandler {
	return &ListRequestsHandler{requests: requests}
}

// Handle lists supply requests scoped to the caller: the merchant sees every
// store, admins their store, clerks only their own requests
func (h *ListRequestsHandler) Handle(q ListRequestsQuery) ([]domain.SupplyRequest, error) {
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	switch q.Actor.Role {
	case userdomain.RoleMerchant:
		return h.requests.FindAll(limit, q.Offset)
	case userdomain.RoleAdmin:
		if q.Actor.StoreID == nil {
			return []domain.SupplyRequest{}, nil
		}
		return h.requests.FindByStore(*q.Actor.StoreID, limit, q.Offset)
	case userdomain.RoleClerk:
		return h.requests.FindByClerk(q.Actor.ID, limit, q.Offset)
	default:
		return nil, userdomain.ErrForbidden
	}
}
