package query

import (
	"github.com/myduka/myduka-backend/internal/supply/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// GetRequestQuery represents fetching a single supply request
type GetRequestQuery struct {
	Actor     userdomain.Actor
	RequestID uint
}

// GetRequestHandler handles single supply request retrieval
type GetRequestHandler struct {
	requests domain.SupplyRequestRepository
}

// NewGetRequestHandler creates a new get request handler
func NewGetRequestHandler(requests domain.SupplyRequestRepository) *GetRequestHandler {
	return &GetRequestHandler{requests: requests}
}

// Handle returns a supply request visible to the caller
func (h *GetRequestHandler) Handle(q GetRequestQuery) (*domain.SupplyRequest, error) {
	request, err := h.requests.FindByID(q.RequestID)
	if err != nil {
		return nil, err
	}
	if q.Actor.Role != userdomain.RoleMerchant && !q.Actor.InStore(request.StoreID) {
		return nil, userdomain.ErrForbidden
	}
	return request, nil
}
