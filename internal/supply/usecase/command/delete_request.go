package command

import (
	"github.com/myduka/myduka-backend/internal/supply/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// DeleteRequestCommand represents removing a supply request
type DeleteRequestCommand struct {
	Actor     userdomain.Actor
	RequestID uint
}

// DeleteRequestHandler handles supply request deletion
type DeleteRequestHandler struct {
	requests domain.SupplyRequestRepository
}

// NewDeleteRequestHandler creates a new delete request handler
func NewDeleteRequestHandler(requests domain.SupplyRequestRepository) *DeleteRequestHandler {
	return &DeleteRequestHandler{requests: requests}
}

// Handle deletes a supply request. Merchant only.
func (h *DeleteRequestHandler) Handle(cmd DeleteRequestCommand) error {
	if cmd.Actor.Role != userdomain.RoleMerchant {
		return userdomain.ErrForbidden
	}
	if _, err := h.requests.FindByID(cmd.RequestID); err != nil {
		return err
	}
	return h.requests.Delete(cmd.RequestID)
}
