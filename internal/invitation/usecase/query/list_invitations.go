package query

import (
	"github.com/myduka/myduka-backend/internal/invitation/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// ListInvitationsQuery represents listing sent invitations
type ListInvitationsQuery struct {
	Actor  userdomain.Actor
	Limit  int
	Offset int
}

// ListInvitationsHandler handles invitation listing
type ListInvitationsHandler struct {
	invitations domain.InvitationRepository
}

// NewListInvitationsHandler creates a new list invitations handler
func NewListInvitationsHandler(invitations domain.InvitationRepository) *ListInvitationsHandler {
	return &ListInvitationsHandler{invitations: invitations}
}

// Handle lists the invitations the merchant has sent
func (h *ListInvitationsHandler) Handle(q ListInvitationsQuery) ([]domain.Invitation, error) {
	if q.Actor.Role != userdomain.RoleMerchant {
		return nil, userdomain.ErrForbidden
	}
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return h.invitations.FindByInviter(q.Actor.ID, limit, q.Offset)
}
