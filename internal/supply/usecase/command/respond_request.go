package command

import (
	"context"
	"time"

	"github.com/myduka/myduka-backend/internal/supply/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
	"github.com/myduka/myduka-backend/kafka"
	"github.com/myduka/myduka-backend/pkg/logger"
)

// EventPublisher publishes supply events. Optional; a down broker must not
// block approvals.
type EventPublisher interface {
	PublishSupplyResponded(ctx context.Context, event kafka.SupplyRespondedEvent) error
}

// RespondRequestCommand represents an admin resolving a pending request
type RespondRequestCommand struct {
	Actor     userdomain.Actor
	RequestID uint
	Status    string `json:"status"`
}

// RespondRequestHandler handles supply request approval and decline
type RespondRequestHandler struct {
	requests  domain.SupplyRequestRepository
	publisher EventPublisher
}

// NewRespondRequestHandler creates a new respond request handler. publisher
// may be nil when no broker is configured.
func NewRespondRequestHandler(requests domain.SupplyRequestRepository, publisher EventPublisher) *RespondRequestHandler {
	return &RespondRequestHandler{requests: requests, publisher: publisher}
}

// Handle marks a pending request approved or declined. Only the admin of the
// request's store may resolve it; resolved requests stay resolved.
func (h *RespondRequestHandler) Handle(ctx context.Context, cmd RespondRequestCommand) (*domain.SupplyRequest, error) {
	if cmd.Status != domain.StatusApproved && cmd.Status != domain.StatusDeclined {
		return nil, domain.ErrBadStatus
	}

	request, err := h.requests.FindByID(cmd.RequestID)
	if err != nil {
		return nil, err
	}

	if cmd.Actor.Role != userdomain.RoleAdmin {
		return nil, userdomain.ErrForbidden
	}
	if !cmd.Actor.InStore(request.StoreID) {
		return nil, userdomain.ErrForbidden
	}

	if !request.IsPending() {
		return nil, domain.ErrRequestClosed
	}

	now := time.Now()
	request.Status = cmd.Status
	request.RespondedBy = &cmd.Actor.ID
	request.RespondedAt = &now

	if err := h.requests.Update(request); err != nil {
		return nil, err
	}

	if h.publisher != nil {
		event := kafka.SupplyRespondedEvent{
			RequestID:   request.ID,
			ProductID:   request.ProductID,
			StoreID:     request.StoreID,
			Status:      request.Status,
			RespondedBy: cmd.Actor.ID,
		}
		if err := h.publisher.PublishSupplyResponded(ctx, event); err != nil {
			logger.Error(ctx).
				Err(err).
				Uint("request_id", request.ID).
				Msg("Failed to publish supply responded event")
		}
	}

	return request, nil
}
