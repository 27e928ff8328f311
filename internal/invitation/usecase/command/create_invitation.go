package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/myduka/myduka-backend/internal/invitation/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
	"github.com/myduka/myduka-backend/pkg/auth"
	"github.com/myduka/myduka-backend/pkg/logger"
	"github.com/myduka/myduka-backend/pkg/mailer"
)

// CreateInvitationCommand represents a merchant inviting an admin by email
type CreateInvitationCommand struct {
	Actor   userdomain.Actor
	Email   string `json:"email"`
	StoreID *uint  `json:"store_id,omitempty"`
}

// CreateInvitationHandler handles admin invitation creation
type CreateInvitationHandler struct {
	invitations domain.InvitationRepository
	users       userdomain.UserRepository
	mail        mailer.Mailer
	frontendURL string
	expiry      time.Duration
}

// NewCreateInvitationHandler creates a new create invitation handler
func NewCreateInvitationHandler(
	invitations domain.InvitationRepository,
	users userdomain.UserRepository,
	mail mailer.Mailer,
	frontendURL string,
	expiry time.Duration,
) *CreateInvitationHandler {
	return &CreateInvitationHandler{
		invitations: invitations,
		users:       users,
		mail:        mail,
		frontendURL: frontendURL,
		expiry:      expiry,
	}
}

// Handle issues a single-use tokenized invitation and emails the registration
// link. The invitation is persisted even if the email bounces, so it can be
// resent or the link shared out of band.
func (h *CreateInvitationHandler) Handle(ctx context.Context, cmd CreateInvitationCommand) (*domain.Invitation, error) {
	if cmd.Actor.Role != userdomain.RoleMerchant {
		return nil, userdomain.ErrForbidden
	}
	if !auth.ValidateEmail(cmd.Email) {
		return nil, fmt.Errorf("invalid email address")
	}

	if _, err := h.users.FindByEmail(cmd.Email); err == nil {
		return nil, userdomain.ErrEmailTaken
	} else if !errors.Is(err, userdomain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	invitation := &domain.Invitation{
		Email:     cmd.Email,
		Token:     uuid.NewString(),
		InvitedBy: cmd.Actor.ID,
		StoreID:   cmd.StoreID,
		ExpiresAt: time.Now().Add(h.expiry),
	}

	if err := h.invitations.Create(invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	link := fmt.Sprintf("%s/register/admin?token=%s", h.frontendURL, invitation.Token)
	validHours := int(h.expiry.Hours())
	if err := h.mail.SendAdminInvitation(cmd.Email, link, validHours); err != nil {
		logger.Error(ctx).
			Err(err).
			Str("email", cmd.Email).
			Msg("Failed to send invitation email")
	}

	return invitation, nil
}
