package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/myduka/myduka-backend/internal/invitation/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
	"github.com/myduka/myduka-backend/pkg/auth"
)

// AcceptInvitationCommand represents redeeming an invitation token to
// register an admin account
type AcceptInvitationCommand struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// AcceptInvitationHandler handles invitation redemption
type AcceptInvitationHandler struct {
	invitations domain.InvitationRepository
	users       userdomain.UserRepository
}

// NewAcceptInvitationHandler creates a new accept invitation handler
func NewAcceptInvitationHandler(invitations domain.InvitationRepository, users userdomain.UserRepository) *AcceptInvitationHandler {
	return &AcceptInvitationHandler{invitations: invitations, users: users}
}

// Handle creates an admin account from a valid, unconsumed invitation and
// marks the invitation used. The email comes from the invitation, not the
// request, so the link only registers the address it was sent to.
func (h *AcceptInvitationHandler) Handle(cmd AcceptInvitationCommand) (*userdomain.User, error) {
	invitation, err := h.invitations.FindByToken(cmd.Token)
	if err != nil {
		return nil, err
	}
	if invitation.IsUsed() {
		return nil, domain.ErrUsed
	}
	if invitation.IsExpired() {
		return nil, domain.ErrExpired
	}

	if cmd.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if !auth.ValidatePassword(cmd.Password) {
		return nil, fmt.Errorf("password must be at least 8 characters with upper, lower, digit and special characters")
	}

	if _, err := h.users.FindByUsername(cmd.Username); err == nil {
		return nil, userdomain.ErrUsernameTaken
	} else if !errors.Is(err, userdomain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if _, err := h.users.FindByEmail(invitation.Email); err == nil {
		return nil, userdomain.ErrEmailTaken
	} else if !errors.Is(err, userdomain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &userdomain.User{
		Username:   cmd.Username,
		Email:      invitation.Email,
		Password:   hashed,
		Role:       userdomain.RoleAdmin,
		IsActive:   true,
		MerchantID: &invitation.InvitedBy,
		StoreID:    invitation.StoreID,
	}

	if err := h.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	now := time.Now()
	invitation.AcceptedAt = &now
	if err := h.invitations.Update(invitation); err != nil {
		return nil, fmt.Errorf("failed to consume invitation: %w", err)
	}

	return user, nil
}
