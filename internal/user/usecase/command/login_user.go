package command

import (
	"fmt"

	"github.com/myduka/myduka-backend/internal/user/domain"
	"github.com/myduka/myduka-backend/pkg/auth"
)

// LoginUserCommand represents the command to login a user
type LoginUserCommand struct {
	Email    string
	Password string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *domain.User `json:"user"`
}

// LoginUserHandler handles user login command
type LoginUserHandler struct {
	repo   domain.UserRepository
	tokens *auth.TokenManager
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository, tokens *auth.TokenManager) *LoginUserHandler {
	return &LoginUserHandler{repo: repo, tokens: tokens}
}

// Handle executes the login user command
func (h *LoginUserHandler) Handle(cmd LoginUserCommand) (*LoginResponse, error) {
	if cmd.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if cmd.Password == "" {
		return nil, fmt.Errorf("password is required")
	}

	user, err := h.repo.FindByEmail(cmd.Email)
	if err != nil {
		return nil, domain.ErrBadCredentials
	}

	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, domain.ErrBadCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrInactive
	}

	accessToken, err := h.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := h.tokens.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
