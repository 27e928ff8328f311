package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
	"github.com/myduka/myduka-backend/pkg/auth"
)

type contextKey string

const (
	ActorKey  contextKey = "actor"
	ClaimsKey contextKey = "claims"
)

// Authenticator validates bearer tokens, rejects blacklisted ones and resolves
// the live user row so deactivation takes effect before token expiry.
type Authenticator struct {
	tokens    *auth.TokenManager
	blacklist auth.Blacklist
	users     userdomain.UserRepository
}

// NewAuthenticator creates a new authenticator
func NewAuthenticator(tokens *auth.TokenManager, blacklist auth.Blacklist, users userdomain.UserRepository) *Authenticator {
	return &Authenticator{tokens: tokens, blacklist: blacklist, users: users}
}

// Authenticate validates the JWT and stores the actor and claims in context
func (a *Authenticator) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusBadRequest, "Invalid authorization header format")
			return
		}

		claims, err := a.tokens.ValidateToken(parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		if claims.TokenType != auth.TokenTypeAccess {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		revoked, err := a.blacklist.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to verify token")
			return
		}
		if revoked {
			respondError(w, http.StatusUnauthorized, "Token has been revoked")
			return
		}

		user, err := a.findUser(r.Context(), claims.UserID)
		if err != nil || !user.IsActive {
			respondError(w, http.StatusUnauthorized, "Account not available")
			return
		}

		ctx := context.WithValue(r.Context(), ActorKey, user.Actor())
		ctx = context.WithValue(ctx, ClaimsKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// contextFinder is implemented by the traced user repository so the lookup
// span lands under the request span.
type contextFinder interface {
	FindByIDWithContext(ctx context.Context, id uint) (*userdomain.User, error)
}

func (a *Authenticator) findUser(ctx context.Context, id uint) (*userdomain.User, error) {
	if finder, ok := a.users.(contextFinder); ok {
		return finder.FindByIDWithContext(ctx, id)
	}
	return a.users.FindByID(id)
}

// RequireRoles authenticates and then checks the caller's role against the
// endpoint's allowed set
func (a *Authenticator) RequireRoles(roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return a.Authenticate(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				respondError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			for _, role := range roles {
				if actor.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			respondError(w, http.StatusForbidden, "Access denied for role "+actor.Role)
		})
	}
}

// ActorFromContext extracts the authenticated actor from the request context
func ActorFromContext(ctx context.Context) (userdomain.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(userdomain.Actor)
	return actor, ok
}

// ClaimsFromContext extracts the validated token claims from the request context
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims, ok
}

// Helper function for error responses
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
