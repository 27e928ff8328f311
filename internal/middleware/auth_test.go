package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
	"github.com/myduka/myduka-backend/pkg/auth"
)

// Mock UserRepository, only FindByID matters for the middleware
type mockUserRepo struct {
	users map[uint]*userdomain.User
}

func newMockUserRepo(users ...*userdomain.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[uint]*userdomain.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) Create(user *userdomain.User) error { return nil }

func (m *mockUserRepo) FindByID(id uint) (*userdomain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, userdomain.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) FindByUsername(username string) (*userdomain.User, error) {
	return nil, userdomain.ErrNotFound
}

func (m *mockUserRepo) FindByEmail(email string) (*userdomain.User, error) {
	return nil, userdomain.ErrNotFound
}

func (m *mockUserRepo) FindAll(limit, offset int) ([]userdomain.User, error) { return nil, nil }

func (m *mockUserRepo) FindByRole(role string, limit, offset int) ([]userdomain.User, error) {
	return nil, nil
}

func (m *mockUserRepo) Update(user *userdomain.User) error { return nil }

func (m *mockUserRepo) Delete(id uint) error { return nil }

func (m *mockUserRepo) CountByRole(role string) (int64, error) { return 0, nil }

func setup(t *testing.T) (*Authenticator, *auth.TokenManager, *auth.MemoryBlacklist) {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", time.Hour, 24*time.Hour)
	blacklist := auth.NewMemoryBlacklist()
	storeID := uint(3)
	users := newMockUserRepo(
		&userdomain.User{ID: 1, Role: userdomain.RoleMerchant, IsActive: true},
		&userdomain.User{ID: 2, Role: userdomain.RoleAdmin, StoreID: &storeID, IsActive: true},
		&userdomain.User{ID: 9, Role: userdomain.RoleClerk, StoreID: &storeID, IsActive: false},
	)
	return NewAuthenticator(tokens, blacklist, users), tokens, blacklist
}

func doRequest(handler http.HandlerFunc, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	authn, tokens, _ := setup(t)
	token, _ := tokens.GenerateAccessToken(1, userdomain.RoleMerchant)

	var gotActor userdomain.Actor
	handler := authn.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		gotActor, _ = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := doRequest(handler, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotActor.ID != 1 || gotActor.Role != userdomain.RoleMerchant {
		t.Errorf("unexpected actor in context: %+v", gotActor)
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	authn, _, _ := setup(t)
	rec := doRequest(authn.Authenticate(okHandler), "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	authn, _, _ := setup(t)
	rec := doRequest(authn.Authenticate(okHandler), "not-a-token")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_RefreshTokenRejected(t *testing.T) {
	authn, tokens, _ := setup(t)
	refresh, _ := tokens.GenerateRefreshToken(1, userdomain.RoleMerchant)
	rec := doRequest(authn.Authenticate(okHandler), refresh)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("refresh tokens must not authenticate requests, got %d", rec.Code)
	}
}

func TestAuthenticate_RevokedToken(t *testing.T) {
	authn, tokens, blacklist := setup(t)
	token, _ := tokens.GenerateAccessToken(1, userdomain.RoleMerchant)
	claims, _ := tokens.ValidateToken(token)
	if err := blacklist.Revoke(context.Background(), claims.ID, time.Hour); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	rec := doRequest(authn.Authenticate(okHandler), token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for revoked token, got %d", rec.Code)
	}
}

func TestAuthenticate_DeactivatedUser(t *testing.T) {
	authn, tokens, _ := setup(t)
	// User 9 holds a valid token but was deactivated since it was issued
	token, _ := tokens.GenerateAccessToken(9, userdomain.RoleClerk)
	rec := doRequest(authn.Authenticate(okHandler), token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for deactivated account, got %d", rec.Code)
	}
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	authn, tokens, _ := setup(t)
	token, _ := tokens.GenerateAccessToken(404, userdomain.RoleClerk)
	rec := doRequest(authn.Authenticate(okHandler), token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for deleted account, got %d", rec.Code)
	}
}

func TestRequireRoles(t *testing.T) {
	authn, tokens, _ := setup(t)
	merchantOnly := authn.RequireRoles(userdomain.RoleMerchant)(okHandler)
	managers := authn.RequireRoles(userdomain.RoleMerchant, userdomain.RoleAdmin)(okHandler)

	merchantToken, _ := tokens.GenerateAccessToken(1, userdomain.RoleMerchant)
	adminToken, _ := tokens.GenerateAccessToken(2, userdomain.RoleAdmin)

	if rec := doRequest(merchantOnly, merchantToken); rec.Code != http.StatusOK {
		t.Errorf("merchant must pass merchant-only, got %d", rec.Code)
	}
	if rec := doRequest(merchantOnly, adminToken); rec.Code != http.StatusForbidden {
		t.Errorf("admin must fail merchant-only, got %d", rec.Code)
	}
	if rec := doRequest(managers, adminToken); rec.Code != http.StatusOK {
		t.Errorf("admin must pass managers, got %d", rec.Code)
	}
}

// mockTracedUserRepo records whether the context-aware lookup was preferred.
type mockTracedUserRepo struct {
	*mockUserRepo
	ctxLookups int
}

func (m *mockTracedUserRepo) FindByIDWithContext(ctx context.Context, id uint) (*userdomain.User, error) {
	m.ctxLookups++
	return m.FindByID(id)
}

func TestAuthenticate_PrefersContextLookup(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour, 24*time.Hour)
	users := &mockTracedUserRepo{
		mockUserRepo: newMockUserRepo(&userdomain.User{ID: 1, Role: userdomain.RoleMerchant, IsActive: true}),
	}
	authn := NewAuthenticator(tokens, auth.NewMemoryBlacklist(), users)

	token, _ := tokens.GenerateAccessToken(1, userdomain.RoleMerchant)
	rec := doRequest(authn.Authenticate(okHandler), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if users.ctxLookups != 1 {
		t.Errorf("expected one context-aware lookup, got %d", users.ctxLookups)
	}
}

func TestRequireRoles_RoleFromLiveUserRow(t *testing.T) {
	authn, tokens, _ := setup(t)
	merchantOnly := authn.RequireRoles(userdomain.RoleMerchant)(okHandler)

	// Token claims merchant but the stored user is an admin; the live row wins
	forged, _ := tokens.GenerateAccessToken(2, userdomain.RoleMerchant)
	if rec := doRequest(merchantOnly, forged); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 when stored role disagrees with claims, got %d", rec.Code)
	}
}
