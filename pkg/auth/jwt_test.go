package auth

import (
	"errors"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateAccessToken(42, "merchant")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Role != "merchant" {
		t.Errorf("expected role merchant, got %s", claims.Role)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("expected access token type, got %s", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("expected a jti to be set")
	}
}

func TestExpiredToken(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken(1, "clerk")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := m.ValidateToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got: %v", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	m := NewTokenManager("secret-a", time.Hour, 24*time.Hour)
	other := NewTokenManager("secret-b", time.Hour, 24*time.Hour)

	token, err := m.GenerateAccessToken(1, "admin")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := other.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got: %v", err)
	}
}

func TestRefreshTokenTypeEnforced(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, 24*time.Hour)

	access, err := m.GenerateAccessToken(7, "admin")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := m.ValidateRefreshToken(access); !errors.Is(err, ErrWrongTokenType) {
		t.Errorf("expected ErrWrongTokenType for access token, got: %v", err)
	}

	refresh, err := m.GenerateRefreshToken(7, "admin")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	claims, err := m.ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("refresh validate failed: %v", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		t.Errorf("expected refresh token type, got %s", claims.TokenType)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, 24*time.Hour)

	if _, err := m.ValidateToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got: %v", err)
	}
}
