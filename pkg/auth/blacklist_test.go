package auth

import (
	"context"
	"testing"
	"time"
)

func TestMemoryBlacklistRevoke(t *testing.T) {
	b := NewMemoryBlacklist()
	ctx := context.Background()

	revoked, err := b.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if revoked {
		t.Error("fresh jti must not be revoked")
	}

	if err := b.Revoke(ctx, "jti-1", time.Hour); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	revoked, err = b.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !revoked {
		t.Error("expected jti-1 to be revoked")
	}
}

func TestMemoryBlacklistExpiry(t *testing.T) {
	b := NewMemoryBlacklist()
	ctx := context.Background()

	// Non-positive TTL means the token already expired on its own
	if err := b.Revoke(ctx, "jti-expired", 0); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	revoked, err := b.IsRevoked(ctx, "jti-expired")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if revoked {
		t.Error("expired token must not be tracked")
	}

	if err := b.Revoke(ctx, "jti-short", time.Millisecond); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	revoked, err = b.IsRevoked(ctx, "jti-short")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if revoked {
		t.Error("revocation must lapse after the TTL")
	}
}
