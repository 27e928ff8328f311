package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blacklist tracks revoked token identifiers until their natural expiry.
// Logout revokes the presented token's jti; every authenticated request is
// checked against the blacklist.
type Blacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisBlacklist implements Blacklist backed by Redis, so revocations survive
// restarts and are shared across replicas.
type RedisBlacklist struct {
	client *redis.Client
}

// NewRedisBlacklist creates a new Redis-backed blacklist
func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client}
}

func blacklistKey(jti string) string {
	return fmt.Sprintf("blacklist:%s", jti)
}

// Revoke marks a token id as revoked for the remaining token lifetime
func (b *RedisBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired, nothing to track
		return nil
	}
	if err := b.client.Set(ctx, blacklistKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token id has been revoked
func (b *RedisBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return n > 0, nil
}

// MemoryBlacklist is an in-process Blacklist used when Redis is not configured
// and in tests.
type MemoryBlacklist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

// NewMemoryBlacklist creates a new in-memory blacklist
func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{revoked: make(map[string]time.Time)}
}

func (b *MemoryBlacklist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (b *MemoryBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.RLock()
	expiry, ok := b.revoked[jti]
	b.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		b.mu.Lock()
		delete(b.revoked, jti)
		b.mu.Unlock()
		return false, nil
	}
	return true, nil
}
