package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/MateoKaloshi/MotoLine/internal/repository"
	"github.com/redis/go-redis/v9"
)

const revokedTokenKeyPrefix = "revoked_token:"

// revokedTokenRepository keeps logged-out tokens in Redis so revocation
// survives process restarts and is shared across instances. Keys expire
// together with the token itself.
type revokedTokenRepository struct {
	client *redis.Client
}

func NewRevokedTokenRepository(client *redis.Client) repository.RevokedTokenRepository {
	return &revokedTokenRepository{client: client}
}

func (r *revokedTokenRepository) key(token string) string {
	// Tokens are hashed so the raw credential never sits in Redis.
	sum := sha256.Sum256([]byte(token))
	return revokedTokenKeyPrefix + hex.EncodeToString(sum[:])
}

func (r *revokedTokenRepository) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if err := r.client.Set(ctx, r.key(token), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store revoked token: %w", err)
	}
	return nil
}

func (r *revokedTokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := r.client.Get(ctx, r.key(token)).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return true, nil
}
