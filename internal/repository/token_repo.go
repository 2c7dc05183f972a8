package repository

import (
	"context"
	"time"
)

// RevokedTokenRepository holds bearer tokens invalidated before their
// natural expiry. Entries carry a TTL equal to the token's remaining
// lifetime, so the set never grows unbounded and survives restarts.
type RevokedTokenRepository interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
