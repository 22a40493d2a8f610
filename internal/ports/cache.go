package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenRevocationStore keeps revocation markers with token-aligned TTL.
// This allows immediate revocation semantics without a database read on every
// token validation.
type TokenRevocationStore interface {
	MarkRevoked(ctx context.Context, tokenID uuid.UUID, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID uuid.UUID) (bool, error)
}

// RouteGuardStore is a short-lived per-idea guard so a double-submitted
// routing request does not race itself before the unique constraint fires.
type RouteGuardStore interface {
	Acquire(ctx context.Context, ideaID uuid.UUID, ttl time.Duration) (bool, error)
	Release(ctx context.Context, ideaID uuid.UUID) error
}
