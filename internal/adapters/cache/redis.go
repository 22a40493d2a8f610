package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func Connect(_ context.Context, redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") {
		opt, parseErr := redis.ParseURL(redisURL)
		if parseErr != nil {
			return nil, fmt.Errorf("parse redis url: %w", parseErr)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

// RedisTokenRevocationStore keeps revocation markers with token-aligned TTL
// so validation can reject revoked subscriber tokens without a DB read.
type RedisTokenRevocationStore struct {
	client *redis.Client
}

func NewRedisTokenRevocationStore(client *redis.Client) *RedisTokenRevocationStore {
	return &RedisTokenRevocationStore{client: client}
}

func (s *RedisTokenRevocationStore) MarkRevoked(ctx context.Context, tokenID uuid.UUID, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		ttl = time.Hour
	}
	return s.client.Set(ctx, "scheduler:revoked:"+tokenID.String(), "1", ttl).Err()
}

func (s *RedisTokenRevocationStore) IsRevoked(ctx context.Context, tokenID uuid.UUID) (bool, error) {
	n, err := s.client.Exists(ctx, "scheduler:revoked:"+tokenID.String()).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RedisRouteGuardStore is a short-lived per-idea mutex so a double-submitted
// routing request fails fast instead of racing to the unique constraint.
type RedisRouteGuardStore struct {
	client *redis.Client
}

func NewRedisRouteGuardStore(client *redis.Client) *RedisRouteGuardStore {
	return &RedisRouteGuardStore{client: client}
}

func (s *RedisRouteGuardStore) Acquire(ctx context.Context, ideaID uuid.UUID, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return s.client.SetNX(ctx, "scheduler:routing:"+ideaID.String(), "1", ttl).Result()
}

func (s *RedisRouteGuardStore) Release(ctx context.Context, ideaID uuid.UUID) error {
	return s.client.Del(ctx, "scheduler:routing:"+ideaID.String()).Err()
}
