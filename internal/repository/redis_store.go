package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	revokedTokenPrefix = "auth:revoked:"
	rateLimitPrefix    = "ratelimit:"
)

// RedisStore keeps short-lived auth state: revoked token ids and rate-limit windows.
// A nil client turns every operation into a no-op.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore constructs a RedisStore.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

// Enabled reports whether a Redis client is configured.
func (s *RedisStore) Enabled() bool {
	return s != nil && s.client != nil
}

// RevokeToken marks jti revoked until ttl elapses. Non-positive ttl means the token has
// already expired and nothing is stored.
func (s *RedisStore) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if !s.Enabled() || jti == "" || ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedTokenPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis revoke token: %w", err)
	}
	return nil
}

// IsTokenRevoked reports whether jti was revoked.
func (s *RedisStore) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	if !s.Enabled() || jti == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, revokedTokenPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("redis check revoked token: %w", err)
	}
	return n > 0, nil
}

// Allow records one hit for key in a sliding window and reports whether the hit count,
// including this one, is within limit.
func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if !s.Enabled() || limit <= 0 {
		return true, nil
	}
	now := s.now()
	redisKey := rateLimitPrefix + key
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	var card *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, redisKey, "0", cutoff)
		pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
		card = pipe.ZCard(ctx, redisKey)
		pipe.Expire(ctx, redisKey, window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("redis rate limit %s: %w", key, err)
	}
	return card.Val() <= int64(limit), nil
}
