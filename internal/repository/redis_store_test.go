package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStoreDisabledIsNoop(t *testing.T) {
	store := NewRedisStore(nil)
	ctx := context.Background()

	assert.False(t, store.Enabled())
	require.NoError(t, store.RevokeToken(ctx, "jti", time.Minute))

	revoked, err := store.IsTokenRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, revoked)

	allowed, err := store.Allow(ctx, "login:127.0.0.1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisStoreSurfacesConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	store := NewRedisStore(client)

	_, err := store.Allow(context.Background(), "login:127.0.0.1", 5, time.Minute)
	assert.Error(t, err)

	_, err = store.IsTokenRevoked(context.Background(), "jti")
	assert.Error(t, err)
}

func TestRedisStoreSkipsExpiredTokens(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	// Nothing is sent to Redis for a token that has already expired.
	assert.NoError(t, NewRedisStore(client).RevokeToken(context.Background(), "jti", 0))
}
