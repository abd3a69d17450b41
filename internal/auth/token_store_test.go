package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"cms/internal/cache"
)

func newTestStore(t *testing.T) (*TokenStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewTokenStore(cache.NewFromClient(client)), mr
}

func TestTokenStore_RefreshTokenBlacklist(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	assert.False(t, store.IsRefreshTokenBlacklisted(ctx, "jti-1"))

	assert.NoError(t, store.BlacklistRefreshToken(ctx, "jti-1", time.Hour))
	assert.True(t, store.IsRefreshTokenBlacklisted(ctx, "jti-1"))
	assert.False(t, store.IsRefreshTokenBlacklisted(ctx, "jti-2"))

	mr.FastForward(2 * time.Hour)
	assert.False(t, store.IsRefreshTokenBlacklisted(ctx, "jti-1"))
}

func TestTokenStore_AccessTokenBlacklist(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	assert.NoError(t, store.BlacklistAccessToken(ctx, "jti-1", AccessTokenExpiry))
	assert.True(t, store.IsAccessTokenBlacklisted(ctx, "jti-1"))

	// markers for the two token kinds do not collide
	assert.False(t, store.IsRefreshTokenBlacklisted(ctx, "jti-1"))

	mr.FastForward(AccessTokenExpiry + time.Minute)
	assert.False(t, store.IsAccessTokenBlacklisted(ctx, "jti-1"))
}

func TestTokenStore_UnreachableRedisFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewTokenStore(cache.NewFromClient(client))
	ctx := context.Background()

	assert.NoError(t, store.BlacklistAccessToken(ctx, "jti-1", time.Hour))
	mr.Close()

	// a dead Redis reads as "not blacklisted" rather than erroring
	assert.False(t, store.IsAccessTokenBlacklisted(ctx, "jti-1"))
	assert.NoError(t, store.BlacklistAccessToken(ctx, "jti-2", time.Hour))
}
