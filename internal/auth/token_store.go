package auth

import (
	"context"
	"time"

	"cms/internal/cache"
)

const (
	refreshBlacklistPrefix = "blacklist:refresh_token:"
	accessBlacklistPrefix  = "blacklist:access_token:"
)

// TokenStoreInterface defines the blacklist marker operations.
type TokenStoreInterface interface {
	BlacklistRefreshToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRefreshTokenBlacklisted(ctx context.Context, tokenID string) bool
	BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsAccessTokenBlacklisted(ctx context.Context, tokenID string) bool
}

// TokenStore keeps blacklist markers in Redis with the token's remaining TTL.
// It is a cache in front of the refresh_tokens table, not the source of truth;
// markers for missing or unreachable Redis read as "not blacklisted".
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// BlacklistRefreshToken marks a refresh token as blacklisted until it expires.
func (s *TokenStore) BlacklistRefreshToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.cache.Set(ctx, refreshBlacklistPrefix+tokenID, []byte("1"), ttl)
}

// IsRefreshTokenBlacklisted checks the refresh token blacklist marker.
func (s *TokenStore) IsRefreshTokenBlacklisted(ctx context.Context, tokenID string) bool {
	data, _ := s.cache.Get(ctx, refreshBlacklistPrefix+tokenID)
	return data != nil
}

// BlacklistAccessToken marks an access token as blacklisted until it expires.
func (s *TokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.cache.Set(ctx, accessBlacklistPrefix+tokenID, []byte("1"), ttl)
}

// IsAccessTokenBlacklisted checks the access token blacklist marker.
func (s *TokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) bool {
	data, _ := s.cache.Get(ctx, accessBlacklistPrefix+tokenID)
	return data != nil
}
