package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cms/internal/model"
)

// TokenRepository defines outstanding refresh token persistence operations.
type TokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByJTI(ctx context.Context, jti string) (*model.RefreshToken, error)
	FindOutstandingByUser(ctx context.Context, userID uint) ([]model.RefreshToken, error)
	Blacklist(ctx context.Context, jti string) error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository builds a GORM-backed repository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) FindByJTI(ctx context.Context, jti string) (*model.RefreshToken, error) {
	var token model.RefreshToken
	if err := r.db.WithContext(ctx).Where("jti = ?", jti).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// FindOutstandingByUser returns the user's refresh tokens that have not been
// blacklisted yet, expired ones included so logout can retire them too.
func (r *tokenRepository) FindOutstandingByUser(ctx context.Context, userID uint) ([]model.RefreshToken, error) {
	var tokens []model.RefreshToken
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND blacklisted_at IS NULL", userID).
		Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

// Blacklist stamps the token's terminal state. Idempotent.
func (r *tokenRepository) Blacklist(ctx context.Context, jti string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("jti = ? AND blacklisted_at IS NULL", jti).
		Update("blacklisted_at", &now).Error
}
