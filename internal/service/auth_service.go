package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"cms/internal/auth"
	"cms/internal/errors"
	"cms/internal/logging"
	"cms/internal/model"
	"cms/internal/repository"
)

// TokenPair is the access + refresh token pair issued at login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, user *model.User, accessJTI string) error
}

type authService struct {
	userRepo   repository.UserRepository
	tokenRepo  repository.TokenRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Login verifies credentials and issues a token pair. The refresh token is
// persisted as an outstanding row so logout can retire it later. is_active is
// not consulted here; the historical contract issues tokens regardless.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	users, err := s.userRepo.FindAllByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if len(users) == 0 {
		return nil, errors.NewValidation(fmt.Sprintf("Incorrect Email:%s", email))
	}
	if len(users) > 1 {
		// Duplicate rows behind the unique index mean corrupted data.
		return nil, errors.NewValidation("Multiple entries found")
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.NewValidation("Incorrect password")
	}

	_, accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshJTI, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	outstanding := &model.RefreshToken{
		JTI:       refreshJTI,
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(auth.RefreshTokenExpiry),
	}
	if err := s.tokenRepo.Create(ctx, outstanding); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{Access: accessToken, Refresh: refreshToken}, nil
}

// Refresh validates a refresh token and returns a new access token. A token
// that was blacklisted at logout or has expired is rejected.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.ID == "" {
		return "", errors.ErrInvalidRefreshToken
	}

	if s.tokenStore.IsRefreshTokenBlacklisted(ctx, claims.ID) {
		return "", errors.ErrInvalidRefreshToken
	}

	outstanding, err := s.tokenRepo.FindByJTI(ctx, claims.ID)
	if err != nil {
		return "", errors.ErrInvalidRefreshToken
	}
	if outstanding.Blacklisted() || time.Now().After(outstanding.ExpiresAt) {
		return "", errors.ErrInvalidRefreshToken
	}

	_, accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout blacklists every outstanding refresh token of the user, skipping rows
// whose stored token no longer parses, then retires the caller's access token
// so the session ends immediately.
func (s *authService) Logout(ctx context.Context, user *model.User, accessJTI string) error {
	outstanding, err := s.tokenRepo.FindOutstandingByUser(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("list outstanding tokens: %w", err)
	}
	if len(outstanding) == 0 {
		return errors.ErrNoOutstandingTokens
	}

	for _, token := range outstanding {
		if _, err := s.jwtService.ValidateToken(token.Token); err != nil {
			logging.L().WithField("jti", token.JTI).Debug("skipping invalid refresh token at logout")
			continue
		}
		if err := s.tokenRepo.Blacklist(ctx, token.JTI); err != nil {
			return fmt.Errorf("blacklist refresh token: %w", err)
		}
		_ = s.tokenStore.BlacklistRefreshToken(ctx, token.JTI, time.Until(token.ExpiresAt))
	}

	if accessJTI != "" {
		_ = s.tokenStore.BlacklistAccessToken(ctx, accessJTI, auth.AccessTokenExpiry)
	}
	return nil
}
