// Package adapter defines interfaces that are implemented in the integration
// layer.
package adapter

import (
	"context"
	"time"
)

// TokenPair holds an access/refresh token pair issued at login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims represents the validated claims extracted from a token.
type TokenClaims struct {
	UserID    uint
	Email     string
	ExpiresAt time.Time
}

// TokenService defines the interface for issuing and validating credentials.
// The authorization layer consumes it to resolve a caller's identity; it never
// inspects tokens itself.
type TokenService interface {
	// GenerateTokenPair issues a new access and refresh token pair and
	// persists the refresh token for later invalidation.
	GenerateTokenPair(ctx context.Context, userID uint, email string) (*TokenPair, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// ValidateRefreshToken validates a refresh token and returns its claims.
	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)

	// InvalidateRefreshToken revokes a refresh token.
	InvalidateRefreshToken(ctx context.Context, token string) error

	// IsRefreshTokenValid reports whether a refresh token is still accepted.
	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)
}
