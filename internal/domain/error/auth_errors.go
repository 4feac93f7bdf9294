// Package error defines domain-specific errors for the piggybank application.
package error

import "errors"

// Authentication domain errors.
var (
	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token has expired")

	// ErrTokenInvalidated is returned when a refresh token has been revoked.
	ErrTokenInvalidated = errors.New("token has been invalidated")
)
