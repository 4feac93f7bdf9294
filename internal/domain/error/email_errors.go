// Package error defines domain-specific errors for the piggybank application.
package error

import "errors"

// Email delivery errors.
var (
	// ErrPermanentEmailFailure is returned when sending failed and a retry
	// cannot succeed (rejected recipient, invalid payload).
	ErrPermanentEmailFailure = errors.New("permanent email failure")

	// ErrTemporaryEmailFailure is returned when sending failed but a retry
	// may succeed (rate limit, provider outage).
	ErrTemporaryEmailFailure = errors.New("temporary email failure")
)
