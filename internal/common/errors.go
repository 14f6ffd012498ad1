// Package common defines shared constants and sentinel errors used across
// the eTuitionBD client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Auth errors.
	ErrCredential     = errors.New("invalid credentials")
	ErrSessionExpired = errors.New("session expired")

	// Client-side validation errors (request never leaves the process).
	ErrValidation = errors.New("validation error")

	// Transport / backend errors.
	ErrUnavailable = errors.New("server unavailable")
	ErrServer      = errors.New("server error")
	ErrNotFound    = errors.New("not found")
)
