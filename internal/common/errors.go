// Package common defines shared constants and sentinel errors used across
// the layers of the site backend. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors. Field-specific details wrap ErrorValidation.
	ErrorValidation      = errors.New("validation error")
	ErrorInvalidCategory = errors.New("invalid image category")

	// Auth errors (malformed, expired or forged token).
	ErrInvalidToken = errors.New("invalid token")
)
