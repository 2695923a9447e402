// Package common defines shared constants and sentinel errors used across
// the marketplace backend layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal        = errors.New("internal error")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrConflict          = errors.New("conflict")
	ErrBadRequest        = errors.New("bad request")
	ErrPasswordPolicy    = errors.New("password shorter than 6 characters")
	ErrCorruptCredential = errors.New("corrupt credential hash")

	// Token lifecycle errors.
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
