// Package apperr holds the error categories services wrap their failures in.
// The API layer maps each category onto one HTTP status.
package apperr

import "errors"

var (
	ErrInvalid      = errors.New("invalid request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
