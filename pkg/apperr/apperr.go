// Package apperr defines the error taxonomy shared by services and
// controllers. Services return these sentinels (optionally wrapped);
// controllers map them onto HTTP status codes in one place.
package apperr

import "errors"

var (
	// ErrDuplicateUsername — registration attempted with a taken username.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials — unknown username or wrong password. One
	// sentinel for both so the two cases are indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthorized — missing or stale session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden — authenticated, but not the owner of the record.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound — referenced record does not exist.
	ErrNotFound = errors.New("not found")
)
