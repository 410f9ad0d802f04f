package services

import "errors"

// Error kinds surfaced by the service layer. Handlers map these onto HTTP
// statuses; everything else bubbling out of a service is treated as an
// internal error.
var (
	// ErrNotFound covers both a missing record and a record owned by
	// someone else, so existence never leaks across accounts.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict signals a unique-field collision (duplicate email).
	ErrConflict = errors.New("resource already exists")

	// ErrInvalidCredentials merges "no such user" and "wrong password"
	// to avoid user enumeration on login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthorized signals a failed secondary credential check, e.g.
	// the current password supplied for a password change is wrong.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBadRequest signals an empty or malformed payload, or a
	// persistence failure deliberately downgraded to a client error.
	ErrBadRequest = errors.New("bad request")
)
