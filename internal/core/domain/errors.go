package domain

import "errors"

var (
	// ErrUnauthorized means the caller presented no identity or an invalid one.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the caller is authenticated but lacks the required role.
	ErrForbidden = errors.New("forbidden")

	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")

	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrStoreUnavailable tags adapter-level I/O failures so callers can
	// distinguish them from domain outcomes without inspecting driver errors.
	ErrStoreUnavailable = errors.New("store unavailable")
)
