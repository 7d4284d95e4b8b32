package model

import "errors"

// Common errors used across the application
var (
	// Login errors
	ErrNotRegistered   = errors.New("phone number is not on the allow-list")
	ErrWrongCode       = errors.New("verification code does not match")
	ErrNoPendingCode   = errors.New("no code has been issued for this session")
	ErrTooManyAttempts = errors.New("too many failed attempts, try again later")

	// Session errors
	ErrInvalidSession  = errors.New("invalid or expired session")
	ErrUnauthenticated = errors.New("login required")

	// Admin errors
	ErrWrongAdminPassword = errors.New("incorrect admin password")
	ErrAdminRequired      = errors.New("admin authorization required")

	// Store errors
	ErrStoreUnavailable     = errors.New("record store is unavailable")
	ErrStoreCorrupt         = errors.New("record store contents are malformed")
	ErrAllowListUnavailable = errors.New("allow-list is unavailable")
)
