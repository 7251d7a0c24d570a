package domain

import "errors"

// Auth errors
var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("email or password incorrect")
	ErrUserNotFound       = errors.New("user not found")
)

// Persistence errors
var (
	ErrEmailTaken       = errors.New("email already in use")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Validation errors
var (
	ErrValidation = errors.New("validation failed")
	ErrNoFields   = errors.New("at least one field must be provided for update")
)
