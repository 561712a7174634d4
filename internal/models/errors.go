package models

import "errors"

// Rejection kinds returned by repository operations. Callers match with
// errors.Is; the presentation layer maps each kind to a user-facing message.
var (
	ErrValidation         = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleMismatch       = errors.New("account role does not match login type")
	ErrNotFound           = errors.New("not found")
	ErrNotAvailable       = errors.New("car is not available")
	ErrCarInUse           = errors.New("car is currently rented")
	ErrNotRented          = errors.New("car is not rented")
	ErrNotRenter          = errors.New("car is rented by another user")
)
