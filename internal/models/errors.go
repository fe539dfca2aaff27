package models

import "errors"

// Sentinel errors shared across services. Controllers translate them into
// HTTP statuses at the boundary; nothing below the controller layer knows
// about status codes.
var (
	ErrValidation         = errors.New("missing or invalid field")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrTokenExpired       = errors.New("token has expired")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrCityNotFound       = errors.New("city not found")
	ErrFavoriteExists     = errors.New("city already in favorites")
	ErrFavoriteNotFound   = errors.New("city not found in favorites")
)
