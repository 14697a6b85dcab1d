package accounts

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrWeakPassword       = errors.New("password too short")
)
