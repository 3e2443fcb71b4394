package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrNotVerified        = errors.New("email not verified")
	ErrInvalidOTP         = errors.New("invalid or expired code")
	ErrUserNotFound       = errors.New("user not found")
)
