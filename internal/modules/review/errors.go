package review

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("studio not found")
	ErrAlreadyExists = errors.New("review already exists")
	ErrNotBooked     = errors.New("no booking for this studio")
)
