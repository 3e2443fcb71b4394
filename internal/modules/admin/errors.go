package admin

import "errors"

var (
	ErrStudioNotFound  = errors.New("studio not found")
	ErrBookingNotFound = errors.New("booking not found")
)
