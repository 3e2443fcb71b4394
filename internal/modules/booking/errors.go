package booking

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrStudioNotFound   = errors.New("studio not found or not approved")
	ErrInvalidPackage   = errors.New("invalid package selection")
	ErrInvalidAddon     = errors.New("invalid addon selection")
	ErrNoAvailability   = errors.New("no availability for this date")
	ErrSlotsUnavailable = errors.New("one or more of the selected hours are not available")
)
