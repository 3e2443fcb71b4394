package repository

import "errors"

var (
	// ErrSlotConflict means the conditional slot update touched fewer rows
	// than requested: at least one hour was taken or never published.
	ErrSlotConflict = errors.New("slot conflict")

	// ErrDuplicateDate means a second availability record for the same
	// (studio, date) was rejected by the unique index.
	ErrDuplicateDate = errors.New("duplicate availability date")

	// ErrDuplicateReview means the (studio, user) review already exists.
	ErrDuplicateReview = errors.New("duplicate review")
)
