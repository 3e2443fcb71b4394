package booking

import (
	"context"

	"podstudio/internal/domain"
	"podstudio/internal/repository"
)

// BookingRepository is the slice of booking storage the engine needs.
type BookingRepository interface {
	CreateWithReservation(ctx context.Context, b *domain.Booking) error
	GetByCustomer(ctx context.Context, customerID int64) ([]repository.CustomerBookingRow, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]repository.OwnerBookingRow, error)
}

// StudioRepository reads catalog data for validation and pricing.
type StudioRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
}

// AvailabilityRepository reads the slot state for the pre-commit check.
type AvailabilityRepository interface {
	GetByStudioDate(ctx context.Context, studioID int64, date string) (*domain.Availability, error)
}

// UserRepository resolves the emails the confirmation goes to.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
