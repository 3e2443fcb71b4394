package admin

import (
	"context"
	"errors"

	"podstudio/internal/cache"
	"podstudio/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	studios  StudioRepository
	bookings BookingRepository
	slots    *cache.AvailabilityCache
}

func NewService(studios StudioRepository, bookings BookingRepository, slots *cache.AvailabilityCache) *Service {
	return &Service{
		studios:  studios,
		bookings: bookings,
		slots:    slots,
	}
}

// ListPendingStudios returns the moderation queue.
func (s *Service) ListPendingStudios(ctx context.Context) ([]domain.Studio, error) {
	return s.studios.GetPending(ctx)
}

// ApproveStudio makes the studio bookable and publicly listed.
func (s *Service) ApproveStudio(ctx context.Context, studioID int64) error {
	return s.setApproved(ctx, studioID, true)
}

// RejectStudio keeps (or puts back) the studio out of the public catalog.
func (s *Service) RejectStudio(ctx context.Context, studioID int64) error {
	return s.setApproved(ctx, studioID, false)
}

func (s *Service) setApproved(ctx context.Context, studioID int64, approved bool) error {
	if err := s.studios.SetApproved(ctx, studioID, approved); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudioNotFound
		}
		return err
	}
	return nil
}

// ListBookings returns every booking, newest first.
func (s *Service) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.GetAll(ctx)
}

// DeleteBooking removes the booking and flips its hours back to available
// on the existing (studio, date) record. The restore is an in-place update;
// it never inserts a second availability record for the same date.
func (s *Service) DeleteBooking(ctx context.Context, bookingID int64) error {
	deleted, err := s.bookings.DeleteWithRestore(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	s.slots.Invalidate(ctx, deleted.StudioID)
	return nil
}
