package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"podstudio/internal/cache"
	"podstudio/internal/domain"
	"podstudio/internal/notification"
	"podstudio/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	studios  StudioRepository
	avail    AvailabilityRepository
	users    UserRepository
	notifs   notification.Sender
	slots    *cache.AvailabilityCache
}

func NewService(
	bookings BookingRepository,
	studios StudioRepository,
	avail AvailabilityRepository,
	users UserRepository,
	notifs notification.Sender,
	slots *cache.AvailabilityCache,
) *Service {
	return &Service{
		bookings: bookings,
		studios:  studios,
		avail:    avail,
		users:    users,
		notifs:   notifs,
		slots:    slots,
	}
}

// CreateBooking validates the request against the catalog and the slot
// state, computes the price snapshot, and commits booking + slot flip as one
// transaction. Validation failures report before any write; a commit-time
// conflict (lost race) surfaces as ErrSlotsUnavailable with no mutation.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	hours, err := normalizeHours(req.Hours)
	if err != nil {
		return nil, err
	}
	if _, err := domain.ParseDate(req.Date); err != nil {
		return nil, ErrValidation
	}

	paymentStatus := domain.PaymentPayAtStudio
	switch req.PaymentStatus {
	case "", string(domain.PaymentPayAtStudio):
	case string(domain.PaymentPaid):
		paymentStatus = domain.PaymentPaid
	default:
		return nil, ErrValidation
	}

	studio, err := s.studios.GetByID(ctx, req.StudioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudioNotFound
		}
		return nil, err
	}
	if !studio.Approved {
		return nil, ErrStudioNotFound
	}

	pkg, ok := studio.PackageByKey(req.PackageKey)
	if !ok {
		return nil, ErrInvalidPackage
	}

	selections, addonTotal, err := validateAddons(studio, req.Addons)
	if err != nil {
		return nil, err
	}

	av, err := s.avail.GetByStudioDate(ctx, req.StudioID, req.Date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAvailability
		}
		return nil, err
	}

	// All requested hours must be present and open. The count comparison is
	// the whole check: fewer matches means at least one hour is taken or
	// was never published for that date.
	open := make(map[int]bool, len(av.Slots))
	for _, slot := range av.Slots {
		if slot.IsAvailable {
			open[slot.Hour] = true
		}
	}
	matched := 0
	for _, h := range hours {
		if open[h] {
			matched++
		}
	}
	if matched != len(hours) {
		return nil, ErrSlotsUnavailable
	}

	total := pkg.Price*float64(len(hours)) + addonTotal
	total = math.Round(total*100) / 100

	b := &domain.Booking{
		Reference:     uuid.NewString(),
		StudioID:      studio.ID,
		CustomerID:    req.CustomerID,
		Date:          req.Date,
		Hours:         hours,
		PackageKey:    pkg.Key,
		PackagePrice:  pkg.Price,
		Addons:        selections,
		TotalPrice:    total,
		PaymentStatus: paymentStatus,
	}

	if err := s.bookings.CreateWithReservation(ctx, b); err != nil {
		if errors.Is(err, repository.ErrSlotConflict) {
			return nil, ErrSlotsUnavailable
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAvailability
		}
		return nil, err
	}

	s.slots.Invalidate(ctx, studio.ID)
	s.dispatchConfirmation(ctx, studio, b)

	return b, nil
}

// dispatchConfirmation is fire-and-forget: a failure is logged and never
// affects the committed booking.
func (s *Service) dispatchConfirmation(ctx context.Context, studio *domain.Studio, b *domain.Booking) {
	if s.notifs == nil {
		return
	}

	summary := notification.BookingSummary{
		Reference:  b.Reference,
		StudioName: studio.Name,
		Date:       b.Date,
		Hours:      b.Hours,
		PackageKey: b.PackageKey,
		TotalPrice: b.TotalPrice,
		Addons:     make(map[string]int, len(b.Addons)),
	}
	for _, a := range b.Addons {
		summary.Addons[a.Key] = a.Quantity
	}

	if customer, err := s.users.GetByID(ctx, b.CustomerID); err == nil {
		summary.CustomerEmail = customer.Email
	}
	if owner, err := s.users.GetByID(ctx, studio.OwnerID); err == nil {
		summary.OwnerEmail = owner.Email
	}

	if err := s.notifs.SendBookingConfirmation(ctx, summary); err != nil {
		log.Warn().Err(err).
			Str("reference", b.Reference).
			Int64("booking_id", b.ID).
			Msg("booking confirmation dispatch failed")
	}
}

func normalizeHours(hours []int) ([]int, error) {
	if len(hours) == 0 {
		return nil, ErrValidation
	}
	seen := make(map[int]bool, len(hours))
	out := make([]int, 0, len(hours))
	for _, h := range hours {
		if h < 0 || h > 23 || seen[h] {
			return nil, ErrValidation
		}
		seen[h] = true
		out = append(out, h)
	}
	sort.Ints(out)
	return out, nil
}

func validateAddons(studio *domain.Studio, selections []AddonSelection) ([]domain.BookingAddon, float64, error) {
	out := make([]domain.BookingAddon, 0, len(selections))
	var total float64
	seen := make(map[string]bool, len(selections))
	for _, sel := range selections {
		if seen[sel.Key] {
			return nil, 0, fmt.Errorf("%w: %s", ErrInvalidAddon, sel.Key)
		}
		seen[sel.Key] = true

		addon, ok := studio.AddonByKey(sel.Key)
		if !ok {
			return nil, 0, fmt.Errorf("%w: %s", ErrInvalidAddon, sel.Key)
		}
		if sel.Quantity < 1 || sel.Quantity > addon.MaxQuantity {
			return nil, 0, fmt.Errorf("%w: %s", ErrInvalidAddon, sel.Key)
		}

		out = append(out, domain.BookingAddon{
			Key:      addon.Key,
			Quantity: sel.Quantity,
			Price:    addon.Price,
		})
		// Add-on price is flat per selection, not per hour.
		total += addon.Price * float64(sel.Quantity)
	}
	return out, total, nil
}

// GetMyBookings lists the customer's bookings, newest first, with the studio
// name and city attached.
func (s *Service) GetMyBookings(ctx context.Context, customerID int64) ([]BookingDetails, error) {
	rows, err := s.bookings.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]BookingDetails, 0, len(rows))
	for _, r := range rows {
		out = append(out, BookingDetails{
			Booking:    r.Booking,
			StudioName: r.StudioName,
			StudioCity: r.StudioCity,
		})
	}
	return out, nil
}

// GetOwnerBookings lists bookings across all studios of the owner, newest
// first, with studio and customer attached.
func (s *Service) GetOwnerBookings(ctx context.Context, ownerID int64) ([]OwnerBookingDetails, error) {
	rows, err := s.bookings.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]OwnerBookingDetails, 0, len(rows))
	for _, r := range rows {
		out = append(out, OwnerBookingDetails{
			Booking:       r.Booking,
			StudioName:    r.StudioName,
			CustomerName:  r.CustomerName,
			CustomerEmail: r.CustomerEmail,
		})
	}
	return out, nil
}
