package catalog

import (
	"context"
	"errors"

	"podstudio/internal/cache"
	"podstudio/internal/domain"
	"podstudio/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	studios StudioRepository
	avail   AvailabilityRepository
	slots   *cache.AvailabilityCache
}

func NewService(studios StudioRepository, avail AvailabilityRepository, slots *cache.AvailabilityCache) *Service {
	return &Service{
		studios: studios,
		avail:   avail,
		slots:   slots,
	}
}

// CreateStudio registers a new studio for the owner. It starts unapproved
// and stays invisible to customers until an admin approves it.
func (s *Service) CreateStudio(ctx context.Context, ownerID int64, req StudioRequest) (*domain.Studio, error) {
	studio, err := studioFromRequest(ownerID, req)
	if err != nil {
		return nil, err
	}
	if err := s.studios.Create(ctx, studio); err != nil {
		return nil, err
	}
	return studio, nil
}

// UpdateStudio overwrites attributes and the price list of an owned studio.
// Price changes never touch existing bookings; their totals are snapshots.
func (s *Service) UpdateStudio(ctx context.Context, ownerID, studioID int64, req StudioRequest) (*domain.Studio, error) {
	existing, err := s.getOwned(ctx, ownerID, studioID)
	if err != nil {
		return nil, err
	}

	studio, err := studioFromRequest(ownerID, req)
	if err != nil {
		return nil, err
	}
	studio.ID = existing.ID
	studio.Approved = existing.Approved
	studio.Rating = existing.Rating
	studio.TotalReviews = existing.TotalReviews
	studio.CreatedAt = existing.CreatedAt

	if err := s.studios.Update(ctx, studio); err != nil {
		return nil, err
	}
	return studio, nil
}

// DeleteStudio removes an owned studio with its price list and availability.
func (s *Service) DeleteStudio(ctx context.Context, ownerID, studioID int64) error {
	if _, err := s.getOwned(ctx, ownerID, studioID); err != nil {
		return err
	}
	if err := s.studios.Delete(ctx, studioID); err != nil {
		return err
	}
	s.slots.Invalidate(ctx, studioID)
	return nil
}

// GetStudio returns one studio. Unapproved studios are only visible to
// their owner and to admins.
func (s *Service) GetStudio(ctx context.Context, studioID, viewerID int64, viewerRole string) (*domain.Studio, error) {
	studio, err := s.studios.GetByID(ctx, studioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !studio.Approved && viewerRole != string(domain.RoleAdmin) && studio.OwnerID != viewerID {
		return nil, ErrNotFound
	}
	return studio, nil
}

// ListStudios returns approved studios only.
func (s *Service) ListStudios(ctx context.Context, f repository.StudioFilters) ([]domain.Studio, int64, error) {
	return s.studios.GetApproved(ctx, f)
}

// ListOwnStudios returns every studio of the owner, approved or not.
func (s *Service) ListOwnStudios(ctx context.Context, ownerID int64) ([]domain.Studio, error) {
	return s.studios.GetByOwner(ctx, ownerID)
}

// SetAvailability replaces the studio's published slots. Hours must be
// unique per day and inside the operational window [OpenHour, CloseHour).
func (s *Service) SetAvailability(ctx context.Context, ownerID, studioID int64, req SetAvailabilityRequest) error {
	studio, err := s.getOwned(ctx, ownerID, studioID)
	if err != nil {
		return err
	}

	days := make([]domain.Availability, 0, len(req.Days))
	seenDates := make(map[string]bool, len(req.Days))
	for _, day := range req.Days {
		if _, err := domain.ParseDate(day.Date); err != nil {
			return ErrValidation
		}
		if seenDates[day.Date] {
			return ErrValidation
		}
		seenDates[day.Date] = true

		seenHours := make(map[int]bool, len(day.Slots))
		av := domain.Availability{StudioID: studioID, Date: day.Date}
		for _, slot := range day.Slots {
			if slot.Hour < studio.OpenHour || slot.Hour >= studio.CloseHour {
				return ErrValidation
			}
			if seenHours[slot.Hour] {
				return ErrValidation
			}
			seenHours[slot.Hour] = true
			av.Slots = append(av.Slots, domain.Slot{Hour: slot.Hour, IsAvailable: slot.IsAvailable})
		}
		days = append(days, av)
	}

	if err := s.avail.ReplaceForStudio(ctx, studioID, days); err != nil {
		if errors.Is(err, repository.ErrDuplicateDate) {
			return ErrValidation
		}
		return err
	}
	s.slots.Invalidate(ctx, studioID)
	return nil
}

// GetAvailableSlots projects the studio's availability down to open hours,
// date ascending, omitting dates with nothing left. Served from cache when
// warm; the cache is invalidated on every mutation of the slot state.
func (s *Service) GetAvailableSlots(ctx context.Context, studioID int64) ([]DaySlots, error) {
	if cached, ok := s.slots.Get(ctx, studioID); ok {
		out := make([]DaySlots, 0, len(cached))
		for _, d := range cached {
			out = append(out, DaySlots{Date: d.Date, Hours: d.Hours})
		}
		return out, nil
	}

	records, err := s.avail.GetByStudio(ctx, studioID)
	if err != nil {
		return nil, err
	}

	out := make([]DaySlots, 0, len(records))
	for _, rec := range records {
		hours := rec.AvailableHours()
		if len(hours) == 0 {
			continue
		}
		out = append(out, DaySlots{Date: rec.Date, Hours: hours})
	}

	toCache := make([]cache.DaySlots, 0, len(out))
	for _, d := range out {
		toCache = append(toCache, cache.DaySlots{Date: d.Date, Hours: d.Hours})
	}
	s.slots.Set(ctx, studioID, toCache)

	return out, nil
}

func (s *Service) getOwned(ctx context.Context, ownerID, studioID int64) (*domain.Studio, error) {
	studio, err := s.studios.GetByID(ctx, studioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if studio.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return studio, nil
}

func studioFromRequest(ownerID int64, req StudioRequest) (*domain.Studio, error) {
	if req.CloseHour <= req.OpenHour {
		return nil, ErrValidation
	}

	studio := &domain.Studio{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Equipment:   req.Equipment,
		Images:      req.Images,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		OpenHour:    req.OpenHour,
		CloseHour:   req.CloseHour,
	}

	seen := make(map[string]bool, len(req.Packages))
	for _, p := range req.Packages {
		if seen[p.Key] {
			return nil, ErrValidation
		}
		seen[p.Key] = true
		studio.Packages = append(studio.Packages, domain.Package{
			Key:         p.Key,
			Name:        p.Name,
			Price:       p.Price,
			Description: p.Description,
		})
	}

	seen = make(map[string]bool, len(req.Addons))
	for _, a := range req.Addons {
		if seen[a.Key] {
			return nil, ErrValidation
		}
		seen[a.Key] = true
		studio.Addons = append(studio.Addons, domain.Addon{
			Key:         a.Key,
			Name:        a.Name,
			Price:       a.Price,
			Description: a.Description,
			MaxQuantity: a.MaxQuantity,
		})
	}

	return studio, nil
}
