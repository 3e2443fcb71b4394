package review

import (
	"context"
	"errors"
	"math"

	"podstudio/internal/domain"
	"podstudio/internal/repository"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, rev *domain.Review) error
	GetByStudio(ctx context.Context, studioID int64) ([]domain.Review, error)
	Aggregate(ctx context.Context, studioID int64) (float64, int64, error)
}

type StudioRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
	UpdateRating(ctx context.Context, id int64, rating float64, total int) error
}

type BookingReader interface {
	HasCompletedBooking(ctx context.Context, customerID, studioID int64) (bool, error)
}

type Service struct {
	reviews  ReviewRepository
	studios  StudioRepository
	bookings BookingReader
}

func NewService(reviews ReviewRepository, studios StudioRepository, bookings BookingReader) *Service {
	return &Service{
		reviews:  reviews,
		studios:  studios,
		bookings: bookings,
	}
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

// CreateReview stores one review per (studio, customer) and recomputes the
// studio's cached rating aggregate. The aggregate is a convenience cache
// over the review rows, not a second source of truth.
func (s *Service) CreateReview(ctx context.Context, customerID, studioID int64, req CreateReviewRequest) (*domain.Review, error) {
	studio, err := s.studios.GetByID(ctx, studioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !studio.Approved {
		return nil, ErrNotFound
	}

	booked, err := s.bookings.HasCompletedBooking(ctx, customerID, studioID)
	if err != nil {
		return nil, err
	}
	if !booked {
		return nil, ErrNotBooked
	}

	rev := &domain.Review{
		StudioID: studioID,
		UserID:   customerID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := s.reviews.Create(ctx, rev); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	avg, total, err := s.reviews.Aggregate(ctx, studioID)
	if err == nil {
		avg = math.Round(avg*10) / 10
		_ = s.studios.UpdateRating(ctx, studioID, avg, int(total))
	}

	return rev, nil
}

// ListReviews returns the studio's reviews, newest first.
func (s *Service) ListReviews(ctx context.Context, studioID int64) ([]domain.Review, error) {
	return s.reviews.GetByStudio(ctx, studioID)
}
