package catalog

import (
	"context"

	"podstudio/internal/domain"
	"podstudio/internal/repository"
)

type StudioRepository interface {
	Create(ctx context.Context, s *domain.Studio) error
	Update(ctx context.Context, s *domain.Studio) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
	GetApproved(ctx context.Context, f repository.StudioFilters) ([]domain.Studio, int64, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]domain.Studio, error)
}

type AvailabilityRepository interface {
	ReplaceForStudio(ctx context.Context, studioID int64, days []domain.Availability) error
	GetByStudio(ctx context.Context, studioID int64) ([]domain.Availability, error)
}
