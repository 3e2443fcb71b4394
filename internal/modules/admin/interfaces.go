package admin

import (
	"context"

	"podstudio/internal/domain"
)

type StudioRepository interface {
	GetPending(ctx context.Context) ([]domain.Studio, error)
	SetApproved(ctx context.Context, id int64, approved bool) error
}

type BookingRepository interface {
	GetAll(ctx context.Context) ([]domain.Booking, error)
	DeleteWithRestore(ctx context.Context, id int64) (*domain.Booking, error)
}
