package repository

import (
	"context"
	"time"

	"podstudio/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	StudioID  int64     `gorm:"column:studio_id;uniqueIndex:idx_review_studio_user"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex:idx_review_studio_user"`
	Rating    int       `gorm:"column:rating"`
	Comment   string    `gorm:"column:comment;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) *domain.Review {
	return &domain.Review{
		ID:        m.ID,
		StudioID:  m.StudioID,
		UserID:    m.UserID,
		Rating:    m.Rating,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *domain.Review) error {
	m := reviewModel{
		StudioID: rev.StudioID,
		UserID:   rev.UserID,
		Rating:   rev.Rating,
		Comment:  rev.Comment,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateReview
		}
		return err
	}
	*rev = *toDomainReview(m)
	return nil
}

func (r *ReviewRepository) GetByStudio(ctx context.Context, studioID int64) ([]domain.Review, error) {
	var rows []reviewModel
	if err := r.db.WithContext(ctx).Where("studio_id = ?", studioID).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Review, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReview(m))
	}
	return out, nil
}

// Aggregate recomputes the studio's average rating and review count.
func (r *ReviewRepository) Aggregate(ctx context.Context, studioID int64) (avg float64, total int64, err error) {
	var row struct {
		Avg   float64 `gorm:"column:avg"`
		Total int64   `gorm:"column:total"`
	}
	q := `SELECT COALESCE(AVG(rating), 0) AS avg, COUNT(1) AS total FROM reviews WHERE studio_id = ?`
	if err := r.db.WithContext(ctx).Raw(q, studioID).Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.Avg, row.Total, nil
}
