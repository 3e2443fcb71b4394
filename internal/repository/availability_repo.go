package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"podstudio/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

type availabilityModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	StudioID  int64     `gorm:"column:studio_id;uniqueIndex:idx_availability_studio_date"`
	Date      string    `gorm:"column:date;uniqueIndex:idx_availability_studio_date"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (availabilityModel) TableName() string { return "availabilities" }

type slotModel struct {
	ID             int64 `gorm:"column:id;primaryKey"`
	AvailabilityID int64 `gorm:"column:availability_id;uniqueIndex:idx_slot_record_hour"`
	Hour           int   `gorm:"column:hour;uniqueIndex:idx_slot_record_hour"`
	IsAvailable    bool  `gorm:"column:is_available"`
}

func (slotModel) TableName() string { return "availability_slots" }

func toDomainAvailability(m availabilityModel, slots []slotModel) *domain.Availability {
	a := &domain.Availability{
		ID:        m.ID,
		StudioID:  m.StudioID,
		Date:      m.Date,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for _, s := range slots {
		a.Slots = append(a.Slots, domain.Slot{
			ID:             s.ID,
			AvailabilityID: s.AvailabilityID,
			Hour:           s.Hour,
			IsAvailable:    s.IsAvailable,
		})
	}
	return a
}

// isUniqueViolation covers both backends: pgconn 23505 under PostgreSQL,
// the UNIQUE message under SQLite.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ReplaceForStudio drops every availability record of the studio and writes
// the supplied set. Used by the owner-facing bulk edit.
func (r *AvailabilityRepository) ReplaceForStudio(ctx context.Context, studioID int64, days []domain.Availability) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("availability_id IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).Model(&availabilityModel{}).Select("id").Where("studio_id = ?", studioID),
		).Delete(&slotModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("studio_id = ?", studioID).Delete(&availabilityModel{}).Error; err != nil {
			return err
		}
		for i := range days {
			m := availabilityModel{StudioID: studioID, Date: days[i].Date}
			if err := tx.Create(&m).Error; err != nil {
				if isUniqueViolation(err) {
					return ErrDuplicateDate
				}
				return err
			}
			for _, s := range days[i].Slots {
				sm := slotModel{AvailabilityID: m.ID, Hour: s.Hour, IsAvailable: s.IsAvailable}
				if err := tx.Create(&sm).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// GetByStudioDate loads one (studio, date) record with its slots.
func (r *AvailabilityRepository) GetByStudioDate(ctx context.Context, studioID int64, date string) (*domain.Availability, error) {
	var m availabilityModel
	tx := r.db.WithContext(ctx).Where("studio_id = ? AND date = ?", studioID, date).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	var slots []slotModel
	if err := r.db.WithContext(ctx).Where("availability_id = ?", m.ID).Order("hour").Find(&slots).Error; err != nil {
		return nil, err
	}
	return toDomainAvailability(m, slots), nil
}

// GetByStudio loads every availability record of the studio, date ascending.
func (r *AvailabilityRepository) GetByStudio(ctx context.Context, studioID int64) ([]domain.Availability, error) {
	var rows []availabilityModel
	if err := r.db.WithContext(ctx).Where("studio_id = ?", studioID).Order("date").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Availability, 0, len(rows))
	for _, m := range rows {
		var slots []slotModel
		if err := r.db.WithContext(ctx).Where("availability_id = ?", m.ID).Order("hour").Find(&slots).Error; err != nil {
			return nil, err
		}
		out = append(out, *toDomainAvailability(m, slots))
	}
	return out, nil
}

// reserveHours flips the requested hours to unavailable, but only where they
// are still available. Returns ErrSlotConflict unless every requested hour
// was flipped, which makes the flip a compare-and-swap: two racing bookings
// for an overlapping hour cannot both see RowsAffected == len(hours).
func reserveHours(tx *gorm.DB, availabilityID int64, hours []int) error {
	res := tx.Model(&slotModel{}).
		Where("availability_id = ? AND hour IN ? AND is_available = ?", availabilityID, hours, true).
		Update("is_available", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != int64(len(hours)) {
		return ErrSlotConflict
	}
	return nil
}

// releaseHours is the inverse of reserveHours, used when a booking is
// deleted. It updates the existing record in place; it never inserts a
// second (studio, date) record.
func releaseHours(tx *gorm.DB, availabilityID int64, hours []int) error {
	return tx.Model(&slotModel{}).
		Where("availability_id = ? AND hour IN ?", availabilityID, hours).
		Update("is_available", true).Error
}
