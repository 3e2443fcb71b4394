package repository

import (
	"context"
	"encoding/json"
	"time"

	"podstudio/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Reference     string    `gorm:"column:reference;uniqueIndex"`
	StudioID      int64     `gorm:"column:studio_id;index"`
	CustomerID    int64     `gorm:"column:customer_id;index"`
	Date          string    `gorm:"column:date"`
	Hours         string    `gorm:"column:hours;type:text"`
	PackageKey    string    `gorm:"column:package_key"`
	PackagePrice  float64   `gorm:"column:package_price"`
	Addons        string    `gorm:"column:addons;type:text"`
	TotalPrice    float64   `gorm:"column:total_price"`
	PaymentStatus string    `gorm:"column:payment_status"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:            m.ID,
		Reference:     m.Reference,
		StudioID:      m.StudioID,
		CustomerID:    m.CustomerID,
		Date:          m.Date,
		PackageKey:    m.PackageKey,
		PackagePrice:  m.PackagePrice,
		TotalPrice:    m.TotalPrice,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Hours != "" {
		_ = json.Unmarshal([]byte(m.Hours), &b.Hours)
	}
	if m.Addons != "" {
		_ = json.Unmarshal([]byte(m.Addons), &b.Addons)
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	hours, _ := json.Marshal(b.Hours)
	addons, _ := json.Marshal(b.Addons)
	return bookingModel{
		ID:            b.ID,
		Reference:     b.Reference,
		StudioID:      b.StudioID,
		CustomerID:    b.CustomerID,
		Date:          b.Date,
		Hours:         string(hours),
		PackageKey:    b.PackageKey,
		PackagePrice:  b.PackagePrice,
		Addons:        string(addons),
		TotalPrice:    b.TotalPrice,
		PaymentStatus: string(b.PaymentStatus),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// CreateWithReservation inserts the booking and flips its hours to
// unavailable in one transaction. The flip is conditional on the hours still
// being available; on any overlap the whole transaction rolls back and
// ErrSlotConflict is returned, so no partial booking can persist.
func (r *BookingRepository) CreateWithReservation(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var av availabilityModel
		if err := tx.Where("studio_id = ? AND date = ?", b.StudioID, b.Date).First(&av).Error; err != nil {
			return err
		}
		if err := reserveHours(tx, av.ID, b.Hours); err != nil {
			return err
		}
		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*b = *toDomainBooking(m)
		return nil
	})
}

// DeleteWithRestore removes the booking and flips its hours back to
// available on the existing (studio, date) record, in one transaction.
func (r *BookingRepository) DeleteWithRestore(ctx context.Context, id int64) (*domain.Booking, error) {
	var deleted *domain.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m bookingModel
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		b := toDomainBooking(m)

		var av availabilityModel
		err := tx.Where("studio_id = ? AND date = ?", b.StudioID, b.Date).First(&av).Error
		switch {
		case err == nil:
			if err := releaseHours(tx, av.ID, b.Hours); err != nil {
				return err
			}
		case err == gorm.ErrRecordNotFound:
			// Availability was wiped since booking; nothing to restore.
		default:
			return err
		}

		if err := tx.Delete(&bookingModel{}, id).Error; err != nil {
			return err
		}
		deleted = b
		return nil
	})
	return deleted, err
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

// CustomerBookingRow is a booking joined with the studio it targets.
type CustomerBookingRow struct {
	Booking    domain.Booking
	StudioName string
	StudioCity string
}

// GetByCustomer lists the customer's bookings, newest first.
func (r *BookingRepository) GetByCustomer(ctx context.Context, customerID int64) ([]CustomerBookingRow, error) {
	// GORM's schema parser skips anonymous fields with unexported names,
	// so embed the model through an exported alias.
	type BookingColumns = bookingModel
	type row struct {
		BookingColumns
		StudioName string `gorm:"column:studio_name"`
		StudioCity string `gorm:"column:studio_city"`
	}
	var rows []row
	q := `
SELECT b.*, s.name AS studio_name, s.city AS studio_city
FROM bookings b
JOIN studios s ON s.id = b.studio_id
WHERE b.customer_id = ?
ORDER BY b.created_at DESC, b.id DESC
`
	if err := r.db.WithContext(ctx).Raw(q, customerID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]CustomerBookingRow, 0, len(rows))
	for _, m := range rows {
		out = append(out, CustomerBookingRow{
			Booking:    *toDomainBooking(m.BookingColumns),
			StudioName: m.StudioName,
			StudioCity: m.StudioCity,
		})
	}
	return out, nil
}

// OwnerBookingRow is a booking joined with studio and customer info.
type OwnerBookingRow struct {
	Booking       domain.Booking
	StudioName    string
	CustomerName  string
	CustomerEmail string
}

// GetByOwner lists bookings across all studios of the owner, newest first.
func (r *BookingRepository) GetByOwner(ctx context.Context, ownerID int64) ([]OwnerBookingRow, error) {
	// Same exported-alias embedding as GetByCustomer, for the same reason.
	type BookingColumns = bookingModel
	type row struct {
		BookingColumns
		StudioName    string `gorm:"column:studio_name"`
		CustomerName  string `gorm:"column:customer_name"`
		CustomerEmail string `gorm:"column:customer_email"`
	}
	var rows []row
	q := `
SELECT b.*, s.name AS studio_name, u.name AS customer_name, u.email AS customer_email
FROM bookings b
JOIN studios s ON s.id = b.studio_id
JOIN users u ON u.id = b.customer_id
WHERE s.owner_id = ?
ORDER BY b.created_at DESC, b.id DESC
`
	if err := r.db.WithContext(ctx).Raw(q, ownerID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]OwnerBookingRow, 0, len(rows))
	for _, m := range rows {
		out = append(out, OwnerBookingRow{
			Booking:       *toDomainBooking(m.BookingColumns),
			StudioName:    m.StudioName,
			CustomerName:  m.CustomerName,
			CustomerEmail: m.CustomerEmail,
		})
	}
	return out, nil
}

// GetAll lists every booking, newest first. Admin moderation view.
func (r *BookingRepository) GetAll(ctx context.Context) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// HasCompletedBooking reports whether the customer ever booked the studio.
// Used to gate review creation.
func (r *BookingRepository) HasCompletedBooking(ctx context.Context, customerID, studioID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("customer_id = ? AND studio_id = ?", customerID, studioID).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}
