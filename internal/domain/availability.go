package domain

import "time"

// DateLayout is the calendar-day format used across the API and storage.
const DateLayout = "2006-01-02"

// Slot is one bookable hour of a studio day.
type Slot struct {
	ID             int64 `json:"id"`
	AvailabilityID int64 `json:"-"`
	Hour           int   `json:"hour"`
	IsAvailable    bool  `json:"is_available"`
}

// Availability holds the hour slots of one studio on one calendar date.
// There is exactly one record per (studio, date).
type Availability struct {
	ID        int64     `json:"id"`
	StudioID  int64     `json:"studio_id"`
	Date      string    `json:"date"`
	Slots     []Slot    `json:"slots"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AvailableHours returns the sorted-by-insertion hours still open for booking.
func (a *Availability) AvailableHours() []int {
	out := make([]int, 0, len(a.Slots))
	for _, s := range a.Slots {
		if s.IsAvailable {
			out = append(out, s.Hour)
		}
	}
	return out
}

// ParseDate validates a calendar date in DateLayout.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
