package domain

import "time"

// Review is one per (studio, user); it feeds the studio's cached rating.
type Review struct {
	ID        int64     `json:"id"`
	StudioID  int64     `json:"studio_id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
