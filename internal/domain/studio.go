package domain

import "time"

// Package is a named per-hour price tier. Every booking selects exactly one.
type Package struct {
	ID          int64   `json:"id"`
	StudioID    int64   `json:"studio_id"`
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// Addon is an optional flat-priced extra, capped per booking by MaxQuantity.
type Addon struct {
	ID          int64   `json:"id"`
	StudioID    int64   `json:"studio_id"`
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	MaxQuantity int     `json:"max_quantity"`
}

type Studio struct {
	ID          int64    `json:"id"`
	OwnerID     int64    `json:"owner_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Equipment   []string `json:"equipment,omitempty"`
	Images      []string `json:"images,omitempty"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	State       string   `json:"state,omitempty"`
	PostalCode  string   `json:"postal_code,omitempty"`

	// Bookable window [OpenHour, CloseHour), hours of day.
	OpenHour  int `json:"open_hour"`
	CloseHour int `json:"close_hour"`

	Approved bool `json:"approved"`

	// Cached aggregate, recomputed after every review write.
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"total_reviews"`

	Packages []Package `json:"packages,omitempty"`
	Addons   []Addon   `json:"addons,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PackageByKey returns the studio package with the given key, if present.
func (s *Studio) PackageByKey(key string) (*Package, bool) {
	for i := range s.Packages {
		if s.Packages[i].Key == key {
			return &s.Packages[i], true
		}
	}
	return nil, false
}

// AddonByKey returns the studio add-on with the given key, if present.
func (s *Studio) AddonByKey(key string) (*Addon, bool) {
	for i := range s.Addons {
		if s.Addons[i].Key == key {
			return &s.Addons[i], true
		}
	}
	return nil, false
}
