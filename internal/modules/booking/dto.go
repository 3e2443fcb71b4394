package booking

import "podstudio/internal/domain"

type AddonSelection struct {
	Key      string `json:"key" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

type CreateBookingRequest struct {
	StudioID      int64            `json:"studio" binding:"required"`
	Date          string           `json:"date" binding:"required"`
	Hours         []int            `json:"hours" binding:"required,min=1"`
	PackageKey    string           `json:"packageKey" binding:"required"`
	Addons        []AddonSelection `json:"addons"`
	PaymentStatus string           `json:"paymentStatus"`

	// Filled from the auth context, never from the body.
	CustomerID int64 `json:"-"`
}

type BookingDetails struct {
	Booking    domain.Booking `json:"booking"`
	StudioName string         `json:"studio_name"`
	StudioCity string         `json:"studio_city,omitempty"`
}

type OwnerBookingDetails struct {
	Booking       domain.Booking `json:"booking"`
	StudioName    string         `json:"studio_name"`
	CustomerName  string         `json:"customer_name"`
	CustomerEmail string         `json:"customer_email"`
}
