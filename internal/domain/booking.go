package domain

import "time"

type PaymentStatus string

const (
	PaymentPaid        PaymentStatus = "paid"
	PaymentPayAtStudio PaymentStatus = "pay_at_studio"
)

// BookingAddon is one add-on selection with its price frozen at booking time.
type BookingAddon struct {
	Key      string  `json:"key"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Booking struct {
	ID         int64  `json:"id"`
	Reference  string `json:"reference"`
	StudioID   int64  `json:"studio_id"`
	CustomerID int64  `json:"customer_id"`
	Date       string `json:"date"`
	Hours      []int  `json:"hours"`

	PackageKey   string         `json:"package_key"`
	PackagePrice float64        `json:"package_price"`
	Addons       []BookingAddon `json:"addons,omitempty"`

	// Snapshot computed at creation time, never recalculated.
	TotalPrice float64 `json:"total_price"`

	PaymentStatus PaymentStatus `json:"payment_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
