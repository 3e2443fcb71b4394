package domain

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleOwner    UserRole = "owner"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email" validate:"required,email"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone,omitempty"`
	Verified     bool       `json:"verified"`
	OTPHash      string     `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
