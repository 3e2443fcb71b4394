package auth

import (
	"context"

	"podstudio/internal/domain"
)

// UserRepository holds only the methods the auth service uses.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
}

// Mailer delivers the one-time verification code.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}
