package notification

import (
	"context"

	"github.com/rs/zerolog/log"
)

// BookingSummary carries everything the confirmation messages need.
type BookingSummary struct {
	Reference     string
	StudioName    string
	Date          string
	Hours         []int
	PackageKey    string
	Addons        map[string]int
	TotalPrice    float64
	CustomerEmail string
	OwnerEmail    string
}

// Sender delivers booking confirmations. Delivery is best-effort: the
// booking engine logs failures and never propagates them.
type Sender interface {
	SendBookingConfirmation(ctx context.Context, s BookingSummary) error
}

// LogSender is the no-SMTP fallback: it only writes a structured log line.
type LogSender struct{}

func NewLogSender() *LogSender { return &LogSender{} }

func (LogSender) SendVerificationCode(_ context.Context, email, code string) error {
	log.Info().
		Str("email", email).
		Str("code", code).
		Msg("verification code (log-only sender)")
	return nil
}

func (LogSender) SendBookingConfirmation(_ context.Context, s BookingSummary) error {
	log.Info().
		Str("reference", s.Reference).
		Str("studio", s.StudioName).
		Str("date", s.Date).
		Ints("hours", s.Hours).
		Str("package", s.PackageKey).
		Float64("total_price", s.TotalPrice).
		Str("customer", s.CustomerEmail).
		Str("owner", s.OwnerEmail).
		Msg("booking confirmation (log-only sender)")
	return nil
}
