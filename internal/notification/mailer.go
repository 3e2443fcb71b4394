package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"
)

// MailSender delivers booking confirmations over SMTP.
type MailSender struct {
	client *mail.Client
	from   string
}

func NewMailSender(host string, port int, user, pass, from string) (*MailSender, error) {
	c, err := mail.NewClient(
		host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(user),
		mail.WithPassword(pass),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &MailSender{client: c, from: from}, nil
}

// SendVerificationCode mails the one-time signup code.
func (m *MailSender) SendVerificationCode(ctx context.Context, email, code string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(email); err != nil {
		return err
	}
	msg.Subject("Your verification code")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf("Your verification code is %s.\n", code))
	return m.client.DialAndSendWithContext(ctx, msg)
}

// SendBookingConfirmation mails the customer and the studio owner. Both
// messages are sent in one dial; a failure on either fails the call, which
// the booking engine treats as log-and-continue.
func (m *MailSender) SendBookingConfirmation(ctx context.Context, s BookingSummary) error {
	body := confirmationBody(s)

	customer := mail.NewMsg()
	if err := customer.From(m.from); err != nil {
		return err
	}
	if err := customer.To(s.CustomerEmail); err != nil {
		return err
	}
	customer.Subject(fmt.Sprintf("Booking %s confirmed at %s", s.Reference, s.StudioName))
	customer.SetBodyString(mail.TypeTextPlain, body)

	owner := mail.NewMsg()
	if err := owner.From(m.from); err != nil {
		return err
	}
	if err := owner.To(s.OwnerEmail); err != nil {
		return err
	}
	owner.Subject(fmt.Sprintf("New booking %s at %s", s.Reference, s.StudioName))
	owner.SetBodyString(mail.TypeTextPlain, body)

	return m.client.DialAndSendWithContext(ctx, customer, owner)
}

func confirmationBody(s BookingSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Studio: %s\n", s.StudioName)
	fmt.Fprintf(&sb, "Date: %s\n", s.Date)
	hours := make([]string, 0, len(s.Hours))
	for _, h := range s.Hours {
		hours = append(hours, fmt.Sprintf("%02d:00", h))
	}
	fmt.Fprintf(&sb, "Hours: %s\n", strings.Join(hours, ", "))
	fmt.Fprintf(&sb, "Package: %s\n", s.PackageKey)
	for key, qty := range s.Addons {
		fmt.Fprintf(&sb, "Add-on: %s x%d\n", key, qty)
	}
	fmt.Fprintf(&sb, "Total: %.2f\n", s.TotalPrice)
	fmt.Fprintf(&sb, "Reference: %s\n", s.Reference)
	return sb.String()
}
