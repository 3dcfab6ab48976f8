package notify

import (
	"fmt"
	"log"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/serenity-aesthetics/salon-api/internal/config"
)

// SMTPMailer sends booking summaries to the salon admin inbox.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewSMTPMailer returns a disabled mailer (logs instead of sending) when the
// SMTP host or recipient is not configured.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	m := &SMTPMailer{
		from: cfg.MailFrom,
		to:   cfg.MailTo,
	}

	if cfg.SMTPHost == "" || cfg.MailTo == "" {
		log.Println("smtp not configured, booking notifications will be logged only")
		return m
	}

	m.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	return m
}

func (m *SMTPMailer) Send(notice BookingNotice) error {
	subject := fmt.Sprintf(
		"New booking: %s on %s",
		notice.ServiceName,
		notice.StartTime.Format("2006-01-02"),
	)
	body := buildBody(notice)

	if m.dialer == nil {
		log.Printf("booking notice (no smtp): %s | %s", subject, notice.Reference)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send booking notice: %w", err)
	}
	return nil
}

func buildBody(n BookingNotice) string {
	lines := []string{
		"A new appointment was booked.",
		"",
		"Reference: " + n.Reference,
		"Client:    " + n.ClientName,
		"Email:     " + n.ClientEmail,
		"Phone:     " + n.ClientPhone,
	}

	if n.Address != "" {
		lines = append(lines, "Address:   "+n.Address)
	}
	if n.City != "" {
		lines = append(lines, "City:      "+n.City)
	}
	if n.PostalCode != "" {
		lines = append(lines, "Postal:    "+n.PostalCode)
	}

	lines = append(lines,
		"",
		"Service:   "+n.ServiceName,
		"Date:      "+n.StartTime.Format("2006-01-02"),
		fmt.Sprintf(
			"Time:      %s - %s",
			n.StartTime.Format("15:04"),
			n.EndTime.Format("15:04"),
		),
	)

	if n.Notes != "" {
		lines = append(lines, "Notes:     "+n.Notes)
	}

	return strings.Join(lines, "\n")
}

var _ Mailer = (*SMTPMailer)(nil)
