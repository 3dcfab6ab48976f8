package notify

import "time"

// BookingNotice is the admin-facing summary of a new booking.
type BookingNotice struct {
	Reference string

	ClientName  string
	ClientEmail string
	ClientPhone string
	Address     string
	City        string
	PostalCode  string

	ServiceName string
	StartTime   time.Time
	EndTime     time.Time
	Notes       string
}

// Mailer delivers a notice somewhere. Implementations must treat delivery as
// best effort; the booking is already committed when Send runs.
type Mailer interface {
	Send(notice BookingNotice) error
}
