package booking

import (
	"github.com/serenity-aesthetics/salon-api/internal/audit"
	"github.com/serenity-aesthetics/salon-api/internal/notify"
)

// Notifier takes the post-commit booking notice. Dispatch must not block and
// must not fail; the booking is already durable when it runs.
type Notifier interface {
	Dispatch(notice notify.BookingNotice)
}

// AuditTrail records staff and booking actions out of band.
type AuditTrail interface {
	Dispatch(ev audit.Event)
}

var (
	_ Notifier   = (*notify.Dispatcher)(nil)
	_ AuditTrail = (*audit.Dispatcher)(nil)
)
