package notify

import "log"

// Dispatcher decouples booking notifications from the request path: Dispatch
// never blocks and never fails, the worker goroutine does the sending.
type Dispatcher struct {
	mailer Mailer
	queue  chan BookingNotice
}

func NewDispatcher(mailer Mailer) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		queue:  make(chan BookingNotice, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for notice := range d.queue {
		if err := d.mailer.Send(notice); err != nil {
			log.Println("notify error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(notice BookingNotice) {
	select {
	case d.queue <- notice:
		// queued
	default:
		// full queue: drop the notice, never block a booking
		log.Println("notify queue full, dropping notice for booking", notice.Reference)
	}
}
