package booking

import (
	"context"
	"time"

	"github.com/serenity-aesthetics/salon-api/internal/audit"
	domain "github.com/serenity-aesthetics/salon-api/internal/domain/booking"
	"github.com/serenity-aesthetics/salon-api/internal/httperr"
	"github.com/serenity-aesthetics/salon-api/internal/models"
	"github.com/serenity-aesthetics/salon-api/internal/notify"
)

// fakeRepository is an in-memory Repository. InTx snapshots state up front
// and restores it when fn fails, mimicking a rollback.
type fakeRepository struct {
	salon        models.Salon
	services     []models.Service
	template     []models.ScheduleSlot
	clients      []models.Client
	appointments []models.Appointment

	nextClientID      uint
	nextAppointmentID uint

	// every method that would hit the datastore bumps this
	calls int

	failCreateAppointment error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		salon: models.Salon{
			ID:       1,
			Name:     "Serenity Aesthetics",
			Timezone: "UTC",
		},
		nextClientID:      1,
		nextAppointmentID: 1,
	}
}

func (f *fakeRepository) GetSalon(ctx context.Context) (*models.Salon, error) {
	f.calls++
	s := f.salon
	return &s, nil
}

func (f *fakeRepository) ListServices(
	ctx context.Context,
	filter domain.ServiceFilter,
) ([]models.Service, error) {
	f.calls++
	out := make([]models.Service, 0, len(f.services))
	for _, s := range f.services {
		if filter.OnlyActive && !s.Active {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeRepository) GetServiceByName(
	ctx context.Context,
	name string,
) (*models.Service, error) {
	f.calls++
	for _, s := range f.services {
		if s.Name == name && s.Active {
			svc := s
			return &svc, nil
		}
	}
	return nil, httperr.ErrBusiness("service_not_found")
}

func (f *fakeRepository) UpsertClientByEmail(
	ctx context.Context,
	client *models.Client,
) error {
	f.calls++
	for i := range f.clients {
		if f.clients[i].Email == client.Email {
			client.ID = f.clients[i].ID
			f.clients[i] = *client
			return nil
		}
	}
	client.ID = f.nextClientID
	f.nextClientID++
	f.clients = append(f.clients, *client)
	return nil
}

func (f *fakeRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	f.calls++
	if f.failCreateAppointment != nil {
		return f.failCreateAppointment
	}
	ap.ID = f.nextAppointmentID
	f.nextAppointmentID++
	f.appointments = append(f.appointments, *ap)
	return nil
}

func (f *fakeRepository) AssertSlotFree(
	ctx context.Context,
	start time.Time,
	end time.Time,
) error {
	f.calls++
	for _, ap := range f.appointments {
		if !domain.Blocking(domain.Status(ap.Status)) {
			continue
		}
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			return httperr.ErrBusiness("slot_unavailable")
		}
	}
	return nil
}

func (f *fakeRepository) GetAppointmentByID(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {
	f.calls++
	for _, ap := range f.appointments {
		if ap.ID == appointmentID {
			out := ap
			return &out, nil
		}
	}
	return nil, httperr.ErrBusiness("appointment_not_found")
}

func (f *fakeRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	f.calls++
	for i := range f.appointments {
		if f.appointments[i].ID == ap.ID {
			f.appointments[i] = *ap
			return nil
		}
	}
	return httperr.ErrBusiness("appointment_not_found")
}

func (f *fakeRepository) ListTemplateSlots(
	ctx context.Context,
	weekday int,
) ([]models.ScheduleSlot, error) {
	f.calls++
	var out []models.ScheduleSlot
	for _, s := range f.template {
		if s.Weekday == weekday && s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListBookedStartTimes(
	ctx context.Context,
	dayStart time.Time,
	dayEnd time.Time,
) ([]time.Time, error) {
	f.calls++
	var out []time.Time
	for _, ap := range f.appointments {
		if !domain.Blocking(domain.Status(ap.Status)) {
			continue
		}
		if !ap.StartTime.Before(dayStart) && ap.StartTime.Before(dayEnd) {
			out = append(out, ap.StartTime)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListAppointmentsForDay(
	ctx context.Context,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {
	f.calls++
	var out []models.Appointment
	for _, ap := range f.appointments {
		if !ap.StartTime.Before(dayStart) && ap.StartTime.Before(dayEnd) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeRepository) InTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	clients := append([]models.Client(nil), f.clients...)
	appointments := append([]models.Appointment(nil), f.appointments...)
	nextClient := f.nextClientID
	nextAppointment := f.nextAppointmentID

	if err := fn(f); err != nil {
		f.clients = clients
		f.appointments = appointments
		f.nextClientID = nextClient
		f.nextAppointmentID = nextAppointment
		return err
	}
	return nil
}

var _ domain.Repository = (*fakeRepository)(nil)

// ---- side-channel recorders ----

type notifierRecorder struct {
	notices []notify.BookingNotice
}

func (n *notifierRecorder) Dispatch(notice notify.BookingNotice) {
	n.notices = append(n.notices, notice)
}

type auditRecorder struct {
	events []audit.Event
}

func (a *auditRecorder) Dispatch(ev audit.Event) {
	a.events = append(a.events, ev)
}
