package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/serenity-aesthetics/salon-api/internal/domain/booking"
	"github.com/serenity-aesthetics/salon-api/internal/httperr"
	"github.com/serenity-aesthetics/salon-api/internal/models"
)

func pendingAppointment() models.Appointment {
	return models.Appointment{
		ID:        1,
		Reference: "ref-1",
		StartTime: time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC),
		Status:    string(domain.StatusPending),
	}
}

func TestConfirmAppointment(t *testing.T) {
	repo := newFakeRepository()
	repo.appointments = []models.Appointment{pendingAppointment()}
	trail := &auditRecorder{}

	uc := NewConfirmAppointment(repo, trail)

	ap, err := uc.Execute(context.Background(), 42, 1)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), ap.Status)
	require.NotNil(t, ap.ConfirmedAt)

	// persisted, not just mutated in memory
	assert.Equal(t, string(domain.StatusConfirmed), repo.appointments[0].Status)

	require.Len(t, trail.events, 1)
	assert.Equal(t, "appointment_confirmed", trail.events[0].Action)
	require.NotNil(t, trail.events[0].UserID)
	assert.Equal(t, uint(42), *trail.events[0].UserID)
}

func TestConfirmAppointment_NotFound(t *testing.T) {
	repo := newFakeRepository()
	uc := NewConfirmAppointment(repo, &auditRecorder{})

	_, err := uc.Execute(context.Background(), 42, 999)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestConfirmAppointment_OnlyFromPending(t *testing.T) {
	for _, status := range []domain.Status{
		domain.StatusConfirmed,
		domain.StatusDeclined,
		domain.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeRepository()
			ap := pendingAppointment()
			ap.Status = string(status)
			repo.appointments = []models.Appointment{ap}
			trail := &auditRecorder{}

			uc := NewConfirmAppointment(repo, trail)

			_, err := uc.Execute(context.Background(), 42, 1)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, "invalid_state"))
			assert.Empty(t, trail.events)
		})
	}
}

func TestDeclineAppointment(t *testing.T) {
	repo := newFakeRepository()
	repo.appointments = []models.Appointment{pendingAppointment()}
	trail := &auditRecorder{}

	uc := NewDeclineAppointment(repo, trail)

	ap, err := uc.Execute(context.Background(), 42, 1)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusDeclined), ap.Status)
	require.NotNil(t, ap.DeclinedAt)
	require.Len(t, trail.events, 1)
	assert.Equal(t, "appointment_declined", trail.events[0].Action)
}

func TestCancelAppointment(t *testing.T) {
	for _, status := range []domain.Status{
		domain.StatusPending,
		domain.StatusConfirmed,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeRepository()
			ap := pendingAppointment()
			ap.Status = string(status)
			repo.appointments = []models.Appointment{ap}
			trail := &auditRecorder{}

			uc := NewCancelAppointment(repo, trail)

			got, err := uc.Execute(context.Background(), 42, 1)
			require.NoError(t, err)

			assert.Equal(t, string(domain.StatusCancelled), got.Status)
			require.NotNil(t, got.CancelledAt)
			assert.Equal(t, string(domain.StatusCancelled), repo.appointments[0].Status)

			require.Len(t, trail.events, 1)
			assert.Equal(t, "appointment_cancelled", trail.events[0].Action)
		})
	}
}

func TestCancelAppointment_NotFromTerminalStates(t *testing.T) {
	for _, status := range []domain.Status{
		domain.StatusDeclined,
		domain.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeRepository()
			ap := pendingAppointment()
			ap.Status = string(status)
			repo.appointments = []models.Appointment{ap}
			trail := &auditRecorder{}

			uc := NewCancelAppointment(repo, trail)

			_, err := uc.Execute(context.Background(), 42, 1)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, "invalid_state"))
			assert.Empty(t, trail.events)
		})
	}
}

func TestCancelAppointment_FreesSlot(t *testing.T) {
	repo := newFakeRepository()
	repo.template = mondayTemplate()
	ap := pendingAppointment()
	ap.Status = string(domain.StatusConfirmed)
	repo.appointments = []models.Appointment{ap}

	avail := NewGetAvailability(repo)
	cancel := NewCancelAppointment(repo, &auditRecorder{})

	before, err := avail.Execute(context.Background(), domain.AvailabilityInput{Date: "2026-09-07"})
	require.NoError(t, err)
	assert.NotContains(t, before.Slots, "11:00")

	_, err = cancel.Execute(context.Background(), 42, 1)
	require.NoError(t, err)

	after, err := avail.Execute(context.Background(), domain.AvailabilityInput{Date: "2026-09-07"})
	require.NoError(t, err)
	assert.Contains(t, after.Slots, "11:00")
}

func TestDeclineAppointment_FreesSlot(t *testing.T) {
	repo := newFakeRepository()
	repo.template = mondayTemplate()
	repo.appointments = []models.Appointment{pendingAppointment()}

	avail := NewGetAvailability(repo)
	decline := NewDeclineAppointment(repo, &auditRecorder{})

	before, err := avail.Execute(context.Background(), domain.AvailabilityInput{Date: "2026-09-07"})
	require.NoError(t, err)
	assert.NotContains(t, before.Slots, "11:00")

	_, err = decline.Execute(context.Background(), 42, 1)
	require.NoError(t, err)

	after, err := avail.Execute(context.Background(), domain.AvailabilityInput{Date: "2026-09-07"})
	require.NoError(t, err)
	assert.Contains(t, after.Slots, "11:00")
}
