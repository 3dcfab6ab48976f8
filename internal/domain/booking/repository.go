package booking

import (
	"context"
	"time"

	"github.com/serenity-aesthetics/salon-api/internal/models"
)

type ServiceFilter struct {
	Category   string
	Query      string
	OnlyActive bool
}

type Repository interface {
	// -------- Salon --------
	GetSalon(
		ctx context.Context,
	) (*models.Salon, error)

	// -------- Services --------
	ListServices(
		ctx context.Context,
		filter ServiceFilter,
	) ([]models.Service, error)

	GetServiceByName(
		ctx context.Context,
		name string,
	) (*models.Service, error)

	// -------- Client --------
	UpsertClientByEmail(
		ctx context.Context,
		client *models.Client,
	) error

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertSlotFree(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentByID(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	ListTemplateSlots(
		ctx context.Context,
		weekday int,
	) ([]models.ScheduleSlot, error)

	ListBookedStartTimes(
		ctx context.Context,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]time.Time, error)

	ListAppointmentsForDay(
		ctx context.Context,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	// -------- Transaction boundary --------
	//
	// InTx runs fn against a Repository bound to one datastore transaction.
	// fn returning an error rolls everything back.
	InTx(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
