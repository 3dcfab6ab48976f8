package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/serenity-aesthetics/salon-api/internal/audit"
	domain "github.com/serenity-aesthetics/salon-api/internal/domain/booking"
	"github.com/serenity-aesthetics/salon-api/internal/httperr"
	"github.com/serenity-aesthetics/salon-api/internal/models"
	"github.com/serenity-aesthetics/salon-api/internal/notify"
	"github.com/serenity-aesthetics/salon-api/internal/timezone"
	"github.com/serenity-aesthetics/salon-api/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ClientFirstName string
	ClientLastName  string
	ClientEmail     string
	ClientPhone     string

	Address    string
	City       string
	PostalCode string

	ServiceName     string
	AppointmentTime string // ISO 8601, interpreted in the salon timezone
	Notes           string
}

// validate runs before anything touches the datastore.
func (in CreateBookingInput) validate() error {
	required := []struct {
		code  string
		value string
	}{
		{"missing_client_first_name", in.ClientFirstName},
		{"missing_client_last_name", in.ClientLastName},
		{"missing_client_email", in.ClientEmail},
		{"missing_client_phone", in.ClientPhone},
		{"missing_service_name", in.ServiceName},
		{"missing_appointment_time", in.AppointmentTime},
	}

	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return httperr.ErrBusiness(f.code)
		}
	}

	if !validators.IsEmailFormatValid(strings.TrimSpace(in.ClientEmail)) {
		return httperr.ErrBusiness("invalid_client_email")
	}

	return nil
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	notifier Notifier
	audit    AuditTrail
}

func NewCreateBooking(
	repo domain.Repository,
	notifier Notifier,
	audit AuditTrail,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	// 1. Required fields, before any datastore call
	if err := in.validate(); err != nil {
		return nil, err
	}

	// 2. Date/time in the salon timezone
	salon, err := uc.repo.GetSalon(ctx)
	if err != nil {
		return nil, err
	}

	start, err := parseAppointmentTime(
		in.AppointmentTime,
		timezone.Location(salon.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_appointment_time")
	}

	var (
		created *models.Appointment
		service *models.Service
		client  *models.Client
	)

	// 3-6. One transaction: client upsert, service resolution, end time,
	// slot conflict, insert. Any error rolls the whole unit back.
	err = uc.repo.InTx(ctx, func(tx domain.Repository) error {

		client = &models.Client{
			Email:      strings.ToLower(strings.TrimSpace(in.ClientEmail)),
			FirstName:  strings.TrimSpace(in.ClientFirstName),
			LastName:   strings.TrimSpace(in.ClientLastName),
			Phone:      strings.TrimSpace(in.ClientPhone),
			Address:    strings.TrimSpace(in.Address),
			City:       strings.TrimSpace(in.City),
			PostalCode: strings.TrimSpace(in.PostalCode),
		}
		if err := tx.UpsertClientByEmail(ctx, client); err != nil {
			return err
		}

		service, err = tx.GetServiceByName(ctx, strings.TrimSpace(in.ServiceName))
		if err != nil {
			return err
		}

		end := start.Add(time.Duration(service.DurationMin) * time.Minute)

		if err := tx.AssertSlotFree(ctx, start, end); err != nil {
			return err
		}

		created = &models.Appointment{
			Reference: uuid.NewString(),
			ClientID:  client.ID,
			ServiceID: service.ID,
			StartTime: start,
			EndTime:   end,
			Status:    string(domain.InitialStatus()),
			Notes:     in.Notes,
		}

		return tx.CreateAppointment(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	// 7. Committed. Side channels only from here on; neither may change
	// the booking's outcome.
	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &created.ID,
	})

	uc.notifier.Dispatch(notify.BookingNotice{
		Reference:   created.Reference,
		ClientName:  client.FirstName + " " + client.LastName,
		ClientEmail: client.Email,
		ClientPhone: client.Phone,
		Address:     client.Address,
		City:        client.City,
		PostalCode:  client.PostalCode,
		ServiceName: service.Name,
		StartTime:   created.StartTime,
		EndTime:     created.EndTime,
		Notes:       created.Notes,
	})

	return created, nil
}

// parseAppointmentTime accepts the ISO 8601 shapes seen from booking forms.
// Layouts without a zone offset are read in the salon location.
func parseAppointmentTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(loc).Truncate(time.Minute), nil
	}

	layouts := []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t.Truncate(time.Minute), nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable appointment time %q", raw)
}
