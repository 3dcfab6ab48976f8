package booking

import (
	"context"

	"github.com/serenity-aesthetics/salon-api/internal/audit"
	domain "github.com/serenity-aesthetics/salon-api/internal/domain/booking"
	"github.com/serenity-aesthetics/salon-api/internal/httperr"
	"github.com/serenity-aesthetics/salon-api/internal/models"
	"github.com/serenity-aesthetics/salon-api/internal/timezone"
)

type DeclineAppointment struct {
	repo  domain.Repository
	audit AuditTrail
}

func NewDeclineAppointment(
	repo domain.Repository,
	audit AuditTrail,
) *DeclineAppointment {
	return &DeclineAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute moves a pending appointment to declined, which frees its slot for
// future availability queries.
func (uc *DeclineAppointment) Execute(
	ctx context.Context,
	staffID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalon(ctx)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(salon.Timezone)
	if err := domain.Decline(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   "appointment_declined",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
