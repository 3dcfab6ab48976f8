package booking

import (
	"context"

	"github.com/serenity-aesthetics/salon-api/internal/audit"
	domain "github.com/serenity-aesthetics/salon-api/internal/domain/booking"
	"github.com/serenity-aesthetics/salon-api/internal/httperr"
	"github.com/serenity-aesthetics/salon-api/internal/models"
	"github.com/serenity-aesthetics/salon-api/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit AuditTrail
}

func NewCancelAppointment(
	repo domain.Repository,
	audit AuditTrail,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute cancels a pending or confirmed appointment, for example when the
// client calls the salon to call it off. The slot becomes bookable again.
func (uc *CancelAppointment) Execute(
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
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
