package booking

import (
	"context"
	"sort"
	"time"

	domain "github.com/serenity-aesthetics/salon-api/internal/domain/booking"
	"github.com/serenity-aesthetics/salon-api/internal/httperr"
	"github.com/serenity-aesthetics/salon-api/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute returns the template slots for the date's weekday minus start
// times already booked that day. A day with no template entries is a closed
// day and yields an empty slot list, not an error. The result is a snapshot,
// not a reservation.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.DayAvailability, error) {

	salon, err := uc.repo.GetSalon(ctx)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(salon.Timezone)

	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	out := &domain.DayAvailability{
		Date:  in.Date,
		Slots: []string{},
	}

	template, err := uc.repo.ListTemplateSlots(ctx, int(date.Weekday()))
	if err != nil {
		return nil, err
	}
	if len(template) == 0 {
		// closed that weekday
		return out, nil
	}

	dayStart, dayEnd := domain.DayBounds(date)

	booked, err := uc.repo.ListBookedStartTimes(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t.In(loc).Format("15:04")] = struct{}{}
	}

	seen := make(map[string]struct{}, len(template))
	for _, slot := range template {
		if _, dup := seen[slot.TimeOfDay]; dup {
			continue
		}
		seen[slot.TimeOfDay] = struct{}{}

		if _, busy := taken[slot.TimeOfDay]; busy {
			continue
		}

		out.Slots = append(out.Slots, slot.TimeOfDay)
	}

	// "HH:MM" sorts lexicographically in time order
	sort.Strings(out.Slots)

	return out, nil
}
