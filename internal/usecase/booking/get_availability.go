package booking

import (
	"context"
	"errors"

	domain "github.com/AmberStudioApps/studio-booking/internal/domain/booking"
	"github.com/AmberStudioApps/studio-booking/internal/httperr"
)

type GetAvailability struct {
	repo domain.Repository
	step int
}

func NewGetAvailability(repo domain.Repository, stepMinutes int) *GetAvailability {
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultStepMinutes
	}
	return &GetAvailability{repo: repo, step: stepMinutes}
}

// Execute resolves the bookable slots for one service on one date. A day
// without configured hours, or a closed day, yields an empty slot list; only
// an unknown service is an error.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}
	if !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	wh, err := uc.repo.GetBusinessHours(ctx, int(date.Weekday()))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.TimeSlot{}, nil
		}
		return nil, err
	}
	if wh.IsClosed {
		return []domain.TimeSlot{}, nil
	}

	open, err := domain.ParseClock(wh.OpenTime)
	if err != nil {
		return []domain.TimeSlot{}, nil
	}
	close, err := domain.ParseClock(wh.CloseTime)
	if err != nil {
		return []domain.TimeSlot{}, nil
	}

	existing, err := uc.repo.ListActiveBookings(ctx, in.ServiceID, in.Date)
	if err != nil {
		return nil, err
	}

	type interval struct{ start, dur int }
	occupied := make([]interval, 0, len(existing))
	for _, b := range existing {
		bStart, err := domain.ParseClock(b.BookingTime)
		if err != nil {
			continue
		}
		occupied = append(occupied, interval{start: bStart, dur: b.DurationMin})
	}

	starts := domain.SlotStarts(open, close, svc.DurationMin, uc.step)

	slots := make([]domain.TimeSlot, 0, len(starts))
	for _, start := range starts {
		available := true
		for _, iv := range occupied {
			if domain.Overlaps(start, svc.DurationMin, iv.start, iv.dur) {
				available = false
				break
			}
		}

		slots = append(slots, domain.TimeSlot{
			Time:      domain.FormatClock(start),
			Available: available,
		})
	}

	return slots, nil
}
