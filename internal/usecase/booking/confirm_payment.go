package booking

import (
	"context"
	"errors"
	"time"

	"github.com/AmberStudioApps/studio-booking/internal/audit"
	domain "github.com/AmberStudioApps/studio-booking/internal/domain/booking"
	"github.com/AmberStudioApps/studio-booking/internal/httperr"
	"github.com/AmberStudioApps/studio-booking/internal/models"
)

type ConfirmPayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewConfirmPayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ConfirmPayment {
	return &ConfirmPayment{
		repo:  repo,
		audit: audit,
	}
}

// Execute applies a payment-completion notification. Replays are harmless:
// an already-confirmed booking is returned as-is without side effects.
func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	bookingID string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}

	if b.Status == string(domain.StatusConfirmed) {
		return b, nil
	}

	if err := domain.Confirm(b, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Entry{
		Action:   "booking_confirmed",
		Entity:   "booking",
		EntityID: b.ID,
	})

	return b, nil
}
