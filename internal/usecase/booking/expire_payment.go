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

type ExpirePayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewExpirePayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ExpirePayment {
	return &ExpirePayment{
		repo:  repo,
		audit: audit,
	}
}

// Execute handles an expired checkout session: a still-pending booking is
// cancelled so the slot frees up. Any other state means payment or an admin
// got there first, and the notification is a no-op.
func (uc *ExpirePayment) Execute(
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

	if b.Status != string(domain.StatusPending) {
		return b, nil
	}

	if err := domain.Cancel(b, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Entry{
		Action:   "booking_expired",
		Entity:   "booking",
		EntityID: b.ID,
	})

	return b, nil
}
