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

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID string,
	adminID *uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}

	if err := domain.Cancel(b, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Entry{
		AdminID:  adminID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: b.ID,
	})

	return b, nil
}
