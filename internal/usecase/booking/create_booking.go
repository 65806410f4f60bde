package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AmberStudioApps/studio-booking/internal/audit"
	domain "github.com/AmberStudioApps/studio-booking/internal/domain/booking"
	"github.com/AmberStudioApps/studio-booking/internal/httperr"
	"github.com/AmberStudioApps/studio-booking/internal/logger"
	"github.com/AmberStudioApps/studio-booking/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingInput struct {
	ServiceID string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	Date string // YYYY-MM-DD
	Time string // HH:mm
}

type CreateBookingResult struct {
	Booking     *models.Booking
	CheckoutURL string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo    domain.Repository
	gateway domain.PaymentGateway
	audit   *audit.Dispatcher
	baseURL string
}

func NewCreateBooking(
	repo domain.Repository,
	gateway domain.PaymentGateway,
	audit *audit.Dispatcher,
	publicBaseURL string,
) *CreateBooking {
	return &CreateBooking{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
		baseURL: publicBaseURL,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingResult, error) {

	// --------------------------------------------------
	// Date / time
	// --------------------------------------------------
	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	start, err := domain.ParseClock(in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	// --------------------------------------------------
	// Service
	// --------------------------------------------------
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

	// --------------------------------------------------
	// Business hours
	// --------------------------------------------------
	wh, err := uc.repo.GetBusinessHours(ctx, int(date.Weekday()))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("outside_business_hours")
		}
		return nil, err
	}
	if wh.IsClosed {
		return nil, httperr.ErrBusiness("outside_business_hours")
	}

	open, err := domain.ParseClock(wh.OpenTime)
	if err != nil {
		return nil, httperr.ErrBusiness("outside_business_hours")
	}
	close, err := domain.ParseClock(wh.CloseTime)
	if err != nil {
		return nil, httperr.ErrBusiness("outside_business_hours")
	}

	if start < open || start+svc.DurationMin > close {
		return nil, httperr.ErrBusiness("outside_business_hours")
	}

	// --------------------------------------------------
	// Booking row (duration and amounts snapshotted now)
	// --------------------------------------------------
	b := &models.Booking{
		ID:        uuid.NewString(),
		ServiceID: svc.ID,

		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,

		BookingDate: in.Date,
		BookingTime: in.Time,
		DurationMin: svc.DurationMin,

		Status:        string(domain.InitialStatus()),
		PaymentStatus: string(domain.PaymentPending),

		DepositAmount: domain.DepositAmount(svc.Price, svc.DepositPercent),
		TotalAmount:   svc.Price,
	}

	// --------------------------------------------------
	// Conflict re-check + insert (atomic in the repository)
	// --------------------------------------------------
	if err := uc.repo.CreateBookingIfFree(ctx, b); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// No deposit due: nothing to collect, confirm straight away
	// --------------------------------------------------
	if b.DepositAmount == 0 {
		if err := domain.Confirm(b, time.Now()); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateBooking(ctx, b); err != nil {
			return nil, err
		}

		uc.audit.Dispatch(audit.Entry{
			Action:   "booking_created",
			Entity:   "booking",
			EntityID: b.ID,
		})

		return &CreateBookingResult{Booking: b}, nil
	}

	// --------------------------------------------------
	// Checkout session; on failure the held slot is released so no
	// pending booking survives without a payment session
	// --------------------------------------------------
	session, err := uc.gateway.CreateCheckoutSession(ctx, domain.CheckoutInput{
		BookingID:     b.ID,
		Description:   fmt.Sprintf("%s deposit (%s %s)", svc.Name, b.BookingDate, b.BookingTime),
		AmountMinor:   b.DepositAmount,
		CustomerEmail: b.CustomerEmail,
		SuccessURL:    uc.baseURL + "/confirmation?booking_id=" + b.ID,
		CancelURL:     uc.baseURL + "/book",
	})
	if err != nil {
		now := time.Now()
		if cancelErr := domain.Cancel(b, now); cancelErr == nil {
			if updErr := uc.repo.UpdateBooking(ctx, b); updErr != nil {
				// the pending row keeps holding the slot until the reaper
				// catches it; make that visible
				logger.L().Error("failed to release booking after checkout session failure",
					zap.String("booking_id", b.ID),
					zap.Error(updErr),
				)
			}
		}
		return nil, httperr.ErrBusiness("payment_session_failed")
	}

	b.CheckoutSessionID = session.ID
	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Entry{
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: b.ID,
		Metadata: map[string]any{
			"date": b.BookingDate,
			"time": b.BookingTime,
		},
	})

	return &CreateBookingResult{
		Booking:     b,
		CheckoutURL: session.URL,
	}, nil
}
