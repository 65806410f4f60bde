package booking

import (
	"time"

	"github.com/AmberStudioApps/studio-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(b *models.Booking, now time.Time) error {
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusConfirmed)
	b.PaymentStatus = string(PaymentPaid)
	b.ConfirmedAt = &now
	return nil
}

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

// DepositAmount computes the upfront charge in minor currency units.
func DepositAmount(price int64, depositPercent int) int64 {
	return price * int64(depositPercent) / 100
}
