package booking

import "github.com/AmberStudioApps/studio-booking/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Blocks reports whether a booking in this status occupies its slot.
// Pending bookings block exactly like confirmed ones: the slot is held
// for the whole payment window.
func Blocks(s Status) bool {
	return s == StatusPending || s == StatusConfirmed
}

// ===============================
// Transition rules
// ===============================

// CanConfirm: only a pending booking can be confirmed (payment completion).
func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel: pending and confirmed bookings can be cancelled; cancelled and
// completed are terminal.
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete: only a confirmed booking can be marked completed.
func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
