package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/AmberStudioApps/studio-booking/internal/domain/booking"
	"github.com/AmberStudioApps/studio-booking/internal/httperr"
	"github.com/AmberStudioApps/studio-booking/internal/models"
)

func lifecycleFixture(t *testing.T, status domain.Status) *fakeRepo {
	t.Helper()

	repo := newFakeRepo()
	repo.addBooking(models.Booking{
		ID:            "b1",
		ServiceID:     testServiceID,
		BookingDate:   testDate,
		BookingTime:   "10:00",
		DurationMin:   60,
		Status:        string(status),
		PaymentStatus: string(domain.PaymentPending),
	})
	return repo
}

// ------------------------------------------------------
// Payment completion
// ------------------------------------------------------

func TestConfirmPayment_PendingBecomesConfirmed(t *testing.T) {
	repo := lifecycleFixture(t, domain.StatusPending)
	uc := NewConfirmPayment(repo, newTestAudit())

	b, err := uc.Execute(context.Background(), "b1")
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	assert.Equal(t, string(domain.PaymentPaid), b.PaymentStatus)
	require.NotNil(t, b.ConfirmedAt)

	stored, err := repo.GetBooking(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), stored.Status)
}

func TestConfirmPayment_ReplayedEventIsIdempotent(t *testing.T) {
	repo := lifecycleFixture(t, domain.StatusPending)
	uc := NewConfirmPayment(repo, newTestAudit())

	first, err := uc.Execute(context.Background(), "b1")
	require.NoError(t, err)
	firstConfirmedAt := first.ConfirmedAt

	second, err := uc.Execute(context.Background(), "b1")
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), second.Status)
	assert.Equal(t, firstConfirmedAt, second.ConfirmedAt)
}

func TestConfirmPayment_CancelledBookingRejected(t *testing.T) {
	repo := lifecycleFixture(t, domain.StatusCancelled)
	uc := NewConfirmPayment(repo, newTestAudit())

	_, err := uc.Execute(context.Background(), "b1")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestConfirmPayment_UnknownBooking(t *testing.T) {
	uc := NewConfirmPayment(newFakeRepo(), newTestAudit())

	_, err := uc.Execute(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}

func TestConfirmPayment_StoreFailureIsNotNotFound(t *testing.T) {
	repo := lifecycleFixture(t, domain.StatusPending)
	repo.getBookingErr = errors.New("connection refused")
	uc := NewConfirmPayment(repo, newTestAudit())

	// a read failure must surface as a retryable error, never as a
	// business outcome the caller would acknowledge and drop
	_, err := uc.Execute(context.Background(), "b1")
	require.Error(t, err)
	assert.False(t, httperr.IsBusiness(err, "booking_not_found"))
}

// ------------------------------------------------------
// Session expiry
// ------------------------------------------------------

func TestExpirePayment_PendingBecomesCancelled(t *testing.T) {
	repo := lifecycleFixture(t, domain.StatusPending)
	uc := NewExpirePayment(repo, newTestAudit())

	b, err := uc.Execute(context.Background(), "b1")
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), b.Status)
	require.NotNil(t, b.CancelledAt)
}

func TestExpirePayment_ConfirmedIsUntouched(t *testing.T) {
	repo := lifecycleFixture(t, domain.StatusConfirmed)
	uc := NewExpirePayment(repo, newTestAudit())

	b, err := uc.Execute(context.Background(), "b1")
	require.NoError(t, err)

	// payment won the race: the expiry notification is a no-op
	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	assert.Nil(t, b.CancelledAt)
}

// ------------------------------------------------------
// Admin transitions
// ------------------------------------------------------

func TestCancelBooking(t *testing.T) {
	adminID := uint(1)

	repo := lifecycleFixture(t, domain.StatusConfirmed)
	uc := NewCancelBooking(repo, newTestAudit())

	b, err := uc.Execute(context.Background(), "b1", &adminID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), b.Status)

	// terminal: cancelling twice fails
	_, err = uc.Execute(context.Background(), "b1", &adminID)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCompleteBooking(t *testing.T) {
	adminID := uint(1)

	repo := lifecycleFixture(t, domain.StatusConfirmed)
	uc := NewCompleteBooking(repo, newTestAudit())

	b, err := uc.Execute(context.Background(), "b1", &adminID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), b.Status)
	require.NotNil(t, b.CompletedAt)
}

func TestCompleteBooking_PendingRejected(t *testing.T) {
	adminID := uint(1)

	repo := lifecycleFixture(t, domain.StatusPending)
	uc := NewCompleteBooking(repo, newTestAudit())

	_, err := uc.Execute(context.Background(), "b1", &adminID)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCancelledBookingFreesSlotForRebooking(t *testing.T) {
	adminID := uint(1)

	repo := lifecycleFixture(t, domain.StatusConfirmed)
	repo.addService(models.Service{
		ID:             testServiceID,
		Name:           "Deep Tissue Massage",
		DurationMin:    60,
		Price:          5000,
		DepositPercent: 25,
		Active:         true,
	})
	repo.openAllWeek("09:00", "17:00")

	cancel := NewCancelBooking(repo, newTestAudit())
	_, err := cancel.Execute(context.Background(), "b1", &adminID)
	require.NoError(t, err)

	create := NewCreateBooking(repo, newFakeGateway(), newTestAudit(), "https://studio.example.com")
	res, err := create.Execute(context.Background(), CreateBookingInput{
		ServiceID:     testServiceID,
		CustomerName:  "Carla Dias",
		CustomerEmail: "carla@example.com",
		CustomerPhone: "+1 555 0101",
		Date:          testDate,
		Time:          "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "10:00", res.Booking.BookingTime)
}
