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

const (
	testServiceID = "svc-massage"
	testDate      = "2025-06-16" // a Monday
)

func availabilityFixture(t *testing.T) (*fakeRepo, *GetAvailability) {
	t.Helper()

	repo := newFakeRepo()
	repo.addService(models.Service{
		ID:          testServiceID,
		Name:        "Deep Tissue Massage",
		DurationMin: 60,
		Price:       5000,
		Active:      true,
	})
	repo.openAllWeek("09:00", "17:00")

	return repo, NewGetAvailability(repo, 30)
}

func slotByTime(t *testing.T, slots []domain.TimeSlot, at string) domain.TimeSlot {
	t.Helper()
	for _, s := range slots {
		if s.Time == at {
			return s
		}
	}
	t.Fatalf("no slot at %s", at)
	return domain.TimeSlot{}
}

func TestGetAvailability_EmptyDay(t *testing.T) {
	_, uc := availabilityFixture(t)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: testServiceID,
		Date:      testDate,
	})
	require.NoError(t, err)

	// 09:00 through 16:00 on a 30 min grid
	require.Len(t, slots, 15)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "16:00", slots[len(slots)-1].Time)

	for _, s := range slots {
		assert.True(t, s.Available, "slot %s should be free", s.Time)
	}
}

func TestGetAvailability_ExistingBookingBlocksOverlaps(t *testing.T) {
	repo, uc := availabilityFixture(t)

	repo.addBooking(models.Booking{
		ID:          "b1",
		ServiceID:   testServiceID,
		BookingDate: testDate,
		BookingTime: "10:00",
		DurationMin: 60,
		Status:      string(domain.StatusConfirmed),
	})

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: testServiceID,
		Date:      testDate,
	})
	require.NoError(t, err)
	require.Len(t, slots, 15)

	// 09:30, 10:00 and 10:30 candidates all overlap 10:00-11:00
	assert.False(t, slotByTime(t, slots, "09:30").Available)
	assert.False(t, slotByTime(t, slots, "10:00").Available)
	assert.False(t, slotByTime(t, slots, "10:30").Available)

	// back-to-back on either side stays free
	assert.True(t, slotByTime(t, slots, "09:00").Available)
	assert.True(t, slotByTime(t, slots, "11:00").Available)
}

func TestGetAvailability_PendingBlocksLikeConfirmed(t *testing.T) {
	repo, uc := availabilityFixture(t)

	repo.addBooking(models.Booking{
		ID:          "b1",
		ServiceID:   testServiceID,
		BookingDate: testDate,
		BookingTime: "14:00",
		DurationMin: 60,
		Status:      string(domain.StatusPending),
	})

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: testServiceID,
		Date:      testDate,
	})
	require.NoError(t, err)

	assert.False(t, slotByTime(t, slots, "14:00").Available)
	assert.False(t, slotByTime(t, slots, "13:30").Available)
}

func TestGetAvailability_CancelledAndCompletedDoNotBlock(t *testing.T) {
	repo, uc := availabilityFixture(t)

	repo.addBooking(models.Booking{
		ID:          "b1",
		ServiceID:   testServiceID,
		BookingDate: testDate,
		BookingTime: "10:00",
		DurationMin: 60,
		Status:      string(domain.StatusCancelled),
	})
	repo.addBooking(models.Booking{
		ID:          "b2",
		ServiceID:   testServiceID,
		BookingDate: testDate,
		BookingTime: "15:00",
		DurationMin: 60,
		Status:      string(domain.StatusCompleted),
	})

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: testServiceID,
		Date:      testDate,
	})
	require.NoError(t, err)

	assert.True(t, slotByTime(t, slots, "10:00").Available)
	assert.True(t, slotByTime(t, slots, "15:00").Available)
}

func TestGetAvailability_OtherServiceDoesNotBlock(t *testing.T) {
	repo, uc := availabilityFixture(t)

	repo.addService(models.Service{
		ID:          "svc-other",
		Name:        "Haircut",
		DurationMin: 30,
		Active:      true,
	})
	repo.addBooking(models.Booking{
		ID:          "b1",
		ServiceID:   "svc-other",
		BookingDate: testDate,
		BookingTime: "10:00",
		DurationMin: 30,
		Status:      string(domain.StatusConfirmed),
	})

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: testServiceID,
		Date:      testDate,
	})
	require.NoError(t, err)

	assert.True(t, slotByTime(t, slots, "10:00").Available)
}

func TestGetAvailability_ClosedDay(t *testing.T) {
	repo, uc := availabilityFixture(t)
	repo.closeWeekday(1) // Monday

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: testServiceID,
		Date:      testDate,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailability_UnknownService(t *testing.T) {
	_, uc := availabilityFixture(t)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: "missing",
		Date:      testDate,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestGetAvailability_InactiveService(t *testing.T) {
	repo, uc := availabilityFixture(t)
	repo.addService(models.Service{ID: "svc-retired", DurationMin: 60, Active: false})

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: "svc-retired",
		Date:      testDate,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestGetAvailability_InvalidDate(t *testing.T) {
	_, uc := availabilityFixture(t)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: testServiceID,
		Date:      "not-a-date",
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestGetAvailability_ServiceStoreFailurePropagates(t *testing.T) {
	repo, uc := availabilityFixture(t)
	repo.serviceErr = errors.New("connection refused")

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: testServiceID,
		Date:      testDate,
	})
	require.Error(t, err)
	assert.False(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestGetAvailability_HoursStoreFailurePropagates(t *testing.T) {
	repo, uc := availabilityFixture(t)
	repo.hoursErr = errors.New("connection refused")

	// a store failure must not render as an empty (fully booked-looking) day
	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: testServiceID,
		Date:      testDate,
	})
	require.Error(t, err)
}

func TestGetAvailability_NoConfiguredHoursIsEmptyDay(t *testing.T) {
	repo, uc := availabilityFixture(t)
	delete(repo.hours, 1) // Monday has no row at all

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: testServiceID,
		Date:      testDate,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailability_DurationLongerThanDay(t *testing.T) {
	repo, uc := availabilityFixture(t)
	repo.addService(models.Service{
		ID:          "svc-marathon",
		DurationMin: 10 * 60,
		Active:      true,
	})

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: "svc-marathon",
		Date:      testDate,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}
