package booking

import (
	"context"
	"errors"

	"github.com/AmberStudioApps/studio-booking/internal/models"
)

// ErrNotFound is returned by repositories when the requested row does not
// exist, so callers can tell a missing record apart from a store failure.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	// -------- Service --------
	GetService(
		ctx context.Context,
		id string,
	) (*models.Service, error)

	// -------- Business hours --------
	GetBusinessHours(
		ctx context.Context,
		weekday int,
	) (*models.BusinessHours, error)

	// -------- Availability --------
	ListActiveBookings(
		ctx context.Context,
		serviceID string,
		date string,
	) ([]models.Booking, error)

	// -------- Booking (create / conflict) --------
	CreateBookingIfFree(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (state change / listings) --------
	GetBooking(
		ctx context.Context,
		id string,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	ListBookingsByDate(
		ctx context.Context,
		date string,
	) ([]models.Booking, error)

	ListBookingsByMonth(
		ctx context.Context,
		year int,
		month int,
	) ([]models.Booking, error)
}
