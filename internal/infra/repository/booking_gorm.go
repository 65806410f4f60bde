package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/AmberStudioApps/studio-booking/internal/domain/booking"
	"github.com/AmberStudioApps/studio-booking/internal/httperr"
	"github.com/AmberStudioApps/studio-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

var activeStatuses = []string{
	string(domain.StatusPending),
	string(domain.StatusConfirmed),
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id string,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&svc).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &svc, nil
}

// --------------------------------------------------
// Business hours
// --------------------------------------------------

func (r *BookingGormRepository) GetBusinessHours(
	ctx context.Context,
	weekday int,
) (*models.BusinessHours, error) {

	var wh models.BusinessHours
	if err := r.db.WithContext(ctx).
		Where("weekday = ?", weekday).
		First(&wh).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &wh, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveBookings(
	ctx context.Context,
	serviceID string,
	date string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("id", "booking_time", "duration_min", "status").
		Where(
			"service_id = ? AND booking_date = ? AND status IN ?",
			serviceID, date, activeStatuses,
		).
		Order("booking_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

// CreateBookingIfFree runs the conflict check and the insert as one atomic
// unit: the day's active bookings for the service are locked FOR UPDATE
// before the overlap test, and the partial unique index on active
// (service_id, booking_date, booking_time) catches identical-start inserts
// that slip past the row locks.
func (r *BookingGormRepository) CreateBookingIfFree(
	ctx context.Context,
	b *models.Booking,
) error {

	start, err := domain.ParseClock(b.BookingTime)
	if err != nil {
		return httperr.ErrBusiness("invalid_time")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var existing []models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"service_id = ? AND booking_date = ? AND status IN ?",
				b.ServiceID, b.BookingDate, activeStatuses,
			).
			Find(&existing).Error; err != nil {
			return err
		}

		for _, other := range existing {
			otherStart, err := domain.ParseClock(other.BookingTime)
			if err != nil {
				return fmt.Errorf("stored booking %s has bad time %q: %w", other.ID, other.BookingTime, err)
			}
			if domain.Overlaps(start, b.DurationMin, otherStart, other.DurationMin) {
				return httperr.ErrBusiness("time_conflict")
			}
		}

		if err := tx.Create(b).Error; err != nil {
			if isUniqueViolation(err) {
				return httperr.ErrBusiness("time_conflict")
			}
			return err
		}

		return nil
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Booking (state change / listings)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("id = ?", id).
		First(&b).Error; err != nil {
		return nil, mapNotFound(err)
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) ListBookingsByDate(
	ctx context.Context,
	date string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("booking_date = ?", date).
		Order("booking_time DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsByMonth(
	ctx context.Context,
	year int,
	month int,
) ([]models.Booking, error) {

	// booking_date is YYYY-MM-DD, so lexicographic range compare works
	from := fmt.Sprintf("%04d-%02d-01", year, month)
	nextYear, nextMonth := year, month+1
	if nextMonth > 12 {
		nextYear, nextMonth = year+1, 1
	}
	to := fmt.Sprintf("%04d-%02d-01", nextYear, nextMonth)

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("booking_date >= ? AND booking_date < ?", from, to).
		Order("booking_date DESC, booking_time DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
