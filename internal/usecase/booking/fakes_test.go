package booking

import (
	"context"
	"sync"

	"github.com/AmberStudioApps/studio-booking/internal/audit"
	domain "github.com/AmberStudioApps/studio-booking/internal/domain/booking"
	"github.com/AmberStudioApps/studio-booking/internal/httperr"
	"github.com/AmberStudioApps/studio-booking/internal/models"
)

// ------------------------------------------------------
// In-memory repository
// ------------------------------------------------------

type fakeRepo struct {
	mu       sync.Mutex
	services map[string]*models.Service
	hours    map[int]*models.BusinessHours
	bookings map[string]*models.Booking

	// injectable store failures
	serviceErr    error
	hoursErr      error
	getBookingErr error
	updateErr     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services: map[string]*models.Service{},
		hours:    map[int]*models.BusinessHours{},
		bookings: map[string]*models.Booking{},
	}
}

func (r *fakeRepo) addService(s models.Service) {
	r.services[s.ID] = &s
}

func (r *fakeRepo) openAllWeek(open, close string) {
	for d := 0; d < 7; d++ {
		r.hours[d] = &models.BusinessHours{Weekday: d, OpenTime: open, CloseTime: close}
	}
}

func (r *fakeRepo) closeWeekday(d int) {
	r.hours[d] = &models.BusinessHours{Weekday: d, IsClosed: true}
}

func (r *fakeRepo) addBooking(b models.Booking) {
	r.bookings[b.ID] = &b
}

func (r *fakeRepo) GetService(_ context.Context, id string) (*models.Service, error) {
	if r.serviceErr != nil {
		return nil, r.serviceErr
	}
	if s, ok := r.services[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) GetBusinessHours(_ context.Context, weekday int) (*models.BusinessHours, error) {
	if r.hoursErr != nil {
		return nil, r.hoursErr
	}
	if h, ok := r.hours[weekday]; ok {
		return h, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) ListActiveBookings(_ context.Context, serviceID, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.ServiceID == serviceID && b.BookingDate == date && domain.Blocks(domain.Status(b.Status)) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateBookingIfFree(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	start, err := domain.ParseClock(b.BookingTime)
	if err != nil {
		return httperr.ErrBusiness("invalid_time")
	}

	for _, other := range r.bookings {
		if other.ServiceID != b.ServiceID || other.BookingDate != b.BookingDate {
			continue
		}
		if !domain.Blocks(domain.Status(other.Status)) {
			continue
		}
		otherStart, err := domain.ParseClock(other.BookingTime)
		if err != nil {
			continue
		}
		if domain.Overlaps(start, b.DurationMin, otherStart, other.DurationMin) {
			return httperr.ErrBusiness("time_conflict")
		}
	}

	stored := *b
	r.bookings[b.ID] = &stored
	return nil
}

func (r *fakeRepo) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.getBookingErr != nil {
		return nil, r.getBookingErr
	}
	if b, ok := r.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateErr != nil {
		return r.updateErr
	}
	stored := *b
	r.bookings[b.ID] = &stored
	return nil
}

func (r *fakeRepo) ListBookingsByDate(_ context.Context, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.BookingDate == date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListBookingsByMonth(_ context.Context, year, month int) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		d, err := domain.ParseDate(b.BookingDate)
		if err != nil {
			continue
		}
		if d.Year() == year && int(d.Month()) == month {
			out = append(out, *b)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ------------------------------------------------------
// Payment gateway stub
// ------------------------------------------------------

type fakeGateway struct {
	calls   int
	lastIn  domain.CheckoutInput
	err     error
	session domain.CheckoutSession
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		session: domain.CheckoutSession{
			ID:  "cs_test_123",
			URL: "https://checkout.example.com/cs_test_123",
		},
	}
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, in domain.CheckoutInput) (*domain.CheckoutSession, error) {
	g.calls++
	g.lastIn = in
	if g.err != nil {
		return nil, g.err
	}
	s := g.session
	return &s, nil
}

var _ domain.PaymentGateway = (*fakeGateway)(nil)

// ------------------------------------------------------
// Audit sink that swallows everything
// ------------------------------------------------------

type noopSink struct{}

func (noopSink) Write(audit.Entry) error { return nil }

func newTestAudit() *audit.Dispatcher {
	return audit.NewDispatcher(noopSink{})
}
