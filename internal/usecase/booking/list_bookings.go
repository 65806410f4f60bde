package booking

import (
	"context"

	domain "github.com/AmberStudioApps/studio-booking/internal/domain/booking"
	"github.com/AmberStudioApps/studio-booking/internal/dto"
	"github.com/AmberStudioApps/studio-booking/internal/httperr"
	"github.com/AmberStudioApps/studio-booking/internal/models"
)

type ListBookingsByDate struct {
	repo domain.Repository
}

func NewListBookingsByDate(repo domain.Repository) *ListBookingsByDate {
	return &ListBookingsByDate{repo: repo}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	date string,
) ([]dto.BookingListDTO, error) {

	if _, err := domain.ParseDate(date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	bookings, err := uc.repo.ListBookingsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	return toListDTOs(bookings), nil
}

type ListBookingsByMonth struct {
	repo domain.Repository
}

func NewListBookingsByMonth(repo domain.Repository) *ListBookingsByMonth {
	return &ListBookingsByMonth{repo: repo}
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	year int,
	month int,
) ([]dto.BookingListDTO, error) {

	bookings, err := uc.repo.ListBookingsByMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	return toListDTOs(bookings), nil
}

func toListDTOs(bookings []models.Booking) []dto.BookingListDTO {
	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:            b.ID,
			BookingDate:   b.BookingDate,
			BookingTime:   b.BookingTime,
			Status:        b.Status,
			PaymentStatus: b.PaymentStatus,
			CustomerName:  b.CustomerName,
			CustomerPhone: b.CustomerPhone,
			ServiceName:   b.Service.Name,
			DepositAmount: b.DepositAmount,
			TotalAmount:   b.TotalAmount,
		})
	}
	return out
}
