package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AmberStudioApps/studio-booking/internal/httperr"
	"github.com/AmberStudioApps/studio-booking/internal/httpresp"
	"github.com/AmberStudioApps/studio-booking/internal/middleware"
	ucBooking "github.com/AmberStudioApps/studio-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AdminBookingHandler struct {
	listByDate  *ucBooking.ListBookingsByDate
	listByMonth *ucBooking.ListBookingsByMonth
	cancel      *ucBooking.CancelBooking
	complete    *ucBooking.CompleteBooking
}

func NewAdminBookingHandler(
	listByDate *ucBooking.ListBookingsByDate,
	listByMonth *ucBooking.ListBookingsByMonth,
	cancel *ucBooking.CancelBooking,
	complete *ucBooking.CompleteBooking,
) *AdminBookingHandler {
	return &AdminBookingHandler{
		listByDate:  listByDate,
		listByMonth: listByMonth,
		cancel:      cancel,
		complete:    complete,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AdminBookingHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	bookings, err := h.listByDate.Execute(c.Request.Context(), dateStr)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
			return
		}
		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

func (h *AdminBookingHandler) ListByMonth(c *gin.Context) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Year and month are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	bookings, err := h.listByMonth.Execute(c.Request.Context(), year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":     year,
		"month":    month,
		"bookings": bookings,
	})
}

// ======================================================
// STATE TRANSITIONS
// ======================================================

func (h *AdminBookingHandler) Cancel(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)
	id := c.Param("id")

	b, err := h.cancel.Execute(c.Request.Context(), id, &adminID)
	if err != nil {
		mapTransitionError(c, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *AdminBookingHandler) Complete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)
	id := c.Param("id")

	b, err := h.complete.Execute(c.Request.Context(), id, &adminID)
	if err != nil {
		mapTransitionError(c, err)
		return
	}

	httpresp.OK(c, b)
}

func mapTransitionError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "booking_not_found"):
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "Booking cannot transition from its current status.")
	default:
		httperr.Internal(c, "failed_to_update_booking", "Failed to update booking.")
	}
}
