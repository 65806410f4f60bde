package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/AmberStudioApps/studio-booking/internal/domain/booking"
	"github.com/AmberStudioApps/studio-booking/internal/httperr"
	"github.com/AmberStudioApps/studio-booking/internal/httpresp"
	"github.com/AmberStudioApps/studio-booking/internal/models"
	ucBooking "github.com/AmberStudioApps/studio-booking/internal/usecase/booking"
	"github.com/AmberStudioApps/studio-booking/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db           *gorm.DB
	availability *ucBooking.GetAvailability
	create       *ucBooking.CreateBooking
}

func NewPublicHandler(
	db *gorm.DB,
	availability *ucBooking.GetAvailability,
	create *ucBooking.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
		create:       create,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type CreateBookingRequest struct {
	ServiceID     string `json:"serviceId" binding:"required"`
	BookingDate   string `json:"bookingDate" binding:"required"` // YYYY-MM-DD
	BookingTime   string `json:"bookingTime" binding:"required"` // HH:mm
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerEmail string `json:"customerEmail" binding:"required,email"`
	CustomerPhone string `json:"customerPhone" binding:"required"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Where("active = true").
		Order("created_at DESC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	httpresp.List(c, services)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceID := c.Query("serviceId")

	if dateStr == "" || serviceID == "" {
		httperr.BadRequest(c, "missing_params", "Date and serviceId are required.")
		return
	}

	slots, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			ServiceID: serviceID,
			Date:      dateStr,
		},
	)

	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_date"):
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
		case httperr.IsBusiness(err, "service_not_found"):
			httperr.NotFound(c, "service_not_found", "Service not found.")
		default:
			httperr.Internal(c, "availability_failed", "Failed to compute availability.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"timeSlots": slots})
}

////////////////////////////////////////////////////////
// CREATE BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	if !validators.IsEmailDomainValid(req.CustomerEmail) {
		httperr.BadRequest(c, "invalid_email", "Email domain does not appear to be valid.")
		return
	}

	result, err := h.create.Execute(
		c.Request.Context(),
		ucBooking.CreateBookingInput{
			ServiceID:     req.ServiceID,
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			Date:          req.BookingDate,
			Time:          req.BookingTime,
		},
	)

	if err != nil {
		mapCreateBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking":     result.Booking,
		"checkoutUrl": result.CheckoutURL,
	})
}

func mapCreateBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_date"):
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
	case httperr.IsBusiness(err, "invalid_time"):
		httperr.BadRequest(c, "invalid_time", "Invalid time.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.NotFound(c, "service_not_found", "Service not found.")
	case httperr.IsBusiness(err, "outside_business_hours"):
		httperr.BadRequest(c, "outside_business_hours", "Requested time is outside business hours.")
	case httperr.IsBusiness(err, "time_conflict"):
		httperr.Conflict(c, "time_conflict", "That time slot was just taken. Please pick another slot.")
	case httperr.IsBusiness(err, "payment_session_failed"):
		httperr.BadGateway(c, "payment_session_failed", "Payment provider is unavailable. Please try again.")
	default:
		httperr.Internal(c, "failed_to_create_booking", "Failed to create booking.")
	}
}

////////////////////////////////////////////////////////
// BOOKING LOOKUP (confirmation page)
////////////////////////////////////////////////////////

func (h *PublicHandler) GetBooking(c *gin.Context) {
	id := c.Param("id")

	var b models.Booking
	if err := h.db.
		Preload("Service").
		Where("id = ?", id).
		First(&b).Error; err != nil {

		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	httpresp.OK(c, b)
}
