package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AmberStudioApps/studio-booking/internal/audit"
	domain "github.com/AmberStudioApps/studio-booking/internal/domain/booking"
	"github.com/AmberStudioApps/studio-booking/internal/httperr"
	"github.com/AmberStudioApps/studio-booking/internal/httpresp"
	"github.com/AmberStudioApps/studio-booking/internal/middleware"
	"github.com/AmberStudioApps/studio-booking/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type HoursHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewHoursHandler(db *gorm.DB, auditor *audit.Dispatcher) *HoursHandler {
	return &HoursHandler{db: db, audit: auditor}
}

// ======================================================
// DTOs
// ======================================================

type UpdateHoursEntry struct {
	Weekday   int    `json:"day_of_week"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsClosed  bool   `json:"is_closed"`
}

type UpdateHoursRequest struct {
	Hours []UpdateHoursEntry `json:"hours" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *HoursHandler) Get(c *gin.Context) {
	var hours []models.BusinessHours
	if err := h.db.Order("weekday ASC").Find(&hours).Error; err != nil {
		httperr.Internal(c, "failed_to_list_hours", "Failed to list business hours.")
		return
	}

	httpresp.List(c, hours)
}

func (h *HoursHandler) Update(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)

	var req UpdateHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid business hours payload.")
		return
	}

	for _, e := range req.Hours {
		if err := validateHoursEntry(e); err != nil {
			httperr.BadRequest(c, "invalid_hours", err.Error())
			return
		}
	}

	rows := make([]models.BusinessHours, 0, len(req.Hours))
	for _, e := range req.Hours {
		rows = append(rows, models.BusinessHours{
			Weekday:   e.Weekday,
			OpenTime:  e.OpenTime,
			CloseTime: e.CloseTime,
			IsClosed:  e.IsClosed,
		})
	}

	err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "weekday"}},
		DoUpdates: clause.AssignmentColumns([]string{"open_time", "close_time", "is_closed", "updated_at"}),
	}).Create(&rows).Error

	if err != nil {
		httperr.Internal(c, "failed_to_update_hours", "Failed to update business hours.")
		return
	}

	h.audit.Dispatch(audit.Entry{
		AdminID:  &adminID,
		Action:   "business_hours_updated",
		Entity:   "business_hours",
		Metadata: map[string]any{"days": len(rows)},
	})

	var hours []models.BusinessHours
	if err := h.db.Order("weekday ASC").Find(&hours).Error; err != nil {
		httperr.Internal(c, "failed_to_list_hours", "Failed to list business hours.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": hours, "count": len(hours)})
}

func validateHoursEntry(e UpdateHoursEntry) error {
	if e.Weekday < 0 || e.Weekday > 6 {
		return errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
	}

	if e.IsClosed {
		return nil
	}

	open, err := domain.ParseClock(e.OpenTime)
	if err != nil {
		return errors.New("open_time must be HH:mm")
	}

	closeAt, err := domain.ParseClock(e.CloseTime)
	if err != nil {
		return errors.New("close_time must be HH:mm")
	}

	if open >= closeAt {
		return errors.New("open_time must be before close_time")
	}

	return nil
}
