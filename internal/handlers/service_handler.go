package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AmberStudioApps/studio-booking/internal/audit"
	"github.com/AmberStudioApps/studio-booking/internal/httperr"
	"github.com/AmberStudioApps/studio-booking/internal/httpresp"
	"github.com/AmberStudioApps/studio-booking/internal/middleware"
	"github.com/AmberStudioApps/studio-booking/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, auditor *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: auditor}
}

// ======================================================
// DTOs
// ======================================================

type CreateServiceRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	DurationMin    int    `json:"duration" binding:"required,min=1"`
	Price          int64  `json:"price" binding:"min=0"`
	DepositPercent int    `json:"deposit_percent" binding:"min=0,max=100"`
}

type UpdateServiceRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	DurationMin    *int    `json:"duration"`
	Price          *int64  `json:"price"`
	DepositPercent *int    `json:"deposit_percent"`
	Active         *bool   `json:"active"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("created_at DESC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service payload.")
		return
	}

	svc := models.Service{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		DurationMin:    req.DurationMin,
		Price:          req.Price,
		DepositPercent: req.DepositPercent,
		Active:         true,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Failed to create service.")
		return
	}

	h.audit.Dispatch(audit.Entry{
		AdminID:  &adminID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: svc.ID,
		Metadata: map[string]any{"name": svc.Name, "duration": svc.DurationMin},
	})

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)
	id := c.Param("id")

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service payload.")
		return
	}

	var svc models.Service
	if err := h.db.Where("id = ?", id).First(&svc).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin < 1 {
			httperr.BadRequest(c, "invalid_duration", "Duration must be at least one minute.")
			return
		}
		svc.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_price", "Price cannot be negative.")
			return
		}
		svc.Price = *req.Price
	}
	if req.DepositPercent != nil {
		if *req.DepositPercent < 0 || *req.DepositPercent > 100 {
			httperr.BadRequest(c, "invalid_deposit_percent", "Deposit percent must be between 0 and 100.")
			return
		}
		svc.DepositPercent = *req.DepositPercent
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Failed to update service.")
		return
	}

	h.audit.Dispatch(audit.Entry{
		AdminID:  &adminID,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: svc.ID,
		Metadata: map[string]any{"name": svc.Name, "active": svc.Active},
	})

	httpresp.OK(c, svc)
}
