package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AmberStudioApps/studio-booking/internal/httperr"
	"github.com/AmberStudioApps/studio-booking/internal/httpresp"
	"github.com/AmberStudioApps/studio-booking/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	var logs []models.AuditLog
	if err := h.db.
		Order("created_at DESC").
		Limit(100).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "failed_to_list_audit_logs", "Failed to list audit logs.")
		return
	}

	httpresp.List(c, logs)
}
