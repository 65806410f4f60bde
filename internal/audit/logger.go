package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/AmberStudioApps/studio-booking/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(e Entry) error {
	var metaJSON string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		AdminID:  e.AdminID,
		Action:   e.Action,
		Entity:   e.Entity,
		EntityID: e.EntityID,
		Metadata: metaJSON,
	}

	return l.db.Create(&row).Error
}
