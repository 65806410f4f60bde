package db

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AmberStudioApps/studio-booking/internal/config"
	"github.com/AmberStudioApps/studio-booking/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Service{},
		&models.BusinessHours{},
		&models.Booking{},
		&models.AdminUser{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Backstop for identical-start races that row locks cannot serialize:
	// only non-cancelled bookings participate, so a cancelled slot can be
	// re-booked at the same time.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_active_slot
        ON bookings (service_id, booking_date, booking_time)
        WHERE status IN ('pending', 'confirmed')
    `)

	seedBusinessHours(db)
	seedAdmin(db, cfg)

	return db
}

// seedBusinessHours writes the default week (Mon-Fri 09:00-17:00, weekend
// closed) so the admin hours form always has seven rows to edit.
func seedBusinessHours(db *gorm.DB) {
	var count int64
	db.Model(&models.BusinessHours{}).Count(&count)
	if count > 0 {
		return
	}

	for weekday := 0; weekday <= 6; weekday++ {
		wh := models.BusinessHours{
			Weekday:   weekday,
			OpenTime:  "09:00",
			CloseTime: "17:00",
			IsClosed:  weekday == 0 || weekday == 6,
		}
		db.Create(&wh)
	}
}

func seedAdmin(db *gorm.DB, cfg *config.Config) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}

	var count int64
	db.Model(&models.AdminUser{}).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	admin := models.AdminUser{
		Name:         "Admin",
		Email:        cfg.AdminEmail,
		PasswordHash: string(hashed),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
}
