package models

import "time"

// One row per weekday (0=Sunday..6=Saturday). Times are naive "HH:mm" strings;
// the studio operates in a single local timezone.
type BusinessHours struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Weekday   int    `gorm:"uniqueIndex" json:"day_of_week"`
	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`
	IsClosed  bool   `json:"is_closed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
