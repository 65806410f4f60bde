package models

import "time"

type Service struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	DurationMin    int   `json:"duration"`
	Price          int64 `json:"price"`
	DepositPercent int   `json:"deposit_percent"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
