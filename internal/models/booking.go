package models

import "time"

type Booking struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	ServiceID string  `gorm:"size:36;index" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail string `gorm:"size:100" json:"customer_email"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`

	BookingDate string `gorm:"size:10;index" json:"booking_date"` // YYYY-MM-DD
	BookingTime string `gorm:"size:5" json:"booking_time"`        // HH:mm

	// Occupied interval is snapshotted at creation; later edits to the
	// service's duration never re-shape existing bookings.
	DurationMin int `json:"duration"`

	Status        string `gorm:"size:20;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"size:20;default:'pending'" json:"payment_status"`

	DepositAmount int64 `json:"deposit_amount"`
	TotalAmount   int64 `json:"total_amount"`

	CheckoutSessionID string `gorm:"size:100" json:"-"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
