package dto

type BookingListDTO struct {
	ID            string `json:"id"`
	BookingDate   string `json:"booking_date"`
	BookingTime   string `json:"booking_time"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	ServiceName   string `json:"service_name"`
	DepositAmount int64  `json:"deposit_amount"`
	TotalAmount   int64  `json:"total_amount"`
}
