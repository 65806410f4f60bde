package booking

type AvailabilityInput struct {
	ServiceID string
	Date      string // YYYY-MM-DD
}

type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}
