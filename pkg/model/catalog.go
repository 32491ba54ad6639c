package model

type Venue struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Game struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	PricePerHour         float64 `json:"price_per_hour"`
	FirstBookingDiscount float64 `json:"first_booking_discount"`
}

// Slot is a one-hour interval within the daily grid. It is derived per query
// and never persisted.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
	TimeKey   string `json:"time_key"`
}
