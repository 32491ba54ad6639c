package model

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// Booking mirrors a row in the hosted bookings table. Times are clock strings
// ("HH:MM") and the date is "YYYY-MM-DD", matching the remote schema.
type Booking struct {
	ID              string  `json:"id,omitempty"`
	UserID          string  `json:"user_id"`
	VenueID         string  `json:"venue_id"`
	GameID          string  `json:"game_id"`
	BookingDate     string  `json:"booking_date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	TotalPrice      float64 `json:"total_price"`
	DiscountApplied float64 `json:"discount_applied"`
	PaymentStatus   string  `json:"payment_status"`
	Status          string  `json:"status"`
	PaymentID       string  `json:"payment_id,omitempty"`
	OrderID         string  `json:"order_id,omitempty"`
	CreatedAt       string  `json:"created_at,omitempty"`
}

// BookingSummary is what booking creation hands to the payment step.
type BookingSummary struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
	Game  string  `json:"game"`
	Date  string  `json:"date"`
	Time  string  `json:"time"`
}

type CreateBookingInput struct {
	GameID    string `json:"game_id" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}
