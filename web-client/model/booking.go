package model

// Booking statuses the client knows by name. Any other value is displayed as-is.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// ============================================================================
// API DATA TRANSFER OBJECTS (External - JSON tags for HTTP)
// ============================================================================

// Booking represents one of the caller's bookings as returned by GET /bookings/my
// and POST /bookings.
type Booking struct {
	ID          int64  `json:"id" validate:"required"`
	EventID     int64  `json:"event_id" validate:"required"`
	UserID      int64  `json:"user_id,omitempty"`
	SeatsBooked int    `json:"seats_booked" validate:"gte=1"`
	Status      string `json:"status"`
}

// Cancellable reports whether the cancel action should be offered.
func (b *Booking) Cancellable() bool {
	return b.Status != BookingStatusCancelled
}

// AdminBooking represents a denormalized booking record from GET /admin/bookings
type AdminBooking struct {
	ID          int64  `json:"id" validate:"required"`
	EventID     int64  `json:"event_id"`
	EventTitle  string `json:"event_title"`
	UserID      int64  `json:"user_id"`
	UserName    string `json:"user_name"`
	UserEmail   string `json:"user_email"`
	SeatsBooked int    `json:"seats_booked" validate:"gte=1"`
	Status      string `json:"status"`
}

// CreateBookingRequest represents the API request to book seats for an event
type CreateBookingRequest struct {
	EventID     int64 `json:"event_id"`
	SeatsBooked int   `json:"seats_booked"`
}
