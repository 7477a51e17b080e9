package model

// Booking statuses
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// ============================================================================
// DATABASE ENTITY (Internal - GORM tags)
// ============================================================================

// Booking represents a seat reservation in the database. EventID is kept
// after the event is deleted so the admin listing still shows the row.
type Booking struct {
	ID          int64  `gorm:"primaryKey"`
	UserID      int64  `gorm:"index;not null"`
	EventID     int64  `gorm:"index;not null"`
	SeatsBooked int    `gorm:"not null"`
	Status      string `gorm:"default:confirmed;not null"`
}

// AdminBookingRow is the joined row returned for the admin listing
type AdminBookingRow struct {
	ID          int64
	EventID     int64
	EventTitle  string
	UserID      int64
	UserName    string
	UserEmail   string
	SeatsBooked int
	Status      string
}

// ============================================================================
// REPOSITORY DATA TRANSFER OBJECTS (Internal - for repository layer)
// ============================================================================

// CreateBookingRequest represents the data needed to create a booking in repository
type CreateBookingRequest struct {
	UserID      int64
	EventID     int64
	SeatsBooked int
}

// ============================================================================
// API DATA TRANSFER OBJECTS (External - JSON tags for HTTP)
// ============================================================================

// BookingRequest is the body of POST /bookings
type BookingRequest struct {
	EventID     int64 `json:"event_id" binding:"required"`
	SeatsBooked int   `json:"seats_booked" binding:"required,min=1"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID          int64  `json:"id"`
	EventID     int64  `json:"event_id"`
	UserID      int64  `json:"user_id"`
	SeatsBooked int    `json:"seats_booked"`
	Status      string `json:"status"`
}

// AdminBookingResponse represents one row of GET /admin/bookings
type AdminBookingResponse struct {
	ID          int64  `json:"id"`
	EventID     int64  `json:"event_id"`
	EventTitle  string `json:"event_title"`
	UserID      int64  `json:"user_id"`
	UserName    string `json:"user_name"`
	UserEmail   string `json:"user_email"`
	SeatsBooked int    `json:"seats_booked"`
	Status      string `json:"status"`
}

// ============================================================================
// CONVERSION METHODS
// ============================================================================

// ToCreateBookingRequest converts API request to repository request
func (r *BookingRequest) ToCreateBookingRequest(userID int64) CreateBookingRequest {
	return CreateBookingRequest{
		UserID:      userID,
		EventID:     r.EventID,
		SeatsBooked: r.SeatsBooked,
	}
}

// ToBookingResponse converts database entity to API response
func (b *Booking) ToBookingResponse() BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		EventID:     b.EventID,
		UserID:      b.UserID,
		SeatsBooked: b.SeatsBooked,
		Status:      b.Status,
	}
}

// ToBookingResponses converts a list of database entities, never returning nil
func ToBookingResponses(bookings []Booking) []BookingResponse {
	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToBookingResponse())
	}
	return responses
}

// ToAdminBookingResponses converts joined admin rows, never returning nil
func ToAdminBookingResponses(rows []AdminBookingRow) []AdminBookingResponse {
	responses := make([]AdminBookingResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, AdminBookingResponse(row))
	}
	return responses
}
