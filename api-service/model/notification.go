package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification types published on the notification topic
const (
	NotificationBookingConfirmed = "booking_confirmed"
	NotificationBookingCancelled = "booking_cancelled"
)

// ============================================================================
// KAFKA MESSAGE STRUCTURES (To Notification Service)
// ============================================================================

// NotificationRequest represents the message sent to the notification topic
type NotificationRequest struct {
	ID             uuid.UUID               `json:"id"`
	Type           string                  `json:"type"`
	RecipientEmail string                  `json:"recipient_email"`
	BookingData    NotificationBookingData `json:"booking_data"`
	Timestamp      time.Time               `json:"timestamp"`
}

// NotificationBookingData represents booking data for notifications
type NotificationBookingData struct {
	BookingID     int64     `json:"booking_id"`
	EventTitle    string    `json:"event_title"`
	EventLocation string    `json:"event_location"`
	EventDate     time.Time `json:"event_date"`
	SeatsBooked   int       `json:"seats_booked"`
	UserName      string    `json:"user_name"`
}

// NewBookingNotification builds a notification for a booking and its event
func NewBookingNotification(kind string, user *User, booking *Booking, event *Event) NotificationRequest {
	return NotificationRequest{
		ID:             uuid.New(),
		Type:           kind,
		RecipientEmail: user.Email,
		BookingData: NotificationBookingData{
			BookingID:     booking.ID,
			EventTitle:    event.Title,
			EventLocation: event.Location,
			EventDate:     event.Date.UTC(),
			SeatsBooked:   booking.SeatsBooked,
			UserName:      user.Name,
		},
		Timestamp: time.Now().UTC(),
	}
}
