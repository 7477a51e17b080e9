package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Notification types consumed from the notification topic
const (
	TypeBookingConfirmed = "booking_confirmed"
	TypeBookingCancelled = "booking_cancelled"
)

// ============================================================================
// KAFKA MESSAGE STRUCTURES (From API Service)
// ============================================================================

// NotificationRequest represents the message consumed from Kafka notification topic
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

// ============================================================================
// EMAIL TEMPLATES
// ============================================================================

// EmailTemplate represents an email to be sent (logged, not delivered)
type EmailTemplate struct {
	From    string
	To      string
	Subject string
	Body    string
}

// ============================================================================
// EMAIL GENERATION METHODS
// ============================================================================

// Render builds the email for the notification type. ok is false for types
// this service does not handle.
func (nr *NotificationRequest) Render(from string) (template *EmailTemplate, ok bool) {
	switch nr.Type {
	case TypeBookingConfirmed:
		return nr.bookingConfirmationEmail(from), true
	case TypeBookingCancelled:
		return nr.bookingCancellationEmail(from), true
	default:
		return nil, false
	}
}

func (nr *NotificationRequest) bookingConfirmationEmail(from string) *EmailTemplate {
	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\n", nr.BookingData.UserName)
	body.WriteString("Your booking has been confirmed!\n\n")
	nr.writeDetails(&body)
	body.WriteString("Thank you for your booking!\n\n")
	body.WriteString("Event Booking System")

	return &EmailTemplate{
		From:    from,
		To:      nr.RecipientEmail,
		Subject: "Booking Confirmed - " + nr.BookingData.EventTitle,
		Body:    body.String(),
	}
}

func (nr *NotificationRequest) bookingCancellationEmail(from string) *EmailTemplate {
	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\n", nr.BookingData.UserName)
	body.WriteString("Your booking has been cancelled and the seats released.\n\n")
	nr.writeDetails(&body)
	body.WriteString("We hope to see you at another event.\n\n")
	body.WriteString("Event Booking System")

	return &EmailTemplate{
		From:    from,
		To:      nr.RecipientEmail,
		Subject: "Booking Cancelled - " + nr.BookingData.EventTitle,
		Body:    body.String(),
	}
}

func (nr *NotificationRequest) writeDetails(body *strings.Builder) {
	fmt.Fprintf(body, "Event: %s\n", nr.BookingData.EventTitle)
	fmt.Fprintf(body, "Location: %s\n", nr.BookingData.EventLocation)
	fmt.Fprintf(body, "Date: %s\n", nr.BookingData.EventDate.UTC().Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(body, "Seats: %d\n", nr.BookingData.SeatsBooked)
	fmt.Fprintf(body, "Booking ID: %d\n\n", nr.BookingData.BookingID)
}

// ============================================================================
// API DATA TRANSFER OBJECTS (External - JSON tags for HTTP)
// ============================================================================

// HealthResponse represents the health check response
type HealthResponse struct {
	Status            string    `json:"status"`
	Service           string    `json:"service"`
	Timestamp         time.Time `json:"timestamp"`
	MessagesProcessed int64     `json:"messages_processed"`
	MessagesFailed    int64     `json:"messages_failed"`
}
