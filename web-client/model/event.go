package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ============================================================================
// API DATA TRANSFER OBJECTS (External - JSON tags for HTTP)
// ============================================================================

// Event represents a bookable event as returned by GET /events.
// The client never computes AvailableSeats itself; every value comes from the server.
type Event struct {
	ID             int64     `json:"id" validate:"required"`
	Title          string    `json:"title"`
	Location       string    `json:"location"`
	Date           Timestamp `json:"date"`
	TotalSeats     int       `json:"total_seats" validate:"gte=1"`
	AvailableSeats int       `json:"available_seats" validate:"gte=0,ltefield=TotalSeats"`
}

// SoldOut reports whether the event has no seats left to offer.
func (e *Event) SoldOut() bool {
	return e.AvailableSeats <= 0
}

// CreateEventRequest represents the API request for creating an event
type CreateEventRequest struct {
	Title      string    `json:"title"`
	Location   string    `json:"location"`
	Date       time.Time `json:"date"`
	TotalSeats int       `json:"total_seats"`
}

// EventForm holds the raw admin input for a new event before it is checked.
type EventForm struct {
	Title      string
	Location   string
	Date       string
	TotalSeats string
}

// ============================================================================
// TIMESTAMP
// ============================================================================

// timestampLayouts are tried in order. The backend serializes naive datetimes
// without a zone offset, which time.Time's own decoder rejects.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Timestamp is an ISO 8601 instant that tolerates a missing zone offset (read as UTC).
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses any of the accepted ISO 8601 forms.
func ParseTimestamp(value string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", value)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC().Format(time.RFC3339))
}
