package model

import "time"

// ============================================================================
// DATABASE ENTITY (Internal - GORM tags)
// ============================================================================

// Event represents an event in the database. AvailableSeats only changes
// inside a row-locked booking transaction or an event update.
type Event struct {
	ID             int64     `gorm:"primaryKey"`
	Title          string    `gorm:"index;not null"`
	Location       string    `gorm:"not null"`
	Date           time.Time `gorm:"not null"`
	TotalSeats     int       `gorm:"not null"`
	AvailableSeats int       `gorm:"not null"`
}

// ============================================================================
// REPOSITORY DATA TRANSFER OBJECTS (Internal - for repository layer)
// ============================================================================

// CreateEventRequest represents the data needed to create an event in repository
type CreateEventRequest struct {
	Title      string
	Location   string
	Date       time.Time
	TotalSeats int
}

// UpdateEventRequest represents the data needed to update an event in repository
type UpdateEventRequest struct {
	ID int64
	CreateEventRequest
}

// ============================================================================
// API DATA TRANSFER OBJECTS (External - JSON tags for HTTP)
// ============================================================================

// EventRequest is the body of POST /events and PUT /events/:id
type EventRequest struct {
	Title      string    `json:"title" binding:"required"`
	Location   string    `json:"location" binding:"required"`
	Date       time.Time `json:"date" binding:"required"`
	TotalSeats int       `json:"total_seats" binding:"required,min=1"`
}

// EventResponse represents an event in API responses. It is also the shape
// kept in the event list cache.
type EventResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Location       string    `json:"location"`
	Date           time.Time `json:"date"`
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats int       `json:"available_seats"`
}

// ============================================================================
// CONVERSION METHODS
// ============================================================================

// ToCreateEventRequest converts API request to repository request
func (r *EventRequest) ToCreateEventRequest() CreateEventRequest {
	return CreateEventRequest{
		Title:      r.Title,
		Location:   r.Location,
		Date:       r.Date.UTC(),
		TotalSeats: r.TotalSeats,
	}
}

// ToEventResponse converts database entity to API response
func (e *Event) ToEventResponse() EventResponse {
	return EventResponse{
		ID:             e.ID,
		Title:          e.Title,
		Location:       e.Location,
		Date:           e.Date.UTC(),
		TotalSeats:     e.TotalSeats,
		AvailableSeats: e.AvailableSeats,
	}
}

// ToEventResponses converts a list of database entities, never returning nil
func ToEventResponses(events []Event) []EventResponse {
	responses := make([]EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, events[i].ToEventResponse())
	}
	return responses
}
