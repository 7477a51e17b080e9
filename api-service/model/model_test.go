package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventRequestNormalisesDateToUTC(t *testing.T) {
	local := time.FixedZone("CEST", 2*60*60)
	req := EventRequest{Title: "Go Meetup", Location: "Hall A", Date: time.Date(2030, 5, 1, 20, 30, 0, 0, local), TotalSeats: 50}

	created := req.ToCreateEventRequest()
	assert.Equal(t, time.UTC, created.Date.Location())
	assert.Equal(t, 18, created.Date.Hour())
}

func TestListConversionsNeverReturnNil(t *testing.T) {
	assert.NotNil(t, ToEventResponses(nil))
	assert.NotNil(t, ToBookingResponses(nil))
	assert.NotNil(t, ToAdminBookingResponses(nil))
}

func TestNewBookingNotification(t *testing.T) {
	user := &User{ID: 1, Name: "Alice", Email: "alice@example.com"}
	booking := &Booking{ID: 7, UserID: 1, EventID: 3, SeatsBooked: 2}
	event := &Event{ID: 3, Title: "Go Meetup", Location: "Hall A", Date: time.Date(2030, 5, 1, 18, 30, 0, 0, time.UTC)}

	req := NewBookingNotification(NotificationBookingCancelled, user, booking, event)
	assert.Equal(t, NotificationBookingCancelled, req.Type)
	assert.Equal(t, "alice@example.com", req.RecipientEmail)
	assert.Equal(t, int64(7), req.BookingData.BookingID)
	assert.Equal(t, "Hall A", req.BookingData.EventLocation)
	assert.NotEqual(t, [16]byte{}, [16]byte(req.ID))
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
}
