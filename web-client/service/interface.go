package service

import (
	"context"

	"github.com/arunvm123/bookingportal/web-client/model"
)

// API defines the REST boundary of the booking backend. Every method except
// Authenticate and Signup carries the caller's bearer token.
type API interface {
	// Authenticate exchanges credentials for an access token
	Authenticate(ctx context.Context, username, password string) (string, error)

	// Signup registers a new user account
	Signup(ctx context.Context, req model.SignupRequest) (*model.User, error)

	// Me returns the identity behind a token
	Me(ctx context.Context, token string) (*model.User, error)

	// Event catalog
	ListEvents(ctx context.Context, token string) ([]model.Event, error)
	CreateEvent(ctx context.Context, token string, req model.CreateEventRequest) (*model.Event, error)
	DeleteEvent(ctx context.Context, token string, eventID int64) error

	// Bookings
	CreateBooking(ctx context.Context, token string, req model.CreateBookingRequest) (*model.Booking, error)
	MyBookings(ctx context.Context, token string) ([]model.Booking, error)
	CancelBooking(ctx context.Context, token string, bookingID int64) error

	// AllBookings returns every user's bookings (admin only)
	AllBookings(ctx context.Context, token string) ([]model.AdminBooking, error)
}
