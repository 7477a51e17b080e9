package repository

import (
	"context"
	"errors"

	"github.com/arunvm123/bookingportal/api-service/model"
)

var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotEnoughSeats   = errors.New("not enough seats available")
	ErrNotBookingOwner  = errors.New("booking belongs to another user")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrSeatsBelowBooked = errors.New("total seats below seats already booked")
)

type Repository interface {
	// User operations
	CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ValidatePassword(user *model.User, password string) bool
	EnsureAdmin(ctx context.Context, email, password string) (bool, error)

	// Event operations
	ListEvents(ctx context.Context) ([]model.Event, error)
	CreateEvent(ctx context.Context, req model.CreateEventRequest) (*model.Event, error)
	UpdateEvent(ctx context.Context, req model.UpdateEventRequest) (*model.Event, error)
	DeleteEvent(ctx context.Context, id int64) error

	// Booking operations. CreateBooking and CancelBooking return the event
	// as it stands after the seat adjustment.
	CreateBooking(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, *model.Event, error)
	ListUserBookings(ctx context.Context, userID int64) ([]model.Booking, error)
	CancelBooking(ctx context.Context, bookingID, userID int64) (*model.Booking, *model.Event, error)
	ListAllBookings(ctx context.Context) ([]model.AdminBookingRow, error)

	// Health check
	Ping(ctx context.Context) error
}
