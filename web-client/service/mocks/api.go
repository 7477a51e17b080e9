// Package mocks provides a testify mock of service.API for component tests.
package mocks

import (
	"context"

	"github.com/arunvm123/bookingportal/web-client/model"
	"github.com/stretchr/testify/mock"
)

// MockAPI mocks the booking REST API
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Authenticate(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAPI) Me(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAPI) ListEvents(ctx context.Context, token string) ([]model.Event, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *MockAPI) CreateEvent(ctx context.Context, token string, req model.CreateEventRequest) (*model.Event, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockAPI) DeleteEvent(ctx context.Context, token string, eventID int64) error {
	args := m.Called(ctx, token, eventID)
	return args.Error(0)
}

func (m *MockAPI) CreateBooking(ctx context.Context, token string, req model.CreateBookingRequest) (*model.Booking, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockAPI) MyBookings(ctx context.Context, token string) ([]model.Booking, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockAPI) CancelBooking(ctx context.Context, token string, bookingID int64) error {
	args := m.Called(ctx, token, bookingID)
	return args.Error(0)
}

func (m *MockAPI) AllBookings(ctx context.Context, token string) ([]model.AdminBooking, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AdminBooking), args.Error(1)
}
