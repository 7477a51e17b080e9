// Package history holds the caller's own bookings and cancels them.
package history

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/arunvm123/bookingportal/web-client/confirm"
	"github.com/arunvm123/bookingportal/web-client/model"
	"github.com/arunvm123/bookingportal/web-client/resource"
	"github.com/arunvm123/bookingportal/web-client/service"
	"github.com/arunvm123/bookingportal/web-client/session"
)

const (
	MessageCancelled    = "Booking cancelled successfully!"
	MessageCancelFailed = "Cancellation failed"
)

var (
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrDeclined         = errors.New("cancellation not confirmed")
	ErrInFlight         = errors.New("cancellation already in progress")
)

type Bookings interface {
	MyBookings(ctx context.Context, token string) ([]model.Booking, error)
	CancelBooking(ctx context.Context, token string, bookingID int64) error
}

// Refresher is the event catalog, refreshed after a cancellation frees seats.
type Refresher interface {
	Refresh(ctx context.Context) (resource.State[[]model.Event], error)
}

type Store struct {
	api       Bookings
	session   session.Source
	gate      confirm.Gate
	inventory Refresher
	logger    *slog.Logger

	bookings resource.Resource[[]model.Booking]

	mu      sync.Mutex
	epoch   uint64
	cancels map[int64]model.OperationState
}

func NewStore(api Bookings, source session.Source, gate confirm.Gate, inventory Refresher, logger *slog.Logger) *Store {
	return &Store{
		api:       api,
		session:   source,
		gate:      gate,
		inventory: inventory,
		logger:    logger,
		cancels:   make(map[int64]model.OperationState),
	}
}

// Fetch replaces the snapshot with the caller's bookings.
func (s *Store) Fetch(ctx context.Context) (resource.State[[]model.Booking], error) {
	token := s.session.Token()
	if token == "" {
		return s.bookings.Snapshot(), session.ErrNoSession
	}

	state, err := s.bookings.Load(ctx, func(ctx context.Context) ([]model.Booking, error) {
		return s.api.MyBookings(ctx, token)
	})
	if err != nil && service.IsUnauthorized(err) {
		s.session.Invalidate(ctx, token)
	}
	return state, err
}

// Cancel asks for confirmation, then cancels the booking on the server. The
// local snapshot only changes through the refetch that follows a success.
func (s *Store) Cancel(ctx context.Context, bookingID int64) (model.OperationState, error) {
	token := s.session.Token()
	if token == "" {
		return s.CancelState(bookingID), session.ErrNoSession
	}
	if booking, ok := s.find(bookingID); ok && !booking.Cancellable() {
		return s.CancelState(bookingID), ErrAlreadyCancelled
	}
	if s.CancelState(bookingID).Loading() {
		return s.CancelState(bookingID), ErrInFlight
	}

	confirmed, err := s.gate.Confirm(ctx, confirm.PromptCancelBooking)
	if err != nil {
		return s.CancelState(bookingID), err
	}
	if !confirmed {
		return s.CancelState(bookingID), ErrDeclined
	}

	s.mu.Lock()
	if s.cancels[bookingID].Loading() {
		state := s.cancels[bookingID]
		s.mu.Unlock()
		return state, ErrInFlight
	}
	epoch := s.epoch
	s.cancels[bookingID] = model.LoadingOperation()
	s.mu.Unlock()

	err = s.api.CancelBooking(ctx, token, bookingID)

	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return s.CancelState(bookingID), resource.ErrStale
	}
	if err != nil {
		s.cancels[bookingID] = model.FailedOperation(service.DetailOr(err, MessageCancelFailed))
	} else {
		s.cancels[bookingID] = model.SucceededOperation(MessageCancelled)
	}
	state := s.cancels[bookingID]
	s.mu.Unlock()

	if err != nil {
		s.logger.Info("cancellation failed", "booking_id", bookingID, "error", err)
		if service.IsUnauthorized(err) {
			s.session.Invalidate(ctx, token)
		}
		return state, err
	}

	s.logger.Info("booking cancelled", "booking_id", bookingID)
	if _, err := s.Fetch(ctx); err != nil {
		s.logger.Warn("failed to refetch bookings after cancellation", "error", err)
	}
	if _, err := s.inventory.Refresh(ctx); err != nil {
		s.logger.Warn("failed to refresh events after cancellation", "error", err)
	}
	return state, nil
}

func (s *Store) CancelState(bookingID int64) model.OperationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.cancels[bookingID]; ok {
		return state
	}
	return model.IdleOperation
}

func (s *Store) Snapshot() resource.State[[]model.Booking] {
	return s.bookings.Snapshot()
}

// Reset drops bookings and cancel states; late responses are discarded.
func (s *Store) Reset() {
	s.bookings.Reset()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.cancels = make(map[int64]model.OperationState)
}

func (s *Store) find(bookingID int64) (model.Booking, bool) {
	for _, booking := range s.bookings.Snapshot().Data {
		if booking.ID == bookingID {
			return booking, true
		}
	}
	return model.Booking{}, false
}
