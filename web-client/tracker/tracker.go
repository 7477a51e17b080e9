// Package tracker tracks booking submissions per event. At most one booking
// request per event id is in flight at any time.
package tracker

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/arunvm123/bookingportal/web-client/model"
	"github.com/arunvm123/bookingportal/web-client/resource"
	"github.com/arunvm123/bookingportal/web-client/service"
	"github.com/arunvm123/bookingportal/web-client/session"
)

const (
	MessageBooked = "Booking successful"
	MessageFailed = "Booking failed"
)

var (
	ErrInvalidSeats = errors.New("seat count must be at least 1")
	// ErrExceedsAvailable is a convenience check against the displayed count,
	// which may be stale. The server remains the only authority.
	ErrExceedsAvailable = errors.New("not enough seats available")
	// ErrInFlight is returned, without any request, while a booking for the
	// same event is still loading.
	ErrInFlight = errors.New("booking already in progress")
)

type Booker interface {
	CreateBooking(ctx context.Context, token string, req model.CreateBookingRequest) (*model.Booking, error)
}

// Inventory is the catalog the tracker reads displayed seats from and
// refreshes after a successful booking.
type Inventory interface {
	Find(eventID int64) (model.Event, bool)
	Refresh(ctx context.Context) (resource.State[[]model.Event], error)
}

type entry struct {
	state   model.OperationState
	attempt uint64
}

type Tracker struct {
	api       Booker
	session   session.Source
	inventory Inventory
	logger    *slog.Logger

	mu       sync.Mutex
	epoch    uint64
	attempts uint64
	entries  map[int64]*entry
}

func New(api Booker, source session.Source, inventory Inventory, logger *slog.Logger) *Tracker {
	return &Tracker{
		api:       api,
		session:   source,
		inventory: inventory,
		logger:    logger,
		entries:   make(map[int64]*entry),
	}
}

// Submit books seats for an event and refreshes the catalog once on success.
// A failed booking is not retried; calling Submit again starts a new attempt.
func (t *Tracker) Submit(ctx context.Context, eventID int64, seats int) (model.OperationState, error) {
	if seats < 1 {
		return t.State(eventID), ErrInvalidSeats
	}
	if event, ok := t.inventory.Find(eventID); ok && seats > event.AvailableSeats {
		return t.State(eventID), ErrExceedsAvailable
	}
	token := t.session.Token()
	if token == "" {
		return t.State(eventID), session.ErrNoSession
	}

	t.mu.Lock()
	if e, ok := t.entries[eventID]; ok && e.state.Loading() {
		state := e.state
		t.mu.Unlock()
		return state, ErrInFlight
	}
	t.attempts++
	attempt, epoch := t.attempts, t.epoch
	t.entries[eventID] = &entry{state: model.LoadingOperation(), attempt: attempt}
	t.mu.Unlock()

	booking, err := t.api.CreateBooking(ctx, token, model.CreateBookingRequest{EventID: eventID, SeatsBooked: seats})

	t.mu.Lock()
	e, ok := t.entries[eventID]
	if epoch != t.epoch || !ok || e.attempt != attempt {
		t.mu.Unlock()
		return t.State(eventID), resource.ErrStale
	}
	if err != nil {
		e.state = model.FailedOperation(service.DetailOr(err, MessageFailed))
	} else {
		e.state = model.SucceededOperation(MessageBooked)
	}
	state := e.state
	t.mu.Unlock()

	if err != nil {
		t.logger.Info("booking failed", "event_id", eventID, "seats", seats, "error", err)
		if service.IsUnauthorized(err) {
			t.session.Invalidate(ctx, token)
		}
		return state, err
	}

	t.logger.Info("booking created", "event_id", eventID, "booking_id", booking.ID, "seats", seats)
	if _, err := t.inventory.Refresh(ctx); err != nil {
		t.logger.Warn("failed to refresh events after booking", "error", err)
	}
	return state, nil
}

// State returns the operation state for an event, idle if never submitted.
func (t *Tracker) State(eventID int64) model.OperationState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[eventID]; ok {
		return e.state
	}
	return model.IdleOperation
}

func (t *Tracker) States() map[int64]model.OperationState {
	t.mu.Lock()
	defer t.mu.Unlock()
	states := make(map[int64]model.OperationState, len(t.entries))
	for id, e := range t.entries {
		states[id] = e.state
	}
	return states
}

// Reset forgets every entry and discards results still in flight.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.epoch++
	t.entries = make(map[int64]*entry)
}
