// Package admin drives catalog management and the all-bookings report.
// Role checks here are advisory; the server decides and a 403 is reported
// like any other failure.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/arunvm123/bookingportal/web-client/confirm"
	"github.com/arunvm123/bookingportal/web-client/model"
	"github.com/arunvm123/bookingportal/web-client/resource"
	"github.com/arunvm123/bookingportal/web-client/service"
	"github.com/arunvm123/bookingportal/web-client/session"
)

const (
	MessageEventCreated = "Event created successfully!"
	MessageCreateFailed = "Failed to create event. Is this user an admin?"
	MessageEventDeleted = "Event deleted successfully!"
	MessageDeleteFailed = "Failed to delete event."
)

var (
	ErrInFlight = errors.New("admin operation already in progress")
	ErrDeclined = errors.New("deletion not confirmed")
)

type API interface {
	ListEvents(ctx context.Context, token string) ([]model.Event, error)
	CreateEvent(ctx context.Context, token string, req model.CreateEventRequest) (*model.Event, error)
	DeleteEvent(ctx context.Context, token string, eventID int64) error
	AllBookings(ctx context.Context, token string) ([]model.AdminBooking, error)
}

// RefreshFunc refetches a view that a deletion made stale.
type RefreshFunc func(ctx context.Context) error

type Controller struct {
	api      API
	session  session.Source
	gate     confirm.Gate
	logger   *slog.Logger
	location *time.Location

	// refreshers run after a deletion; the server cancels that event's bookings.
	refreshers []RefreshFunc

	events   resource.Resource[[]model.Event]
	bookings resource.Resource[[]model.AdminBooking]

	mu        sync.Mutex
	epoch     uint64
	form      model.EventForm
	operation model.OperationState
}

func NewController(api API, source session.Source, gate confirm.Gate, logger *slog.Logger) *Controller {
	return &Controller{
		api:       api,
		session:   source,
		gate:      gate,
		logger:    logger,
		location:  time.Local,
		operation: model.IdleOperation,
	}
}

// WithLocation sets the zone used for dates entered without an offset.
func (c *Controller) WithLocation(loc *time.Location) *Controller {
	c.location = loc
	return c
}

// WithRefreshers registers views to refetch after a successful deletion.
func (c *Controller) WithRefreshers(fns ...RefreshFunc) *Controller {
	c.refreshers = append(c.refreshers, fns...)
	return c
}

// ListEvents refetches the admin copy of the catalog.
func (c *Controller) ListEvents(ctx context.Context) (resource.State[[]model.Event], error) {
	token := c.session.Token()
	if token == "" {
		return c.events.Snapshot(), session.ErrNoSession
	}
	state, err := c.events.Load(ctx, func(ctx context.Context) ([]model.Event, error) {
		return c.api.ListEvents(ctx, token)
	})
	c.checkUnauthorized(ctx, token, err)
	return state, err
}

// ListAllBookings refetches every user's bookings.
func (c *Controller) ListAllBookings(ctx context.Context) (resource.State[[]model.AdminBooking], error) {
	token := c.session.Token()
	if token == "" {
		return c.bookings.Snapshot(), session.ErrNoSession
	}
	state, err := c.bookings.Load(ctx, func(ctx context.Context) ([]model.AdminBooking, error) {
		return c.api.AllBookings(ctx, token)
	})
	c.checkUnauthorized(ctx, token, err)
	return state, err
}

func (c *Controller) Events() resource.State[[]model.Event] {
	return c.events.Snapshot()
}

func (c *Controller) AllBookings() resource.State[[]model.AdminBooking] {
	return c.bookings.Snapshot()
}

func (c *Controller) SetForm(form model.EventForm) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = form
}

func (c *Controller) Form() model.EventForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

func (c *Controller) Operation() model.OperationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.operation
}

// CreateEvent submits the current form. Invalid drafts are rejected before
// any request is made.
func (c *Controller) CreateEvent(ctx context.Context) (model.OperationState, error) {
	token := c.session.Token()
	if token == "" {
		return c.Operation(), session.ErrNoSession
	}

	c.mu.Lock()
	if c.operation.Loading() {
		state := c.operation
		c.mu.Unlock()
		return state, ErrInFlight
	}
	req, err := ParseForm(c.form, c.location)
	if err != nil {
		c.operation = model.FailedOperation(err.Error())
		state := c.operation
		c.mu.Unlock()
		return state, err
	}
	epoch := c.epoch
	c.operation = model.LoadingOperation()
	c.mu.Unlock()

	event, err := c.api.CreateEvent(ctx, token, req)

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return c.Operation(), resource.ErrStale
	}
	if err != nil {
		c.operation = model.FailedOperation(service.DetailOr(err, MessageCreateFailed))
	} else {
		c.operation = model.SucceededOperation(MessageEventCreated)
		c.form = model.EventForm{}
	}
	state := c.operation
	c.mu.Unlock()

	if err != nil {
		c.logger.Info("event creation failed", "error", err)
		c.checkUnauthorized(ctx, token, err)
		return state, err
	}

	c.logger.Info("event created", "event_id", event.ID, "title", event.Title)
	if _, err := c.ListEvents(ctx); err != nil {
		c.logger.Warn("failed to refresh admin events", "error", err)
	}
	return state, nil
}

// DeleteEvent asks for confirmation, then deletes the event on the server.
func (c *Controller) DeleteEvent(ctx context.Context, eventID int64) (model.OperationState, error) {
	token := c.session.Token()
	if token == "" {
		return c.Operation(), session.ErrNoSession
	}
	if c.Operation().Loading() {
		return c.Operation(), ErrInFlight
	}

	confirmed, err := c.gate.Confirm(ctx, confirm.PromptDeleteEvent)
	if err != nil {
		return c.Operation(), err
	}
	if !confirmed {
		return c.Operation(), ErrDeclined
	}

	c.mu.Lock()
	if c.operation.Loading() {
		state := c.operation
		c.mu.Unlock()
		return state, ErrInFlight
	}
	epoch := c.epoch
	c.operation = model.LoadingOperation()
	c.mu.Unlock()

	err = c.api.DeleteEvent(ctx, token, eventID)

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return c.Operation(), resource.ErrStale
	}
	if err != nil {
		c.operation = model.FailedOperation(service.DetailOr(err, MessageDeleteFailed))
	} else {
		c.operation = model.SucceededOperation(MessageEventDeleted)
	}
	state := c.operation
	c.mu.Unlock()

	if err != nil {
		c.logger.Info("event deletion failed", "event_id", eventID, "error", err)
		c.checkUnauthorized(ctx, token, err)
		return state, err
	}

	c.logger.Info("event deleted", "event_id", eventID)
	if _, err := c.ListEvents(ctx); err != nil {
		c.logger.Warn("failed to refresh admin events", "error", err)
	}
	for _, refresh := range c.refreshers {
		if err := refresh(ctx); err != nil {
			c.logger.Warn("failed to refresh after deletion", "error", err)
		}
	}
	return state, nil
}

// Reset drops both lists, the form and the operation state.
func (c *Controller) Reset() {
	c.events.Reset()
	c.bookings.Reset()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.form = model.EventForm{}
	c.operation = model.IdleOperation
}

func (c *Controller) checkUnauthorized(ctx context.Context, token string, err error) {
	if err != nil && service.IsUnauthorized(err) {
		c.session.Invalidate(ctx, token)
	}
}
