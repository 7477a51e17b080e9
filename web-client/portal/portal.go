// Package portal wires the session, router and data components together.
// The session is the single upstream: every change it reports resets the
// data components, and losing the session forces the login view.
package portal

import (
	"context"
	"log/slog"

	"github.com/arunvm123/bookingportal/web-client/admin"
	"github.com/arunvm123/bookingportal/web-client/confirm"
	"github.com/arunvm123/bookingportal/web-client/history"
	"github.com/arunvm123/bookingportal/web-client/inventory"
	"github.com/arunvm123/bookingportal/web-client/model"
	"github.com/arunvm123/bookingportal/web-client/service"
	"github.com/arunvm123/bookingportal/web-client/session"
	"github.com/arunvm123/bookingportal/web-client/tokenstore"
	"github.com/arunvm123/bookingportal/web-client/tracker"
	"github.com/arunvm123/bookingportal/web-client/view"
)

const (
	MessageInvalidCredentials = "Invalid credentials"
	MessageNoToken            = "No token received from server."
	MessageSignupFailed       = "Signup failed"
)

// Failure is an operation error carrying the message to show the user.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

type Portal struct {
	API       service.API
	Session   *session.Manager
	Router    *view.Router
	Inventory *inventory.Store
	Tracker   *tracker.Tracker
	History   *history.Store
	Admin     *admin.Controller

	logger *slog.Logger
}

func New(api service.API, store tokenstore.TokenStore, gate confirm.Gate, logger *slog.Logger) *Portal {
	sessions := session.NewManager(api, store, logger.With("component", "session"))
	events := inventory.NewStore(api, sessions, logger.With("component", "inventory"))
	bookings := history.NewStore(api, sessions, gate, events, logger.With("component", "history"))
	catalog := admin.NewController(api, sessions, gate, logger.With("component", "admin")).
		WithRefreshers(
			func(ctx context.Context) error {
				_, err := events.Refresh(ctx)
				return err
			},
			func(ctx context.Context) error {
				_, err := bookings.Fetch(ctx)
				return err
			},
		)

	p := &Portal{
		API:       api,
		Session:   sessions,
		Router:    view.NewRouter(sessions),
		Inventory: events,
		Tracker:   tracker.New(api, sessions, events, logger.With("component", "tracker")),
		History:   bookings,
		Admin:     catalog,
		logger:    logger,
	}
	sessions.Subscribe(p.onSessionChange)
	return p
}

func (p *Portal) onSessionChange(_ model.Session, reason session.Reason) {
	if reason == session.ReasonValidated {
		return
	}

	// Anything fetched or in flight under a previous token is void.
	p.Inventory.Reset()
	p.Tracker.Reset()
	p.History.Reset()
	p.Admin.Reset()

	if reason == session.ReasonLogout || reason == session.ReasonExpired {
		p.Router.LoggedOut()
	}
	p.logger.Debug("session changed", "reason", reason)
}

// Start restores a persisted session and loads the initial view.
func (p *Portal) Start(ctx context.Context) {
	if err := p.Session.Initialize(ctx); err != nil {
		p.logger.Info("stored session not restored", "error", err)
	}
	p.load(ctx)
}

// Login exchanges credentials for a token, adopts it, and opens the event list.
func (p *Portal) Login(ctx context.Context, email, password string) error {
	token, err := p.API.Authenticate(ctx, email, password)
	if err != nil {
		return &Failure{Message: MessageInvalidCredentials, Err: err}
	}
	if token == "" {
		return &Failure{Message: MessageNoToken}
	}

	if err := p.Session.Login(ctx, token); err != nil {
		return &Failure{Message: MessageInvalidCredentials, Err: err}
	}

	p.Router.LoggedIn()
	p.load(ctx)
	return nil
}

// Signup registers an account and sends the user to the login form.
func (p *Portal) Signup(ctx context.Context, name, email, password string) error {
	_, err := p.API.Signup(ctx, model.SignupRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return &Failure{Message: service.DetailOr(err, MessageSignupFailed), Err: err}
	}
	p.Router.SignedUp()
	return nil
}

// Logout drops the session locally.
func (p *Portal) Logout(ctx context.Context) {
	p.Session.Logout(ctx)
}

// Navigate moves to v and loads what that view shows.
func (p *Portal) Navigate(ctx context.Context, v view.View) error {
	if err := p.Router.Navigate(v); err != nil {
		return err
	}
	p.load(ctx)
	return nil
}

// load fetches the data of the current view. Failures land in the
// component's own state and are not returned.
func (p *Portal) load(ctx context.Context) {
	screen := p.Router.Render()
	if screen.Denied {
		return
	}

	var err error
	switch screen.View {
	case view.Events:
		if p.Session.Token() != "" {
			_, err = p.Inventory.Fetch(ctx)
		}
	case view.MyBookings:
		_, err = p.History.Fetch(ctx)
	case view.Admin:
		_, err = p.Admin.ListEvents(ctx)
		if _, bookingsErr := p.Admin.ListAllBookings(ctx); err == nil {
			err = bookingsErr
		}
	}
	if err != nil {
		p.logger.Debug("view load failed", "view", screen.View, "error", err)
	}
}
