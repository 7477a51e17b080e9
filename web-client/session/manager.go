// Package session owns the bearer token and the authentication state derived
// from it. Every other component reads the token from here per request.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/arunvm123/bookingportal/web-client/model"
	"github.com/arunvm123/bookingportal/web-client/service"
	"github.com/arunvm123/bookingportal/web-client/tokenstore"
)

var (
	// ErrStale is returned by Validate when the token changed while the
	// identity request was in flight. The response was discarded.
	ErrStale = errors.New("identity response superseded")
	// ErrNoToken is returned by Validate when there is nothing to validate.
	ErrNoToken = errors.New("no token to validate")
)

// Reason tells listeners why the session changed.
type Reason string

const (
	ReasonRestored  Reason = "restored"
	ReasonLogin     Reason = "login"
	ReasonValidated Reason = "validated"
	ReasonRejected  Reason = "rejected"
	ReasonExpired   Reason = "expired"
	ReasonLogout    Reason = "logout"
)

// Resets reports whether the change dropped the session.
func (r Reason) Resets() bool {
	return r == ReasonRejected || r == ReasonExpired || r == ReasonLogout
}

type Listener func(model.Session, Reason)

// Identity is the part of the API the manager needs.
type Identity interface {
	Me(ctx context.Context, token string) (*model.User, error)
}

type Manager struct {
	identity Identity
	store    tokenstore.TokenStore
	logger   *slog.Logger

	// persistMu orders token store writes with generation bumps so a late
	// Clear never erases a token saved by a newer Login.
	persistMu sync.Mutex

	mu          sync.Mutex
	generation  uint64
	// validations numbers Validate calls; only the newest may commit or drop.
	validations uint64
	session     model.Session
	listeners   []Listener
}

func NewManager(identity Identity, store tokenstore.TokenStore, logger *slog.Logger) *Manager {
	return &Manager{
		identity: identity,
		store:    store,
		logger:   logger,
	}
}

// Subscribe registers fn to run after every committed change, outside any lock.
func (m *Manager) Subscribe(fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) Session() model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Token
}

// Initialize restores the persisted token, if any, and validates it.
func (m *Manager) Initialize(ctx context.Context) error {
	token, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn("failed to load persisted token", "error", err)
		token = ""
	}
	if token == "" {
		return nil
	}

	m.mu.Lock()
	m.generation++
	m.session = model.Session{Token: token, Authenticated: true, Pending: true}
	current := m.session
	m.mu.Unlock()
	m.notify(current, ReasonRestored)

	return m.Validate(ctx)
}

// Validate checks whichever token the session holds when it is called
// against the identity endpoint. Any failure drops the session; a 401 is
// reported as ReasonExpired. A response overtaken by a token change or by a
// later Validate call is discarded with ErrStale.
func (m *Manager) Validate(ctx context.Context) error {
	m.mu.Lock()
	token, generation := m.session.Token, m.generation
	m.validations++
	ticket := m.validations
	m.mu.Unlock()

	if token == "" {
		return ErrNoToken
	}

	user, err := m.identity.Me(ctx, token)
	if err != nil {
		reason := ReasonRejected
		if service.IsUnauthorized(err) {
			reason = ReasonExpired
		}
		if !m.drop(ctx, reason, func() bool {
			return generation == m.generation && ticket == m.validations
		}) {
			return ErrStale
		}
		return fmt.Errorf("validating token: %w", err)
	}

	m.mu.Lock()
	if generation != m.generation || ticket != m.validations {
		m.mu.Unlock()
		m.logger.Debug("discarding stale identity response")
		return ErrStale
	}
	m.session = model.Session{Token: token, Authenticated: true, Role: user.Role}
	current := m.session
	m.mu.Unlock()

	m.notify(current, ReasonValidated)
	return nil
}

// Login persists a freshly issued token and validates it. A token that
// cannot be persisted is not adopted.
func (m *Manager) Login(ctx context.Context, token string) error {
	m.persistMu.Lock()
	if err := m.store.Save(ctx, token); err != nil {
		m.persistMu.Unlock()
		return fmt.Errorf("persisting token: %w", err)
	}
	m.mu.Lock()
	m.generation++
	m.session = model.Session{Token: token, Authenticated: true, Pending: true}
	current := m.session
	m.mu.Unlock()
	m.persistMu.Unlock()

	m.notify(current, ReasonLogin)
	return m.Validate(ctx)
}

// Logout forgets the token locally. It makes no network call and may be
// called any number of times.
func (m *Manager) Logout(ctx context.Context) {
	m.persistMu.Lock()
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn("failed to clear persisted token", "error", err)
	}
	m.mu.Lock()
	m.generation++
	m.session = model.Session{}
	m.mu.Unlock()
	m.persistMu.Unlock()

	m.notify(model.Session{}, ReasonLogout)
}

// Invalidate handles a 401 observed while using token. It reports whether
// the session was dropped; a token that is no longer current is ignored.
func (m *Manager) Invalidate(ctx context.Context, token string) bool {
	m.mu.Lock()
	generation := m.generation
	current := token != "" && token == m.session.Token
	m.mu.Unlock()

	if !current {
		return false
	}
	return m.drop(ctx, ReasonExpired, func() bool { return generation == m.generation })
}

// drop clears the session if current, evaluated under mu, still holds.
func (m *Manager) drop(ctx context.Context, reason Reason, current func() bool) bool {
	m.persistMu.Lock()
	m.mu.Lock()
	if !current() {
		m.mu.Unlock()
		m.persistMu.Unlock()
		return false
	}
	m.generation++
	m.session = model.Session{}
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn("failed to clear persisted token", "error", err)
	}
	m.persistMu.Unlock()

	m.logger.Info("session dropped", "reason", reason)
	m.notify(model.Session{}, reason)
	return true
}

func (m *Manager) notify(s model.Session, reason Reason) {
	m.mu.Lock()
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(s, reason)
	}
}
