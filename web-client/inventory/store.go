// Package inventory keeps the event catalog as last reported by the server.
// Seat counts are never computed or adjusted locally.
package inventory

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/arunvm123/bookingportal/web-client/model"
	"github.com/arunvm123/bookingportal/web-client/resource"
	"github.com/arunvm123/bookingportal/web-client/service"
	"github.com/arunvm123/bookingportal/web-client/session"
)

// Catalog is the part of the API the store reads from.
type Catalog interface {
	ListEvents(ctx context.Context, token string) ([]model.Event, error)
}

type Store struct {
	api     Catalog
	session session.Source
	logger  *slog.Logger

	events    resource.Resource[[]model.Event]
	refreshes atomic.Int64
}

func NewStore(api Catalog, source session.Source, logger *slog.Logger) *Store {
	return &Store{api: api, session: source, logger: logger}
}

// Fetch replaces the snapshot with the server's event list. Without a token
// it fails with session.ErrNoSession and makes no request.
func (s *Store) Fetch(ctx context.Context) (resource.State[[]model.Event], error) {
	token := s.session.Token()
	if token == "" {
		return s.events.Snapshot(), session.ErrNoSession
	}

	state, err := s.events.Load(ctx, func(ctx context.Context) ([]model.Event, error) {
		return s.api.ListEvents(ctx, token)
	})
	if err != nil {
		if service.IsUnauthorized(err) {
			s.session.Invalidate(ctx, token)
		}
		s.logger.Debug("event fetch did not commit", "error", err)
	}
	return state, err
}

// Refresh re-reads the catalog after a mutation elsewhere changed seat counts.
func (s *Store) Refresh(ctx context.Context) (resource.State[[]model.Event], error) {
	s.refreshes.Add(1)
	return s.Fetch(ctx)
}

// Refreshes counts Refresh calls since the store was created.
func (s *Store) Refreshes() int64 {
	return s.refreshes.Load()
}

// Find returns the displayed event with the given id.
func (s *Store) Find(eventID int64) (model.Event, bool) {
	for _, event := range s.events.Snapshot().Data {
		if event.ID == eventID {
			return event, true
		}
	}
	return model.Event{}, false
}

func (s *Store) Snapshot() resource.State[[]model.Event] {
	return s.events.Snapshot()
}

// Reset drops the catalog; responses still in flight are discarded.
func (s *Store) Reset() {
	s.events.Reset()
}
