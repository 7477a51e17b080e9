package cache

import (
	"context"
	"time"

	"github.com/arunvm123/bookingportal/api-service/model"
)

type CacheRepository interface {
	// Event list operations. A miss returns nil with no error.
	GetEventList(ctx context.Context) ([]model.EventResponse, error)
	SetEventList(ctx context.Context, events []model.EventResponse, ttl time.Duration) error
	InvalidateEventList(ctx context.Context) error

	// Health check
	Ping(ctx context.Context) error
}

// Disabled is used when no cache is reachable at startup: every read misses
// and every write is dropped.
type Disabled struct{}

func (Disabled) GetEventList(context.Context) ([]model.EventResponse, error) { return nil, nil }

func (Disabled) SetEventList(context.Context, []model.EventResponse, time.Duration) error {
	return nil
}

func (Disabled) InvalidateEventList(context.Context) error { return nil }

func (Disabled) Ping(context.Context) error { return ErrDisabled }
