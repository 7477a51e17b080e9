package portal

import (
	"context"
	"fmt"

	"github.com/arunvm123/bookingportal/web-client/config"
	"github.com/arunvm123/bookingportal/web-client/tokenstore"
	"github.com/arunvm123/bookingportal/web-client/tokenstore/file"
	"github.com/arunvm123/bookingportal/web-client/tokenstore/memory"
	"github.com/arunvm123/bookingportal/web-client/tokenstore/redis"
)

// NewTokenStore builds the configured token backend.
func NewTokenStore(ctx context.Context, cfg *config.TokenStore) (tokenstore.TokenStore, error) {
	switch cfg.Backend {
	case "", "file":
		return file.NewFileTokenStore(cfg.StateDir)
	case "memory":
		return memory.NewMemoryTokenStore(""), nil
	case "redis":
		return redis.NewRedisTokenStore(ctx, cfg.Redis.GetRedisURL(), cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.KeyPrefix)
	default:
		return nil, fmt.Errorf("unknown token store backend %q", cfg.Backend)
	}
}
