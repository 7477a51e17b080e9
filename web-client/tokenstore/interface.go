package tokenstore

import "context"

// TokenKey names the single persisted credential.
const TokenKey = "event_jwt"

// TokenStore persists the bearer token between runs. Load returns an empty
// string, not an error, when nothing is stored.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
