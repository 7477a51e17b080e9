package session

import (
	"context"
	"errors"
)

// ErrNoSession is returned by operations that need a token when there is none.
// No request is made.
var ErrNoSession = errors.New("not logged in")

// Source is what data components need from the session: the current token
// for each request, and a way to report that the server rejected it.
type Source interface {
	Token() string
	Invalidate(ctx context.Context, token string) bool
}

var _ Source = (*Manager)(nil)
