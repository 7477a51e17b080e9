// Package sessiontest provides an in-memory session.Source for component tests.
package sessiontest

import (
	"context"
	"sync"
)

type Source struct {
	mu          sync.Mutex
	token       string
	invalidated []string
	onInvalid   func()
}

func NewSource(token string) *Source {
	return &Source{token: token}
}

func (s *Source) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Source) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// OnInvalidate runs fn after a successful Invalidate, outside the lock.
func (s *Source) OnInvalidate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onInvalid = fn
}

func (s *Source) Invalidate(ctx context.Context, token string) bool {
	s.mu.Lock()
	if token == "" || token != s.token {
		s.mu.Unlock()
		return false
	}
	s.token = ""
	s.invalidated = append(s.invalidated, token)
	fn := s.onInvalid
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
	return true
}

// Invalidated lists the tokens dropped so far.
func (s *Source) Invalidated() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.invalidated...)
}
