// Package resource holds server-derived data together with its fetch status.
// Every fetch is tagged with a generation; only the most recently issued
// fetch may commit, so a slow response never overwrites a newer one.
package resource

import (
	"context"
	"errors"
	"sync"
)

// ErrStale is returned when a fetch was superseded by a newer fetch or a Reset
// before its response arrived. The response has been discarded.
var ErrStale = errors.New("response superseded")

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// State is a copy of a resource at one instant. Data keeps the last
// successfully committed value while a later fetch is loading or has failed.
type State[T any] struct {
	Status Status
	Data   T
	Err    error
	// Loaded is set once any fetch has committed successfully since the last Reset.
	Loaded bool
}

// Resource is safe for concurrent use. The zero value is idle and empty.
type Resource[T any] struct {
	mu         sync.Mutex
	generation uint64
	state      State[T]
}

// Begin marks the resource loading and returns the generation the caller
// must pass to Commit.
func (r *Resource[T]) Begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	r.state.Status = StatusLoading
	r.state.Err = nil
	return r.generation
}

// Commit stores the outcome of the fetch started at generation. It reports
// false, and changes nothing, when that generation is no longer current.
func (r *Resource[T]) Commit(generation uint64, data T, err error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if generation != r.generation {
		return false
	}
	if err != nil {
		r.state.Status = StatusFailed
		r.state.Err = err
		return true
	}
	r.state = State[T]{Status: StatusReady, Data: data, Loaded: true}
	return true
}

// Load runs fetch under a fresh generation and commits its result.
func (r *Resource[T]) Load(ctx context.Context, fetch func(ctx context.Context) (T, error)) (State[T], error) {
	generation := r.Begin()
	data, err := fetch(ctx)
	if !r.Commit(generation, data, err) {
		return r.Snapshot(), ErrStale
	}
	return r.Snapshot(), err
}

// Reset drops the data and invalidates every fetch in flight.
func (r *Resource[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	r.state = State[T]{Status: StatusIdle}
}

func (r *Resource[T]) Snapshot() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}
