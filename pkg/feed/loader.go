// Package feed holds client-side state for screens backed by the REST API:
// a Loader that only ever keeps the newest response, and a Collection that
// applies mutations optimistically and rolls them back on failure.
package feed

import (
	"context"
	"errors"
	"sync"
)

// ErrStale is returned by a Load that was superseded by a later Load or by
// Cancel. Its result has been discarded.
var ErrStale = errors.New("feed: load superseded")

// IsCanceled reports whether err only means the load was abandoned. Such
// errors should not be shown to the user.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrStale) || errors.Is(err, context.Canceled)
}

// Loader runs a fetch function and keeps the result of the most recent call.
// Every Load takes a sequence number; starting a new Load cancels the one in
// flight, and a response whose number is no longer current is dropped even
// if its fetch ignored the cancellation.
type Loader[T any] struct {
	fetch func(context.Context) (T, error)

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	value  T
	loaded bool
}

// NewLoader creates a loader around fetch.
func NewLoader[T any](fetch func(context.Context) (T, error)) *Loader[T] {
	return &Loader[T]{fetch: fetch}
}

// Load fetches and stores a fresh value.
func (l *Loader[T]) Load(ctx context.Context) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	l.seq++
	seq := l.seq
	if l.cancel != nil {
		l.cancel()
	}
	l.cancel = cancel
	l.mu.Unlock()

	v, err := l.fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	var zero T
	if seq != l.seq {
		return zero, ErrStale
	}
	l.cancel = nil
	if err != nil {
		return zero, err
	}
	l.value, l.loaded = v, true
	return v, nil
}

// Cancel aborts the load in flight, if any. Its result will be discarded.
func (l *Loader[T]) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// Value returns the last successfully loaded value.
func (l *Loader[T]) Value() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.loaded
}

// Seq is the number of loads started, including canceled ones.
func (l *Loader[T]) Seq() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq
}
