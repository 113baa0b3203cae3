// Package cache provides memoized, lazily-refreshed views of remote
// resources with single-flight fetch semantics.
package cache

import (
	"context"
	"sync"
)

// FetchFunc retrieves the resource from the remote API
type FetchFunc[T any] func(ctx context.Context) (T, error)

// CloneFunc produces the defensive copy handed to each caller
type CloneFunc[T any] func(T) T

// Resource is one cache slot. At most one fetch is outstanding at a
// time; concurrent callers await that fetch regardless of their own
// refresh flag. The slot moves through empty -> pending -> ready or
// failed, and only an explicit refresh re-attempts after a failure.
type Resource[T any] struct {
	fetch FetchFunc[T]
	clone CloneFunc[T]

	// onSuccess runs exactly once per successful fetch, before any
	// waiter observes the result
	onSuccess func(T)

	mu      sync.Mutex
	pending *flight[T]
	value   *flight[T] // last successful fetch, if any
	fault   *flight[T] // memoized failure; cleared by any later success
}

// flight is one fetch attempt shared by all its waiters
type flight[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Option configures a Resource
type Option[T any] func(*Resource[T])

// WithOnSuccess registers a hook invoked once per successful fetch
func WithOnSuccess[T any](hook func(T)) Option[T] {
	return func(r *Resource[T]) {
		r.onSuccess = hook
	}
}

// NewResource creates an empty cache slot
func NewResource[T any](fetch FetchFunc[T], clone CloneFunc[T], opts ...Option[T]) *Resource[T] {
	r := &Resource[T]{
		fetch: fetch,
		clone: clone,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the cached resource, fetching if the slot is empty or
// refresh is requested. The returned value is always a copy; mutating
// it never affects the cache. A caller whose context ends stops
// waiting, but the fetch itself is not cancelled and still completes
// for other waiters.
func (r *Resource[T]) Get(ctx context.Context, refresh bool) (T, error) {
	r.mu.Lock()

	f := r.pending
	if f == nil {
		if !refresh {
			if r.value != nil {
				val := r.clone(r.value.val)
				r.mu.Unlock()
				return val, nil
			}
			if r.fault != nil {
				err := r.fault.err
				r.mu.Unlock()
				var zero T
				return zero, err
			}
		}
		f = &flight[T]{done: make(chan struct{})}
		r.pending = f
		go r.run(context.WithoutCancel(ctx), f)
	}
	r.mu.Unlock()

	select {
	case <-f.done:
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}

	if f.err != nil {
		var zero T
		return zero, f.err
	}
	return r.clone(f.val), nil
}

// Cached returns the last successfully fetched value without fetching,
// and whether one exists.
func (r *Resource[T]) Cached() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.value == nil {
		var zero T
		return zero, false
	}
	return r.clone(r.value.val), true
}

func (r *Resource[T]) run(ctx context.Context, f *flight[T]) {
	f.val, f.err = r.fetch(ctx)

	if f.err == nil && r.onSuccess != nil {
		r.onSuccess(r.clone(f.val))
	}

	r.mu.Lock()
	r.pending = nil
	if f.err == nil {
		r.value = f
		r.fault = nil
	} else if r.value == nil {
		// No earlier value to fall back on; memoize the failure so
		// non-refresh reads don't hammer a possibly-down server
		r.fault = f
	}
	r.mu.Unlock()

	close(f.done)
}
