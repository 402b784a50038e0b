// Package sync provides the admin read-model façade: every mutation runs
// exactly one backend call and, on success, re-fetches the full owning
// collection before returning. Readers always see a state at least as new
// as the last completed mutation from their goroutine.
package sync

import (
	"context"
	"errors"
	stdsync "sync"

	"github.com/gurukulhq/gurukul/internal/logging"
	"github.com/gurukulhq/gurukul/pkg/interfaces"
)

// ErrFetcherRequired is returned when a collection has no fetch function.
var ErrFetcherRequired = errors.New("sync: fetch function is required")

// Fetcher loads the full collection from the backend.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Subscriber observes the collection after each successful refresh.
type Subscriber[T any] func(items []T)

// Collection keeps a locally cached snapshot of one backend collection.
// Different collections are refreshed independently; no transactional
// relationship holds across them.
type Collection[T any] struct {
	mu          stdsync.Mutex
	fetch       Fetcher[T]
	snapshot    []T
	subscribers []Subscriber[T]
	logger      interfaces.Logger
}

// CollectionOption configures a collection.
type CollectionOption[T any] func(*Collection[T])

// WithLogger injects the module logger.
func WithLogger[T any](logger interfaces.Logger) CollectionOption[T] {
	return func(c *Collection[T]) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCollection builds an empty collection over the fetch function.
func NewCollection[T any](fetch Fetcher[T], opts ...CollectionOption[T]) *Collection[T] {
	c := &Collection[T]{
		fetch:  fetch,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Refresh replaces the snapshot with a full re-fetch and notifies
// subscribers. A failed fetch leaves the previous snapshot intact.
func (c *Collection[T]) Refresh(ctx context.Context) error {
	if c.fetch == nil {
		return ErrFetcherRequired
	}
	items, err := c.fetch(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.snapshot = items
	subscribers := make([]Subscriber[T], len(c.subscribers))
	copy(subscribers, c.subscribers)
	c.mu.Unlock()

	for _, notify := range subscribers {
		notify(c.Snapshot())
	}
	return nil
}

// Snapshot returns a copy of the cached collection.
func (c *Collection[T]) Snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.snapshot))
	copy(out, c.snapshot)
	return out
}

// Subscribe registers an observer called after every successful refresh.
func (c *Collection[T]) Subscribe(fn Subscriber[T]) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// Mutate runs op, then re-fetches the full collection before returning.
// When op fails its error propagates unchanged and no refresh happens;
// when the refresh itself fails the mutation has already been applied
// backend-side and the refresh error is returned.
func (c *Collection[T]) Mutate(ctx context.Context, op func(ctx context.Context) error) error {
	if err := op(ctx); err != nil {
		return err
	}
	if err := c.Refresh(ctx); err != nil {
		c.logger.Error("post-mutation refresh failed", "error", err)
		return err
	}
	return nil
}
