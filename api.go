package feedcache

import (
	"context"

	tb "github.com/unkn0wn-root/feedcache/table"
)

// Update is one element of the live feed. Either Err is nil and Key/Value
// carry a single key update, or Err is non-nil and the element is dropped by
// the cache after being reported. A failed element never terminates the feed.
type Update[V any] struct {
	Key   string
	Value V
	Err   error
}

// Source is the external data capability the cache consumes. The cache
// borrows it for its whole lifetime and never retries either call.
//
// Implementations must honor context cancellation: the context passed to both
// calls is cancelled when the cache is closed.
type Source[V any] interface {
	// Fetch returns the bulk snapshot. It is called exactly once per cache.
	// The result is modeled as atomic: a complete mapping or an error.
	Fetch(ctx context.Context) (map[string]V, error)

	// Subscribe opens the live feed and returns its channel. It is called
	// exactly once per cache; the returned channel is consumed by a single
	// goroutine until it is closed.
	Subscribe(ctx context.Context) (<-chan Update[V], error)
}

// SourceFuncs adapts two funcs to the Source interface. Both funcs must be
// set. Handy for tests and for wiring ad-hoc sources without a named type.
type SourceFuncs[V any] struct {
	FetchFunc     func(ctx context.Context) (map[string]V, error)
	SubscribeFunc func(ctx context.Context) (<-chan Update[V], error)
}

func (s SourceFuncs[V]) Fetch(ctx context.Context) (map[string]V, error) {
	return s.FetchFunc(ctx)
}

func (s SourceFuncs[V]) Subscribe(ctx context.Context) (<-chan Update[V], error) {
	return s.SubscribeFunc(ctx)
}

// Cache is the merging cache API. V is the caller's value type.
//
// Get is readable in every state: before the snapshot lands, while the feed is
// live, and after either activity has failed. There is no state in which Get
// is disallowed, and it never blocks on I/O.
type Cache[V any] interface {
	Enabled() bool

	// Get is a synchronous point lookup against the current table state.
	// ok is false if the key has never been written.
	Get(key string) (v V, ok bool)

	// SnapshotDone is closed once the snapshot pass has ended, whether it
	// applied a result or failed.
	SnapshotDone() <-chan struct{}

	// StreamDone is closed once the update feed has ended. In the common
	// case the feed never ends and this closes only on Close.
	StreamDone() <-chan struct{}

	// Close cancels the context handed to the source, waits for both
	// background activities, then closes the table. Safe to call multiple
	// times; repeated calls become no-ops.
	Close(ctx context.Context) error
}

// Options tune the behavior of the cache. Only Source is required;
// others have sensible defaults.
type Options[V any] struct {
	// Required
	Source Source[V]

	Table    tb.Table[V] // nil => table.NewMap[V]()
	Logger   Logger      // nil => NopLogger
	Hooks    Hooks       // nil => NopHooks
	Disabled bool        // default false (enabled); disabled caches always miss
}

// New constructs an empty table and immediately starts the snapshot loader
// and the update streamer against opts.Source, without blocking on either.
// It returns once both goroutines are scheduled, not once they complete.
//
// New fails only on invalid configuration. An unusable source is not a
// construction error - such failures surface through Logger and Hooks.
func New[V any](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}
