package feedcache

// Hooks are lightweight callbacks for high-signal cache events. This is the
// diagnostics side-channel: errors never reach Get or New, they land here and
// in the Logger. Implementations MUST be cheap and non-blocking - the cache
// calls them from the background activities' hot paths (wrap with hooks/async
// if in doubt).
type Hooks interface {
	// The one-shot snapshot fetch failed. No snapshot entries were applied.
	FetchFailed(err error)

	// The snapshot pass finished. total is the snapshot size, inserted is
	// how many entries were actually written; the rest lost to values the
	// feed had already delivered.
	SnapshotApplied(total, inserted int)

	// Opening the subscription failed. No updates will ever be applied.
	SubscribeFailed(err error)

	// A single feed element carried an error and was dropped.
	// The feed continues.
	StreamElementFailed(err error)

	// A feed element was applied (overwrite) for key.
	StreamApplied(key string)

	// The feed ended on its own (rare; most feeds are unbounded).
	StreamClosed()

	// The table rejected or failed a write (possible with byte-backed
	// tables under pressure; never happens with the default map table).
	StoreFailed(key string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) FetchFailed(error)         {}
func (NopHooks) SnapshotApplied(int, int)  {}
func (NopHooks) SubscribeFailed(error)     {}
func (NopHooks) StreamElementFailed(error) {}
func (NopHooks) StreamApplied(string)      {}
func (NopHooks) StreamClosed()             {}
func (NopHooks) StoreFailed(string, error) {}
