package feedcache

import (
	"context"
	"fmt"
	"sync"

	tb "github.com/unkn0wn-root/feedcache/table"
)

type cache[V any] struct {
	source Source[V]
	tab    tb.Table[V]
	log    Logger
	hooks  Hooks

	enabled bool

	cancel     context.CancelFunc
	snapDone   chan struct{}
	streamDone chan struct{}

	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("feedcache: source is required")
	}

	c := &cache[V]{
		source:     opts.Source,
		enabled:    !opts.Disabled,
		snapDone:   make(chan struct{}),
		streamDone: make(chan struct{}),
	}

	// defaults
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	if opts.Table != nil {
		c.tab = opts.Table
	} else {
		c.tab = tb.NewMap[V]()
	}

	if !c.enabled {
		close(c.snapDone)
		close(c.streamDone)
		return c, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.wg.Add(2)
	go c.loadSnapshot(ctx)
	go c.consumeStream(ctx)
	return c, nil
}

func (c *cache[V]) Enabled() bool { return c.enabled }

func (c *cache[V]) Get(key string) (V, bool) {
	var zero V
	if !c.enabled {
		return zero, false
	}
	v, ok, err := c.tab.Load(key)
	if err != nil {
		// table backends self-heal on read errors; treat as a miss
		c.log.Debug("table load error", Fields{"key": key, "err": err})
		return zero, false
	}
	return v, ok
}

func (c *cache[V]) SnapshotDone() <-chan struct{} { return c.snapDone }
func (c *cache[V]) StreamDone() <-chan struct{}   { return c.streamDone }

func (c *cache[V]) Close(ctx context.Context) error {
	c.closeOnce.Do(func() {
		if c.cancel != nil {
			c.cancel()
		}
		done := make(chan struct{})
		go func() {
			c.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			c.closeErr = c.tab.Close()
		case <-ctx.Done():
			c.closeErr = ctx.Err()
		}
	})
	return c.closeErr
}

// loadSnapshot runs the single snapshot pass: one Fetch, then insert-if-absent
// for every returned pair. A value the feed has already delivered wins over
// the snapshot, so a slow Fetch never clobbers fresher data.
func (c *cache[V]) loadSnapshot(ctx context.Context) {
	defer c.wg.Done()
	defer close(c.snapDone)

	data, err := c.source.Fetch(ctx)
	if err != nil {
		ferr := &FetchError{Err: err}
		c.log.Error("snapshot fetch failed", Fields{"err": err})
		c.hooks.FetchFailed(ferr)
		return
	}

	inserted := 0
	for k, v := range data {
		_, loaded, err := c.tab.LoadOrStore(k, v)
		if err != nil {
			c.log.Warn("snapshot entry not stored", Fields{"key": k, "err": err})
			c.hooks.StoreFailed(k, err)
			continue
		}
		if !loaded {
			inserted++
		}
	}
	c.log.Debug("snapshot applied", Fields{"total": len(data), "inserted": inserted})
	c.hooks.SnapshotApplied(len(data), inserted)
}

// consumeStream holds the single subscription for the cache lifetime and
// applies elements strictly in arrival order. No buffering happens here: the
// consumption rate is the natural backpressure signal to the source.
func (c *cache[V]) consumeStream(ctx context.Context) {
	defer c.wg.Done()
	defer close(c.streamDone)

	updates, err := c.source.Subscribe(ctx)
	if err != nil {
		serr := &StreamError{Err: err}
		c.log.Error("subscribe failed", Fields{"err": err})
		c.hooks.SubscribeFailed(serr)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				c.log.Debug("update stream ended", nil)
				c.hooks.StreamClosed()
				return
			}
			if u.Err != nil {
				serr := &StreamError{Err: u.Err}
				c.log.Warn("dropping failed stream element", Fields{"err": u.Err})
				c.hooks.StreamElementFailed(serr)
				continue
			}
			if err := c.tab.Store(u.Key, u.Value); err != nil {
				c.log.Warn("stream element not stored", Fields{"key": u.Key, "err": err})
				c.hooks.StoreFailed(u.Key, err)
				continue
			}
			c.hooks.StreamApplied(u.Key)
		}
	}
}
