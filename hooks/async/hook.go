// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/unkn0wn-root/feedcache"
//	"github.com/unkn0wn-root/feedcache/hooks/async"
//	"github.com/unkn0wn-root/feedcache/sloghooks"
//
// )
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    AppliedEvery:     100, // sample: ~every 100th applied update
//	    ElementFailEvery: 1,   // log every dropped element
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	cache, _ := feedcache.New[Reading](feedcache.Options[Reading]{
//	    Source: src,
//	    Hooks:  hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/feedcache"
)

// Hooks decouples hook execution from the cache's background activities: the
// streamer never waits on a slow sink. Queue overflow drops events.
type Hooks struct {
	inner feedcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ feedcache.Hooks = (*Hooks)(nil)

func New(inner feedcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) FetchFailed(err error)     { h.try(func() { h.inner.FetchFailed(err) }) }
func (h *Hooks) SubscribeFailed(err error) { h.try(func() { h.inner.SubscribeFailed(err) }) }
func (h *Hooks) StreamApplied(key string)  { h.try(func() { h.inner.StreamApplied(key) }) }
func (h *Hooks) StreamClosed()             { h.try(func() { h.inner.StreamClosed() }) }
func (h *Hooks) SnapshotApplied(total, inserted int) {
	h.try(func() { h.inner.SnapshotApplied(total, inserted) })
}
func (h *Hooks) StreamElementFailed(err error) {
	h.try(func() { h.inner.StreamElementFailed(err) })
}
func (h *Hooks) StoreFailed(key string, err error) {
	h.try(func() { h.inner.StoreFailed(key, err) })
}
