package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/feedcache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	AppliedEvery     uint64 // applied stream updates (hot path)
	ElementFailEvery uint64 // dropped stream elements
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

// Hooks logs cache events through slog. This is the default wiring for the
// diagnostics side-channel: fetch and stream failures end up here, not in Get.
type Hooks struct {
	l    *slog.Logger
	opts Options

	appliedCtr  atomic.Uint64
	elemFailCtr atomic.Uint64
}

var _ feedcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) FetchFailed(err error) {
	if h.l == nil {
		return
	}
	h.l.Error("feedcache.fetch_failed", "err", err)
}

func (h *Hooks) SnapshotApplied(total, inserted int) {
	if h.l == nil {
		return
	}
	h.l.Info("feedcache.snapshot_applied",
		"total", total,
		"inserted", inserted)
}

func (h *Hooks) SubscribeFailed(err error) {
	if h.l == nil {
		return
	}
	h.l.Error("feedcache.subscribe_failed", "err", err)
}

func (h *Hooks) StreamElementFailed(err error) {
	if h.l == nil || !sample(h.opts.ElementFailEvery, &h.elemFailCtr) {
		return
	}
	h.l.Warn("feedcache.stream_element_failed", "err", err)
}

func (h *Hooks) StreamApplied(key string) {
	if h.l == nil || !sample(h.opts.AppliedEvery, &h.appliedCtr) {
		return
	}
	h.l.Debug("feedcache.stream_applied",
		"key", h.redact(key))
}

func (h *Hooks) StreamClosed() {
	if h.l == nil {
		return
	}
	h.l.Info("feedcache.stream_closed")
}

func (h *Hooks) StoreFailed(key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("feedcache.store_failed",
		"key", h.redact(key),
		"err", err)
}
