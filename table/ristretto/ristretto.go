// Package ristretto implements a feedcache table over dgraph-io/ristretto.
//
// Best-effort backend: Ristretto's admission policy may reject writes under
// cost pressure, which the table reports as table.ErrStoreRejected so the
// cache can count it through Hooks.StoreFailed. Use the default map table
// when every accepted update must be observable.
package ristretto

import (
	"errors"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/feedcache/codec"
	"github.com/unkn0wn-root/feedcache/internal/keylock"
	tb "github.com/unkn0wn-root/feedcache/table"
)

const lockStripes = 64

type Table[V any] struct {
	c     *rc.Cache
	codec codec.Codec[V]
	locks *keylock.KeyLock
}

var _ tb.Table[int] = (*Table[int])(nil)

type Config[V any] struct {
	Codec       codec.Codec[V]
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

func New[V any](cfg Config[V]) (*Table[V], error) {
	if cfg.Codec == nil {
		return nil, errors.New("ristretto table: codec is required")
	}
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto table: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Table[V]{
		c:     c,
		codec: cfg.Codec,
		locks: keylock.New(lockStripes),
	}, nil
}

func (t *Table[V]) Load(key string) (V, bool, error) {
	var zero V
	raw, ok := t.c.Get(key)
	if !ok {
		return zero, false, nil
	}
	b, _ := raw.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		t.c.Del(key)
		return zero, false, nil
	}
	v, err := t.codec.Decode(b)
	if err != nil {
		t.c.Del(key)
		return zero, false, err
	}
	return v, true, nil
}

// set publishes synchronously (Wait) so a later Load observes the write and
// stream overwrites stay last-write-wins by arrival order.
func (t *Table[V]) set(key string, b []byte) error {
	if !t.c.Set(key, b, int64(len(b))) {
		return tb.ErrStoreRejected
	}
	t.c.Wait()
	return nil
}

func (t *Table[V]) Store(key string, value V) error {
	b, err := t.codec.Encode(value)
	if err != nil {
		return err
	}
	t.locks.Lock(key)
	defer t.locks.Unlock(key)
	return t.set(key, b)
}

func (t *Table[V]) LoadOrStore(key string, value V) (V, bool, error) {
	var zero V
	t.locks.Lock(key)
	defer t.locks.Unlock(key)

	if raw, ok := t.c.Get(key); ok {
		if b, _ := raw.([]byte); b != nil {
			if v, err := t.codec.Decode(b); err == nil {
				return v, true, nil
			}
		}
		t.c.Del(key) // undecodable or foreign shape; replace below
	}

	b, err := t.codec.Encode(value)
	if err != nil {
		return zero, false, err
	}
	if err := t.set(key, b); err != nil {
		return zero, false, err
	}
	return value, false, nil
}

// Len is approximate: Ristretto does not expose an exact entry count, so this
// reports the number of keys added minus evicted as tracked by metrics, or 0
// when metrics are disabled.
func (t *Table[V]) Len() int {
	m := t.c.Metrics
	if m == nil {
		return 0
	}
	n := int(m.KeysAdded()) - int(m.KeysEvicted())
	if n < 0 {
		return 0
	}
	return n
}

func (t *Table[V]) Close() error {
	t.c.Wait()
	t.c.Close()
	return nil
}

// Metrics exposes the underlying Ristretto metrics when enabled. Not part of
// the table.Table interface.
func (t *Table[V]) Metrics() *rc.Metrics { return t.c.Metrics }
