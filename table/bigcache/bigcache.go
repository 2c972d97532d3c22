// Package bigcache implements a feedcache table over allegro/bigcache.
// Values are stored encoded, off the Go heap, which keeps GC pressure flat
// for very large key spaces.
//
// BigCache keeps entries for its configured life window; pick one well above
// the expected process lifetime if entries must never age out. Entry aging is
// backend storage hygiene, not a cache feature - the merging cache itself
// never removes entries.
package bigcache

import (
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/feedcache/codec"
	"github.com/unkn0wn-root/feedcache/internal/keylock"
	tb "github.com/unkn0wn-root/feedcache/table"
)

const lockStripes = 64

type Table[V any] struct {
	c     *bc.BigCache
	codec codec.Codec[V]
	locks *keylock.KeyLock
}

var _ tb.Table[int] = (*Table[int])(nil)

type Config[V any] struct {
	Codec              codec.Codec[V]
	LifeWindow         time.Duration // 0 => 10 years (effectively no aging)
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New[V any](cfg Config[V]) (*Table[V], error) {
	if cfg.Codec == nil {
		return nil, errors.New("bigcache table: codec is required")
	}
	life := cfg.LifeWindow
	if life <= 0 {
		life = 10 * 365 * 24 * time.Hour
	}
	conf := bc.DefaultConfig(life)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
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
	b, err := t.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	v, err := t.codec.Decode(b)
	if err != nil {
		// self-heal: drop the undecodable entry and miss
		_ = t.c.Delete(key)
		return zero, false, err
	}
	return v, true, nil
}

func (t *Table[V]) Store(key string, value V) error {
	b, err := t.codec.Encode(value)
	if err != nil {
		return err
	}
	// same stripe as LoadOrStore so overwrites and if-absent writes for one
	// key cannot interleave
	t.locks.Lock(key)
	defer t.locks.Unlock(key)
	return t.c.Set(key, b)
}

func (t *Table[V]) LoadOrStore(key string, value V) (V, bool, error) {
	var zero V
	t.locks.Lock(key)
	defer t.locks.Unlock(key)

	if b, err := t.c.Get(key); err == nil {
		v, derr := t.codec.Decode(b)
		if derr == nil {
			return v, true, nil
		}
		_ = t.c.Delete(key) // undecodable; replace below
	}

	b, err := t.codec.Encode(value)
	if err != nil {
		return zero, false, err
	}
	if err := t.c.Set(key, b); err != nil {
		return zero, false, err
	}
	return value, false, nil
}

func (t *Table[V]) Len() int { return t.c.Len() }

func (t *Table[V]) Close() error { return t.c.Close() }
