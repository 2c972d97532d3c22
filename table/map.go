package table

import "sync"

// Map is the default in-memory table: a Go map guarded by a single RWMutex.
// It is the only backend with strict write guarantees (no rejection, no
// eviction), so it is what feedcache uses when Options.Table is nil.
type Map[V any] struct {
	mu sync.RWMutex
	m  map[string]V
}

var _ Table[int] = (*Map[int])(nil)

func NewMap[V any]() *Map[V] {
	return &Map[V]{m: make(map[string]V)}
}

func (t *Map[V]) Load(key string) (V, bool, error) {
	t.mu.RLock()
	v, ok := t.m[key]
	t.mu.RUnlock()
	return v, ok, nil
}

func (t *Map[V]) Store(key string, value V) error {
	t.mu.Lock()
	t.m[key] = value
	t.mu.Unlock()
	return nil
}

func (t *Map[V]) LoadOrStore(key string, value V) (V, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.m[key]; ok {
		return v, true, nil
	}
	t.m[key] = value
	return value, false, nil
}

func (t *Map[V]) Len() int {
	t.mu.RLock()
	n := len(t.m)
	t.mu.RUnlock()
	return n
}

func (t *Map[V]) Close() error { return nil }
