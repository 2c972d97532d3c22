// Package keylock provides a fixed-size striped mutex set keyed by string.
// Two keys may share a stripe; that only costs spurious contention, never
// lost exclusion.
package keylock

import (
	"hash/fnv"
	"sync"
)

type KeyLock struct {
	stripes []sync.Mutex
}

// New creates a KeyLock with n stripes (rounded up to at least 1).
func New(n int) *KeyLock {
	if n < 1 {
		n = 1
	}
	return &KeyLock{stripes: make([]sync.Mutex, n)}
}

func (l *KeyLock) idx(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(l.stripes)))
}

func (l *KeyLock) Lock(key string)   { l.stripes[l.idx(key)].Lock() }
func (l *KeyLock) Unlock(key string) { l.stripes[l.idx(key)].Unlock() }
