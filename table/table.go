// Package table defines the shared key->value store used by feedcache, and
// provides the default mutex-guarded map implementation.
//
// Implementations MUST be safe for concurrent use by any number of readers
// and the two background writers. Load must never observe a partially-written
// value, and LoadOrStore must be atomic with respect to concurrent Store
// calls for the same key - the insert-if-absent vs overwrite priority rule of
// the cache depends on it.
//
// Locks (if any) are held only for the duration of a single operation, never
// across I/O, so a slow reader or source cannot stall the table.
package table

import "errors"

// ErrStoreRejected is returned by backends that may refuse a write under
// pressure (e.g. Ristretto admission). The default map table never returns it.
var ErrStoreRejected = errors.New("table: store rejected")

// Table is the cache table: a mapping from key to the most recently accepted
// value for that key. Entries are added or overwritten, never removed.
type Table[V any] interface {
	// Load returns (value, true, nil) on hit; (zero, false, nil) on miss.
	// Byte-backed tables may return an error for undecodable entries after
	// self-healing; callers treat that as a miss.
	Load(key string) (V, bool, error)

	// Store writes value unconditionally (last-write-wins).
	Store(key string, value V) error

	// LoadOrStore writes value only if key is absent. It returns the value
	// now in the table and loaded=true if an existing value was kept.
	LoadOrStore(key string, value V) (actual V, loaded bool, err error)

	// Len returns the number of entries.
	Len() int

	// Close releases resources.
	Close() error
}
