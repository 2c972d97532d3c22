// Package feedcache implements a read-through, eventually-consistent in-memory
// cache that merges two independently-timed inputs over the same key space:
// a one-shot bulk snapshot and an unbounded live update feed.
//
// Components:
//   - Source[V]: the external data capability. Fetch returns the snapshot once;
//     Subscribe returns a live channel of per-key updates.
//   - table.Table[V]: the shared key->value store (default: mutex-guarded map;
//     optional xsync, BigCache and Ristretto backends).
//   - codec.Codec[V]: (de)serializes V <-> []byte for byte-backed tables and
//     remote sources.
//
// Merge rule:
//
//	snapshot -> insert-if-absent (never clobbers a value the feed delivered)
//	update   -> unconditional overwrite, in arrival order
//
// The feed is authoritative: the rule holds under any interleaving of the two
// activities, including a slow snapshot that completes after updates for the
// same keys have already landed.
//
// Both activities run in background goroutines started by New. Get is a
// non-blocking point lookup that is safe at any time, never fails, and never
// observes a torn value. Fetch failures and per-element stream failures are
// reported through Logger and Hooks only; they are never surfaced through Get.
package feedcache
