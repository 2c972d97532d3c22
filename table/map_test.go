package table

import (
	"fmt"
	"sync"
	"testing"
)

func TestMapLoadStore(t *testing.T) {
	m := NewMap[uint64]()

	if _, ok, err := m.Load("a"); ok || err != nil {
		t.Fatalf("fresh table should miss, ok=%v err=%v", ok, err)
	}

	if err := m.Store("a", 1); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if v, ok, _ := m.Load("a"); !ok || v != 1 {
		t.Fatalf("Load after Store: ok=%v v=%d", ok, v)
	}

	// overwrite is unconditional
	if err := m.Store("a", 2); err != nil {
		t.Fatalf("Store overwrite: %v", err)
	}
	if v, _, _ := m.Load("a"); v != 2 {
		t.Fatalf("overwrite lost, got %d", v)
	}
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}
}

func TestMapLoadOrStore(t *testing.T) {
	m := NewMap[uint64]()

	// absent -> stores
	v, loaded, err := m.LoadOrStore("k", 7)
	if err != nil || loaded || v != 7 {
		t.Fatalf("first LoadOrStore: v=%d loaded=%v err=%v", v, loaded, err)
	}

	// present -> keeps the existing value
	v, loaded, err = m.LoadOrStore("k", 9)
	if err != nil || !loaded || v != 7 {
		t.Fatalf("second LoadOrStore: v=%d loaded=%v err=%v", v, loaded, err)
	}
	if got, _, _ := m.Load("k"); got != 7 {
		t.Fatalf("LoadOrStore clobbered existing value, got %d", got)
	}
}

// Concurrent readers and writers on the same keys; meaningful under -race.
// Readers must only ever observe values that were explicitly written.
func TestMapConcurrentAccess(t *testing.T) {
	m := NewMap[uint64]()
	const keys = 8
	const writes = 200

	var wg sync.WaitGroup
	wg.Add(2 * keys)

	for i := 0; i < keys; i++ {
		key := fmt.Sprintf("k%d", i)

		go func() {
			defer wg.Done()
			for n := 0; n < writes; n++ {
				_ = m.Store(key, uint64(n))
				_, _, _ = m.LoadOrStore(key, 0)
			}
		}()

		go func() {
			defer wg.Done()
			for n := 0; n < writes; n++ {
				v, ok, err := m.Load(key)
				if err != nil {
					t.Errorf("Load(%s): %v", key, err)
					return
				}
				if ok && v >= writes {
					t.Errorf("Load(%s) observed never-written value %d", key, v)
					return
				}
			}
		}()
	}
	wg.Wait()

	if m.Len() != keys {
		t.Fatalf("Len = %d, want %d", m.Len(), keys)
	}
}
