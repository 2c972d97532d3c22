package ristretto

import (
	"testing"

	"github.com/unkn0wn-root/feedcache/codec"
)

func newTestTable(t *testing.T) *Table[uint64] {
	t.Helper()
	tab, err := New[uint64](Config[uint64]{
		Codec:       codec.JSON[uint64]{},
		NumCounters: 10_000,
		MaxCost:     1 << 20,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() {
		if err := tab.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return tab
}

func TestNewValidation(t *testing.T) {
	if _, err := New[uint64](Config[uint64]{NumCounters: 1, MaxCost: 1, BufferItems: 1}); err == nil {
		t.Fatalf("New should fail without a codec")
	}
	if _, err := New[uint64](Config[uint64]{Codec: codec.JSON[uint64]{}}); err == nil {
		t.Fatalf("New should fail on zero sizes")
	}
}

func TestRoundtrip(t *testing.T) {
	tab := newTestTable(t)

	if _, ok, err := tab.Load("berlin"); ok || err != nil {
		t.Fatalf("fresh table should miss, ok=%v err=%v", ok, err)
	}

	if err := tab.Store("berlin", 29); err != nil {
		t.Fatalf("Store: %v", err)
	}
	// Store publishes synchronously, so the write is observable here.
	if v, ok, err := tab.Load("berlin"); err != nil || !ok || v != 29 {
		t.Fatalf("Load = %d,%v,%v want 29", v, ok, err)
	}

	if err := tab.Store("berlin", 30); err != nil {
		t.Fatalf("Store overwrite: %v", err)
	}
	if v, _, _ := tab.Load("berlin"); v != 30 {
		t.Fatalf("overwrite lost, got %d", v)
	}
}

func TestLoadOrStore(t *testing.T) {
	tab := newTestTable(t)

	v, loaded, err := tab.LoadOrStore("riga", 20)
	if err != nil || loaded || v != 20 {
		t.Fatalf("LoadOrStore absent: v=%d loaded=%v err=%v", v, loaded, err)
	}
	v, loaded, err = tab.LoadOrStore("riga", 99)
	if err != nil || !loaded || v != 20 {
		t.Fatalf("LoadOrStore existing: v=%d loaded=%v err=%v", v, loaded, err)
	}
}
