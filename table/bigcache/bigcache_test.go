package bigcache

import (
	"testing"
	"time"

	"github.com/unkn0wn-root/feedcache/codec"
)

type reading struct {
	Temp uint64 `json:"temp"`
	City string `json:"city"`
}

func newTestTable(t *testing.T) *Table[reading] {
	t.Helper()
	tab, err := New[reading](Config[reading]{
		Codec:      codec.JSON[reading]{},
		LifeWindow: time.Hour,
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

func TestNewRequiresCodec(t *testing.T) {
	if _, err := New[reading](Config[reading]{}); err == nil {
		t.Fatalf("New should fail without a codec")
	}
}

func TestRoundtrip(t *testing.T) {
	tab := newTestTable(t)

	if _, ok, err := tab.Load("paris"); ok || err != nil {
		t.Fatalf("fresh table should miss, ok=%v err=%v", ok, err)
	}

	want := reading{Temp: 31, City: "Paris"}
	if err := tab.Store("paris", want); err != nil {
		t.Fatalf("Store: %v", err)
	}
	got, ok, err := tab.Load("paris")
	if err != nil || !ok || got != want {
		t.Fatalf("Load = %+v,%v,%v want %+v", got, ok, err, want)
	}

	// overwrite is unconditional
	want2 := reading{Temp: 32, City: "Paris"}
	if err := tab.Store("paris", want2); err != nil {
		t.Fatalf("Store overwrite: %v", err)
	}
	if got, _, _ := tab.Load("paris"); got != want2 {
		t.Fatalf("overwrite lost, got %+v", got)
	}
}

func TestLoadOrStore(t *testing.T) {
	tab := newTestTable(t)

	first := reading{Temp: 20, City: "Riga"}
	v, loaded, err := tab.LoadOrStore("riga", first)
	if err != nil || loaded || v != first {
		t.Fatalf("LoadOrStore absent: v=%+v loaded=%v err=%v", v, loaded, err)
	}

	v, loaded, err = tab.LoadOrStore("riga", reading{Temp: 99, City: "Riga"})
	if err != nil || !loaded || v != first {
		t.Fatalf("LoadOrStore existing: v=%+v loaded=%v err=%v", v, loaded, err)
	}
	if got, _, _ := tab.Load("riga"); got != first {
		t.Fatalf("LoadOrStore clobbered existing value: %+v", got)
	}
}

// An undecodable entry is dropped on read and the key misses.
func TestSelfHealOnCorrupt(t *testing.T) {
	tab := newTestTable(t)

	if err := tab.c.Set("bad", []byte("{not json")); err != nil {
		t.Fatalf("inject corrupt: %v", err)
	}
	if _, ok, err := tab.Load("bad"); ok || err == nil {
		t.Fatalf("Load on corrupt entry: ok=%v err=%v", ok, err)
	}
	// entry should be gone now; a second read is a plain miss
	if _, ok, err := tab.Load("bad"); ok || err != nil {
		t.Fatalf("corrupt entry was not self-healed: ok=%v err=%v", ok, err)
	}
}
