package keylock

import (
	"sync"
	"testing"
)

func TestKeyLockExclusion(t *testing.T) {
	l := New(4)

	const workers = 16
	const rounds = 500

	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for n := 0; n < rounds; n++ {
				l.Lock("same-key")
				counter++
				l.Unlock("same-key")
			}
		}()
	}
	wg.Wait()

	if counter != workers*rounds {
		t.Fatalf("counter = %d, want %d", counter, workers*rounds)
	}
}

func TestKeyLockMinimumStripes(t *testing.T) {
	l := New(0) // clamped to 1
	l.Lock("a")
	l.Unlock("a")
}
