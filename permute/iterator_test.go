package permute

import (
	"sync"
	"testing"
)

func TestIteratorMatchesEvaluate(t *testing.T) {
	t.Parallel()
	p, err := NewWithSource(21621600, NewSeededSource(8))
	if err != nil {
		t.Fatalf("NewWithSource returned error: %v", err)
	}
	it := p.Iter()
	for i := uint64(0); i < 1000; i++ {
		want, err := p.Evaluate(i)
		if err != nil {
			t.Fatalf("Evaluate(%d) returned error: %v", i, err)
		}
		got, ok := it.Next()
		if !ok {
			t.Fatalf("iterator ended early at %d", i)
		}
		if got != want {
			t.Fatalf("iterator position %d = %d, want %d", i, got, want)
		}
	}
}

func TestIteratorSkip(t *testing.T) {
	t.Parallel()
	p, err := NewWithSource(21621600, NewSeededSource(8))
	if err != nil {
		t.Fatalf("NewWithSource returned error: %v", err)
	}
	it := p.Iter()
	var pos uint64
	for i := 0; i < 10; i++ {
		it.Skip(999999)
		pos += 999999
		want, err := p.Evaluate(pos)
		if err != nil {
			t.Fatalf("Evaluate(%d) returned error: %v", pos, err)
		}
		got, ok := it.Next()
		if !ok {
			t.Fatalf("iterator ended early at position %d", pos)
		}
		if got != want {
			t.Fatalf("after Skip, position %d = %d, want %d", pos, got, want)
		}
		pos++
	}
}

func TestIteratorIndependence(t *testing.T) {
	t.Parallel()
	p, err := NewWithSource(5040, NewSeededSource(12))
	if err != nil {
		t.Fatalf("NewWithSource returned error: %v", err)
	}
	it1 := p.Iter()
	it2 := p.Iter()

	// Drain half of it1; it2 must still start from position zero.
	for i := 0; i < 2520; i++ {
		if _, ok := it1.Next(); !ok {
			t.Fatalf("it1 ended early at %d", i)
		}
	}
	first, ok := it2.Next()
	if !ok {
		t.Fatal("fresh iterator had no values")
	}
	want, err := p.Evaluate(0)
	if err != nil {
		t.Fatalf("Evaluate(0) returned error: %v", err)
	}
	if first != want {
		t.Errorf("fresh iterator first value = %d, want %d", first, want)
	}
}

func TestIteratorExhaustion(t *testing.T) {
	t.Parallel()
	p, err := NewWithSource(12, NewSeededSource(13))
	if err != nil {
		t.Fatalf("NewWithSource returned error: %v", err)
	}
	it := p.Iter()
	for i := 0; i < 12; i++ {
		if _, ok := it.Next(); !ok {
			t.Fatalf("iterator ended early at %d", i)
		}
	}
	if _, ok := it.Next(); ok {
		t.Error("iterator returned a value past the end")
	}
	it.Skip(^uint64(0))
	if _, ok := it.Next(); ok {
		t.Error("iterator returned a value after saturating Skip")
	}
}

func TestParallelIteratorExactlyOnce(t *testing.T) {
	t.Parallel()
	const n = 5040
	p, err := NewWithSource(n, NewSeededSource(14))
	if err != nil {
		t.Fatalf("NewWithSource returned error: %v", err)
	}
	iter := p.ParallelIter()

	var mu sync.Mutex
	seen := make(map[uint64]int, n)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]uint64, 0, n/4)
			for {
				v, ok := iter.Next()
				if !ok {
					break
				}
				local = append(local, v)
			}
			mu.Lock()
			for _, v := range local {
				seen[v]++
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Fatalf("saw %d distinct values, want %d", len(seen), n)
	}
	for v, count := range seen {
		if count != 1 {
			t.Fatalf("value %d returned %d times", v, count)
		}
	}
}
