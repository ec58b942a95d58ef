package permute

import (
	"math"
	"sync/atomic"
)

// Iterator walks a permutation's image sequence lazily: position idx yields
// Evaluate(idx), computed on demand with no buffering. Each Iterator owns its
// cursor, so sequences obtained separately never interfere; restart by
// requesting a fresh Iterator.
type Iterator struct {
	perm Permutation
	idx  uint64
}

// Iter returns a fresh sequence over p's image, starting at position zero.
func Iter(p Permutation) *Iterator {
	return &Iterator{perm: p}
}

// Next returns the image of the current position and advances the cursor.
// It reports false once the sequence is exhausted.
func (it *Iterator) Next() (uint64, bool) {
	if it.idx >= it.perm.Size() {
		return 0, false
	}
	v, err := it.perm.Evaluate(it.idx)
	if err != nil {
		return 0, false
	}
	it.idx++
	return v, true
}

// Skip advances the cursor by k positions without evaluating them.
func (it *Iterator) Skip(k uint64) {
	if it.idx > math.MaxUint64-k {
		it.idx = math.MaxUint64
		return
	}
	it.idx += k
}

// ParallelIterator drains a permutation's image across multiple goroutines.
// A shared atomic cursor hands every position to exactly one caller, which
// makes it suitable for fanning work out over a permuted index sequence.
//
// Example usage:
//
//	iter := perm.ParallelIter()
//
//	var wg sync.WaitGroup
//	for i := 0; i < 10; i++ {
//		wg.Add(1)
//		go func() {
//			defer wg.Done()
//			for {
//				value, ok := iter.Next()
//				if !ok {
//					break
//				}
//				// Process value
//			}
//		}()
//	}
//	wg.Wait()
type ParallelIterator struct {
	perm  Permutation
	index uint64 // Use atomic operations on this
}

// ParallelIter returns a fresh shared-cursor sequence over p's image.
func ParallelIter(p Permutation) *ParallelIterator {
	return &ParallelIterator{perm: p}
}

// Next returns the image of the next unclaimed position. This method is
// thread-safe; each position is returned to exactly one caller, and it
// reports false once all positions have been handed out.
func (pi *ParallelIterator) Next() (uint64, bool) {
	idx := atomic.AddUint64(&pi.index, 1) - 1
	if idx >= pi.perm.Size() {
		return 0, false
	}
	v, err := pi.perm.Evaluate(idx)
	if err != nil {
		return 0, false
	}
	return v, true
}
