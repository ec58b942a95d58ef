package permute

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand"
	"time"
)

// Source yields the uniform random values that drive permutation generation.
// A Source is consumed by a single construction call and does not need to be
// safe for concurrent use; share one across concurrent New calls only if it
// synchronizes internally.
type Source interface {
	// Uint64n returns a uniform value in [0, bound). bound must be nonzero.
	Uint64n(bound uint64) uint64
}

// NewSeededSource returns a deterministic Source. Two sources built from the
// same seed drive byte-for-byte identical permutations, which makes
// constructions reproducible across runs and hosts.
func NewSeededSource(seed int64) Source {
	return &randSource{r: rand.New(rand.NewSource(seed))}
}

// newProcessSource seeds a Source from crypto/rand, falling back to the clock
// if the system entropy pool is unreadable.
func newProcessSource() Source {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return NewSeededSource(time.Now().UnixNano())
	}
	return NewSeededSource(int64(binary.LittleEndian.Uint64(b[:])))
}

type randSource struct {
	r *rand.Rand
}

// Uint64n draws with rejection sampling so every value in [0, bound) is
// equally likely, mirroring the approach of rand.Int63n at full 64-bit width.
func (s *randSource) Uint64n(bound uint64) uint64 {
	if bound == 0 {
		panic("permute: Uint64n bound must be nonzero")
	}
	if bound&(bound-1) == 0 {
		return s.r.Uint64() & (bound - 1)
	}
	max := math.MaxUint64 - (math.MaxUint64%bound+1)%bound
	v := s.r.Uint64()
	for v > max {
		v = s.r.Uint64()
	}
	return v % bound
}
