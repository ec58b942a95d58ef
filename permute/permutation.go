// Package permute generates pseudo-random permutations of {0,...,n-1}
// without ever materializing an array of n elements.
//
// A domain size n is split into pairwise coprime prime-power factors, one
// small true-random permutation is generated per factor, and the Chinese
// Remainder Theorem stitches the factor permutations into a bijection on the
// full range. Memory is proportional to the sum of the factor sizes rather
// than to n, while forward evaluation and inversion each cost one array
// lookup plus one modular multiply per factor.
//
// The construction samples only the permutations reachable from independent
// per-factor shuffles, a tiny subset of all n! orderings, and single
// instances show modular striding artifacts. Composing several independent
// instances (see Composition) weakens those correlations at the price of one
// extra evaluation per round. None of this is cryptographic.
//
// Example usage:
//
//	perm, err := permute.New(362880)
//	if err != nil {
//		return err
//	}
//
//	it := perm.Iter()
//	for v, ok := it.Next(); ok; v, ok = it.Next() {
//		// v visits every index in [0, 362880) exactly once
//	}
package permute

import (
	"github.com/pkg/errors"
)

// Permutation is a bijection on {0,...,Size()-1} with constant-time forward
// and inverse evaluation. Implementations are immutable and safe for
// concurrent use once constructed.
type Permutation interface {
	// Size returns the number of points the permutation acts on.
	Size() uint64
	// Evaluate returns the image of i, or ErrOutOfRange when i >= Size().
	Evaluate(i uint64) (uint64, error)
	// Invert returns the preimage of i, or ErrOutOfRange when i >= Size().
	Invert(i uint64) (uint64, error)
}

// RandomPermutation is a CRT-backed random bijection on {0,...,n-1}.
// All fields are frozen by the constructor; concurrent Evaluate and Invert
// calls need no synchronization.
type RandomPermutation struct {
	n      uint64
	subs   []subPerm
	coeffs *crtCoeffs
}

// New builds a random permutation of {0,...,n-1} from a process-seeded
// random source. Each call yields a different permutation. n must be nonzero
// and free of prime factors above MaxPrime; otherwise New returns
// ErrInvalidInput and no instance.
func New(n uint64) (*RandomPermutation, error) {
	return NewWithSource(n, newProcessSource())
}

// NewWithSource builds a random permutation of {0,...,n-1} drawing all
// randomness from src. A deterministic src yields a reproducible
// permutation. The source is only used during construction; the returned
// instance keeps no reference to it.
func NewWithSource(n uint64, src Source) (*RandomPermutation, error) {
	factors, err := Factor(n)
	if err != nil {
		return nil, err
	}

	moduli := make([]uint64, len(factors))
	for j, f := range factors {
		moduli[j] = f.Value
	}
	coeffs, err := newCRTCoeffs(moduli)
	if err != nil {
		return nil, err
	}

	subs := make([]subPerm, len(factors))
	for j, f := range factors {
		subs[j] = newSubPerm(f.Value, src)
	}

	return &RandomPermutation{n: n, subs: subs, coeffs: coeffs}, nil
}

// Size returns the number of points the permutation acts on.
func (p *RandomPermutation) Size() uint64 {
	return p.n
}

// Evaluate returns the image of i under the permutation. It reduces i to its
// residue per factor, passes each residue through that factor's forward
// table, and recombines the results with the precomputed CRT coefficients.
// O(k) for k factors, no allocation.
func (p *RandomPermutation) Evaluate(i uint64) (uint64, error) {
	if i >= p.n {
		return 0, errors.Wrapf(ErrOutOfRange, "index %d not below %d", i, p.n)
	}
	var acc uint64
	for j, sub := range p.subs {
		r := sub.forward[i%p.coeffs.moduli[j]]
		acc = addmod(acc, mulmod(r, p.coeffs.coeffs[j], p.n), p.n)
	}
	return acc, nil
}

// Invert returns the preimage of i: the unique x with Evaluate(x) == i. Same
// procedure as Evaluate using the per-factor inverse tables.
func (p *RandomPermutation) Invert(i uint64) (uint64, error) {
	if i >= p.n {
		return 0, errors.Wrapf(ErrOutOfRange, "index %d not below %d", i, p.n)
	}
	var acc uint64
	for j, sub := range p.subs {
		r := sub.inverse[i%p.coeffs.moduli[j]]
		acc = addmod(acc, mulmod(r, p.coeffs.coeffs[j], p.n), p.n)
	}
	return acc, nil
}

// Iter returns a fresh lazy sequence over σ(0), σ(1), ..., σ(n-1).
func (p *RandomPermutation) Iter() *Iterator {
	return Iter(p)
}

// ParallelIter returns a fresh shared-cursor sequence over the image for
// draining from multiple goroutines.
func (p *RandomPermutation) ParallelIter() *ParallelIterator {
	return ParallelIter(p)
}

// Inverse returns a view of σ⁻¹ sharing this permutation's tables.
func (p *RandomPermutation) Inverse() *InverseView {
	return Inverse(p)
}
