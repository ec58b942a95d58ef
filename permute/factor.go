package permute

import (
	"github.com/pkg/errors"
)

// MaxPrime bounds the trial division performed by Factor. Domain sizes with a
// prime factor above this limit are rejected rather than factored slowly; the
// package targets products of small prime powers, not arbitrary n.
const MaxPrime = 1_000_000

// PrimePowerFactor is one prime-power component of a factored domain size.
type PrimePowerFactor struct {
	Prime    uint64
	Exponent int
	Value    uint64 // Prime**Exponent
}

// Factor decomposes n into its prime-power factors, ordered by increasing
// prime. The factor values are pairwise coprime and multiply back to n.
// Factoring n = 1 yields an empty list (the permutation on a single point).
func Factor(n uint64) ([]PrimePowerFactor, error) {
	if n == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "domain size is zero")
	}

	var factors []PrimePowerFactor
	n, f := splitPrime(n, 2)
	if f.Exponent > 0 {
		factors = append(factors, f)
	}
	return factorOdd(factors, n)
}

func factorOdd(factors []PrimePowerFactor, n uint64) ([]PrimePowerFactor, error) {
	for p := uint64(3); n > 1; p += 2 {
		if p > MaxPrime {
			return nil, errors.Wrapf(ErrInvalidInput, "cofactor %d has no prime factor below %d", n, MaxPrime)
		}
		if p*p > n {
			// the remaining cofactor is prime
			break
		}
		var f PrimePowerFactor
		if n, f = splitPrime(n, p); f.Exponent > 0 {
			factors = append(factors, f)
		}
	}
	if n > 1 {
		if n > MaxPrime {
			return nil, errors.Wrapf(ErrInvalidInput, "prime factor %d exceeds limit %d", n, MaxPrime)
		}
		factors = append(factors, PrimePowerFactor{Prime: n, Exponent: 1, Value: n})
	}
	return factors, nil
}

// splitPrime divides every power of p out of n, returning the reduced n and
// the extracted factor. The factor's Exponent is zero when p does not divide n.
func splitPrime(n, p uint64) (uint64, PrimePowerFactor) {
	f := PrimePowerFactor{Prime: p, Value: 1}
	for n%p == 0 {
		n /= p
		f.Exponent++
		f.Value *= p
	}
	return n, f
}
