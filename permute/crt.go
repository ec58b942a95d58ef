package permute

import (
	"math/big"
	"math/bits"

	"github.com/pkg/errors"
)

// crtCoeffs holds the precomputed Chinese Remainder reconstruction
// coefficients for a fixed list of pairwise coprime moduli. With
// M_j = n/q_j and N_j = M_j^-1 (mod q_j), coeffs[j] = M_j*N_j mod n, so the
// index with residues r_j is sum(r_j * coeffs[j]) mod n. Read-only after
// construction.
type crtCoeffs struct {
	n      uint64
	moduli []uint64
	coeffs []uint64
}

// newCRTCoeffs precomputes reconstruction coefficients for the given moduli.
// The moduli must be pairwise coprime and their product must fit in a uint64.
func newCRTCoeffs(moduli []uint64) (*crtCoeffs, error) {
	n := uint64(1)
	for _, q := range moduli {
		if q == 0 {
			return nil, errors.Wrap(ErrInvalidInput, "zero modulus")
		}
		hi, lo := bits.Mul64(n, q)
		if hi != 0 {
			return nil, errors.Wrap(ErrInvalidInput, "product of moduli overflows uint64")
		}
		n = lo
	}

	c := &crtCoeffs{
		n:      n,
		moduli: append([]uint64(nil), moduli...),
		coeffs: make([]uint64, len(moduli)),
	}
	for j, q := range moduli {
		m := n / q
		inv, ok := modInverse(m%q, q)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidInput, "moduli are not pairwise coprime: %d shares a factor with %d", q, m)
		}
		c.coeffs[j] = mulmod(m, inv, n)
	}
	return c, nil
}

// decompose maps an index in [0, n) to its residues modulo each factor.
func (c *crtCoeffs) decompose(i uint64) []uint64 {
	residues := make([]uint64, len(c.moduli))
	for j, q := range c.moduli {
		residues[j] = i % q
	}
	return residues
}

// reconstruct is the inverse of decompose: it returns the unique index in
// [0, n) congruent to residues[j] modulo each factor. Every product is
// reduced mod n before accumulation, so no intermediate exceeds 128 bits.
func (c *crtCoeffs) reconstruct(residues []uint64) uint64 {
	var acc uint64
	for j, r := range residues {
		acc = addmod(acc, mulmod(r, c.coeffs[j], c.n), c.n)
	}
	return acc
}

// mulmod returns a*b mod m using a 128-bit intermediate product.
func mulmod(a, b, m uint64) uint64 {
	a %= m
	b %= m
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, m)
	return rem
}

// addmod returns (a+b) mod m for a, b < m. The subtraction is correct even
// when a+b wraps, because the true sum is below 2m <= 2^65.
func addmod(a, b, m uint64) uint64 {
	s := a + b
	if s < a || s >= m {
		s -= m
	}
	return s
}

// modInverse returns the multiplicative inverse of a modulo m, reporting
// false when gcd(a, m) != 1. Runs once per factor at construction time, so
// the big.Int round-trip is not on any hot path.
func modInverse(a, m uint64) (uint64, bool) {
	if m == 1 {
		return 0, true
	}
	inv := new(big.Int).ModInverse(new(big.Int).SetUint64(a), new(big.Int).SetUint64(m))
	if inv == nil {
		return 0, false
	}
	return inv.Uint64(), true
}
