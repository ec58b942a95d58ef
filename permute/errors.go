package permute

import (
	"github.com/pkg/errors"
)

// Error kinds reported by this package. Returned errors may carry extra
// context from the failing call; match them with errors.Is.
var (
	// ErrInvalidInput reports a domain size that cannot be permuted: zero, or
	// an n with a prime factor above MaxPrime.
	ErrInvalidInput = errors.New("permute: invalid domain size")

	// ErrOutOfRange reports an index at or above the permutation size.
	ErrOutOfRange = errors.New("permute: index out of range")

	// ErrSizeMismatch reports a composition over permutations of different
	// sizes, or over no permutations at all.
	ErrSizeMismatch = errors.New("permute: permutation sizes differ")
)
