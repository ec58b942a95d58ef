package permute

// subPerm is a materialized random bijection on the residues of one
// prime-power factor. forward and inverse are exact mirrors:
// inverse[forward[i]] == i for every i in [0, q). Never mutated after
// newSubPerm returns.
type subPerm struct {
	forward []uint64
	inverse []uint64
}

// newSubPerm draws a uniform permutation of [0, q) with a Fisher-Yates
// shuffle, consuming exactly q-1 values from src. Every one of the q!
// permutations is equally likely given a uniform src.
func newSubPerm(q uint64, src Source) subPerm {
	forward := make([]uint64, q)
	for i := range forward {
		forward[i] = uint64(i)
	}
	for i := q - 1; i > 0; i-- {
		j := src.Uint64n(i + 1)
		forward[i], forward[j] = forward[j], forward[i]
	}
	inverse := make([]uint64, q)
	for i, v := range forward {
		inverse[v] = uint64(i)
	}
	return subPerm{forward: forward, inverse: inverse}
}
