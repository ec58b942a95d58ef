package permute

// InverseView presents the inverse of a permutation through the same
// Permutation surface without copying any tables. Evaluating the view is
// inverting the underlying permutation and vice versa, so the view of a view
// behaves like the original.
type InverseView struct {
	perm Permutation
}

// Inverse returns the inverse view of any permutation.
func Inverse(p Permutation) *InverseView {
	return &InverseView{perm: p}
}

// Size returns the number of points the permutation acts on.
func (v *InverseView) Size() uint64 {
	return v.perm.Size()
}

// Evaluate returns the preimage of i under the viewed permutation.
func (v *InverseView) Evaluate(i uint64) (uint64, error) {
	return v.perm.Invert(i)
}

// Invert returns the image of i under the viewed permutation.
func (v *InverseView) Invert(i uint64) (uint64, error) {
	return v.perm.Evaluate(i)
}

// Iter returns a fresh lazy sequence over σ⁻¹(0), ..., σ⁻¹(n-1).
func (v *InverseView) Iter() *Iterator {
	return Iter(v)
}
