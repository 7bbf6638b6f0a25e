package vss

import (
	"fmt"

	"github.com/cronokirby/saferith"

	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/polynomial"
)

// Modulus returns the scalar field of g as a saferith modulus.
func Modulus(g group.Group) *saferith.Modulus {
	return saferith.ModulusFromBytes(g.Order())
}

// ScalarToNat converts a group scalar into a field element.
func ScalarToNat(m *saferith.Modulus, s group.Scalar) *saferith.Nat {
	return new(saferith.Nat).Mod(new(saferith.Nat).SetBytes(s.Bytes()), m)
}

// NatToScalar converts a field element into a group scalar.
func NatToScalar(g group.Group, n *saferith.Nat) group.Scalar {
	s, _ := g.NewScalar().SetBytes(n.Bytes())
	return s
}

// LagrangeScalars returns the coefficients λᵢ that recombine evaluations
// at indexes into the value at zero.
func LagrangeScalars(g group.Group, indexes []int) ([]group.Scalar, error) {
	for _, idx := range indexes {
		if idx < 1 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidIndex, idx)
		}
	}
	lambdas, err := polynomial.LagrangeCoefficientsForIndexes(Modulus(g), indexes)
	if err != nil {
		return nil, err
	}
	out := make([]group.Scalar, len(lambdas))
	for i, l := range lambdas {
		out[i] = NatToScalar(g, l)
	}
	return out, nil
}
