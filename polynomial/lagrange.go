package polynomial

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
)

var (
	// ErrNonDistinctXs is returned when two interpolation points share an
	// x-coordinate modulo the field order.
	ErrNonDistinctXs = errors.New("polynomial: interpolation x-coordinates are not distinct")
	// ErrPointsExceedOrder is returned when there are more interpolation
	// points than field elements.
	ErrPointsExceedOrder = errors.New("polynomial: number of points exceeds field order")
	// ErrEmptyPoints is returned when interpolating through no points.
	ErrEmptyPoints = errors.New("polynomial: no interpolation points")
)

// Point is an evaluation (X, Y) used for interpolation.
type Point struct {
	X *saferith.Nat
	Y *saferith.Nat
}

// Interpolator evaluates the unique polynomial of degree at most k-1
// through k points with the barycentric formula
//
//	L(x) = ℓ(x) ⋅ Σⱼ yⱼ⋅wⱼ / (x - xⱼ),  ℓ(x) = Πᵢ (x - xᵢ),  wⱼ = 1 / Πᵢ≠ⱼ (xⱼ - xᵢ)
//
// without materializing its coefficients.
type Interpolator struct {
	modulus *saferith.Modulus
	xs      []*saferith.Nat
	ys      []*saferith.Nat
	weights []*saferith.Nat
}

// NewInterpolator validates the points and precomputes barycentric weights.
func NewInterpolator(m *saferith.Modulus, points []Point) (*Interpolator, error) {
	xs, err := checkXs(m, xsOf(points))
	if err != nil {
		return nil, err
	}
	ys := make([]*saferith.Nat, len(points))
	for i, pt := range points {
		ys[i] = new(saferith.Nat).Mod(pt.Y, m)
	}
	weights := make([]*saferith.Nat, len(xs))
	for j := range xs {
		w := NatFromInt(m, 1)
		for i := range xs {
			if i == j {
				continue
			}
			w.ModMul(w, new(saferith.Nat).ModSub(xs[j], xs[i], m), m)
		}
		weights[j] = new(saferith.Nat).ModInverse(w, m)
	}
	return &Interpolator{modulus: m, xs: xs, ys: ys, weights: weights}, nil
}

// Evaluate returns L(x).
func (in *Interpolator) Evaluate(x *saferith.Nat) *saferith.Nat {
	m := in.modulus
	x = new(saferith.Nat).Mod(x, m)
	for j, xj := range in.xs {
		if x.Eq(xj) == 1 {
			return new(saferith.Nat).SetNat(in.ys[j])
		}
	}
	ell := NatFromInt(m, 1)
	sum := NatFromInt(m, 0)
	for j, xj := range in.xs {
		diff := new(saferith.Nat).ModSub(x, xj, m)
		ell.ModMul(ell, diff, m)
		term := new(saferith.Nat).ModMul(in.ys[j], in.weights[j], m)
		term.ModMul(term, new(saferith.Nat).ModInverse(diff, m), m)
		sum.ModAdd(sum, term, m)
	}
	return sum.ModMul(sum, ell, m)
}

// Polynomial expands the interpolating polynomial into coefficient form,
// Σⱼ yⱼ⋅wⱼ⋅Πᵢ≠ⱼ (X - xᵢ).
func (in *Interpolator) Polynomial() *Polynomial {
	m := in.modulus
	result := &Polynomial{modulus: m}
	for j := range in.xs {
		basis := New(m, []*saferith.Nat{NatFromInt(m, 1)})
		for i, xi := range in.xs {
			if i == j {
				continue
			}
			// X - xᵢ
			linear := New(m, []*saferith.Nat{new(saferith.Nat).ModNeg(xi, m), NatFromInt(m, 1)})
			basis, _ = basis.Mul(linear)
		}
		scale := new(saferith.Nat).ModMul(in.ys[j], in.weights[j], m)
		result, _ = result.Add(basis.MulScalar(scale))
	}
	return result
}

// Interpolate returns the unique polynomial of degree at most k-1 through
// the k given points.
func Interpolate(m *saferith.Modulus, points []Point) (*Polynomial, error) {
	in, err := NewInterpolator(m, points)
	if err != nil {
		return nil, err
	}
	return in.Polynomial(), nil
}

// LagrangeCoefficients returns λᵢ = Πⱼ≠ᵢ xⱼ / (xⱼ - xᵢ) for every xᵢ, the
// weights that recombine evaluations at xs into the value at zero.
func LagrangeCoefficients(m *saferith.Modulus, xs []*saferith.Nat) ([]*saferith.Nat, error) {
	reduced, err := checkXs(m, xs)
	if err != nil {
		return nil, err
	}
	coeffs := make([]*saferith.Nat, len(reduced))
	for i, xi := range reduced {
		num := NatFromInt(m, 1)
		den := NatFromInt(m, 1)
		for j, xj := range reduced {
			if i == j {
				continue
			}
			num.ModMul(num, xj, m)
			den.ModMul(den, new(saferith.Nat).ModSub(xj, xi, m), m)
		}
		coeffs[i] = num.ModMul(num, new(saferith.Nat).ModInverse(den, m), m)
	}
	return coeffs, nil
}

// LagrangeCoefficientsForIndexes is LagrangeCoefficients over participant
// indexes.
func LagrangeCoefficientsForIndexes(m *saferith.Modulus, indexes []int) ([]*saferith.Nat, error) {
	xs := make([]*saferith.Nat, len(indexes))
	for i, idx := range indexes {
		if idx < 0 {
			return nil, fmt.Errorf("polynomial: negative index %d", idx)
		}
		xs[i] = NatFromInt(m, uint64(idx))
	}
	return LagrangeCoefficients(m, xs)
}

func xsOf(points []Point) []*saferith.Nat {
	xs := make([]*saferith.Nat, len(points))
	for i, pt := range points {
		xs[i] = pt.X
	}
	return xs
}

func checkXs(m *saferith.Modulus, xs []*saferith.Nat) ([]*saferith.Nat, error) {
	if len(xs) == 0 {
		return nil, ErrEmptyPoints
	}
	if big.NewInt(int64(len(xs))).Cmp(m.Big()) > 0 {
		return nil, fmt.Errorf("%w: %d points", ErrPointsExceedOrder, len(xs))
	}
	reduced := make([]*saferith.Nat, len(xs))
	for i, x := range xs {
		reduced[i] = new(saferith.Nat).Mod(x, m)
		for j := 0; j < i; j++ {
			if reduced[i].Eq(reduced[j]) == 1 {
				return nil, fmt.Errorf("%w: points %d and %d", ErrNonDistinctXs, j, i)
			}
		}
	}
	return reduced, nil
}
