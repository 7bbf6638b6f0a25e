package group

import (
	"io"
)

// Scalar is an integer modulo the group order, the exponent side of the
// group. Arithmetic writes into the receiver and returns it, so a fresh
// NewScalar is the usual destination. Results always lie in [0, order).
type Scalar interface {
	Add(a, b Scalar) Scalar
	Sub(a, b Scalar) Scalar
	Mul(a, b Scalar) Scalar
	Negate(a Scalar) Scalar
	// Invert fails with ErrZeroInverse on zero.
	Invert(a Scalar) (Scalar, error)
	Set(a Scalar) Scalar
	// Bytes returns the canonical big-endian encoding of the scalar,
	// always exactly [Group.ScalarSize] bytes long.
	Bytes() []byte
	// SetBytes sets the receiver from a big-endian byte slice of any
	// length, reducing it modulo the group order.
	SetBytes(data []byte) (Scalar, error)
	Equal(b Scalar) bool
	IsZero() bool
}

// Point is a group element. It follows the same receiver convention as
// [Scalar]; the identity is the neutral element of Add.
type Point interface {
	Add(a, b Point) Point
	Sub(a, b Point) Point
	Negate(a Point) Point
	ScalarMult(s Scalar, p Point) Point
	Set(a Point) Point
	// Bytes is the canonical encoding, [Group.PointSize] bytes long.
	Bytes() []byte
	// SetBytes decodes a canonical encoding. It checks the curve
	// equation but not subgroup membership; see [Group.Validate].
	SetBytes(data []byte) (Point, error)
	Equal(b Point) bool
	IsIdentity() bool
}

// Group is a prime-order cyclic group with a fixed generator. Besides
// constructing elements it exposes the description that Fiat-Shamir
// challenges commit to, and checks points that arrive from peers.
//
//	g, _ := curves.New(curves.BabyJubjub)
//	x, _ := g.RandomScalar(rand.Reader)
//	X := g.NewPoint().ScalarMult(x, g.Generator())
type Group interface {
	// Name returns the label of the group, e.g. "bjj".
	Name() string
	// NewScalar is zero, NewPoint is the identity.
	NewScalar() Scalar
	NewPoint() Point
	Generator() Point
	// RandomScalar draws from r, uniformly in [0, order).
	RandomScalar(r io.Reader) (Scalar, error)
	// HashToPoint deterministically maps data to a point in the prime-order
	// subgroup whose discrete logarithm is unknown.
	HashToPoint(data ...[]byte) (Point, error)
	// Order and Modulus are big-endian.
	Order() []byte
	Modulus() []byte
	ScalarSize() int
	PointSize() int
	// Owns reports whether p uses this group's representation.
	Owns(p Point) bool
	// OwnsScalar is Owns for scalars.
	OwnsScalar(s Scalar) bool
	// Validate checks that p is an element of the prime-order subgroup.
	// The identity is always valid. Points of another group yield
	// ErrGroupMismatch and points outside the subgroup yield
	// ErrPointNotInSubgroup.
	Validate(p Point) error
}
