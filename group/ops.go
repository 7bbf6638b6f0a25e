package group

import (
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
)

// Operate returns s*p. A zero scalar yields the identity without touching
// p, so Operate(0, p) is the identity even for a malformed p.
//
// Operate, Combine and Invert expect elements of g. Inputs from outside go
// through AssertValid and AssertScalars first.
func Operate(g Group, s Scalar, p Point) Point {
	if s.IsZero() {
		return g.NewPoint()
	}
	return g.NewPoint().ScalarMult(s, p)
}

// Combine returns p+q.
func Combine(g Group, p, q Point) Point {
	return g.NewPoint().Add(p, q)
}

// Invert returns -p.
func Invert(g Group, p Point) Point {
	return g.NewPoint().Negate(p)
}

// GeneratePoint returns s*G.
func GeneratePoint(g Group, s Scalar) Point {
	return Operate(g, s, g.Generator())
}

// RandomPoint returns r*G for a fresh random scalar r.
func RandomPoint(g Group, rng io.Reader) (Point, error) {
	s, err := g.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	return GeneratePoint(g, s), nil
}

// Sum folds points with the group law, starting from the identity.
func Sum(g Group, points ...Point) Point {
	acc := g.NewPoint()
	for _, p := range points {
		acc = g.NewPoint().Add(acc, p)
	}
	return acc
}

// LinearCombination returns Σ scalars[i]*points[i].
func LinearCombination(g Group, scalars []Scalar, points []Point) (Point, error) {
	if len(scalars) != len(points) {
		return nil, fmt.Errorf("%w: %d scalars, %d points", ErrLengthMismatch, len(scalars), len(points))
	}
	acc := g.NewPoint()
	for i := range scalars {
		acc = g.NewPoint().Add(acc, Operate(g, scalars[i], points[i]))
	}
	return acc, nil
}

// AssertValid validates every point against g.
func AssertValid(g Group, points ...Point) error {
	for _, p := range points {
		if p == nil {
			return fmt.Errorf("%w: nil point", ErrInvalidEncoding)
		}
		if err := g.Validate(p); err != nil {
			return err
		}
	}
	return nil
}

// AssertScalars checks that every scalar is a non-nil element of g's
// scalar field.
func AssertScalars(g Group, scalars ...Scalar) error {
	for i, s := range scalars {
		if s == nil {
			return fmt.Errorf("%w: nil scalar", ErrInvalidEncoding)
		}
		if !g.OwnsScalar(s) {
			return fmt.Errorf("%w: scalar %d", ErrGroupMismatch, i)
		}
	}
	return nil
}

// IsEqual reports whether p and q are equal elements of g.
func IsEqual(g Group, p, q Point) bool {
	if p == nil || q == nil || !g.Owns(p) || !g.Owns(q) {
		return false
	}
	return p.Equal(q)
}

// AssertEqual is the error-returning form of IsEqual.
func AssertEqual(g Group, p, q Point) error {
	if p == nil || q == nil || !g.Owns(p) || !g.Owns(q) {
		return ErrGroupMismatch
	}
	if !p.Equal(q) {
		return ErrNotEqual
	}
	return nil
}

// Pack returns the canonical encoding of p.
func Pack(p Point) []byte {
	return p.Bytes()
}

// Unpack decodes a point and validates subgroup membership.
func Unpack(g Group, data []byte) (Point, error) {
	if len(data) != g.PointSize() {
		return nil, fmt.Errorf("%w: point must be %d bytes, got %d", ErrInvalidEncoding, g.PointSize(), len(data))
	}
	p, err := g.NewPoint().SetBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if err := g.Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Hexify returns the hex encoding of Pack(p).
func Hexify(p Point) string {
	return hex.EncodeToString(Pack(p))
}

// Unhexify is the inverse of Hexify.
func Unhexify(g Group, s string) (Point, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return Unpack(g, data)
}

// OrderInt returns the group order as a big.Int.
func OrderInt(g Group) *big.Int {
	return new(big.Int).SetBytes(g.Order())
}

// ScalarFromInt returns n mod order.
func ScalarFromInt(g Group, n int64) Scalar {
	v := big.NewInt(n)
	v.Mod(v, OrderInt(g))
	s, _ := g.NewScalar().SetBytes(v.Bytes())
	return s
}

// ScalarFromBig returns v mod order.
func ScalarFromBig(g Group, v *big.Int) Scalar {
	r := new(big.Int).Mod(v, OrderInt(g))
	s, _ := g.NewScalar().SetBytes(r.Bytes())
	return s
}

// ScalarToBig returns the integer value of s.
func ScalarToBig(s Scalar) *big.Int {
	return new(big.Int).SetBytes(s.Bytes())
}

// LEBytesToScalar interprets data as a little-endian integer and reduces
// it modulo the group order. It turns hash digests into challenges.
func LEBytesToScalar(g Group, data []byte) Scalar {
	s, _ := g.NewScalar().SetBytes(reverse(data))
	return s
}

// UnpackScalar decodes a big-endian scalar of exactly ScalarSize bytes.
// Unlike SetBytes it refuses values that are not below the order, so every
// scalar has a single encoding.
func UnpackScalar(g Group, data []byte) (Scalar, error) {
	if len(data) != g.ScalarSize() {
		return nil, fmt.Errorf("%w: scalar must be %d bytes, got %d", ErrInvalidEncoding, g.ScalarSize(), len(data))
	}
	if new(big.Int).SetBytes(data).Cmp(OrderInt(g)) >= 0 {
		return nil, fmt.Errorf("%w: scalar not below the group order", ErrInvalidEncoding)
	}
	return g.NewScalar().SetBytes(data)
}

// UnpackScalarLE is UnpackScalar for little-endian input.
func UnpackScalarLE(g Group, data []byte) (Scalar, error) {
	return UnpackScalar(g, reverse(data))
}

// ScalarToLEBytes encodes s as a fixed-width little-endian integer.
func ScalarToLEBytes(s Scalar) []byte {
	return reverse(s.Bytes())
}

// IntToLEBytes encodes a non-negative integer little-endian in exactly
// size bytes.
func IntToLEBytes(v *big.Int, size int) []byte {
	be := v.FillBytes(make([]byte, size))
	return reverse(be)
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[i] = b[len(b)-1-i]
	}
	return out
}
