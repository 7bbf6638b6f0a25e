package bjj

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"

	"github.com/f3rmion/thresh/group"
)

// Name is the label under which Baby Jubjub is registered.
const Name = "bjj"

const (
	scalarSize = 32
	pointSize  = 32
	// extra random bytes drawn so that reduction bias is below 2^-128
	sampleSlack = 16
)

// curveOrder is the prime subgroup order, not the BN254 Fr modulus that
// serves as the base field.
var (
	curveOrder *big.Int
	cofactor   *big.Int
)

func init() {
	curve := twistededwards.GetEdwardsCurve()
	curveOrder = new(big.Int).Set(&curve.Order)
	cofactor = new(big.Int)
	curve.Cofactor.BigInt(cofactor)
}

// Scalar is an integer modulo the subgroup order.
type Scalar struct {
	inner *big.Int
}

func newScalar() *Scalar {
	return &Scalar{inner: new(big.Int)}
}

func (s *Scalar) reduce() {
	s.inner.Mod(s.inner, curveOrder)
}

// Add sets s to a + b mod the subgroup order and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.inner.Add(a.(*Scalar).inner, b.(*Scalar).inner)
	s.reduce()
	return s
}

// Sub sets s to a - b mod the subgroup order and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	s.inner.Sub(a.(*Scalar).inner, b.(*Scalar).inner)
	s.reduce()
	return s
}

// Mul sets s to a * b mod the subgroup order and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.inner.Mul(a.(*Scalar).inner, b.(*Scalar).inner)
	s.reduce()
	return s
}

// Negate sets s to -a mod the subgroup order and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.inner.Neg(a.(*Scalar).inner)
	s.reduce()
	return s
}

// Invert sets s to a^(-1) mod the subgroup order and returns s.
// It fails with [group.ErrZeroInverse] when a is zero.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	x := a.(*Scalar)
	if x.IsZero() {
		return nil, group.ErrZeroInverse
	}
	s.inner.ModInverse(x.inner, curveOrder)
	return s, nil
}

// Set copies a into s and returns s.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.inner.Set(a.(*Scalar).inner)
	return s
}

// Bytes is big-endian, padded to 32 bytes.
func (s *Scalar) Bytes() []byte {
	return s.inner.FillBytes(make([]byte, scalarSize))
}

// SetBytes reads a big-endian integer of any length and reduces it.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	s.inner.SetBytes(data)
	s.reduce()
	return s, nil
}

// Equal reports whether s and b are the same Baby Jubjub scalar.
func (s *Scalar) Equal(b group.Scalar) bool {
	o, ok := b.(*Scalar)
	return ok && s.inner.Cmp(o.inner) == 0
}

// IsZero reports whether s is zero.
func (s *Scalar) IsZero() bool {
	return s.inner.Sign() == 0
}

// Point is an affine curve point. The identity is (0, 1).
type Point struct {
	inner twistededwards.PointAffine
}

func identity() *Point {
	var p Point
	p.inner.X.SetZero()
	p.inner.Y.SetOne()
	return &p
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	p.inner.Add(&a.(*Point).inner, &b.(*Point).inner)
	return p
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	var neg twistededwards.PointAffine
	neg.Neg(&b.(*Point).inner)
	p.inner.Add(&a.(*Point).inner, &neg)
	return p
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	p.inner.Neg(&a.(*Point).inner)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	p.inner.ScalarMultiplication(&q.(*Point).inner, s.(*Scalar).inner)
	return p
}

// Set copies a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	p.inner.Set(&a.(*Point).inner)
	return p
}

// Bytes is gnark's compressed encoding: y with the sign of x folded in.
func (p *Point) Bytes() []byte {
	enc := p.inner.Bytes()
	return enc[:]
}

// SetBytes decodes a compressed point and returns p. It fails when data
// has the wrong length or is not on the curve.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != pointSize {
		return nil, fmt.Errorf("bjj: point must be %d bytes, got %d", pointSize, len(data))
	}
	if err := p.inner.Unmarshal(data); err != nil {
		return nil, err
	}
	return p, nil
}

// Equal reports whether p and b are the same Baby Jubjub point.
func (p *Point) Equal(b group.Point) bool {
	o, ok := b.(*Point)
	return ok && p.inner.Equal(&o.inner)
}

// IsIdentity reports whether p is (0, 1).
func (p *Point) IsIdentity() bool {
	return p.inner.IsZero()
}

// BJJ is the Baby Jubjub [group.Group]. The zero value is ready to use.
type BJJ struct{}

// Name returns "bjj".
func (g *BJJ) Name() string {
	return Name
}

// NewScalar returns a zero scalar.
func (g *BJJ) NewScalar() group.Scalar {
	return newScalar()
}

// NewPoint returns the identity (0, 1).
func (g *BJJ) NewPoint() group.Point {
	return identity()
}

// Generator is the base point from gnark-crypto's curve parameters.
func (g *BJJ) Generator() group.Point {
	var p Point
	p.inner = twistededwards.GetEdwardsCurve().Base
	return &p
}

// RandomScalar reduces 48 bytes from r, leaving a bias below 2^-128.
func (g *BJJ) RandomScalar(r io.Reader) (group.Scalar, error) {
	buf := make([]byte, scalarSize+sampleSlack)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	s := newScalar()
	s.inner.SetBytes(buf)
	s.reduce()
	return s, nil
}

// HashToPoint maps data onto the prime-order subgroup by try-and-increment
// on compressed encodings, clearing the cofactor of the first candidate
// that decodes.
func (g *BJJ) HashToPoint(data ...[]byte) (group.Point, error) {
	for ctr := 0; ctr < 256; ctr++ {
		h := sha256.New()
		h.Write([]byte("bjj-hash-to-point"))
		for _, d := range data {
			h.Write(d)
		}
		h.Write([]byte{byte(ctr)})
		candidate := h.Sum(nil)

		var p Point
		if err := p.inner.Unmarshal(candidate); err != nil || !p.inner.IsOnCurve() {
			continue
		}
		var cleared Point
		cleared.inner.ScalarMultiplication(&p.inner, cofactor)
		if cleared.IsIdentity() {
			continue
		}
		return &cleared, nil
	}
	return nil, errors.New("bjj: hash to point exhausted counter")
}

// Order returns the subgroup order.
func (g *BJJ) Order() []byte {
	return curveOrder.Bytes()
}

// Modulus is the BN254 Fr modulus.
func (g *BJJ) Modulus() []byte {
	return fr.Modulus().Bytes()
}

// ScalarSize returns 32.
func (g *BJJ) ScalarSize() int {
	return scalarSize
}

// PointSize returns 32.
func (g *BJJ) PointSize() int {
	return pointSize
}

// Owns reports whether p is a Baby Jubjub point.
func (g *BJJ) Owns(p group.Point) bool {
	_, ok := p.(*Point)
	return ok
}

// OwnsScalar reports whether s is a Baby Jubjub scalar.
func (g *BJJ) OwnsScalar(s group.Scalar) bool {
	sc, ok := s.(*Scalar)
	return ok && sc != nil
}

// Validate checks that p lies on the curve and in the prime-order
// subgroup, rejecting points with a component of order dividing the
// cofactor.
func (g *BJJ) Validate(p group.Point) error {
	pt, ok := p.(*Point)
	if !ok {
		return group.ErrGroupMismatch
	}
	if pt.IsIdentity() {
		return nil
	}
	if !pt.inner.IsOnCurve() {
		return group.ErrPointNotInSubgroup
	}
	var check twistededwards.PointAffine
	check.ScalarMultiplication(&pt.inner, curveOrder)
	if !check.IsZero() {
		return group.ErrPointNotInSubgroup
	}
	return nil
}
