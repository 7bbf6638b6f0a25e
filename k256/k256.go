package k256

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"math/big"

	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/f3rmion/thresh/group"
)

// Name is the label under which secp256k1 is registered.
const Name = "secp256k1"

const (
	scalarSize  = 32
	pointSize   = 33
	sampleSlack = 16
)

var curveOrder = new(big.Int).Set(secp.Params().N)

// Scalar is an integer modulo the secp256k1 group order.
type Scalar struct {
	inner secp.ModNScalar
}

// Add sets s to a + b and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.inner.Add2(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Sub sets s to a - b and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	var negB secp.ModNScalar
	negB.NegateVal(&b.(*Scalar).inner)
	s.inner.Add2(&a.(*Scalar).inner, &negB)
	return s
}

// Mul sets s to a * b and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.inner.Mul2(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Negate sets s to -a and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.inner.NegateVal(&a.(*Scalar).inner)
	return s
}

// Invert sets s to a^(-1) and returns s.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	aScalar := a.(*Scalar)
	if aScalar.inner.IsZero() {
		return nil, group.ErrZeroInverse
	}
	s.inner.InverseValNonConst(&aScalar.inner)
	return s, nil
}

// Set copies a into s and returns s.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.inner.Set(&a.(*Scalar).inner)
	return s
}

// Bytes returns the 32-byte big-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	b := s.inner.Bytes()
	return b[:]
}

// SetBytes sets s from a big-endian integer of any length, reduced modulo
// the group order.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	v := new(big.Int).SetBytes(data)
	v.Mod(v, curveOrder)
	s.inner.SetByteSlice(v.FillBytes(make([]byte, scalarSize)))
	return s, nil
}

// Equal reports whether s and b are the same scalar.
func (s *Scalar) Equal(b group.Scalar) bool {
	bScalar, ok := b.(*Scalar)
	return ok && s.inner.Equals(&bScalar.inner)
}

// IsZero reports whether s is zero.
func (s *Scalar) IsZero() bool {
	return s.inner.IsZero()
}

// Point is a secp256k1 point kept in normalized affine form inside a
// Jacobian container. The identity has X = Y = 0.
type Point struct {
	inner secp.JacobianPoint
}

func (p *Point) normalize() *Point {
	if p.isInfinity() {
		p.inner.X.SetInt(0)
		p.inner.Y.SetInt(0)
		p.inner.Z.SetInt(0)
		return p
	}
	p.inner.ToAffine()
	return p
}

func (p *Point) isInfinity() bool {
	return (p.inner.X.IsZero() && p.inner.Y.IsZero()) || p.inner.Z.IsZero()
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	var r secp.JacobianPoint
	secp.AddNonConst(&a.(*Point).inner, &b.(*Point).inner, &r)
	p.inner.Set(&r)
	return p.normalize()
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	var negB Point
	negB.Negate(b)
	return p.Add(a, &negB)
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	p.inner.Set(&a.(*Point).inner)
	p.normalize()
	if p.isInfinity() {
		return p
	}
	p.inner.Y.Negate(1).Normalize()
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	var r secp.JacobianPoint
	secp.ScalarMultNonConst(&s.(*Scalar).inner, &q.(*Point).inner, &r)
	p.inner.Set(&r)
	return p.normalize()
}

// Set copies a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	p.inner.Set(&a.(*Point).inner)
	return p.normalize()
}

// Bytes returns the SEC1 compressed encoding, or 33 zero bytes for the
// identity.
func (p *Point) Bytes() []byte {
	if p.isInfinity() {
		return make([]byte, pointSize)
	}
	pub := secp.NewPublicKey(&p.inner.X, &p.inner.Y)
	return pub.SerializeCompressed()
}

// SetBytes decodes a compressed point and returns p.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != pointSize {
		return nil, fmt.Errorf("k256: point must be %d bytes, got %d", pointSize, len(data))
	}
	if isZeroBytes(data) {
		var id Point
		p.inner.Set(&id.inner)
		return p.normalize(), nil
	}
	pub, err := secp.ParsePubKey(data)
	if err != nil {
		return nil, err
	}
	pub.AsJacobian(&p.inner)
	return p.normalize(), nil
}

// Equal reports whether p and b are the same point.
func (p *Point) Equal(b group.Point) bool {
	bPoint, ok := b.(*Point)
	if !ok {
		return false
	}
	if p.isInfinity() || bPoint.isInfinity() {
		return p.isInfinity() && bPoint.isInfinity()
	}
	return p.inner.X.Equals(&bPoint.inner.X) && p.inner.Y.Equals(&bPoint.inner.Y)
}

// IsIdentity reports whether p is the point at infinity.
func (p *Point) IsIdentity() bool {
	return p.isInfinity()
}

// K256 implements [group.Group] for secp256k1.
type K256 struct{}

// Name returns "secp256k1".
func (g *K256) Name() string {
	return Name
}

// NewScalar returns a zero scalar.
func (g *K256) NewScalar() group.Scalar {
	return new(Scalar)
}

// NewPoint returns the identity.
func (g *K256) NewPoint() group.Point {
	return new(Point).normalize()
}

// Generator returns the standard base point.
func (g *K256) Generator() group.Point {
	var one secp.ModNScalar
	one.SetInt(1)
	var p Point
	secp.ScalarBaseMultNonConst(&one, &p.inner)
	return p.normalize()
}

// RandomScalar returns a uniformly random scalar read from r.
func (g *K256) RandomScalar(r io.Reader) (group.Scalar, error) {
	buf := make([]byte, scalarSize+sampleSlack)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return new(Scalar).SetBytes(buf)
}

// HashToPoint maps data to a point by try-and-increment on the x
// coordinate of an even-y compressed encoding.
func (g *K256) HashToPoint(data ...[]byte) (group.Point, error) {
	for ctr := 0; ctr < 256; ctr++ {
		h := sha256.New()
		h.Write([]byte("secp256k1-hash-to-point"))
		for _, d := range data {
			h.Write(d)
		}
		h.Write([]byte{byte(ctr)})
		candidate := append([]byte{secp.PubKeyFormatCompressedEven}, h.Sum(nil)...)

		p, err := new(Point).SetBytes(candidate)
		if err != nil {
			continue
		}
		return p, nil
	}
	return nil, errors.New("k256: hash to point exhausted counter")
}

// Order returns the group order.
func (g *K256) Order() []byte {
	return curveOrder.Bytes()
}

// Modulus returns the base field prime.
func (g *K256) Modulus() []byte {
	return secp.Params().P.Bytes()
}

// ScalarSize returns 32.
func (g *K256) ScalarSize() int {
	return scalarSize
}

// PointSize returns 33.
func (g *K256) PointSize() int {
	return pointSize
}

// Owns reports whether p is a secp256k1 point.
func (g *K256) Owns(p group.Point) bool {
	_, ok := p.(*Point)
	return ok
}

// OwnsScalar reports whether s is a secp256k1 scalar.
func (g *K256) OwnsScalar(s group.Scalar) bool {
	sc, ok := s.(*Scalar)
	return ok && sc != nil
}

// Validate checks that p is on the curve. The cofactor is one.
func (g *K256) Validate(p group.Point) error {
	pt, ok := p.(*Point)
	if !ok {
		return group.ErrGroupMismatch
	}
	if pt.IsIdentity() {
		return nil
	}
	var affine Point
	affine.Set(pt)
	if !secp.NewPublicKey(&affine.inner.X, &affine.inner.Y).IsOnCurve() {
		return group.ErrPointNotInSubgroup
	}
	return nil
}

func isZeroBytes(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
