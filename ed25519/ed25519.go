// Package ed25519 provides an edwards25519 implementation of the
// [group.Group] interface, registered under the label "ed25519".
//
// Arithmetic is delegated to filippo.io/edwards25519. Scalars are exposed
// big-endian to match the other groups, even though the underlying
// library encodes them little-endian.
//
// The curve has cofactor 8. [Ed25519.Validate] rejects points with a
// torsion component by checking that clearing and restoring the cofactor
// is the identity map on the point.
package ed25519

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"math/big"

	"filippo.io/edwards25519"

	"github.com/f3rmion/thresh/group"
)

// Name is the label under which edwards25519 is registered.
const Name = "ed25519"

const (
	scalarSize  = 32
	pointSize   = 32
	uniformSize = 64
)

var (
	// l = 2^252 + 27742317777372353535851937790883648493
	curveOrder, _ = new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)
	// p = 2^255 - 19
	fieldModulus = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(19))

	inverseCofactor = func() *edwards25519.Scalar {
		var eight Scalar
		eight.SetBytes([]byte{8})
		inv, _ := new(Scalar).Invert(&eight)
		return &inv.(*Scalar).inner
	}()
)

// Scalar is an integer modulo the prime subgroup order l.
type Scalar struct {
	inner edwards25519.Scalar
}

// Add sets s to a + b and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.inner.Add(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Sub sets s to a - b and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	s.inner.Subtract(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Mul sets s to a * b and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.inner.Multiply(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Negate sets s to -a and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.inner.Negate(&a.(*Scalar).inner)
	return s
}

// Invert sets s to a^(-1) and returns s.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	if a.IsZero() {
		return nil, group.ErrZeroInverse
	}
	s.inner.Invert(&a.(*Scalar).inner)
	return s, nil
}

// Set copies a into s and returns s.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.inner.Set(&a.(*Scalar).inner)
	return s
}

// Bytes returns the 32-byte big-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	return reverse(s.inner.Bytes())
}

// SetBytes sets s from a big-endian integer of any length, reduced modulo l.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	v := new(big.Int).SetBytes(data)
	v.Mod(v, curveOrder)
	if _, err := s.inner.SetCanonicalBytes(reverse(v.FillBytes(make([]byte, scalarSize)))); err != nil {
		return nil, err
	}
	return s, nil
}

// Equal reports whether s and b are the same scalar.
func (s *Scalar) Equal(b group.Scalar) bool {
	bScalar, ok := b.(*Scalar)
	return ok && s.inner.Equal(&bScalar.inner) == 1
}

// IsZero reports whether s is zero.
func (s *Scalar) IsZero() bool {
	var zero edwards25519.Scalar
	return s.inner.Equal(&zero) == 1
}

// Point is an edwards25519 point.
type Point struct {
	inner *edwards25519.Point
}

func newPoint() *Point {
	return &Point{inner: edwards25519.NewIdentityPoint()}
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	p.inner.Add(a.(*Point).inner, b.(*Point).inner)
	return p
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	p.inner.Subtract(a.(*Point).inner, b.(*Point).inner)
	return p
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	p.inner.Negate(a.(*Point).inner)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	p.inner.ScalarMult(&s.(*Scalar).inner, q.(*Point).inner)
	return p
}

// Set copies a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	p.inner.Set(a.(*Point).inner)
	return p
}

// Bytes returns the 32-byte compressed Edwards encoding.
func (p *Point) Bytes() []byte {
	return p.inner.Bytes()
}

// SetBytes decodes a compressed Edwards point and returns p.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != pointSize {
		return nil, fmt.Errorf("ed25519: point must be %d bytes, got %d", pointSize, len(data))
	}
	if _, err := p.inner.SetBytes(data); err != nil {
		return nil, err
	}
	return p, nil
}

// Equal reports whether p and b are the same point.
func (p *Point) Equal(b group.Point) bool {
	bPoint, ok := b.(*Point)
	return ok && p.inner.Equal(bPoint.inner) == 1
}

// IsIdentity reports whether p is the identity.
func (p *Point) IsIdentity() bool {
	return p.inner.Equal(edwards25519.NewIdentityPoint()) == 1
}

// Ed25519 implements [group.Group] for the prime-order subgroup of
// edwards25519.
type Ed25519 struct{}

// Name returns "ed25519".
func (g *Ed25519) Name() string {
	return Name
}

// NewScalar returns a zero scalar.
func (g *Ed25519) NewScalar() group.Scalar {
	return new(Scalar)
}

// NewPoint returns the identity.
func (g *Ed25519) NewPoint() group.Point {
	return newPoint()
}

// Generator returns the standard base point.
func (g *Ed25519) Generator() group.Point {
	return &Point{inner: edwards25519.NewGeneratorPoint()}
}

// RandomScalar reads 64 bytes from r and reduces them with
// SetUniformBytes.
func (g *Ed25519) RandomScalar(r io.Reader) (group.Scalar, error) {
	buf := make([]byte, uniformSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	var s Scalar
	if _, err := s.inner.SetUniformBytes(buf); err != nil {
		return nil, err
	}
	return &s, nil
}

// HashToPoint maps data into the prime-order subgroup by try-and-increment,
// clearing the cofactor of the first candidate that decodes.
func (g *Ed25519) HashToPoint(data ...[]byte) (group.Point, error) {
	for ctr := 0; ctr < 256; ctr++ {
		h := sha256.New()
		h.Write([]byte("ed25519-hash-to-point"))
		for _, d := range data {
			h.Write(d)
		}
		h.Write([]byte{byte(ctr)})

		candidate, err := edwards25519.NewIdentityPoint().SetBytes(h.Sum(nil))
		if err != nil {
			continue
		}
		p := newPoint()
		p.inner.MultByCofactor(candidate)
		if p.IsIdentity() {
			continue
		}
		return p, nil
	}
	return nil, errors.New("ed25519: hash to point exhausted counter")
}

// Order returns l.
func (g *Ed25519) Order() []byte {
	return curveOrder.Bytes()
}

// Modulus returns 2^255 - 19.
func (g *Ed25519) Modulus() []byte {
	return fieldModulus.Bytes()
}

// ScalarSize returns 32.
func (g *Ed25519) ScalarSize() int {
	return scalarSize
}

// PointSize returns 32.
func (g *Ed25519) PointSize() int {
	return pointSize
}

// Owns reports whether p is an edwards25519 point.
func (g *Ed25519) Owns(p group.Point) bool {
	_, ok := p.(*Point)
	return ok
}

// OwnsScalar reports whether s is an edwards25519 scalar.
func (g *Ed25519) OwnsScalar(s group.Scalar) bool {
	sc, ok := s.(*Scalar)
	return ok && sc != nil
}

// Validate rejects points with a torsion component: for such points
// [8^-1]([8]P) differs from P.
func (g *Ed25519) Validate(p group.Point) error {
	pt, ok := p.(*Point)
	if !ok || pt.inner == nil {
		return group.ErrGroupMismatch
	}
	if pt.IsIdentity() {
		return nil
	}
	cleared := edwards25519.NewIdentityPoint().MultByCofactor(pt.inner)
	restored := edwards25519.NewIdentityPoint().ScalarMult(inverseCofactor, cleared)
	if restored.Equal(pt.inner) != 1 {
		return group.ErrPointNotInSubgroup
	}
	return nil
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[i] = b[len(b)-1-i]
	}
	return out
}
