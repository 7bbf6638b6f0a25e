package polynomial

import (
	"errors"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
)

// ZeroDegree is the degree reported for the zero polynomial, standing in
// for negative infinity.
const ZeroDegree = -1

// ErrModulusMismatch is returned when combining polynomials over
// different fields.
var ErrModulusMismatch = errors.New("polynomial: operands are over different fields")

// Polynomial represents f(X) = a₀ + a₁⋅X + … + aₜ⋅Xᵗ with coefficients in
// ℤₚ. Trailing zero coefficients are trimmed, so two polynomials are equal
// exactly when their coefficient lists are. A Polynomial is immutable.
type Polynomial struct {
	modulus      *saferith.Modulus
	coefficients []*saferith.Nat
}

// New reduces coeffs modulo m and trims trailing zeros. coeffs[i] is the
// coefficient of Xⁱ.
func New(m *saferith.Modulus, coeffs []*saferith.Nat) *Polynomial {
	reduced := make([]*saferith.Nat, len(coeffs))
	for i, c := range coeffs {
		reduced[i] = new(saferith.Nat).Mod(c, m)
	}
	return &Polynomial{modulus: m, coefficients: trim(reduced)}
}

// Random returns a polynomial of the given degree whose constant term is
// constant and whose remaining coefficients are predefined[0], … followed
// by uniformly random values. A nil constant is read as zero.
func Random(m *saferith.Modulus, degree int, constant *saferith.Nat, predefined []*saferith.Nat, rng io.Reader) (*Polynomial, error) {
	if degree < 0 {
		return nil, errors.New("polynomial: negative degree")
	}
	if len(predefined) > degree {
		return nil, errors.New("polynomial: more predefined coefficients than degree")
	}
	coeffs := make([]*saferith.Nat, degree+1)
	if constant == nil {
		constant = new(saferith.Nat).SetUint64(0)
	}
	coeffs[0] = constant
	for i := 1; i <= degree; i++ {
		if i-1 < len(predefined) {
			coeffs[i] = predefined[i-1]
			continue
		}
		c, err := RandomNat(m, rng)
		if err != nil {
			return nil, err
		}
		coeffs[i] = c
	}
	// The leading coefficient may be zero, in which case the actual
	// degree is lower; Shamir only needs degree at most t-1.
	return New(m, coeffs), nil
}

// RandomNat returns a uniformly random element of ℤₘ, up to a bias of
// at most 2⁻¹²⁸.
func RandomNat(m *saferith.Modulus, rng io.Reader) (*saferith.Nat, error) {
	buf := make([]byte, (m.BitLen()+7)/8+16)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, err
	}
	return new(saferith.Nat).Mod(new(saferith.Nat).SetBytes(buf), m), nil
}

// Modulus returns the field modulus.
func (p *Polynomial) Modulus() *saferith.Modulus {
	return p.modulus
}

// Degree is the highest power with a non-zero coefficient, or ZeroDegree.
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// IsZero reports whether p is the zero polynomial.
func (p *Polynomial) IsZero() bool {
	return len(p.coefficients) == 0
}

// Coefficients returns a copy of the coefficient list, constant first.
func (p *Polynomial) Coefficients() []*saferith.Nat {
	out := make([]*saferith.Nat, len(p.coefficients))
	for i, c := range p.coefficients {
		out[i] = new(saferith.Nat).SetNat(c)
	}
	return out
}

// Coefficient returns the coefficient of Xⁱ, zero beyond the degree.
func (p *Polynomial) Coefficient(i int) *saferith.Nat {
	if i < 0 || i >= len(p.coefficients) {
		return p.zero()
	}
	return new(saferith.Nat).SetNat(p.coefficients[i])
}

// Constant returns f(0).
func (p *Polynomial) Constant() *saferith.Nat {
	return p.Coefficient(0)
}

// Evaluate evaluates the polynomial at x using Horner's method.
func (p *Polynomial) Evaluate(x *saferith.Nat) *saferith.Nat {
	x = new(saferith.Nat).Mod(x, p.modulus)
	result := p.zero()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		// bₙ₋₁ = bₙ * x + aₙ₋₁
		result.ModMul(result, x, p.modulus)
		result.ModAdd(result, p.coefficients[i], p.modulus)
	}
	return result
}

// Add returns p + q.
func (p *Polynomial) Add(q *Polynomial) (*Polynomial, error) {
	if !sameModulus(p.modulus, q.modulus) {
		return nil, ErrModulusMismatch
	}
	n := max(len(p.coefficients), len(q.coefficients))
	coeffs := make([]*saferith.Nat, n)
	for i := range coeffs {
		coeffs[i] = new(saferith.Nat).ModAdd(p.Coefficient(i), q.Coefficient(i), p.modulus)
	}
	return &Polynomial{modulus: p.modulus, coefficients: trim(coeffs)}, nil
}

// Mul returns p ⋅ q.
func (p *Polynomial) Mul(q *Polynomial) (*Polynomial, error) {
	if !sameModulus(p.modulus, q.modulus) {
		return nil, ErrModulusMismatch
	}
	if p.IsZero() || q.IsZero() {
		return &Polynomial{modulus: p.modulus}, nil
	}
	coeffs := make([]*saferith.Nat, len(p.coefficients)+len(q.coefficients)-1)
	for i := range coeffs {
		coeffs[i] = p.zero()
	}
	for i, a := range p.coefficients {
		for j, b := range q.coefficients {
			term := new(saferith.Nat).ModMul(a, b, p.modulus)
			coeffs[i+j].ModAdd(coeffs[i+j], term, p.modulus)
		}
	}
	return &Polynomial{modulus: p.modulus, coefficients: trim(coeffs)}, nil
}

// MulScalar returns s ⋅ p.
func (p *Polynomial) MulScalar(s *saferith.Nat) *Polynomial {
	coeffs := make([]*saferith.Nat, len(p.coefficients))
	for i, c := range p.coefficients {
		coeffs[i] = new(saferith.Nat).ModMul(c, s, p.modulus)
	}
	return &Polynomial{modulus: p.modulus, coefficients: trim(coeffs)}
}

// Equal reports whether p and q are the same polynomial over the same field.
func (p *Polynomial) Equal(q *Polynomial) bool {
	if !sameModulus(p.modulus, q.modulus) || len(p.coefficients) != len(q.coefficients) {
		return false
	}
	for i := range p.coefficients {
		if p.coefficients[i].Eq(q.coefficients[i]) != 1 {
			return false
		}
	}
	return true
}

func (p *Polynomial) zero() *saferith.Nat {
	return new(saferith.Nat).Mod(new(saferith.Nat).SetUint64(0), p.modulus)
}

func trim(coeffs []*saferith.Nat) []*saferith.Nat {
	n := len(coeffs)
	for n > 0 && coeffs[n-1].EqZero() == 1 {
		n--
	}
	return coeffs[:n]
}

func sameModulus(a, b *saferith.Modulus) bool {
	return a == b || a.Big().Cmp(b.Big()) == 0
}

// NatFromInt returns the field element for a non-negative integer.
func NatFromInt(m *saferith.Modulus, v uint64) *saferith.Nat {
	return new(saferith.Nat).Mod(new(saferith.Nat).SetUint64(v), m)
}

// NatFromBig returns v mod m.
func NatFromBig(m *saferith.Modulus, v *big.Int) *saferith.Nat {
	r := new(big.Int).Mod(v, m.Big())
	return new(saferith.Nat).Mod(new(saferith.Nat).SetBytes(r.Bytes()), m)
}
