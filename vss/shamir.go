package vss

import (
	"errors"
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/polynomial"
	"github.com/f3rmion/thresh/suite"
)

var (
	// ErrInvalidThreshold is returned unless 1 <= t <= n.
	ErrInvalidThreshold = errors.New("vss: threshold must satisfy 1 <= t <= n")
	// ErrTooManyPredefined is returned when more than t-1 coefficients are
	// supplied.
	ErrTooManyPredefined = errors.New("vss: at most t-1 predefined coefficients")
	// ErrDuplicateIndex is returned when two shares carry the same index.
	ErrDuplicateIndex = errors.New("vss: duplicate share index")
	// ErrInvalidIndex is returned for indexes below one.
	ErrInvalidIndex = errors.New("vss: share index must be positive")
	// ErrInvalidShare is returned when a share does not match its
	// commitments.
	ErrInvalidShare = errors.New("vss: share does not match commitments")
)

// Share is a party's evaluation f(Index) of the sharing polynomial.
type Share struct {
	Index int
	Value group.Scalar
}

// PointShare is a group-lifted share, such as a public share or a
// partial decryptor.
type PointShare struct {
	Index int
	Value group.Point
}

// Distribution is the output of one Shamir sharing: the secret shares for
// indexes 1..n and the Feldman commitments to the polynomial.
type Distribution struct {
	ID          uuid.UUID
	Threshold   int
	Shares      []Share
	Commitments []group.Point

	group group.Group
	poly  *polynomial.Polynomial
}

// ShareSecret splits secret among n parties so that any t of them can
// recover it. The coefficients of X¹ … are taken from predefined first and
// drawn at random afterwards.
func ShareSecret(s *suite.Suite, secret group.Scalar, n, t int, predefined []group.Scalar) (*Distribution, error) {
	if t < 1 || t > n {
		return nil, fmt.Errorf("%w: t=%d, n=%d", ErrInvalidThreshold, t, n)
	}
	if len(predefined) > t-1 {
		return nil, fmt.Errorf("%w: got %d for t=%d", ErrTooManyPredefined, len(predefined), t)
	}
	g := s.Group
	if err := group.AssertScalars(g, append([]group.Scalar{secret}, predefined...)...); err != nil {
		return nil, err
	}
	m := Modulus(g)

	pre := make([]*saferith.Nat, len(predefined))
	for i, c := range predefined {
		pre[i] = ScalarToNat(m, c)
	}
	poly, err := polynomial.Random(m, t-1, ScalarToNat(m, secret), pre, s.Rand)
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewRandomFromReader(s.Rand)
	if err != nil {
		return nil, err
	}

	shares := make([]Share, n)
	for i := range shares {
		idx := i + 1
		y := poly.Evaluate(polynomial.NatFromInt(m, uint64(idx)))
		shares[i] = Share{Index: idx, Value: NatToScalar(g, y)}
	}

	d := &Distribution{
		ID:          id,
		Threshold:   t,
		Shares:      shares,
		Commitments: feldmanCommitments(g, poly, t),
		group:       g,
		poly:        poly,
	}
	s.Logger.Debug("shared secret",
		zap.Stringer("distribution", id), zap.Int("n", n), zap.Int("t", t))
	return d, nil
}

// Polynomial returns the sharing polynomial. It contains the secret.
func (d *Distribution) Polynomial() *polynomial.Polynomial {
	return d.poly
}

// Secret returns the shared secret f(0).
func (d *Distribution) Secret() group.Scalar {
	return NatToScalar(d.group, d.poly.Constant())
}

// PublicKey returns the commitment to the secret, C₀ = secret⋅G.
func (d *Distribution) PublicKey() group.Point {
	return d.Commitments[0]
}

// PublicShares returns value⋅G for every share.
func (d *Distribution) PublicShares() []PointShare {
	out := make([]PointShare, len(d.Shares))
	for i, sh := range d.Shares {
		out[i] = PointShare{Index: sh.Index, Value: group.GeneratePoint(d.group, sh.Value)}
	}
	return out
}

// feldmanCommitments returns aᵢ⋅G for i < t. A polynomial whose leading
// coefficients came out zero still gets exactly t commitments.
func feldmanCommitments(g group.Group, poly *polynomial.Polynomial, t int) []group.Point {
	out := make([]group.Point, t)
	for i := range out {
		out[i] = group.GeneratePoint(g, NatToScalar(g, poly.Coefficient(i)))
	}
	return out
}

// ReconstructSecret recovers f(0) from shares by Lagrange interpolation.
// Whether enough shares were supplied is the caller's policy.
func ReconstructSecret(g group.Group, shares []Share) (group.Scalar, error) {
	indexes, err := checkIndexes(shareIndexes(shares))
	if err != nil {
		return nil, err
	}
	for _, sh := range shares {
		if err := group.AssertScalars(g, sh.Value); err != nil {
			return nil, fmt.Errorf("share %d: %w", sh.Index, err)
		}
	}
	lambdas, err := LagrangeScalars(g, indexes)
	if err != nil {
		return nil, err
	}
	secret := g.NewScalar()
	for i, sh := range shares {
		term := g.NewScalar().Mul(lambdas[i], sh.Value)
		secret = g.NewScalar().Add(secret, term)
	}
	return secret, nil
}

// ReconstructPoint recovers f(0)⋅P from the shares fᵢ⋅P, without learning
// f(0).
func ReconstructPoint(g group.Group, shares []PointShare) (group.Point, error) {
	indexes := make([]int, len(shares))
	for i, sh := range shares {
		indexes[i] = sh.Index
	}
	if _, err := checkIndexes(indexes); err != nil {
		return nil, err
	}
	values := make([]group.Point, len(shares))
	for i, sh := range shares {
		if sh.Value == nil || !g.Owns(sh.Value) {
			return nil, fmt.Errorf("share %d: %w", sh.Index, group.ErrGroupMismatch)
		}
		values[i] = sh.Value
	}
	lambdas, err := LagrangeScalars(g, indexes)
	if err != nil {
		return nil, err
	}
	return group.LinearCombination(g, lambdas, values)
}

func shareIndexes(shares []Share) []int {
	out := make([]int, len(shares))
	for i, sh := range shares {
		out[i] = sh.Index
	}
	return out
}

func checkIndexes(indexes []int) ([]int, error) {
	if len(indexes) == 0 {
		return nil, polynomial.ErrEmptyPoints
	}
	seen := make(map[int]bool, len(indexes))
	for _, idx := range indexes {
		if idx < 1 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidIndex, idx)
		}
		if seen[idx] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateIndex, idx)
		}
		seen[idx] = true
	}
	return indexes, nil
}
