package vss

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/polynomial"
	"github.com/f3rmion/thresh/suite"
)

// pedersenDomain separates the second generator from other hash-to-point
// uses.
const pedersenDomain = "thresh-vss-pedersen-h"

// PedersenShare is a share together with its blinding value b = g(Index)
// from the second polynomial.
type PedersenShare struct {
	Share
	Blinding group.Scalar
}

// PedersenDistribution is a hiding sharing: commitment j is aⱼ⋅G + bⱼ⋅H.
type PedersenDistribution struct {
	ID          uuid.UUID
	Threshold   int
	H           group.Point
	Shares      []PedersenShare
	Commitments []group.Point
}

// PedersenGenerator derives a second generator H whose discrete log with
// respect to G is unknown.
func PedersenGenerator(g group.Group) (group.Point, error) {
	return g.HashToPoint([]byte(pedersenDomain), g.Generator().Bytes())
}

// DistributePedersen shares secret among n parties with threshold t,
// committing to the sharing polynomial f and a random blinding polynomial
// of the same degree.
func DistributePedersen(s *suite.Suite, secret group.Scalar, n, t int, h group.Point) (*PedersenDistribution, error) {
	g := s.Group
	if err := group.AssertValid(g, h); err != nil {
		return nil, fmt.Errorf("vss: second generator: %w", err)
	}
	if h.IsIdentity() {
		return nil, fmt.Errorf("vss: second generator: %w", group.ErrPointNotInSubgroup)
	}
	values, err := ShareSecret(s, secret, n, t, nil)
	if err != nil {
		return nil, err
	}
	m := Modulus(g)
	b0, err := polynomial.RandomNat(m, s.Rand)
	if err != nil {
		return nil, err
	}
	blinding, err := polynomial.Random(m, t-1, b0, nil, s.Rand)
	if err != nil {
		return nil, err
	}

	shares := make([]PedersenShare, n)
	for i, sh := range values.Shares {
		b := blinding.Evaluate(polynomial.NatFromInt(m, uint64(sh.Index)))
		shares[i] = PedersenShare{Share: sh, Blinding: NatToScalar(g, b)}
	}
	commitments := make([]group.Point, t)
	for j := range commitments {
		bj := group.Operate(g, NatToScalar(g, blinding.Coefficient(j)), h)
		commitments[j] = group.Combine(g, values.Commitments[j], bj)
	}
	return &PedersenDistribution{
		ID:          values.ID,
		Threshold:   t,
		H:           h,
		Shares:      shares,
		Commitments: commitments,
	}, nil
}

// VerifyPedersen checks value⋅G + b⋅H == Σⱼ (index^j)⋅Cⱼ.
func VerifyPedersen(g group.Group, h group.Point, share PedersenShare, commitments []group.Point) error {
	if err := group.AssertValid(g, h); err != nil {
		return err
	}
	if err := group.AssertScalars(g, share.Value, share.Blinding); err != nil {
		return fmt.Errorf("vss: share %d: %w", share.Index, err)
	}
	expected, err := EvaluateCommitments(g, commitments, share.Index)
	if err != nil {
		return err
	}
	lhs := group.Combine(g,
		group.GeneratePoint(g, share.Value),
		group.Operate(g, share.Blinding, h))
	if !lhs.Equal(expected) {
		return fmt.Errorf("%w: index %d", ErrInvalidShare, share.Index)
	}
	return nil
}
