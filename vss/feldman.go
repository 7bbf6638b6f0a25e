package vss

import (
	"errors"
	"fmt"

	"github.com/f3rmion/thresh/group"
)

// EvaluateCommitments returns Σⱼ (index^j)⋅Cⱼ, the commitment to f(index)
// implied by the coefficient commitments.
func EvaluateCommitments(g group.Group, commitments []group.Point, index int) (group.Point, error) {
	if index < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	if len(commitments) == 0 {
		return nil, errors.New("vss: no commitments")
	}
	if err := group.AssertValid(g, commitments...); err != nil {
		return nil, err
	}

	x := group.ScalarFromInt(g, int64(index))
	xPower := group.ScalarFromInt(g, 1)
	powers := make([]group.Scalar, len(commitments))
	for j := range commitments {
		powers[j] = xPower
		xPower = g.NewScalar().Mul(xPower, x)
	}
	return group.LinearCombination(g, powers, commitments)
}

// VerifyFeldman checks value⋅G == Σⱼ (index^j)⋅Cⱼ. It returns
// ErrInvalidShare when the share does not match, and a structural error
// when the inputs are malformed.
func VerifyFeldman(g group.Group, share Share, commitments []group.Point) error {
	if err := group.AssertScalars(g, share.Value); err != nil {
		return fmt.Errorf("vss: share %d: %w", share.Index, err)
	}
	expected, err := EvaluateCommitments(g, commitments, share.Index)
	if err != nil {
		return err
	}
	lhs := group.GeneratePoint(g, share.Value)
	if !lhs.Equal(expected) {
		return fmt.Errorf("%w: index %d", ErrInvalidShare, share.Index)
	}
	return nil
}

// VerifyAll checks every share of d against its own commitments.
func (d *Distribution) VerifyAll() error {
	for _, sh := range d.Shares {
		if err := VerifyFeldman(d.group, sh, d.Commitments); err != nil {
			return err
		}
	}
	return nil
}
