package sigma

import (
	"errors"
	"fmt"

	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/hashing"
	"github.com/f3rmion/thresh/suite"
)

var (
	// ErrDimensionMismatch is returned when a relation, its witnesses and a
	// proof do not agree in shape.
	ErrDimensionMismatch = errors.New("sigma: dimension mismatch")
	// ErrEmptyRelation is returned for a relation without rows or columns.
	ErrEmptyRelation = errors.New("sigma: empty relation")
)

// LinearRelation asserts knowledge of scalars x₁..xₙ such that for every
// row i, Vs[i] = Σⱼ xⱼ⋅Us[i][j].
type LinearRelation struct {
	Us [][]group.Point
	Vs []group.Point
}

// Proof is a non-interactive proof of a LinearRelation. Commitments has
// one entry per row, Response one per witness, and Algorithm names the
// hash the challenge was derived with.
type Proof struct {
	Commitments []group.Point
	Response    []group.Scalar
	Algorithm   hashing.Algorithm
}

// Width returns the number of witnesses the relation expects.
func (r *LinearRelation) Width() int {
	if len(r.Us) == 0 {
		return 0
	}
	return len(r.Us[0])
}

// check validates the shape of r and the group membership of its points.
func (r *LinearRelation) check(g group.Group) error {
	if len(r.Us) == 0 || r.Width() == 0 {
		return ErrEmptyRelation
	}
	if len(r.Us) != len(r.Vs) {
		return fmt.Errorf("%w: %d rows, %d values", ErrDimensionMismatch, len(r.Us), len(r.Vs))
	}
	n := r.Width()
	for i, row := range r.Us {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimensionMismatch, i, len(row), n)
		}
		if err := group.AssertValid(g, row...); err != nil {
			return fmt.Errorf("sigma: row %d: %w", i, err)
		}
	}
	if err := group.AssertValid(g, r.Vs...); err != nil {
		return fmt.Errorf("sigma: values: %w", err)
	}
	return nil
}

// points returns flatten(Us) followed by Vs.
func (r *LinearRelation) points() []group.Point {
	out := make([]group.Point, 0, len(r.Us)*r.Width()+len(r.Vs))
	for _, row := range r.Us {
		out = append(out, row...)
	}
	return append(out, r.Vs...)
}

// Prove produces a proof that witnesses satisfy r. A non-nil nonce is bound
// into the challenge and must be presented again to Verify.
func Prove(s *suite.Suite, witnesses []group.Scalar, r *LinearRelation, nonce []byte) (*Proof, error) {
	return prove(s, witnesses, r, nil, nonce)
}

func prove(s *suite.Suite, witnesses []group.Scalar, r *LinearRelation, extra, nonce []byte) (*Proof, error) {
	g := s.Group
	if err := r.check(g); err != nil {
		return nil, err
	}
	if len(witnesses) != r.Width() {
		return nil, fmt.Errorf("%w: %d witnesses for %d columns", ErrDimensionMismatch, len(witnesses), r.Width())
	}
	if err := group.AssertScalars(g, witnesses...); err != nil {
		return nil, fmt.Errorf("sigma: witness: %w", err)
	}

	nonces, err := s.RandomScalars(len(witnesses))
	if err != nil {
		return nil, err
	}
	commitments := make([]group.Point, len(r.Us))
	for i, row := range r.Us {
		if commitments[i], err = group.LinearCombination(g, nonces, row); err != nil {
			return nil, err
		}
	}

	c, err := Challenge(s.Hash, g, append(r.points(), commitments...), nil, extra, nonce)
	if err != nil {
		return nil, err
	}

	// zⱼ = rⱼ + c⋅xⱼ
	response := make([]group.Scalar, len(witnesses))
	for j, x := range witnesses {
		cx := g.NewScalar().Mul(c, x)
		response[j] = g.NewScalar().Add(nonces[j], cx)
	}
	return &Proof{Commitments: commitments, Response: response, Algorithm: s.Hash}, nil
}

// Verify reports whether p proves r. Shape mismatches between r and p are
// returned as ErrDimensionMismatch rather than as a false result, and
// elements of another group as group.ErrGroupMismatch.
func Verify(g group.Group, r *LinearRelation, p *Proof, nonce []byte) (bool, error) {
	return verify(g, r, p, nil, nonce)
}

func verify(g group.Group, r *LinearRelation, p *Proof, extra, nonce []byte) (bool, error) {
	if err := r.check(g); err != nil {
		return false, err
	}
	if p == nil {
		return false, fmt.Errorf("%w: nil proof", ErrDimensionMismatch)
	}
	if len(p.Commitments) != len(r.Vs) {
		return false, fmt.Errorf("%w: %d commitments for %d rows", ErrDimensionMismatch, len(p.Commitments), len(r.Vs))
	}
	if len(p.Response) != r.Width() {
		return false, fmt.Errorf("%w: %d responses for %d columns", ErrDimensionMismatch, len(p.Response), r.Width())
	}
	if err := group.AssertScalars(g, p.Response...); err != nil {
		return false, fmt.Errorf("sigma: response: %w", err)
	}
	for i, a := range p.Commitments {
		if a == nil || !g.Owns(a) {
			return false, fmt.Errorf("sigma: commitment %d: %w", i, group.ErrGroupMismatch)
		}
	}
	// a commitment outside the subgroup is a failed proof, not a usage error
	if err := group.AssertValid(g, p.Commitments...); err != nil {
		return false, nil
	}

	c, err := Challenge(p.Algorithm, g, append(r.points(), p.Commitments...), nil, extra, nonce)
	if err != nil {
		return false, err
	}

	// Σⱼ zⱼ⋅Uᵢⱼ == Aᵢ + c⋅Vᵢ
	for i, row := range r.Us {
		lhs, err := group.LinearCombination(g, p.Response, row)
		if err != nil {
			return false, err
		}
		rhs := group.Combine(g, p.Commitments[i], group.Operate(g, c, r.Vs[i]))
		if !lhs.Equal(rhs) {
			return false, nil
		}
	}
	return true, nil
}
