package polynomial

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// order of the Baby Jubjub prime subgroup
var bigOrder, _ = new(big.Int).SetString("2736030358979909402780800718157159386076813972158567259200215660948447373041", 10)

func nats(m *saferith.Modulus, vs ...uint64) []*saferith.Nat {
	out := make([]*saferith.Nat, len(vs))
	for i, v := range vs {
		out[i] = NatFromInt(m, v)
	}
	return out
}

func TestEvaluate(t *testing.T) {
	m := saferith.ModulusFromUint64(101)
	p := New(m, nats(m, 1, 2, 3))

	// 1 + 2*2 + 3*4 = 17
	assert.True(t, p.Evaluate(NatFromInt(m, 2)).Eq(NatFromInt(m, 17)) == 1)
	// 1 + 2*10 + 3*100 = 321 = 18 mod 101
	assert.True(t, p.Evaluate(NatFromInt(m, 10)).Eq(NatFromInt(m, 18)) == 1)
	assert.True(t, p.Evaluate(NatFromInt(m, 0)).Eq(p.Constant()) == 1)
}

func TestDegreeAndTrim(t *testing.T) {
	m := saferith.ModulusFromUint64(101)

	t.Run("trailing zeros", func(t *testing.T) {
		p := New(m, nats(m, 4, 5, 0, 0))
		assert.Equal(t, 1, p.Degree())
		assert.Len(t, p.Coefficients(), 2)
	})

	t.Run("reduced to zero", func(t *testing.T) {
		p := New(m, nats(m, 101, 202))
		assert.True(t, p.IsZero())
		assert.Equal(t, ZeroDegree, p.Degree())
	})

	t.Run("equality ignores trailing zeros", func(t *testing.T) {
		assert.True(t, New(m, nats(m, 1, 2)).Equal(New(m, nats(m, 1, 2, 0))))
		assert.False(t, New(m, nats(m, 1, 2)).Equal(New(m, nats(m, 1, 3))))
	})
}

func TestArithmetic(t *testing.T) {
	m := saferith.ModulusFromUint64(101)
	p := New(m, nats(m, 1, 1))   // 1 + X
	q := New(m, nats(m, 100, 1)) // -1 + X

	t.Run("add", func(t *testing.T) {
		sum, err := p.Add(q)
		require.NoError(t, err)
		assert.True(t, sum.Equal(New(m, nats(m, 0, 2))))
	})

	t.Run("mul", func(t *testing.T) {
		prod, err := p.Mul(q)
		require.NoError(t, err)
		// X² - 1
		assert.True(t, prod.Equal(New(m, nats(m, 100, 0, 1))))
		assert.Equal(t, 2, prod.Degree())
	})

	t.Run("mul by zero", func(t *testing.T) {
		prod, err := p.Mul(New(m, nil))
		require.NoError(t, err)
		assert.True(t, prod.IsZero())
	})

	t.Run("mul scalar", func(t *testing.T) {
		assert.True(t, p.MulScalar(NatFromInt(m, 3)).Equal(New(m, nats(m, 3, 3))))
	})

	t.Run("modulus mismatch", func(t *testing.T) {
		other := New(saferith.ModulusFromUint64(103), nats(m, 1))
		_, err := p.Add(other)
		assert.ErrorIs(t, err, ErrModulusMismatch)
	})
}

func TestRandom(t *testing.T) {
	m := saferith.ModulusFromBytes(bigOrder.Bytes())
	secret := NatFromInt(m, 42)
	pre := nats(m, 7)

	p, err := Random(m, 3, secret, pre, rand.Reader)
	require.NoError(t, err)
	assert.True(t, p.Constant().Eq(secret) == 1)
	assert.True(t, p.Coefficient(1).Eq(NatFromInt(m, 7)) == 1)
	assert.LessOrEqual(t, p.Degree(), 3)

	_, err = Random(m, 1, secret, nats(m, 1, 2), rand.Reader)
	assert.Error(t, err)
}

func TestInterpolation(t *testing.T) {
	m := saferith.ModulusFromBytes(bigOrder.Bytes())

	for _, k := range []int{1, 2, 5, 10} {
		points := make([]Point, k)
		for i := range points {
			x, err := RandomNat(m, rand.Reader)
			require.NoError(t, err)
			y, err := RandomNat(m, rand.Reader)
			require.NoError(t, err)
			points[i] = Point{X: x, Y: y}
		}

		in, err := NewInterpolator(m, points)
		require.NoError(t, err)
		poly := in.Polynomial()
		assert.LessOrEqual(t, poly.Degree(), k-1)

		for _, pt := range points {
			assert.True(t, poly.Evaluate(pt.X).Eq(pt.Y) == 1, "expanded form at known x")
			assert.True(t, in.Evaluate(pt.X).Eq(pt.Y) == 1, "barycentric form at known x")
		}

		fresh, err := RandomNat(m, rand.Reader)
		require.NoError(t, err)
		again, err := Interpolate(m, points)
		require.NoError(t, err)
		assert.True(t, in.Evaluate(fresh).Eq(again.Evaluate(fresh)) == 1)
	}
}

func TestInterpolateRecoversPolynomial(t *testing.T) {
	m := saferith.ModulusFromBytes(bigOrder.Bytes())
	p, err := Random(m, 4, NatFromInt(m, 1234), nil, rand.Reader)
	require.NoError(t, err)

	points := make([]Point, 5)
	for i := range points {
		x := NatFromInt(m, uint64(i+1))
		points[i] = Point{X: x, Y: p.Evaluate(x)}
	}
	q, err := Interpolate(m, points)
	require.NoError(t, err)
	assert.True(t, p.Equal(q))
}

func TestInterpolationErrors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		m := saferith.ModulusFromUint64(101)
		_, err := Interpolate(m, nil)
		assert.ErrorIs(t, err, ErrEmptyPoints)
	})

	t.Run("non-distinct modulo order", func(t *testing.T) {
		m := saferith.ModulusFromUint64(101)
		points := []Point{
			{X: new(saferith.Nat).SetUint64(3), Y: NatFromInt(m, 1)},
			{X: new(saferith.Nat).SetUint64(104), Y: NatFromInt(m, 2)},
		}
		_, err := Interpolate(m, points)
		assert.ErrorIs(t, err, ErrNonDistinctXs)
	})

	t.Run("more points than order", func(t *testing.T) {
		m := saferith.ModulusFromUint64(3)
		points := make([]Point, 4)
		for i := range points {
			points[i] = Point{X: new(saferith.Nat).SetUint64(uint64(i)), Y: NatFromInt(m, 0)}
		}
		_, err := Interpolate(m, points)
		assert.ErrorIs(t, err, ErrPointsExceedOrder)
	})
}

func TestLagrangeCoefficients(t *testing.T) {
	m := saferith.ModulusFromBytes(bigOrder.Bytes())

	t.Run("sum to one", func(t *testing.T) {
		coeffs, err := LagrangeCoefficientsForIndexes(m, []int{1, 3, 4, 7})
		require.NoError(t, err)
		sum := NatFromInt(m, 0)
		for _, c := range coeffs {
			sum.ModAdd(sum, c, m)
		}
		assert.True(t, sum.Eq(NatFromInt(m, 1)) == 1)
	})

	t.Run("recombine constant term", func(t *testing.T) {
		p, err := Random(m, 2, NatFromInt(m, 99), nil, rand.Reader)
		require.NoError(t, err)
		indexes := []int{2, 5, 9}
		coeffs, err := LagrangeCoefficientsForIndexes(m, indexes)
		require.NoError(t, err)
		acc := NatFromInt(m, 0)
		for i, idx := range indexes {
			term := new(saferith.Nat).ModMul(coeffs[i], p.Evaluate(NatFromInt(m, uint64(idx))), m)
			acc.ModAdd(acc, term, m)
		}
		assert.True(t, acc.Eq(NatFromInt(m, 99)) == 1)
	})

	t.Run("duplicates", func(t *testing.T) {
		_, err := LagrangeCoefficientsForIndexes(m, []int{1, 1})
		assert.ErrorIs(t, err, ErrNonDistinctXs)
	})
}
