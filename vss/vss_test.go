package vss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/thresh/curves"
	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/suite"
)

func forEachSuite(t *testing.T, fn func(t *testing.T, s *suite.Suite)) {
	for _, label := range curves.Labels() {
		s, err := suite.New(label)
		require.NoError(t, err)
		t.Run(label.String(), func(t *testing.T) {
			fn(t, s)
		})
	}
}

func TestShareAndReconstruct(t *testing.T) {
	forEachSuite(t, func(t *testing.T, s *suite.Suite) {
		g := s.Group
		secret, err := s.RandomScalar()
		require.NoError(t, err)

		d, err := ShareSecret(s, secret, 5, 3, nil)
		require.NoError(t, err)

		assert.Len(t, d.Shares, 5)
		assert.Len(t, d.Commitments, 3)
		assert.True(t, d.Secret().Equal(secret))
		assert.True(t, d.PublicKey().Equal(group.GeneratePoint(g, secret)))
		require.NoError(t, d.VerifyAll())

		subsets := [][]int{{1, 3, 5}, {2, 3, 4}, {5, 4, 1}, {1, 2, 3, 4, 5}}
		for _, subset := range subsets {
			shares := make([]Share, len(subset))
			for i, idx := range subset {
				shares[i] = d.Shares[idx-1]
			}
			got, err := ReconstructSecret(g, shares)
			require.NoError(t, err)
			assert.True(t, got.Equal(secret), "subset %v", subset)
		}

		t.Run("too few shares give a different value", func(t *testing.T) {
			got, err := ReconstructSecret(g, d.Shares[:2])
			require.NoError(t, err)
			assert.False(t, got.Equal(secret))
		})

		t.Run("point reconstruction", func(t *testing.T) {
			public := d.PublicShares()
			got, err := ReconstructPoint(g, []PointShare{public[0], public[2], public[4]})
			require.NoError(t, err)
			assert.True(t, got.Equal(d.PublicKey()))
		})
	})
}

func TestShareSecretParameters(t *testing.T) {
	s, err := suite.New(curves.Default)
	require.NoError(t, err)
	secret, err := s.RandomScalar()
	require.NoError(t, err)

	t.Run("threshold above n", func(t *testing.T) {
		_, err := ShareSecret(s, secret, 2, 3, nil)
		assert.ErrorIs(t, err, ErrInvalidThreshold)
	})

	t.Run("zero threshold", func(t *testing.T) {
		_, err := ShareSecret(s, secret, 2, 0, nil)
		assert.ErrorIs(t, err, ErrInvalidThreshold)
	})

	t.Run("threshold one", func(t *testing.T) {
		d, err := ShareSecret(s, secret, 3, 1, nil)
		require.NoError(t, err)
		for _, sh := range d.Shares {
			assert.True(t, sh.Value.Equal(secret))
		}
	})

	t.Run("predefined coefficients", func(t *testing.T) {
		c1 := group.ScalarFromInt(s.Group, 11)
		d, err := ShareSecret(s, secret, 4, 3, []group.Scalar{c1})
		require.NoError(t, err)
		assert.True(t, d.Commitments[1].Equal(group.GeneratePoint(s.Group, c1)))
	})

	t.Run("too many predefined", func(t *testing.T) {
		one := group.ScalarFromInt(s.Group, 1)
		_, err := ShareSecret(s, secret, 4, 2, []group.Scalar{one, one})
		assert.ErrorIs(t, err, ErrTooManyPredefined)
	})
}

func TestReconstructErrors(t *testing.T) {
	s, err := suite.New(curves.Default)
	require.NoError(t, err)
	secret, err := s.RandomScalar()
	require.NoError(t, err)
	d, err := ShareSecret(s, secret, 3, 2, nil)
	require.NoError(t, err)

	_, err = ReconstructSecret(s.Group, []Share{d.Shares[0], d.Shares[0]})
	assert.ErrorIs(t, err, ErrDuplicateIndex)

	_, err = ReconstructSecret(s.Group, []Share{{Index: 0, Value: secret}, d.Shares[1]})
	assert.ErrorIs(t, err, ErrInvalidIndex)

	foreign, err := suite.New(curves.Secp256k1)
	require.NoError(t, err)
	p := group.GeneratePoint(foreign.Group, group.ScalarFromInt(foreign.Group, 2))
	_, err = ReconstructPoint(s.Group, []PointShare{{Index: 1, Value: p}})
	assert.ErrorIs(t, err, group.ErrGroupMismatch)
}

func TestFeldman(t *testing.T) {
	forEachSuite(t, func(t *testing.T, s *suite.Suite) {
		g := s.Group
		secret, err := s.RandomScalar()
		require.NoError(t, err)
		d, err := ShareSecret(s, secret, 4, 3, nil)
		require.NoError(t, err)

		t.Run("valid", func(t *testing.T) {
			for _, sh := range d.Shares {
				assert.NoError(t, VerifyFeldman(g, sh, d.Commitments))
			}
		})

		t.Run("tampered value", func(t *testing.T) {
			bad := d.Shares[1]
			bad.Value = g.NewScalar().Add(bad.Value, group.ScalarFromInt(g, 1))
			assert.ErrorIs(t, VerifyFeldman(g, bad, d.Commitments), ErrInvalidShare)
		})

		t.Run("wrong index", func(t *testing.T) {
			bad := d.Shares[1]
			bad.Index = 3
			assert.ErrorIs(t, VerifyFeldman(g, bad, d.Commitments), ErrInvalidShare)
		})

		t.Run("commitments of another secret", func(t *testing.T) {
			other, err := s.RandomScalar()
			require.NoError(t, err)
			d2, err := ShareSecret(s, other, 4, 3, nil)
			require.NoError(t, err)
			assert.ErrorIs(t, VerifyFeldman(g, d.Shares[0], d2.Commitments), ErrInvalidShare)
		})

		t.Run("non-positive index", func(t *testing.T) {
			bad := d.Shares[0]
			bad.Index = 0
			assert.ErrorIs(t, VerifyFeldman(g, bad, d.Commitments), ErrInvalidIndex)
		})
	})
}

func TestPedersen(t *testing.T) {
	forEachSuite(t, func(t *testing.T, s *suite.Suite) {
		g := s.Group
		h, err := PedersenGenerator(g)
		require.NoError(t, err)
		require.NoError(t, g.Validate(h))
		assert.False(t, h.Equal(g.Generator()))

		secret, err := s.RandomScalar()
		require.NoError(t, err)
		d, err := DistributePedersen(s, secret, 5, 3, h)
		require.NoError(t, err)
		assert.Len(t, d.Commitments, 3)

		for _, sh := range d.Shares {
			assert.NoError(t, VerifyPedersen(g, h, sh, d.Commitments))
		}

		// commitment to the secret is hiding: C₀ ≠ secret⋅G
		assert.False(t, d.Commitments[0].Equal(group.GeneratePoint(g, secret)))

		t.Run("tampered blinding", func(t *testing.T) {
			bad := d.Shares[2]
			bad.Blinding = g.NewScalar().Add(bad.Blinding, group.ScalarFromInt(g, 1))
			assert.ErrorIs(t, VerifyPedersen(g, h, bad, d.Commitments), ErrInvalidShare)
		})

		t.Run("tampered value", func(t *testing.T) {
			bad := d.Shares[2]
			bad.Value = g.NewScalar().Add(bad.Value, group.ScalarFromInt(g, 1))
			assert.ErrorIs(t, VerifyPedersen(g, h, bad, d.Commitments), ErrInvalidShare)
		})

		t.Run("commitments of another secret", func(t *testing.T) {
			other, err := s.RandomScalar()
			require.NoError(t, err)
			d2, err := DistributePedersen(s, other, 5, 3, h)
			require.NoError(t, err)
			for _, sh := range d.Shares {
				assert.ErrorIs(t, VerifyPedersen(g, h, sh, d2.Commitments), ErrInvalidShare)
			}
		})

		plain := make([]Share, 3)
		for i := range plain {
			plain[i] = d.Shares[i].Share
		}
		got, err := ReconstructSecret(g, plain)
		require.NoError(t, err)
		assert.True(t, got.Equal(secret))

		_, err = DistributePedersen(s, secret, 5, 3, g.NewPoint())
		assert.Error(t, err)
	})
}

func TestCommitmentEncoding(t *testing.T) {
	forEachSuite(t, func(t *testing.T, s *suite.Suite) {
		secret, err := s.RandomScalar()
		require.NoError(t, err)
		d, err := ShareSecret(s, secret, 3, 3, nil)
		require.NoError(t, err)

		data, err := MarshalCommitments(s.Group, d.Commitments)
		require.NoError(t, err)
		got, err := UnmarshalCommitments(s.Group, data)
		require.NoError(t, err)
		require.Len(t, got, len(d.Commitments))
		for i := range got {
			assert.True(t, got[i].Equal(d.Commitments[i]))
		}

		for _, label := range curves.Labels() {
			if label == s.Label() {
				continue
			}
			_, err := UnmarshalCommitments(curves.MustNew(label), data)
			assert.ErrorIs(t, err, group.ErrGroupMismatch)
		}
	})
}

func TestConcreteScenario(t *testing.T) {
	s, err := suite.New(curves.BabyJubjub)
	require.NoError(t, err)
	secret := group.ScalarFromInt(s.Group, 123456789)

	d, err := ShareSecret(s, secret, 5, 3, nil)
	require.NoError(t, err)

	got, err := ReconstructSecret(s.Group, []Share{d.Shares[0], d.Shares[2], d.Shares[4]})
	require.NoError(t, err)
	assert.True(t, got.Equal(secret))
}

func TestForeignScalars(t *testing.T) {
	s, err := suite.New(curves.Ed25519)
	require.NoError(t, err)
	g := s.Group
	foreign := curves.MustNew(curves.BabyJubjub)
	alien := group.ScalarFromInt(foreign, 5)

	d, err := ShareSecret(s, group.ScalarFromInt(g, 7), 3, 2, nil)
	require.NoError(t, err)

	_, err = ShareSecret(s, alien, 3, 2, nil)
	assert.ErrorIs(t, err, group.ErrGroupMismatch)

	bad := d.Shares[0]
	bad.Value = alien
	assert.ErrorIs(t, VerifyFeldman(g, bad, d.Commitments), group.ErrGroupMismatch)

	_, err = ReconstructSecret(g, []Share{bad, d.Shares[1]})
	assert.ErrorIs(t, err, group.ErrGroupMismatch)

	h, err := PedersenGenerator(g)
	require.NoError(t, err)
	pd, err := DistributePedersen(s, group.ScalarFromInt(g, 7), 3, 2, h)
	require.NoError(t, err)
	pbad := pd.Shares[0]
	pbad.Blinding = alien
	assert.ErrorIs(t, VerifyPedersen(g, h, pbad, pd.Commitments), group.ErrGroupMismatch)
}
