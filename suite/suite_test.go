package suite

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/f3rmion/thresh/curves"
	"github.com/f3rmion/thresh/dem"
	"github.com/f3rmion/thresh/hashing"
)

func TestDefaults(t *testing.T) {
	for _, label := range curves.Labels() {
		s, err := New(label)
		require.NoError(t, err)
		assert.Equal(t, label, s.Label())
		assert.Equal(t, hashing.Default, s.Hash)
		assert.Equal(t, dem.Default, s.Mode)
		assert.NotNil(t, s.Rand)
		assert.NotNil(t, s.Logger)
	}
}

func TestOptions(t *testing.T) {
	logger := zap.NewExample()
	s, err := New(curves.Secp256k1,
		WithHash(hashing.SHA3_512),
		WithMode(dem.AES256CTR),
		WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, hashing.SHA3_512, s.Hash)
	assert.Equal(t, dem.AES256CTR, s.Mode)
	assert.Same(t, logger, s.Logger)

	_, err = New(curves.Default, WithHash("md5"))
	assert.ErrorIs(t, err, hashing.ErrUnsupportedAlgorithm)
	_, err = New(curves.Default, WithMode("rot13"))
	assert.ErrorIs(t, err, dem.ErrUnsupportedMode)
	_, err = New(curves.Default, WithRand(nil))
	assert.Error(t, err)
	_, err = New(curves.Default, WithLogger(nil))
	assert.Error(t, err)
	_, err = New("p256")
	assert.ErrorIs(t, err, curves.ErrUnsupportedLabel)
}

func TestDeterministicRand(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 1024)
	a, err := New(curves.BabyJubjub, WithRand(bytes.NewReader(seed)))
	require.NoError(t, err)
	b, err := New(curves.BabyJubjub, WithRand(bytes.NewReader(seed)))
	require.NoError(t, err)

	xs, err := a.RandomScalars(3)
	require.NoError(t, err)
	ys, err := b.RandomScalars(3)
	require.NoError(t, err)
	require.Len(t, xs, 3)
	for i := range xs {
		assert.True(t, xs[i].Equal(ys[i]))
	}

	empty, err := New(curves.BabyJubjub, WithRand(bytes.NewReader(nil)))
	require.NoError(t, err)
	_, err = empty.RandomScalar()
	assert.Error(t, err)
}
