package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/thresh/curves"
	"github.com/f3rmion/thresh/dem"
	"github.com/f3rmion/thresh/hashing"
	"github.com/f3rmion/thresh/threshold"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())

	s, err := cfg.Suite(nil)
	require.NoError(t, err)
	assert.Equal(t, curves.Default, s.Label())
	assert.Equal(t, hashing.Default, s.Hash)
	assert.Equal(t, dem.Default, s.Mode)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresh.yaml")
	data := []byte(`
system: secp256k1
hash: blake3
mode: chacha20-poly1305
threshold: 3
total: 5
parallel_validation: true
logger:
  level: debug
  format: json
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secp256k1", cfg.System)
	assert.Equal(t, 3, cfg.Threshold)
	assert.Equal(t, 5, cfg.Total)
	assert.True(t, cfg.ParallelValidation)
	assert.False(t, cfg.SkipThreshold)

	s, err := cfg.Suite(nil)
	require.NoError(t, err)
	assert.Equal(t, curves.Secp256k1, s.Label())
	assert.Equal(t, hashing.BLAKE3, s.Hash)
	assert.Equal(t, dem.ChaCha20Poly1305, s.Mode)

	c, err := cfg.Combiner(s)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Threshold())
	assert.ErrorIs(t, c.ValidateNrShares(2), threshold.ErrInsufficientShares)

	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("threshold: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Threshold)
	assert.Equal(t, Default().System, cfg.System)
	assert.Equal(t, Default().Logger, cfg.Logger)

	cfg, err = Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSkipThreshold(t *testing.T) {
	cfg, err := Parse([]byte("skip_threshold: true\n"))
	require.NoError(t, err)
	s, err := cfg.Suite(nil)
	require.NoError(t, err)
	c, err := cfg.Combiner(s)
	require.NoError(t, err)
	assert.NoError(t, c.ValidateNrShares(1))
}

func TestInvalid(t *testing.T) {
	for name, doc := range map[string]string{
		"system":    "system: p256\n",
		"hash":      "hash: md5\n",
		"mode":      "mode: des\n",
		"threshold": "threshold: 0\n",
		"too_high":  "threshold: 4\ntotal: 3\n",
		"level":     "logger:\n  level: loud\n",
		"format":    "logger:\n  format: xml\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	t.Run("unknown_field", func(t *testing.T) {
		_, err := Parse([]byte("curve: bjj\n"))
		assert.Error(t, err)
	})
	t.Run("unsupported_label_error", func(t *testing.T) {
		_, err := Parse([]byte("system: p256\n"))
		assert.ErrorIs(t, err, curves.ErrUnsupportedLabel)
	})
	t.Run("missing_file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
