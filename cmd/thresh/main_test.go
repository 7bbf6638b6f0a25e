package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/threshold"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "thresh.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestEndToEnd(t *testing.T) {
	for _, system := range []string{"bjj", "secp256k1", "ed25519"} {
		t.Run(system, func(t *testing.T) {
			dir := t.TempDir()
			cfg := writeConfig(t, dir, "system: "+system+"\nthreshold: 2\ntotal: 3\nlogger:\n  level: error\n")
			keys := filepath.Join(dir, "keys")
			var stdout, stderr bytes.Buffer

			require.NoError(t, run([]string{"keygen", "-c", cfg, "--out", keys}, &stdout, &stderr))
			assert.NotEmpty(t, stdout.String())
			for _, name := range []string{publicFile, publicSharesFile, commitmentsFile, shareFile(1), shareFile(2), shareFile(3)} {
				assert.FileExists(t, filepath.Join(keys, name))
			}

			msg := []byte("attack at dawn")
			plain := filepath.Join(dir, "msg.txt")
			require.NoError(t, os.WriteFile(plain, msg, 0o600))
			ct := filepath.Join(dir, "msg.ct")
			proof := filepath.Join(dir, "msg.proof")
			require.NoError(t, run([]string{"encrypt", "-c", cfg,
				"--public", filepath.Join(keys, publicFile), "--in", plain, "--out", ct, "--proof", proof}, &stdout, &stderr))

			var partials []string
			for _, i := range []int{1, 3} {
				out := filepath.Join(dir, "partial-"+string(rune('0'+i))+".cbor")
				require.NoError(t, run([]string{"partial", "-c", cfg,
					"--share", filepath.Join(keys, shareFile(i)),
					"--commitments", filepath.Join(keys, commitmentsFile),
					"--proof", proof,
					"--ciphertext", ct, "--out", out}, &stdout, &stderr))
				partials = append(partials, out)
			}

			stdout.Reset()
			args := append([]string{"combine", "-c", cfg,
				"--public-shares", filepath.Join(keys, publicSharesFile), "--ciphertext", ct}, partials...)
			require.NoError(t, run(args, &stdout, &stderr))
			assert.Equal(t, msg, stdout.Bytes())

			err := run([]string{"combine", "-c", cfg,
				"--public-shares", filepath.Join(keys, publicSharesFile), "--ciphertext", ct, partials[0]}, &stdout, &stderr)
			assert.ErrorIs(t, err, threshold.ErrInsufficientShares)
		})
	}
}

func TestHybridScheme(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "threshold: 1\ntotal: 1\nlogger:\n  level: error\n")
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"keygen", "-c", cfg, "-o", dir}, &stdout, &stderr))

	plain := filepath.Join(dir, "msg.txt")
	require.NoError(t, os.WriteFile(plain, []byte("hybrid"), 0o600))
	ct := filepath.Join(dir, "msg.ct")
	require.NoError(t, run([]string{"encrypt", "-c", cfg, "--scheme", "hybrid",
		"--public", filepath.Join(dir, publicFile), "-i", plain, "-o", ct}, &stdout, &stderr))

	p := filepath.Join(dir, "p.cbor")
	require.NoError(t, run([]string{"partial", "-c", cfg, "--share", filepath.Join(dir, shareFile(1)),
		"--ciphertext", ct, "-o", p}, &stdout, &stderr))
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, run([]string{"combine", "-c", cfg, "--public-shares", filepath.Join(dir, publicSharesFile),
		"--ciphertext", ct, "-o", out, p}, &stdout, &stderr))
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte("hybrid"), got)

	err = run([]string{"encrypt", "-c", cfg, "--scheme", "plain",
		"--public", filepath.Join(dir, publicFile), "-i", plain, "-o", ct}, &stdout, &stderr)
	assert.Error(t, err)
}

func TestSystemMismatch(t *testing.T) {
	dir := t.TempDir()
	bjj := writeConfig(t, dir, "system: bjj\nlogger:\n  level: error\n")
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"keygen", "-c", bjj, "-o", dir}, &stdout, &stderr))

	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(other, []byte("system: secp256k1\nlogger:\n  level: error\n"), 0o600))
	plain := filepath.Join(dir, "msg.txt")
	require.NoError(t, os.WriteFile(plain, []byte("x"), 0o600))
	err := run([]string{"encrypt", "-c", other, "--public", filepath.Join(dir, publicFile),
		"-i", plain, "-o", filepath.Join(dir, "ct")}, &stdout, &stderr)
	assert.ErrorIs(t, err, group.ErrGroupMismatch)
}

func TestUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Error(t, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "keygen")
	assert.Error(t, run([]string{"sign"}, &stdout, &stderr))
	assert.NoError(t, run([]string{"--help"}, &stdout, &stderr))

	err := run([]string{"encrypt", "--in", "x"}, &stdout, &stderr)
	assert.ErrorContains(t, err, "--public")
}
