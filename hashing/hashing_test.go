package hashing

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestParse(t *testing.T) {
	for _, a := range Algorithms() {
		got, err := Parse(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	got, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, Default, got)

	_, err = Parse("md5")
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	_, err = Algorithm("md5").Digest([]byte("x"))
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestDigest(t *testing.T) {
	got, err := SHA256.Digest([]byte("a"), []byte("bc"))
	require.NoError(t, err)
	assert.Equal(t, unhex(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"), got)

	sizes := map[Algorithm]int{SHA256: 32, SHA512: 64, SHA3_256: 32, SHA3_512: 64, BLAKE2b512: 64, BLAKE3: 32}
	for _, a := range Algorithms() {
		t.Run(a.String(), func(t *testing.T) {
			d1, err := a.Digest([]byte("thresh"))
			require.NoError(t, err)
			d2, err := a.Digest([]byte("thr"), []byte("esh"))
			require.NoError(t, err)
			assert.Equal(t, d1, d2, "digest is over the concatenation")
			assert.Len(t, d1, sizes[a])
		})
	}
}

func TestMAC(t *testing.T) {
	key := bytes.Repeat([]byte{0x0b}, 20)
	tag, err := SHA256.MAC(key, []byte("Hi There"))
	require.NoError(t, err)
	assert.Equal(t, unhex(t, "b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7"), tag)

	for _, a := range Algorithms() {
		t.Run(a.String(), func(t *testing.T) {
			tag, err := a.MAC([]byte("key"), []byte("iv"), []byte("ciphertext"))
			require.NoError(t, err)
			ok, err := a.VerifyMAC([]byte("key"), tag, []byte("iv"), []byte("ciphertext"))
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = a.VerifyMAC([]byte("other"), tag, []byte("iv"), []byte("ciphertext"))
			require.NoError(t, err)
			assert.False(t, ok)

			tag[0] ^= 1
			ok, err = a.VerifyMAC([]byte("key"), tag, []byte("iv"), []byte("ciphertext"))
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestDerive(t *testing.T) {
	// RFC 5869 test case 1
	ikm := bytes.Repeat([]byte{0x0b}, 22)
	salt := unhex(t, "000102030405060708090a0b0c")
	info := unhex(t, "f0f1f2f3f4f5f6f7f8f9")
	okm, err := SHA256.Derive(ikm, salt, info, 42)
	require.NoError(t, err)
	assert.Equal(t, unhex(t, "3cb25f25faacd57a90434f64d0362f2a2d2d0a90cf1a5a4c5db02d56ecc4c5bf34007208d5b887185865"), okm)

	for _, a := range Algorithms() {
		k1, err := a.Derive([]byte("secret"), []byte("salt"), []byte("info"), 64)
		require.NoError(t, err)
		assert.Len(t, k1, 64)
		k2, err := a.Derive([]byte("secret"), []byte("salt"), []byte("other"), 64)
		require.NoError(t, err)
		assert.NotEqual(t, k1, k2, "%s: info must separate keys", a)
	}
}
