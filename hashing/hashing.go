// Package hashing is the hash, MAC and key-derivation backend.
//
// Algorithms form a closed enumeration selected by name. Every protocol
// that hashes (Fiat-Shamir challenges, KEM key derivation, integrated
// encryption MACs) takes an [Algorithm] explicitly instead of relying on
// a process-wide default.
package hashing

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"io"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

// ErrUnsupportedAlgorithm is returned for names outside the enumeration.
var ErrUnsupportedAlgorithm = errors.New("hashing: unsupported algorithm")

// Algorithm names a hash function.
type Algorithm string

const (
	SHA256     Algorithm = "sha256"
	SHA512     Algorithm = "sha512"
	SHA3_256   Algorithm = "sha3-256"
	SHA3_512   Algorithm = "sha3-512"
	BLAKE2b512 Algorithm = "blake2b-512"
	BLAKE3     Algorithm = "blake3"

	// Default is the algorithm used when none is configured.
	Default = SHA256
)

// Algorithms returns every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{SHA256, SHA512, SHA3_256, SHA3_512, BLAKE2b512, BLAKE3}
}

// Parse validates an algorithm name. The empty string selects Default.
func Parse(s string) (Algorithm, error) {
	if s == "" {
		return Default, nil
	}
	a := Algorithm(s)
	if _, err := a.New(); err != nil {
		return "", err
	}
	return a, nil
}

// String implements fmt.Stringer.
func (a Algorithm) String() string {
	return string(a)
}

// New returns a fresh hash.Hash for a.
func (a Algorithm) New() (hash.Hash, error) {
	switch a {
	case SHA256:
		return sha256.New(), nil
	case SHA512:
		return sha512.New(), nil
	case SHA3_256:
		return sha3.New256(), nil
	case SHA3_512:
		return sha3.New512(), nil
	case BLAKE2b512:
		return blake2b.New512(nil)
	case BLAKE3:
		return blake3.New(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(a))
}

func (a Algorithm) constructor() (func() hash.Hash, error) {
	if _, err := a.New(); err != nil {
		return nil, err
	}
	return func() hash.Hash {
		h, _ := a.New()
		return h
	}, nil
}

// Digest hashes the concatenation of data.
func (a Algorithm) Digest(data ...[]byte) ([]byte, error) {
	h, err := a.New()
	if err != nil {
		return nil, err
	}
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil), nil
}

// MAC computes HMAC over the concatenation of data.
func (a Algorithm) MAC(key []byte, data ...[]byte) ([]byte, error) {
	newHash, err := a.constructor()
	if err != nil {
		return nil, err
	}
	m := hmac.New(newHash, key)
	for _, d := range data {
		m.Write(d)
	}
	return m.Sum(nil), nil
}

// VerifyMAC recomputes the MAC and compares it in constant time.
func (a Algorithm) VerifyMAC(key, tag []byte, data ...[]byte) (bool, error) {
	expected, err := a.MAC(key, data...)
	if err != nil {
		return false, err
	}
	return hmac.Equal(expected, tag), nil
}

// Derive expands secret into length bytes of key material with HKDF.
func (a Algorithm) Derive(secret, salt, info []byte, length int) ([]byte, error) {
	newHash, err := a.constructor()
	if err != nil {
		return nil, err
	}
	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.New(newHash, secret, salt, info), out); err != nil {
		return nil, fmt.Errorf("hashing: derive key: %w", err)
	}
	return out, nil
}
