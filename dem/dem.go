// Package dem is the data-encapsulation backend: symmetric encryption of
// arbitrary messages under a key derived from a group element.
//
// Modes form a closed enumeration. AEAD modes return a separate
// authentication tag; the unauthenticated modes leave Tag empty and are
// meant to be combined with a MAC, as the integrated scheme does.
package dem

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	// ErrUnsupportedMode is returned for names outside the enumeration.
	ErrUnsupportedMode = errors.New("dem: unsupported cipher mode")
	// ErrAuthentication is returned when an AEAD tag does not verify.
	ErrAuthentication = errors.New("dem: message authentication failed")
	// ErrMalformed is returned for payloads with a wrong IV, tag or padding.
	ErrMalformed = errors.New("dem: malformed payload")
)

// KeySize is the symmetric key length of every mode.
const KeySize = 32

// Mode names a cipher and block mode.
type Mode string

const (
	AES256GCM        Mode = "aes-256-gcm"
	AES256CBC        Mode = "aes-256-cbc"
	AES256CTR        Mode = "aes-256-ctr"
	ChaCha20Poly1305 Mode = "chacha20-poly1305"

	// Default is the mode used when none is configured.
	Default = AES256GCM
)

// Modes returns every supported mode.
func Modes() []Mode {
	return []Mode{AES256GCM, AES256CBC, AES256CTR, ChaCha20Poly1305}
}

// Parse validates a mode name. The empty string selects Default.
func Parse(s string) (Mode, error) {
	if s == "" {
		return Default, nil
	}
	for _, m := range Modes() {
		if Mode(s) == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}

// Authenticated reports whether the mode produces a tag.
func (m Mode) Authenticated() bool {
	return m == AES256GCM || m == ChaCha20Poly1305
}

// Payload is the output of Seal.
type Payload struct {
	Ciphertext []byte `cbor:"1,keyasint"`
	IV         []byte `cbor:"2,keyasint"`
	Tag        []byte `cbor:"3,keyasint,omitempty"`
}

// Seal encrypts plaintext under key with a fresh IV read from rng.
func Seal(m Mode, key, plaintext []byte, rng io.Reader) (*Payload, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("dem: key must be %d bytes, got %d", KeySize, len(key))
	}
	switch m {
	case AES256GCM, ChaCha20Poly1305:
		aead, err := newAEAD(m, key)
		if err != nil {
			return nil, err
		}
		iv := make([]byte, aead.NonceSize())
		if _, err := io.ReadFull(rng, iv); err != nil {
			return nil, fmt.Errorf("dem: read iv: %w", err)
		}
		sealed := aead.Seal(nil, iv, plaintext, nil)
		split := len(sealed) - aead.Overhead()
		return &Payload{Ciphertext: sealed[:split], IV: iv, Tag: sealed[split:]}, nil

	case AES256CBC:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		iv := make([]byte, aes.BlockSize)
		if _, err := io.ReadFull(rng, iv); err != nil {
			return nil, fmt.Errorf("dem: read iv: %w", err)
		}
		padded := pad(plaintext, aes.BlockSize)
		out := make([]byte, len(padded))
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
		return &Payload{Ciphertext: out, IV: iv}, nil

	case AES256CTR:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		iv := make([]byte, aes.BlockSize)
		if _, err := io.ReadFull(rng, iv); err != nil {
			return nil, fmt.Errorf("dem: read iv: %w", err)
		}
		out := make([]byte, len(plaintext))
		cipher.NewCTR(block, iv).XORKeyStream(out, plaintext)
		return &Payload{Ciphertext: out, IV: iv}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, string(m))
}

// Open decrypts a payload produced by Seal.
func Open(m Mode, key []byte, p *Payload) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("dem: key must be %d bytes, got %d", KeySize, len(key))
	}
	if p == nil {
		return nil, ErrMalformed
	}
	switch m {
	case AES256GCM, ChaCha20Poly1305:
		aead, err := newAEAD(m, key)
		if err != nil {
			return nil, err
		}
		if len(p.IV) != aead.NonceSize() || len(p.Tag) != aead.Overhead() {
			return nil, ErrMalformed
		}
		sealed := append(append([]byte{}, p.Ciphertext...), p.Tag...)
		plaintext, err := aead.Open(nil, p.IV, sealed, nil)
		if err != nil {
			return nil, ErrAuthentication
		}
		return plaintext, nil

	case AES256CBC:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		if len(p.IV) != aes.BlockSize || len(p.Ciphertext) == 0 || len(p.Ciphertext)%aes.BlockSize != 0 {
			return nil, ErrMalformed
		}
		out := make([]byte, len(p.Ciphertext))
		cipher.NewCBCDecrypter(block, p.IV).CryptBlocks(out, p.Ciphertext)
		return unpad(out, aes.BlockSize)

	case AES256CTR:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		if len(p.IV) != aes.BlockSize {
			return nil, ErrMalformed
		}
		out := make([]byte, len(p.Ciphertext))
		cipher.NewCTR(block, p.IV).XORKeyStream(out, p.Ciphertext)
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, string(m))
}

func newAEAD(m Mode, key []byte) (cipher.AEAD, error) {
	if m == ChaCha20Poly1305 {
		return chacha20poly1305.New(key)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// pad applies PKCS#7 padding.
func pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(append([]byte{}, b...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte, size int) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, ErrMalformed
	}
	for _, v := range b[len(b)-n:] {
		if int(v) != n {
			return nil, ErrMalformed
		}
	}
	return b[:len(b)-n], nil
}
