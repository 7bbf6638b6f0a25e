package elgamal

import (
	"fmt"

	"github.com/f3rmion/thresh/dem"
	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/hashing"
	"github.com/f3rmion/thresh/suite"
)

const (
	hybridInfo     = "thresh-elgamal-hybrid"
	integratedInfo = "thresh-elgamal-integrated"
	macKeySize     = 32
)

// Encryption is the result of an encryption: the ciphertext and the
// randomness r that produced β = r⋅G. Keep r secret; it decrypts the
// ciphertext.
type Encryption struct {
	Ciphertext *Ciphertext
	Randomness group.Scalar
}

// kem draws r and returns β = r⋅G together with the decryptor r⋅Y.
func kem(s *suite.Suite, pub *PublicKey) (r group.Scalar, beta, decryptor group.Point, err error) {
	g := s.Group
	if err := checkKey(g, pub); err != nil {
		return nil, nil, nil, err
	}
	r, err = s.RandomScalar()
	if err != nil {
		return nil, nil, nil, err
	}
	return r, group.GeneratePoint(g, r), group.Operate(g, r, pub.point), nil
}

func checkKey(g group.Group, pub *PublicKey) error {
	if pub == nil {
		return fmt.Errorf("elgamal: nil public key")
	}
	if pub.group.Name() != g.Name() {
		return fmt.Errorf("%w: key for %q, suite for %q", group.ErrGroupMismatch, pub.group.Name(), g.Name())
	}
	return group.AssertValid(g, pub.point)
}

// EncryptPlain encrypts the group element message as α = r⋅Y + M.
func EncryptPlain(s *suite.Suite, pub *PublicKey, message group.Point) (*Encryption, error) {
	if message == nil || group.AssertValid(s.Group, message) != nil {
		return nil, ErrNotGroupElement
	}
	r, beta, decryptor, err := kem(s, pub)
	if err != nil {
		return nil, err
	}
	alpha := &PlainAlpha{Point: group.Combine(s.Group, decryptor, message)}
	return &Encryption{Ciphertext: &Ciphertext{Alpha: alpha, Beta: beta}, Randomness: r}, nil
}

// EncryptHybrid encrypts message with the suite's cipher mode under a key
// derived from the decryptor.
func EncryptHybrid(s *suite.Suite, pub *PublicKey, message []byte) (*Encryption, error) {
	r, beta, decryptor, err := kem(s, pub)
	if err != nil {
		return nil, err
	}
	key, err := s.Hash.Derive(decryptor.Bytes(), beta.Bytes(), []byte(hybridInfo), dem.KeySize)
	if err != nil {
		return nil, err
	}
	payload, err := dem.Seal(s.Mode, key, message, s.Rand)
	if err != nil {
		return nil, err
	}
	alpha := &HybridAlpha{Mode: s.Mode, Hash: s.Hash, Payload: *payload}
	return &Encryption{Ciphertext: &Ciphertext{Alpha: alpha, Beta: beta}, Randomness: r}, nil
}

// EncryptIntegrated encrypts message DHIES-style: an encryption key and a
// MAC key are derived from the decryptor, and the MAC covers the whole DEM
// payload.
func EncryptIntegrated(s *suite.Suite, pub *PublicKey, message []byte) (*Encryption, error) {
	r, beta, decryptor, err := kem(s, pub)
	if err != nil {
		return nil, err
	}
	encKey, macKey, err := integratedKeys(s.Hash, decryptor, beta)
	if err != nil {
		return nil, err
	}
	payload, err := dem.Seal(s.Mode, encKey, message, s.Rand)
	if err != nil {
		return nil, err
	}
	mac, err := s.Hash.MAC(macKey, payload.IV, payload.Ciphertext, payload.Tag)
	if err != nil {
		return nil, err
	}
	alpha := &IntegratedAlpha{Mode: s.Mode, Hash: s.Hash, Payload: *payload, MAC: mac}
	return &Encryption{Ciphertext: &Ciphertext{Alpha: alpha, Beta: beta}, Randomness: r}, nil
}

func integratedKeys(alg hashing.Algorithm, decryptor, beta group.Point) (encKey, macKey []byte, err error) {
	okm, err := alg.Derive(decryptor.Bytes(), beta.Bytes(), []byte(integratedInfo), dem.KeySize+macKeySize)
	if err != nil {
		return nil, nil, err
	}
	return okm[:dem.KeySize], okm[dem.KeySize:], nil
}
