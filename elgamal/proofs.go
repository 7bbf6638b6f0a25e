package elgamal

import (
	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/sigma"
	"github.com/f3rmion/thresh/suite"
)

// ProveEncryption proves knowledge of r with β = r⋅G.
func ProveEncryption(s *suite.Suite, c *Ciphertext, randomness group.Scalar, nonce []byte) (*sigma.Proof, error) {
	return sigma.ProveDlog(s, randomness, s.Group.Generator(), c.Beta, nonce)
}

// VerifyEncryption verifies a proof from ProveEncryption.
func VerifyEncryption(g group.Group, c *Ciphertext, proof *sigma.Proof, nonce []byte) (bool, error) {
	return sigma.VerifyDlog(g, g.Generator(), c.Beta, proof, nonce)
}

// ComputeDecryptor returns D = x⋅β for the holder of key.
func ComputeDecryptor(g group.Group, c *Ciphertext, key *PrivateKey) (group.Point, error) {
	return BySecret{Key: key}.decryptor(g, c.Beta)
}

// ProveDecryptor computes D = x⋅β and a DDH proof that the x behind the
// public key x⋅G also produced D.
func ProveDecryptor(s *suite.Suite, c *Ciphertext, key *PrivateKey, nonce []byte) (group.Point, *sigma.Proof, error) {
	g := s.Group
	if err := group.AssertValid(g, c.Beta); err != nil {
		return nil, nil, err
	}
	d, err := ComputeDecryptor(g, c, key)
	if err != nil {
		return nil, nil, err
	}
	pub := key.Public().point
	proof, err := sigma.ProveDDH(s, key.scalar, c.Beta, pub, d, nonce)
	if err != nil {
		return nil, nil, err
	}
	return d, proof, nil
}

// VerifyDecryptor checks a decryptor proof against the public point pub.
func VerifyDecryptor(g group.Group, c *Ciphertext, pub, decryptor group.Point, proof *sigma.Proof, nonce []byte) (bool, error) {
	return sigma.VerifyDDH(g, c.Beta, pub, decryptor, proof, nonce)
}
