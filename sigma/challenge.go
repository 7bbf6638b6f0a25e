package sigma

import (
	"math/big"

	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/hashing"
)

// Challenge derives the Fiat-Shamir challenge
//
//	H(p ‖ q ‖ G ‖ points ‖ scalars ‖ extra ‖ nonce)
//
// reduced little-endian modulo the group order, where p is the field
// modulus and q the group order, both little-endian at their own byte
// width. Binding the group description keeps proofs from being replayed
// across groups.
func Challenge(alg hashing.Algorithm, g group.Group, points []group.Point, scalars []group.Scalar, extra, nonce []byte) (group.Scalar, error) {
	h, err := alg.New()
	if err != nil {
		return nil, err
	}
	modulus := g.Modulus()
	order := g.Order()
	h.Write(group.IntToLEBytes(new(big.Int).SetBytes(modulus), len(modulus)))
	h.Write(group.IntToLEBytes(new(big.Int).SetBytes(order), len(order)))
	h.Write(g.Generator().Bytes())
	for _, p := range points {
		h.Write(p.Bytes())
	}
	for _, s := range scalars {
		h.Write(group.ScalarToLEBytes(s))
	}
	h.Write(extra)
	h.Write(nonce)
	return group.LEBytesToScalar(g, h.Sum(nil)), nil
}
