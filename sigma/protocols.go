package sigma

import (
	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/suite"
)

// Pair is a base U and a value V = x⋅U.
type Pair struct {
	U group.Point
	V group.Point
}

// DlogRelation is the relation V = x⋅U.
func DlogRelation(u, v group.Point) *LinearRelation {
	return &LinearRelation{Us: [][]group.Point{{u}}, Vs: []group.Point{v}}
}

// EqDlogRelation is the relation Vᵢ = x⋅Uᵢ for every pair, with one
// shared witness. It is a single-column relation, so the verifier's row
// checks all use the same response and equality of the logs follows.
func EqDlogRelation(pairs []Pair) *LinearRelation {
	r := &LinearRelation{
		Us: make([][]group.Point, len(pairs)),
		Vs: make([]group.Point, len(pairs)),
	}
	for i, p := range pairs {
		r.Us[i] = []group.Point{p.U}
		r.Vs[i] = p.V
	}
	return r
}

// DDHRelation is the relation V = x⋅G and W = x⋅U.
func DDHRelation(g group.Group, u, v, w group.Point) *LinearRelation {
	return EqDlogRelation([]Pair{
		{U: g.Generator(), V: v},
		{U: u, V: w},
	})
}

// ProveDlog proves knowledge of x with v = x⋅u.
func ProveDlog(s *suite.Suite, x group.Scalar, u, v group.Point, nonce []byte) (*Proof, error) {
	return Prove(s, []group.Scalar{x}, DlogRelation(u, v), nonce)
}

// VerifyDlog verifies a proof from ProveDlog.
func VerifyDlog(g group.Group, u, v group.Point, p *Proof, nonce []byte) (bool, error) {
	return Verify(g, DlogRelation(u, v), p, nonce)
}

// ProveEqDlog proves that every pair shares the discrete log x.
func ProveEqDlog(s *suite.Suite, x group.Scalar, pairs []Pair, nonce []byte) (*Proof, error) {
	return Prove(s, []group.Scalar{x}, EqDlogRelation(pairs), nonce)
}

// VerifyEqDlog verifies a proof from ProveEqDlog.
func VerifyEqDlog(g group.Group, pairs []Pair, p *Proof, nonce []byte) (bool, error) {
	return Verify(g, EqDlogRelation(pairs), p, nonce)
}

// ProveDDH proves w = x⋅u given v = x⋅G.
func ProveDDH(s *suite.Suite, x group.Scalar, u, v, w group.Point, nonce []byte) (*Proof, error) {
	return Prove(s, []group.Scalar{x}, DDHRelation(s.Group, u, v, w), nonce)
}

// VerifyDDH verifies a proof from ProveDDH.
func VerifyDDH(g group.Group, u, v, w group.Point, p *Proof, nonce []byte) (bool, error) {
	return Verify(g, DDHRelation(g, u, v, w), p, nonce)
}

// Sign produces a Schnorr signature on message: a Dlog proof of the
// secret key whose challenge also hashes the message.
func Sign(s *suite.Suite, secret group.Scalar, message, nonce []byte) (*Proof, error) {
	g := s.Group
	pub := group.GeneratePoint(g, secret)
	return prove(s, []group.Scalar{secret}, DlogRelation(g.Generator(), pub), message, nonce)
}

// VerifySignature verifies a signature from Sign against the public key.
func VerifySignature(g group.Group, pub group.Point, message []byte, sig *Proof, nonce []byte) (bool, error) {
	return verify(g, DlogRelation(g.Generator(), pub), sig, message, nonce)
}
