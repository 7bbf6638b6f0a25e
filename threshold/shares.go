package threshold

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/f3rmion/thresh/curves"
	"github.com/f3rmion/thresh/elgamal"
	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/sigma"
	"github.com/f3rmion/thresh/suite"
	"github.com/f3rmion/thresh/vss"
)

// PrivateShare is one trustee's share xᵢ = f(i) of the decryption key.
type PrivateShare struct {
	Index int
	Value group.Scalar

	group group.Group
}

// PublicShare is xᵢ⋅G, published so partial decryptors can be checked.
type PublicShare struct {
	Index int
	Value group.Point

	group group.Group
}

// NewPrivateShare wraps a scalar share.
func NewPrivateShare(g group.Group, index int, value group.Scalar) *PrivateShare {
	return &PrivateShare{Index: index, Value: value, group: g}
}

// NewPublicShare wraps a point share after validating it.
func NewPublicShare(g group.Group, index int, value group.Point) (*PublicShare, error) {
	if err := group.AssertValid(g, value); err != nil {
		return nil, err
	}
	return &PublicShare{Index: index, Value: value, group: g}, nil
}

// Group returns the share's group.
func (s *PrivateShare) Group() group.Group { return s.group }

// Group returns the share's group.
func (s *PublicShare) Group() group.Group { return s.group }

// Public returns the matching public share.
func (s *PrivateShare) Public() *PublicShare {
	return &PublicShare{Index: s.Index, Value: group.GeneratePoint(s.group, s.Value), group: s.group}
}

// Key returns the share as an ElGamal private key, so the trustee can use
// the single-key proofs.
func (s *PrivateShare) Key() (*elgamal.PrivateKey, error) {
	return elgamal.NewPrivateKey(s.group, s.Value)
}

// PartialDecryptor is Dᵢ = xᵢ⋅β together with a DDH proof that it was
// computed with the xᵢ behind PublicShare i.
type PartialDecryptor struct {
	Index int
	Value group.Point
	Proof *sigma.Proof
}

// PartialDecrypt computes this trustee's decryptor share for c.
func (s *PrivateShare) PartialDecrypt(st *suite.Suite, c *elgamal.Ciphertext) (*PartialDecryptor, error) {
	if st.Group.Name() != s.group.Name() {
		return nil, group.ErrGroupMismatch
	}
	key, err := s.Key()
	if err != nil {
		return nil, err
	}
	d, proof, err := elgamal.ProveDecryptor(st, c, key, nil)
	if err != nil {
		return nil, err
	}
	return &PartialDecryptor{Index: s.Index, Value: d, Proof: proof}, nil
}

// KeyDistribution is a dealer's split of a private key.
type KeyDistribution struct {
	Public        *elgamal.PublicKey
	Threshold     int
	Commitments   []group.Point
	PrivateShares []*PrivateShare
	PublicShares  []*PublicShare
}

// DistributeKey splits key into n shares with threshold t.
func DistributeKey(s *suite.Suite, key *elgamal.PrivateKey, n, t int) (*KeyDistribution, error) {
	if key.Group().Name() != s.Group.Name() {
		return nil, group.ErrGroupMismatch
	}
	d, err := vss.ShareSecret(s, key.Scalar(), n, t, nil)
	if err != nil {
		return nil, err
	}
	kd := &KeyDistribution{
		Public:        key.Public(),
		Threshold:     t,
		Commitments:   d.Commitments,
		PrivateShares: make([]*PrivateShare, n),
		PublicShares:  make([]*PublicShare, n),
	}
	for i, sh := range d.Shares {
		kd.PrivateShares[i] = NewPrivateShare(s.Group, sh.Index, sh.Value)
		kd.PublicShares[i] = kd.PrivateShares[i].Public()
	}
	return kd, nil
}

// Verify checks the private share against the dealer's commitments.
func (s *PrivateShare) Verify(commitments []group.Point) error {
	return vss.VerifyFeldman(s.group, vss.Share{Index: s.Index, Value: s.Value}, commitments)
}

type shareJSON struct {
	Value  string `json:"value"`
	System string `json:"system"`
	Index  int    `json:"index"`
}

// MarshalJSON encodes the share as {"value", "system", "index"}.
func (s *PrivateShare) MarshalJSON() ([]byte, error) {
	return json.Marshal(shareJSON{Value: hex.EncodeToString(s.Value.Bytes()), System: s.group.Name(), Index: s.Index})
}

// UnmarshalJSON decodes a share produced by MarshalJSON.
func (s *PrivateShare) UnmarshalJSON(data []byte) error {
	g, raw, err := decodeShareJSON(data)
	if err != nil {
		return err
	}
	x, err := elgamal.DecodeScalar(g, raw.Value)
	if err != nil {
		return err
	}
	s.Index, s.Value, s.group = raw.Index, x, g
	return nil
}

// MarshalJSON encodes the share as {"value", "system", "index"}.
func (s *PublicShare) MarshalJSON() ([]byte, error) {
	return json.Marshal(shareJSON{Value: group.Hexify(s.Value), System: s.group.Name(), Index: s.Index})
}

// UnmarshalJSON decodes and validates a share produced by MarshalJSON.
func (s *PublicShare) UnmarshalJSON(data []byte) error {
	g, raw, err := decodeShareJSON(data)
	if err != nil {
		return err
	}
	p, err := group.Unhexify(g, raw.Value)
	if err != nil {
		return err
	}
	s.Index, s.Value, s.group = raw.Index, p, g
	return nil
}

func decodeShareJSON(data []byte) (group.Group, *shareJSON, error) {
	var raw shareJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}
	if raw.Index < 1 {
		return nil, nil, fmt.Errorf("%w: %d", vss.ErrInvalidIndex, raw.Index)
	}
	label, err := curves.Parse(raw.System)
	if err != nil {
		return nil, nil, err
	}
	g, err := curves.New(label)
	if err != nil {
		return nil, nil, err
	}
	return g, &raw, nil
}
