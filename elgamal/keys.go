package elgamal

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/f3rmion/thresh/curves"
	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/suite"
)

// PrivateKey is a secret scalar in the scalar field of its group.
type PrivateKey struct {
	group  group.Group
	scalar group.Scalar
}

// PublicKey is the point secret⋅G.
type PublicKey struct {
	group group.Group
	point group.Point
}

// GenerateKey draws a fresh private key from the suite's randomness.
func GenerateKey(s *suite.Suite) (*PrivateKey, error) {
	x, err := s.RandomScalar()
	if err != nil {
		return nil, err
	}
	return NewPrivateKey(s.Group, x)
}

// NewPrivateKey wraps a copy of an existing scalar of g.
func NewPrivateKey(g group.Group, x group.Scalar) (*PrivateKey, error) {
	if err := group.AssertScalars(g, x); err != nil {
		return nil, err
	}
	return &PrivateKey{group: g, scalar: g.NewScalar().Set(x)}, nil
}

// NewPublicKey wraps a point after validating it.
func NewPublicKey(g group.Group, p group.Point) (*PublicKey, error) {
	if err := group.AssertValid(g, p); err != nil {
		return nil, err
	}
	return &PublicKey{group: g, point: p}, nil
}

// Group returns the key's group.
func (k *PrivateKey) Group() group.Group { return k.group }

// Scalar returns the secret scalar.
func (k *PrivateKey) Scalar() group.Scalar { return k.scalar }

// Public returns secret⋅G.
func (k *PrivateKey) Public() *PublicKey {
	return &PublicKey{group: k.group, point: group.GeneratePoint(k.group, k.scalar)}
}

// Group returns the key's group.
func (k *PublicKey) Group() group.Group { return k.group }

// Point returns the public point.
func (k *PublicKey) Point() group.Point { return k.point }

// Equal reports whether both keys are the same point of the same group.
func (k *PublicKey) Equal(other *PublicKey) bool {
	return other != nil && group.IsEqual(k.group, k.point, other.point)
}

// keyJSON is the wire form of a key: hex value plus system label.
type keyJSON struct {
	Value  string `json:"value"`
	System string `json:"system"`
}

// MarshalJSON encodes the key as {"value": hex, "system": label}.
func (k *PrivateKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(keyJSON{Value: hex.EncodeToString(k.scalar.Bytes()), System: k.group.Name()})
}

// UnmarshalJSON decodes a key produced by MarshalJSON.
func (k *PrivateKey) UnmarshalJSON(data []byte) error {
	g, value, err := decodeKeyJSON(data)
	if err != nil {
		return err
	}
	x, err := DecodeScalar(g, value)
	if err != nil {
		return err
	}
	k.group, k.scalar = g, x
	return nil
}

// MarshalJSON encodes the key as {"value": hex, "system": label}.
func (k *PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(keyJSON{Value: group.Hexify(k.point), System: k.group.Name()})
}

// UnmarshalJSON decodes and validates a key produced by MarshalJSON.
func (k *PublicKey) UnmarshalJSON(data []byte) error {
	g, value, err := decodeKeyJSON(data)
	if err != nil {
		return err
	}
	p, err := group.Unhexify(g, value)
	if err != nil {
		return err
	}
	k.group, k.point = g, p
	return nil
}

func decodeKeyJSON(data []byte) (group.Group, string, error) {
	var raw keyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, "", err
	}
	label, err := curves.Parse(raw.System)
	if err != nil {
		return nil, "", err
	}
	g, err := curves.New(label)
	if err != nil {
		return nil, "", err
	}
	return g, raw.Value, nil
}

// DecodeScalar parses a hex scalar of exactly the group's scalar size
// whose value is below the group order.
func DecodeScalar(g group.Group, value string) (group.Scalar, error) {
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", group.ErrInvalidEncoding, err)
	}
	return group.UnpackScalar(g, b)
}
