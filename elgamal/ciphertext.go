package elgamal

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/f3rmion/thresh/dem"
	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/hashing"
)

// Scheme identifies how the message is encapsulated under the decryptor.
type Scheme uint8

const (
	// Plain masks a group element: α = D + M.
	Plain Scheme = iota + 1
	// Hybrid encrypts bytes under a key derived from D.
	Hybrid
	// Integrated encrypts and MACs bytes under keys derived from D.
	Integrated
)

func (s Scheme) String() string {
	switch s {
	case Plain:
		return "plain"
	case Hybrid:
		return "hybrid"
	case Integrated:
		return "integrated"
	default:
		return fmt.Sprintf("scheme(%d)", uint8(s))
	}
}

// Alpha is the scheme-specific half of a ciphertext. It is one of
// *PlainAlpha, *HybridAlpha or *IntegratedAlpha.
type Alpha interface {
	Scheme() Scheme
}

// PlainAlpha is D + M for a group-element message M.
type PlainAlpha struct {
	Point group.Point
}

// HybridAlpha is a DEM payload under a key derived from D.
type HybridAlpha struct {
	Mode    dem.Mode
	Hash    hashing.Algorithm
	Payload dem.Payload
}

// IntegratedAlpha is a DEM payload plus a MAC over it, with both keys
// derived from D.
type IntegratedAlpha struct {
	Mode    dem.Mode
	Hash    hashing.Algorithm
	Payload dem.Payload
	MAC     []byte
}

// Scheme returns Plain.
func (*PlainAlpha) Scheme() Scheme { return Plain }

// Scheme returns Hybrid.
func (*HybridAlpha) Scheme() Scheme { return Hybrid }

// Scheme returns Integrated.
func (*IntegratedAlpha) Scheme() Scheme { return Integrated }

// Ciphertext is an ElGamal pair (α, β) with β = r⋅G.
type Ciphertext struct {
	Alpha Alpha
	Beta  group.Point
}

// Scheme returns the encapsulation scheme of c.
func (c *Ciphertext) Scheme() Scheme {
	if c.Alpha == nil {
		return 0
	}
	return c.Alpha.Scheme()
}

// ID identifies the ciphertext by its β. Partial decryptors depend only on
// β, so two ciphertexts sharing it share their decryptors too.
func (c *Ciphertext) ID() string {
	return group.Hexify(c.Beta)
}

type rawCiphertext struct {
	System  string       `cbor:"1,keyasint"`
	Scheme  uint8        `cbor:"2,keyasint"`
	Beta    []byte       `cbor:"3,keyasint"`
	Point   []byte       `cbor:"4,keyasint,omitempty"`
	Mode    string       `cbor:"5,keyasint,omitempty"`
	Hash    string       `cbor:"6,keyasint,omitempty"`
	Payload *dem.Payload `cbor:"7,keyasint,omitempty"`
	MAC     []byte       `cbor:"8,keyasint,omitempty"`
}

// Marshal encodes c as CBOR.
func (c *Ciphertext) Marshal(g group.Group) ([]byte, error) {
	raw := rawCiphertext{System: g.Name(), Scheme: uint8(c.Scheme()), Beta: group.Pack(c.Beta)}
	switch a := c.Alpha.(type) {
	case *PlainAlpha:
		raw.Point = group.Pack(a.Point)
	case *HybridAlpha:
		raw.Mode, raw.Hash = string(a.Mode), string(a.Hash)
		raw.Payload = &a.Payload
	case *IntegratedAlpha:
		raw.Mode, raw.Hash = string(a.Mode), string(a.Hash)
		raw.Payload = &a.Payload
		raw.MAC = a.MAC
	default:
		return nil, fmt.Errorf("%w: %T", ErrSchemeMismatch, c.Alpha)
	}
	return cbor.Marshal(raw)
}

// UnmarshalCiphertext decodes a ciphertext for g, validating its points.
func UnmarshalCiphertext(g group.Group, data []byte) (*Ciphertext, error) {
	var raw rawCiphertext
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("elgamal: decoding ciphertext: %w", err)
	}
	if raw.System != g.Name() {
		return nil, fmt.Errorf("%w: ciphertext for %q, want %q", group.ErrGroupMismatch, raw.System, g.Name())
	}
	beta, err := group.Unpack(g, raw.Beta)
	if err != nil {
		return nil, fmt.Errorf("elgamal: beta: %w", err)
	}
	c := &Ciphertext{Beta: beta}

	switch Scheme(raw.Scheme) {
	case Plain:
		p, err := group.Unpack(g, raw.Point)
		if err != nil {
			return nil, fmt.Errorf("elgamal: alpha: %w", err)
		}
		c.Alpha = &PlainAlpha{Point: p}
	case Hybrid, Integrated:
		mode, err := dem.Parse(raw.Mode)
		if err != nil {
			return nil, err
		}
		alg, err := hashing.Parse(raw.Hash)
		if err != nil {
			return nil, err
		}
		if raw.Payload == nil {
			return nil, fmt.Errorf("%w: missing payload", dem.ErrMalformed)
		}
		if Scheme(raw.Scheme) == Hybrid {
			c.Alpha = &HybridAlpha{Mode: mode, Hash: alg, Payload: *raw.Payload}
		} else {
			c.Alpha = &IntegratedAlpha{Mode: mode, Hash: alg, Payload: *raw.Payload, MAC: raw.MAC}
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrSchemeMismatch, raw.Scheme)
	}
	return c, nil
}
