package sigma

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/hashing"
)

type rawProof struct {
	System      string   `cbor:"1,keyasint"`
	Algorithm   string   `cbor:"2,keyasint"`
	Commitments [][]byte `cbor:"3,keyasint"`
	Response    [][]byte `cbor:"4,keyasint"`
}

// Marshal encodes p as CBOR with points in canonical form and scalars
// little-endian.
func (p *Proof) Marshal(g group.Group) ([]byte, error) {
	raw := rawProof{
		System:      g.Name(),
		Algorithm:   string(p.Algorithm),
		Commitments: make([][]byte, len(p.Commitments)),
		Response:    make([][]byte, len(p.Response)),
	}
	for i, c := range p.Commitments {
		raw.Commitments[i] = group.Pack(c)
	}
	for i, z := range p.Response {
		raw.Response[i] = group.ScalarToLEBytes(z)
	}
	return cbor.Marshal(raw)
}

// UnmarshalProof decodes a proof for g. Points are validated on decoding
// and responses must be canonical, below the group order.
func UnmarshalProof(g group.Group, data []byte) (*Proof, error) {
	var raw rawProof
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("sigma: decoding proof: %w", err)
	}
	if raw.System != g.Name() {
		return nil, fmt.Errorf("%w: proof for %q, want %q", group.ErrGroupMismatch, raw.System, g.Name())
	}
	alg, err := hashing.Parse(raw.Algorithm)
	if err != nil {
		return nil, err
	}
	p := &Proof{
		Algorithm:   alg,
		Commitments: make([]group.Point, len(raw.Commitments)),
		Response:    make([]group.Scalar, len(raw.Response)),
	}
	for i, b := range raw.Commitments {
		if p.Commitments[i], err = group.Unpack(g, b); err != nil {
			return nil, fmt.Errorf("sigma: commitment %d: %w", i, err)
		}
	}
	for i, b := range raw.Response {
		if p.Response[i], err = group.UnpackScalarLE(g, b); err != nil {
			return nil, fmt.Errorf("sigma: response %d: %w", i, err)
		}
	}
	return p, nil
}
