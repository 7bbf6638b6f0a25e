package threshold

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/sigma"
)

type rawPartial struct {
	System string `cbor:"1,keyasint"`
	Index  int    `cbor:"2,keyasint"`
	Value  []byte `cbor:"3,keyasint"`
	Proof  []byte `cbor:"4,keyasint"`
}

// Marshal encodes the partial decryptor and its proof as CBOR.
func (p *PartialDecryptor) Marshal(g group.Group) ([]byte, error) {
	if p.Proof == nil {
		return nil, fmt.Errorf("threshold: partial decryptor %d has no proof", p.Index)
	}
	proof, err := p.Proof.Marshal(g)
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(rawPartial{System: g.Name(), Index: p.Index, Value: group.Pack(p.Value), Proof: proof})
}

// UnmarshalPartialDecryptor decodes a partial decryptor for g. The proof
// is decoded but not verified.
func UnmarshalPartialDecryptor(g group.Group, data []byte) (*PartialDecryptor, error) {
	var raw rawPartial
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("threshold: decoding partial decryptor: %w", err)
	}
	if raw.System != g.Name() {
		return nil, fmt.Errorf("%w: partial decryptor for %q, want %q", group.ErrGroupMismatch, raw.System, g.Name())
	}
	value, err := group.Unpack(g, raw.Value)
	if err != nil {
		return nil, fmt.Errorf("threshold: partial decryptor %d: %w", raw.Index, err)
	}
	proof, err := sigma.UnmarshalProof(g, raw.Proof)
	if err != nil {
		return nil, err
	}
	return &PartialDecryptor{Index: raw.Index, Value: value, Proof: proof}, nil
}
