package vss

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/f3rmion/thresh/group"
)

type rawCommitments struct {
	System string   `cbor:"1,keyasint"`
	Points [][]byte `cbor:"2,keyasint"`
}

// MarshalCommitments encodes a commitment vector as CBOR, tagged with the
// group name.
func MarshalCommitments(g group.Group, commitments []group.Point) ([]byte, error) {
	raw := rawCommitments{System: g.Name(), Points: make([][]byte, len(commitments))}
	for i, c := range commitments {
		raw.Points[i] = group.Pack(c)
	}
	return cbor.Marshal(raw)
}

// UnmarshalCommitments decodes and validates a commitment vector produced
// by MarshalCommitments for the same group.
func UnmarshalCommitments(g group.Group, data []byte) ([]group.Point, error) {
	var raw rawCommitments
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("vss: decoding commitments: %w", err)
	}
	if raw.System != g.Name() {
		return nil, fmt.Errorf("%w: commitments for %q, want %q", group.ErrGroupMismatch, raw.System, g.Name())
	}
	out := make([]group.Point, len(raw.Points))
	for i, b := range raw.Points {
		p, err := group.Unpack(g, b)
		if err != nil {
			return nil, fmt.Errorf("vss: commitment %d: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}
