// Package curves maps system labels to the concrete groups that back them.
//
// The set of labels is closed: [New] fails with [ErrUnsupportedLabel] for
// anything else, before any cryptographic operation is attempted.
package curves

import (
	"errors"
	"fmt"

	"github.com/f3rmion/thresh/bjj"
	"github.com/f3rmion/thresh/ed25519"
	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/k256"
)

// ErrUnsupportedLabel is returned for labels outside the closed set.
var ErrUnsupportedLabel = errors.New("curves: unsupported system label")

// Label identifies a supported group.
type Label string

const (
	// BabyJubjub is the twisted Edwards curve over the BN254 scalar field.
	BabyJubjub Label = bjj.Name
	// Secp256k1 is the Koblitz curve used by Bitcoin.
	Secp256k1 Label = k256.Name
	// Ed25519 is the prime-order subgroup of edwards25519.
	Ed25519 Label = ed25519.Name

	// Default is used when no label is configured.
	Default = Ed25519
)

// Labels returns every supported label.
func Labels() []Label {
	return []Label{BabyJubjub, Secp256k1, Ed25519}
}

// String implements fmt.Stringer.
func (l Label) String() string {
	return string(l)
}

// Parse validates a label read from configuration or a serialized key.
func Parse(s string) (Label, error) {
	l := Label(s)
	for _, known := range Labels() {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLabel, s)
}

// New returns the group registered under label.
func New(label Label) (group.Group, error) {
	switch label {
	case BabyJubjub:
		return &bjj.BJJ{}, nil
	case Secp256k1:
		return &k256.K256{}, nil
	case Ed25519:
		return &ed25519.Ed25519{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedLabel, string(label))
}

// MustNew is like New but panics on an unsupported label. It is meant for
// package-level variables and tests.
func MustNew(label Label) group.Group {
	g, err := New(label)
	if err != nil {
		panic(err)
	}
	return g
}
