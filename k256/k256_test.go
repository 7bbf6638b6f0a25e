package k256

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/f3rmion/thresh/group"
)

func TestIdentityEncoding(t *testing.T) {
	g := &K256{}
	id := g.NewPoint()
	b := id.Bytes()
	if len(b) != pointSize {
		t.Fatalf("identity encodes to %d bytes", len(b))
	}
	restored, err := g.NewPoint().SetBytes(b)
	if err != nil {
		t.Fatal(err)
	}
	if !restored.IsIdentity() {
		t.Error("zero encoding should decode to the identity")
	}
}

func TestInvalidEncoding(t *testing.T) {
	g := &K256{}
	s, _ := g.RandomScalar(rand.Reader)
	P := g.NewPoint().ScalarMult(s, g.Generator())
	b := P.Bytes()

	bad := append([]byte{}, b...)
	bad[0] = 0x05
	if _, err := g.NewPoint().SetBytes(bad); err == nil {
		t.Error("bad prefix should fail")
	}
	if _, err := group.Unpack(g, b[:pointSize-1]); !errors.Is(err, group.ErrInvalidEncoding) {
		t.Errorf("got %v, want ErrInvalidEncoding", err)
	}
}

func TestValidate(t *testing.T) {
	g := &K256{}
	s, _ := g.RandomScalar(rand.Reader)
	P := g.NewPoint().ScalarMult(s, g.Generator())
	if err := g.Validate(P); err != nil {
		t.Errorf("valid point rejected: %v", err)
	}
	if err := g.Validate(nil); !errors.Is(err, group.ErrGroupMismatch) {
		t.Errorf("got %v, want ErrGroupMismatch", err)
	}
}

func TestPointSetNormalizes(t *testing.T) {
	g := &K256{}
	a, _ := g.RandomScalar(rand.Reader)
	b, _ := g.RandomScalar(rand.Reader)
	P := g.NewPoint().ScalarMult(a, g.Generator())
	Q := g.NewPoint().ScalarMult(b, g.Generator())
	sum := g.NewPoint().Add(P, Q)
	copied := g.NewPoint().Set(sum)
	if !copied.Equal(sum) {
		t.Error("copy should equal original")
	}
	if string(copied.Bytes()) != string(sum.Bytes()) {
		t.Error("equal points should encode identically")
	}
}
