package elgamal

import (
	"errors"
	"fmt"

	"github.com/f3rmion/thresh/dem"
	"github.com/f3rmion/thresh/group"
)

// Decryptor yields D = x⋅β for a ciphertext. It is exactly one of
// BySecret, ByRandomness or ByDecryptor.
type Decryptor interface {
	decryptor(g group.Group, beta group.Point) (group.Point, error)
}

// BySecret derives D = x⋅β from the private key.
type BySecret struct {
	Key *PrivateKey
}

// ByRandomness derives D = r⋅Y from the encryption randomness and the
// recipient's public key.
type ByRandomness struct {
	Randomness group.Scalar
	Public     *PublicKey
}

// ByDecryptor supplies D directly, typically reconstructed from partial
// decryptors.
type ByDecryptor struct {
	Point group.Point
}

func (d BySecret) decryptor(g group.Group, beta group.Point) (group.Point, error) {
	if d.Key == nil || d.Key.scalar == nil {
		return nil, errors.New("elgamal: missing private key")
	}
	if d.Key.group.Name() != g.Name() {
		return nil, group.ErrGroupMismatch
	}
	return group.Operate(g, d.Key.scalar, beta), nil
}

func (d ByRandomness) decryptor(g group.Group, beta group.Point) (group.Point, error) {
	if d.Randomness == nil {
		return nil, errors.New("elgamal: missing randomness")
	}
	if err := group.AssertScalars(g, d.Randomness); err != nil {
		return nil, err
	}
	if err := checkKey(g, d.Public); err != nil {
		return nil, err
	}
	if !group.GeneratePoint(g, d.Randomness).Equal(beta) {
		return nil, decryptionError(errors.New("randomness does not match beta"))
	}
	return group.Operate(g, d.Randomness, d.Public.point), nil
}

func (d ByDecryptor) decryptor(g group.Group, _ group.Point) (group.Point, error) {
	if d.Point == nil {
		return nil, errors.New("elgamal: missing decryptor")
	}
	if err := group.AssertValid(g, d.Point); err != nil {
		return nil, err
	}
	return d.Point, nil
}

// Decrypt recovers the message bytes. For plain ciphertexts these are the
// packed group element.
func Decrypt(g group.Group, c *Ciphertext, d Decryptor) ([]byte, error) {
	if d == nil {
		return nil, errors.New("elgamal: nil decryptor")
	}
	if err := checkCiphertext(g, c); err != nil {
		return nil, err
	}
	point, err := d.decryptor(g, c.Beta)
	if err != nil {
		return nil, err
	}

	switch a := c.Alpha.(type) {
	case *PlainAlpha:
		return group.Pack(unmask(g, a, point)), nil
	case *HybridAlpha:
		key, err := a.Hash.Derive(point.Bytes(), c.Beta.Bytes(), []byte(hybridInfo), dem.KeySize)
		if err != nil {
			return nil, decryptionError(err)
		}
		msg, err := dem.Open(a.Mode, key, &a.Payload)
		if err != nil {
			return nil, decryptionError(err)
		}
		return msg, nil
	case *IntegratedAlpha:
		encKey, macKey, err := integratedKeys(a.Hash, point, c.Beta)
		if err != nil {
			return nil, decryptionError(err)
		}
		ok, err := a.Hash.VerifyMAC(macKey, a.MAC, a.Payload.IV, a.Payload.Ciphertext, a.Payload.Tag)
		if err != nil {
			return nil, decryptionError(err)
		}
		if !ok {
			return nil, decryptionError(ErrInvalidMAC)
		}
		msg, err := dem.Open(a.Mode, encKey, &a.Payload)
		if err != nil {
			return nil, decryptionError(err)
		}
		return msg, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrSchemeMismatch, c.Alpha)
	}
}

// DecryptPoint recovers the group element of a plain ciphertext.
func DecryptPoint(g group.Group, c *Ciphertext, d Decryptor) (group.Point, error) {
	if d == nil {
		return nil, errors.New("elgamal: nil decryptor")
	}
	if err := checkCiphertext(g, c); err != nil {
		return nil, err
	}
	a, ok := c.Alpha.(*PlainAlpha)
	if !ok {
		return nil, fmt.Errorf("%w: %s ciphertext", ErrSchemeMismatch, c.Scheme())
	}
	point, err := d.decryptor(g, c.Beta)
	if err != nil {
		return nil, err
	}
	return unmask(g, a, point), nil
}

func unmask(g group.Group, a *PlainAlpha, decryptor group.Point) group.Point {
	return group.Combine(g, a.Point, group.Invert(g, decryptor))
}

func checkCiphertext(g group.Group, c *Ciphertext) error {
	if c == nil || c.Alpha == nil {
		return fmt.Errorf("%w: empty ciphertext", ErrSchemeMismatch)
	}
	if err := group.AssertValid(g, c.Beta); err != nil {
		return err
	}
	if a, ok := c.Alpha.(*PlainAlpha); ok {
		return group.AssertValid(g, a.Point)
	}
	return nil
}
