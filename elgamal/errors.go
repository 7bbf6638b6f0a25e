package elgamal

import "errors"

var (
	// ErrDecryption is the single category every decapsulation failure is
	// reported under.
	ErrDecryption = errors.New("elgamal: decryption failed")
	// ErrInvalidMAC is the cause recorded when an integrated ciphertext
	// fails authentication.
	ErrInvalidMAC = errors.New("elgamal: invalid MAC")
	// ErrSchemeMismatch is returned when an operation does not apply to the
	// ciphertext's encapsulation scheme.
	ErrSchemeMismatch = errors.New("elgamal: wrong encapsulation scheme")
	// ErrNotGroupElement is returned when plain encryption is asked to
	// encrypt something that is not a valid element of the key's group.
	ErrNotGroupElement = errors.New("elgamal: message is not a group element")
)

// DecryptionError carries the underlying cause of a failed decryption.
// Its message does not depend on the cause.
type DecryptionError struct {
	Cause error
}

func (e *DecryptionError) Error() string {
	return ErrDecryption.Error()
}

// Unwrap returns the cause.
func (e *DecryptionError) Unwrap() error {
	return e.Cause
}

// Is matches ErrDecryption.
func (e *DecryptionError) Is(target error) bool {
	return target == ErrDecryption
}

func decryptionError(cause error) error {
	return &DecryptionError{Cause: cause}
}
