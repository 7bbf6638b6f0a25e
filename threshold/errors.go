package threshold

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientShares is returned when fewer shares than the
	// threshold are supplied and the check is enforced.
	ErrInsufficientShares = errors.New("threshold: fewer shares than threshold")
	// ErrMissingPublicShare is returned when a partial decryptor has no
	// public share with the same index.
	ErrMissingPublicShare = errors.New("threshold: no public share for index")
	// ErrInvalidPartialDecryptor is matched by every *InvalidSharesError.
	ErrInvalidPartialDecryptor = errors.New("threshold: invalid partial decryptor")
)

// InvalidSharesError lists the indexes whose partial decryptors failed
// proof verification, so the caller can re-solicit them.
type InvalidSharesError struct {
	Indexes []int
}

func (e *InvalidSharesError) Error() string {
	return fmt.Sprintf("%s: indexes %v", ErrInvalidPartialDecryptor, e.Indexes)
}

// Unwrap returns ErrInvalidPartialDecryptor.
func (e *InvalidSharesError) Unwrap() error {
	return ErrInvalidPartialDecryptor
}
