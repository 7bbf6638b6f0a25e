package session

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/f3rmion/thresh/elgamal"
	"github.com/f3rmion/thresh/threshold"
)

// ErrAlreadyAnswered is returned when a trustee is asked twice to decrypt
// the same ciphertext.
var ErrAlreadyAnswered = errors.New("decryption request already answered")

// requestLog remembers which ciphertexts a trustee has answered.
type requestLog struct {
	mu       sync.Mutex
	answered map[string]struct{}
}

// claim marks id as answered and reports whether it was new.
func (l *requestLog) claim(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.answered == nil {
		l.answered = make(map[string]struct{})
	}
	if _, ok := l.answered[id]; ok {
		return false
	}
	l.answered[id] = struct{}{}
	return true
}

func (l *requestLog) has(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.answered[id]
	return ok
}

// PartialDecrypt produces this trustee's partial decryptor for c, with a
// proof that it matches the trustee's public share.
//
// Each ciphertext is answered at most once. The request is marked as
// answered before any work is done, so a failed attempt also consumes it.
//
// The participant must have completed key generation.
func (p *Participant) PartialDecrypt(c *elgamal.Ciphertext) (*threshold.PartialDecryptor, error) {
	if p.result == nil {
		return nil, errors.New("DKG not complete: no key share available")
	}
	if c == nil || c.Beta == nil {
		return nil, errors.New("nil ciphertext")
	}
	id := c.ID()
	if !p.requests.claim(id) {
		p.logger.Warn("refused repeated decryption request", zap.String("ciphertext", id))
		return nil, fmt.Errorf("%w: %s", ErrAlreadyAnswered, id)
	}
	pd, err := p.result.Share.PartialDecrypt(p.suite, c)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("answered decryption request", zap.String("ciphertext", id))
	return pd, nil
}

// Answered reports whether the trustee has already answered c.
func (p *Participant) Answered(c *elgamal.Ciphertext) bool {
	return p.requests.has(c.ID())
}

// Combine recombines partial decryptors collected from trustees and
// decrypts c.
//
// This is typically called by a coordinator. Every partial decryptor is
// checked against publicShares before recombination; an invalid one aborts
// with a [*threshold.InvalidSharesError] naming it.
func Combine(c *threshold.Combiner, ct *elgamal.Ciphertext, publicShares []*threshold.PublicShare, shares []*threshold.PartialDecryptor) ([]byte, error) {
	if len(shares) == 0 {
		return nil, errors.New("no partial decryptors provided")
	}
	if len(publicShares) == 0 {
		return nil, errors.New("no public shares provided")
	}
	return c.Decrypt(ct, shares, publicShares)
}

// QuickDecrypt performs a complete threshold decryption when the trustees
// are local.
//
// This is useful for testing or single-machine setups where all trustees
// are in the same process. For distributed decryption, collect
// [Participant.PartialDecrypt] outputs and call [Combine].
func QuickDecrypt(c *threshold.Combiner, ct *elgamal.Ciphertext, trustees []*Participant) ([]byte, error) {
	if len(trustees) == 0 {
		return nil, errors.New("no trustees provided")
	}
	var publicShares []*threshold.PublicShare
	shares := make([]*threshold.PartialDecryptor, len(trustees))
	for i, t := range trustees {
		pd, err := t.PartialDecrypt(ct)
		if err != nil {
			return nil, fmt.Errorf("trustee %d: %w", t.Index(), err)
		}
		shares[i] = pd
		if publicShares == nil {
			publicShares = t.result.PublicShares
		}
	}
	return Combine(c, ct, publicShares, shares)
}
