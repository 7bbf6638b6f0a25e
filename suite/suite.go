// Package suite bundles the collaborators every protocol needs: the
// group, the hash algorithm, the symmetric cipher mode, the randomness
// source and the logger.
//
// A Suite is passed explicitly to every operation that hashes, samples or
// logs, so two suites with different algorithms can be used side by side
// in one process. A Suite is immutable after New returns and safe for
// concurrent use as long as its Rand is.
package suite

import (
	"crypto/rand"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/f3rmion/thresh/curves"
	"github.com/f3rmion/thresh/dem"
	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/hashing"
)

// Suite carries the cryptographic context of one system label.
type Suite struct {
	Group  group.Group
	Hash   hashing.Algorithm
	Mode   dem.Mode
	Rand   io.Reader
	Logger *zap.Logger
}

// Option configures a Suite.
type Option func(*Suite) error

// WithHash selects the hash algorithm for challenges and key derivation.
func WithHash(a hashing.Algorithm) Option {
	return func(s *Suite) error {
		if _, err := a.New(); err != nil {
			return err
		}
		s.Hash = a
		return nil
	}
}

// WithMode selects the symmetric cipher mode for hybrid encryption.
func WithMode(m dem.Mode) Option {
	return func(s *Suite) error {
		parsed, err := dem.Parse(string(m))
		if err != nil {
			return err
		}
		s.Mode = parsed
		return nil
	}
}

// WithRand replaces crypto/rand.Reader as the randomness source.
func WithRand(r io.Reader) Option {
	return func(s *Suite) error {
		if r == nil {
			return errors.New("suite: nil randomness source")
		}
		s.Rand = r
		return nil
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Suite) error {
		if l == nil {
			return errors.New("suite: nil logger")
		}
		s.Logger = l
		return nil
	}
}

// New builds a Suite for label.
func New(label curves.Label, opts ...Option) (*Suite, error) {
	g, err := curves.New(label)
	if err != nil {
		return nil, err
	}
	return FromGroup(g, opts...)
}

// FromGroup builds a Suite around an already constructed group.
func FromGroup(g group.Group, opts ...Option) (*Suite, error) {
	s := &Suite{
		Group:  g,
		Hash:   hashing.Default,
		Mode:   dem.Default,
		Rand:   rand.Reader,
		Logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Label returns the system label of the suite's group.
func (s *Suite) Label() curves.Label {
	return curves.Label(s.Group.Name())
}

// RandomScalar draws a scalar from the suite's randomness source.
func (s *Suite) RandomScalar() (group.Scalar, error) {
	return s.Group.RandomScalar(s.Rand)
}

// RandomScalars draws n independent scalars.
func (s *Suite) RandomScalars(n int) ([]group.Scalar, error) {
	out := make([]group.Scalar, n)
	for i := range out {
		r, err := s.RandomScalar()
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}
