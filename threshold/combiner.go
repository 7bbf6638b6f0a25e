package threshold

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/f3rmion/thresh/elgamal"
	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/suite"
	"github.com/f3rmion/thresh/vss"
)

// Combiner turns partial decryptors from at least t trustees into a
// decryption. It holds no state besides its configuration and is safe for
// concurrent use.
type Combiner struct {
	group     group.Group
	threshold int
	skip      bool
	parallel  bool
	logger    *zap.Logger
}

// Option configures a Combiner.
type Option func(*Combiner)

// WithSkipThreshold disables the minimum-share check. Reconstructing from
// fewer than t shares then silently yields a wrong decryptor; it exists
// for testing and for callers that enforce the policy elsewhere.
func WithSkipThreshold() Option {
	return func(c *Combiner) {
		c.skip = true
	}
}

// WithParallelValidation verifies partial decryptor proofs concurrently.
func WithParallelValidation() Option {
	return func(c *Combiner) {
		c.parallel = true
	}
}

// NewCombiner returns a combiner for threshold t over the suite's group.
func NewCombiner(s *suite.Suite, t int, opts ...Option) (*Combiner, error) {
	if t < 1 {
		return nil, fmt.Errorf("%w: t=%d", vss.ErrInvalidThreshold, t)
	}
	c := &Combiner{group: s.Group, threshold: t, logger: s.Logger}
	for _, opt := range opts {
		opt(c)
	}
	if c.skip {
		c.logger.Warn("threshold check disabled", zap.Int("threshold", t))
	}
	return c, nil
}

// Threshold returns t.
func (c *Combiner) Threshold() int {
	return c.threshold
}

// ValidateNrShares fails with ErrInsufficientShares when fewer than t
// shares are given, unless the check was skipped.
func (c *Combiner) ValidateNrShares(n int) error {
	if n >= c.threshold {
		return nil
	}
	if c.skip {
		c.logger.Warn("reconstructing below threshold",
			zap.Int("shares", n), zap.Int("threshold", c.threshold))
		return nil
	}
	return fmt.Errorf("%w: got %d, need %d", ErrInsufficientShares, n, c.threshold)
}

// ValidationResult reports which partial decryptors passed.
type ValidationResult struct {
	OK      bool
	Indexes []int
	Valid   []*PartialDecryptor
}

// ValidatePartialDecryptors verifies the proof of every share against the
// public share with the same index. Invalid shares are reported in the
// result; with raiseOnInvalid the first one is returned as an
// *InvalidSharesError instead. A share without a public share is an error
// in either mode.
func (c *Combiner) ValidatePartialDecryptors(ct *elgamal.Ciphertext, publicShares []*PublicShare, shares []*PartialDecryptor, raiseOnInvalid bool) (*ValidationResult, error) {
	g := c.group
	if ct == nil {
		return nil, errors.New("threshold: nil ciphertext")
	}
	byIndex := make(map[int]*PublicShare, len(publicShares))
	for _, ps := range publicShares {
		if ps != nil {
			byIndex[ps.Index] = ps
		}
	}
	for _, sh := range shares {
		if sh == nil {
			return nil, errors.New("threshold: nil partial decryptor")
		}
		if _, ok := byIndex[sh.Index]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrMissingPublicShare, sh.Index)
		}
	}

	verdicts := make([]bool, len(shares))
	check := func(i int) error {
		sh := shares[i]
		if sh.Value == nil || group.AssertValid(g, sh.Value) != nil {
			return nil
		}
		// a malformed proof counts against the share, not the whole batch
		ok, err := elgamal.VerifyDecryptor(g, ct, byIndex[sh.Index].Value, sh.Value, sh.Proof, nil)
		if err != nil {
			c.logger.Debug("partial decryptor proof malformed", zap.Int("index", sh.Index), zap.Error(err))
			return nil
		}
		verdicts[i] = ok
		return nil
	}

	if c.parallel {
		var eg errgroup.Group
		for i := range shares {
			eg.Go(func() error { return check(i) })
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range shares {
			if err := check(i); err != nil {
				return nil, err
			}
			if raiseOnInvalid && !verdicts[i] {
				break
			}
		}
	}

	res := &ValidationResult{OK: true}
	for i, sh := range shares {
		if verdicts[i] {
			res.Valid = append(res.Valid, sh)
			continue
		}
		res.OK = false
		res.Indexes = append(res.Indexes, sh.Index)
		if raiseOnInvalid {
			c.logger.Warn("rejected partial decryptor", zap.Int("index", sh.Index))
			return nil, &InvalidSharesError{Indexes: []int{sh.Index}}
		}
	}
	sort.Ints(res.Indexes)
	if !res.OK {
		c.logger.Warn("rejected partial decryptors", zap.Ints("indexes", res.Indexes))
	}
	return res, nil
}

// ReconstructDecryptor combines λᵢ⋅Dᵢ over the given shares into x⋅β
// without reconstructing x.
func (c *Combiner) ReconstructDecryptor(shares []*PartialDecryptor) (group.Point, error) {
	if err := c.ValidateNrShares(len(shares)); err != nil {
		return nil, err
	}
	points := make([]vss.PointShare, len(shares))
	for i, sh := range shares {
		if sh == nil {
			return nil, errors.New("threshold: nil partial decryptor")
		}
		points[i] = vss.PointShare{Index: sh.Index, Value: sh.Value}
	}
	d, err := vss.ReconstructPoint(c.group, points)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("reconstructed decryptor", zap.Int("shares", len(shares)))
	return d, nil
}

// ReconstructPublic recovers the combined public key from public shares.
func (c *Combiner) ReconstructPublic(shares []*PublicShare) (*elgamal.PublicKey, error) {
	if err := c.ValidateNrShares(len(shares)); err != nil {
		return nil, err
	}
	points := make([]vss.PointShare, len(shares))
	for i, sh := range shares {
		if sh == nil {
			return nil, errors.New("threshold: nil public share")
		}
		points[i] = vss.PointShare{Index: sh.Index, Value: sh.Value}
	}
	y, err := vss.ReconstructPoint(c.group, points)
	if err != nil {
		return nil, err
	}
	return elgamal.NewPublicKey(c.group, y)
}

// Decrypt reconstructs the decryptor from shares and decrypts ct. When
// publicShares is non-nil every share's proof is checked first and any
// invalid share aborts with an *InvalidSharesError listing all of them.
func (c *Combiner) Decrypt(ct *elgamal.Ciphertext, shares []*PartialDecryptor, publicShares []*PublicShare) ([]byte, error) {
	d, err := c.decryptor(ct, shares, publicShares)
	if err != nil {
		return nil, err
	}
	return elgamal.Decrypt(c.group, ct, elgamal.ByDecryptor{Point: d})
}

// DecryptPoint is Decrypt for plain ciphertexts.
func (c *Combiner) DecryptPoint(ct *elgamal.Ciphertext, shares []*PartialDecryptor, publicShares []*PublicShare) (group.Point, error) {
	d, err := c.decryptor(ct, shares, publicShares)
	if err != nil {
		return nil, err
	}
	return elgamal.DecryptPoint(c.group, ct, elgamal.ByDecryptor{Point: d})
}

func (c *Combiner) decryptor(ct *elgamal.Ciphertext, shares []*PartialDecryptor, publicShares []*PublicShare) (group.Point, error) {
	if err := c.ValidateNrShares(len(shares)); err != nil {
		return nil, err
	}
	if publicShares != nil {
		res, err := c.ValidatePartialDecryptors(ct, publicShares, shares, false)
		if err != nil {
			return nil, err
		}
		if !res.OK {
			return nil, &InvalidSharesError{Indexes: res.Indexes}
		}
	}
	return c.ReconstructDecryptor(shares)
}
