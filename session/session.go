package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/f3rmion/thresh/dkg"
	"github.com/f3rmion/thresh/elgamal"
	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/suite"
	"github.com/f3rmion/thresh/threshold"
)

// Participant manages a single trustee's state through a key generation
// ceremony and the decryption requests that follow. Create instances using
// [NewParticipant].
type Participant struct {
	index  int
	suite  *suite.Suite
	params dkg.Params
	logger *zap.Logger

	dkgState  *dkg.Participant
	result    *DKGResult
	finalized bool

	requests requestLog
}

// DKGResult contains the output of a successful ceremony.
type DKGResult struct {
	// Share is this trustee's share of the decryption key.
	// Store this securely; it is required for partial decryption.
	Share *threshold.PrivateShare

	// Public is the group encryption key, the same for every trustee.
	Public *elgamal.PublicKey

	// PublicShares holds xⱼ⋅G for every trustee j, ordered by index.
	// The combiner checks partial decryptors against them.
	PublicShares []*threshold.PublicShare
}

// Round1Output contains all messages generated during round 1.
type Round1Output struct {
	// Broadcast is the public commitment that must be sent to all participants.
	Broadcast *dkg.Round1Data

	// PrivateShares maps recipient index to their private share.
	// Each share must be sent to its recipient over a secure, authenticated channel.
	PrivateShares map[int]*dkg.Round1PrivateData
}

// Round1Input contains all messages received during round 1.
type Round1Input struct {
	// Broadcasts contains the public commitments from all participants.
	// This participant's own broadcast may be included.
	Broadcasts []*dkg.Round1Data

	// PrivateShares contains the private shares sent TO this participant
	// from all other participants.
	PrivateShares []*dkg.Round1PrivateData
}

// NewParticipant creates a trustee for the ceremony described by params.
//
// Parameters:
//   - s: the suite fixing group, hash, cipher mode, randomness and logger
//   - params: ceremony id, threshold t and number of trustees n
//   - index: this trustee's index (1 to n)
func NewParticipant(s *suite.Suite, params dkg.Params, index int) (*Participant, error) {
	if index < 1 || index > params.Total {
		return nil, fmt.Errorf("participant index must be between 1 and %d, got %d", params.Total, index)
	}
	if params.Threshold < 1 || params.Threshold > params.Total {
		return nil, fmt.Errorf("invalid threshold %d of %d", params.Threshold, params.Total)
	}
	if params.Ceremony == uuid.Nil {
		return nil, errors.New("ceremony id required")
	}
	return &Participant{
		index:  index,
		suite:  s,
		params: params,
		logger: s.Logger.With(zap.Int("trustee", index), zap.Stringer("ceremony", params.Ceremony)),
	}, nil
}

// Index returns this participant's index.
func (p *Participant) Index() int {
	return p.index
}

// Params returns the ceremony parameters.
func (p *Participant) Params() dkg.Params {
	return p.params
}

// Result returns the ceremony output, or nil before completion.
func (p *Participant) Result() *DKGResult {
	return p.result
}

// GenerateRound1 generates all round 1 messages.
//
// This creates:
//   - A public broadcast with commitments and a proof of knowledge
//   - Private shares for each other participant in recipients
func (p *Participant) GenerateRound1(recipients []int) (*Round1Output, error) {
	if p.dkgState != nil {
		return nil, errors.New("round 1 already generated")
	}
	if p.finalized {
		return nil, errors.New("DKG already finalized")
	}

	state, err := dkg.NewParticipant(p.suite, p.params, p.index)
	if err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	broadcast, err := state.Round1Broadcast()
	if err != nil {
		return nil, err
	}

	privateShares := make(map[int]*dkg.Round1PrivateData)
	for _, to := range recipients {
		if to == p.index {
			continue
		}
		share, err := state.Round1PrivateSend(to)
		if err != nil {
			return nil, err
		}
		privateShares[to] = share
	}
	p.dkgState = state

	return &Round1Output{
		Broadcast:     broadcast,
		PrivateShares: privateShares,
	}, nil
}

// ProcessRound1 verifies received round 1 messages and completes the
// ceremony. Every broadcast proof and every share is checked before the
// key share is computed.
//
// The input must contain broadcasts and private shares from all OTHER
// participants.
func (p *Participant) ProcessRound1(input *Round1Input) (*DKGResult, error) {
	if p.dkgState == nil {
		return nil, errors.New("must call GenerateRound1 before ProcessRound1")
	}
	if p.finalized {
		return nil, errors.New("DKG already finalized")
	}

	for _, b := range input.Broadcasts {
		if err := p.dkgState.ReceiveBroadcast(b); err != nil {
			return nil, fmt.Errorf("invalid broadcast: %w", err)
		}
	}
	for _, share := range input.PrivateShares {
		if err := p.dkgState.ReceiveShare(share); err != nil {
			return nil, fmt.Errorf("invalid share: %w", err)
		}
	}

	res, err := p.dkgState.Finalize()
	if err != nil {
		return nil, fmt.Errorf("failed to finalize DKG: %w", err)
	}

	p.result = &DKGResult{Share: res.Share, Public: res.Public, PublicShares: res.PublicShares}
	p.finalized = true
	p.dkgState = nil
	p.logger.Info("key generation complete", zap.String("public", group.Hexify(res.Public.Point())))
	return p.result, nil
}

// SetKeyShare restores a previously-saved ceremony output.
func (p *Participant) SetKeyShare(result *DKGResult) error {
	if result == nil || result.Share == nil || result.Public == nil {
		return errors.New("incomplete key share")
	}
	if result.Share.Index != p.index {
		return fmt.Errorf("key share belongs to trustee %d, not %d", result.Share.Index, p.index)
	}
	if len(result.PublicShares) >= p.index {
		want := result.PublicShares[p.index-1]
		if want.Index != p.index || !result.Share.Public().Value.Equal(want.Value) {
			return errors.New("key share does not match its public share")
		}
	}
	p.result = result
	p.finalized = true
	p.dkgState = nil
	return nil
}
