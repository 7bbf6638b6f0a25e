package dkg

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/f3rmion/thresh/elgamal"
	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/sigma"
	"github.com/f3rmion/thresh/suite"
	"github.com/f3rmion/thresh/threshold"
	"github.com/f3rmion/thresh/vss"
)

var (
	// ErrInvalidProof is returned when a dealer's proof of knowledge of its
	// constant term does not verify.
	ErrInvalidProof = errors.New("dkg: invalid proof of knowledge")
	// ErrCeremonyMismatch is returned for messages from another ceremony.
	ErrCeremonyMismatch = errors.New("dkg: message from another ceremony")
	// ErrUnknownParticipant is returned for indexes outside 1..n.
	ErrUnknownParticipant = errors.New("dkg: unknown participant")
	// ErrDuplicateMessage is returned when a dealer sends twice.
	ErrDuplicateMessage = errors.New("dkg: duplicate message")
	// ErrMissingBroadcast is returned when a share arrives before the
	// sender's commitments.
	ErrMissingBroadcast = errors.New("dkg: missing broadcast from sender")
	// ErrIncomplete is returned by Finalize before every dealer was heard.
	ErrIncomplete = errors.New("dkg: not all participants contributed")
)

// Params fixes one ceremony: its identifier, the threshold t and the
// number of participants n.
type Params struct {
	Ceremony  uuid.UUID
	Threshold int
	Total     int
}

func (p Params) validate() error {
	if p.Threshold < 1 || p.Threshold > p.Total {
		return fmt.Errorf("%w: t=%d, n=%d", vss.ErrInvalidThreshold, p.Threshold, p.Total)
	}
	return nil
}

// Round1Data is broadcast by each participant in round 1.
type Round1Data struct {
	Ceremony    uuid.UUID
	Index       int
	Commitments []group.Point // Feldman commitments, C₀ first
	Proof       *sigma.Proof  // knowledge of log C₀
}

// Round1PrivateData is sent privately from one participant to another.
type Round1PrivateData struct {
	Ceremony uuid.UUID
	From     int
	To       int
	Share    group.Scalar // f_From(To)
}

// Participant holds one party's state during the ceremony.
type Participant struct {
	suite  *suite.Suite
	params Params
	index  int

	dist       *vss.Distribution
	broadcasts map[int]*Round1Data
	shares     map[int]group.Scalar
}

// NewParticipant deals a fresh random secret for participant index.
func NewParticipant(s *suite.Suite, params Params, index int) (*Participant, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if index < 1 || index > params.Total {
		return nil, fmt.Errorf("%w: %d", ErrUnknownParticipant, index)
	}
	secret, err := s.RandomScalar()
	if err != nil {
		return nil, err
	}
	dist, err := vss.ShareSecret(s, secret, params.Total, params.Threshold, nil)
	if err != nil {
		return nil, err
	}
	p := &Participant{
		suite:      s,
		params:     params,
		index:      index,
		dist:       dist,
		broadcasts: make(map[int]*Round1Data),
		shares:     make(map[int]group.Scalar),
	}
	// our own contribution
	p.shares[index] = dist.Shares[index-1].Value
	return p, nil
}

// Index returns the participant's index.
func (p *Participant) Index() int {
	return p.index
}

// proofNonce binds a proof of knowledge to the ceremony and the dealer.
func proofNonce(ceremony uuid.UUID, index int) []byte {
	nonce := make([]byte, 0, len(ceremony)+4)
	nonce = append(nonce, ceremony[:]...)
	return binary.BigEndian.AppendUint32(nonce, uint32(index))
}

// Round1Broadcast returns the commitments and proof to send to everyone.
func (p *Participant) Round1Broadcast() (*Round1Data, error) {
	proof, err := sigma.ProveDlog(p.suite, p.dist.Secret(), p.suite.Group.Generator(),
		p.dist.PublicKey(), proofNonce(p.params.Ceremony, p.index))
	if err != nil {
		return nil, err
	}
	b := &Round1Data{
		Ceremony:    p.params.Ceremony,
		Index:       p.index,
		Commitments: p.dist.Commitments,
		Proof:       proof,
	}
	p.broadcasts[p.index] = b
	return b, nil
}

// Round1PrivateSend returns the share for recipient.
func (p *Participant) Round1PrivateSend(recipient int) (*Round1PrivateData, error) {
	if recipient < 1 || recipient > p.params.Total {
		return nil, fmt.Errorf("%w: %d", ErrUnknownParticipant, recipient)
	}
	return &Round1PrivateData{
		Ceremony: p.params.Ceremony,
		From:     p.index,
		To:       recipient,
		Share:    p.dist.Shares[recipient-1].Value,
	}, nil
}

// ReceiveBroadcast verifies and stores another participant's commitments.
func (p *Participant) ReceiveBroadcast(b *Round1Data) error {
	g := p.suite.Group
	if b.Ceremony != p.params.Ceremony {
		return ErrCeremonyMismatch
	}
	if b.Index < 1 || b.Index > p.params.Total {
		return fmt.Errorf("%w: %d", ErrUnknownParticipant, b.Index)
	}
	if b.Index == p.index {
		return nil
	}
	if _, ok := p.broadcasts[b.Index]; ok {
		return fmt.Errorf("%w: broadcast from %d", ErrDuplicateMessage, b.Index)
	}
	if len(b.Commitments) != p.params.Threshold {
		return fmt.Errorf("dkg: participant %d sent %d commitments, want %d", b.Index, len(b.Commitments), p.params.Threshold)
	}
	if err := group.AssertValid(g, b.Commitments...); err != nil {
		return fmt.Errorf("dkg: participant %d: %w", b.Index, err)
	}
	ok, err := sigma.VerifyDlog(g, g.Generator(), b.Commitments[0], b.Proof, proofNonce(b.Ceremony, b.Index))
	if err != nil {
		return fmt.Errorf("%w: participant %d: %v", ErrInvalidProof, b.Index, err)
	}
	if !ok {
		return fmt.Errorf("%w: participant %d", ErrInvalidProof, b.Index)
	}
	p.broadcasts[b.Index] = b
	return nil
}

// ReceiveShare verifies a private share against its sender's commitments
// and stores it. The sender's broadcast must have been received first.
func (p *Participant) ReceiveShare(d *Round1PrivateData) error {
	if d.Ceremony != p.params.Ceremony {
		return ErrCeremonyMismatch
	}
	if d.To != p.index {
		return fmt.Errorf("dkg: share addressed to %d, not %d", d.To, p.index)
	}
	if d.From == p.index {
		return nil
	}
	b, ok := p.broadcasts[d.From]
	if !ok {
		return fmt.Errorf("%w: %d", ErrMissingBroadcast, d.From)
	}
	if _, ok := p.shares[d.From]; ok {
		return fmt.Errorf("%w: share from %d", ErrDuplicateMessage, d.From)
	}
	share := vss.Share{Index: p.index, Value: d.Share}
	if err := vss.VerifyFeldman(p.suite.Group, share, b.Commitments); err != nil {
		return fmt.Errorf("dkg: share from participant %d: %w", d.From, err)
	}
	p.shares[d.From] = d.Share
	return nil
}

// Result is a participant's output of a completed ceremony.
type Result struct {
	Share        *threshold.PrivateShare
	Public       *elgamal.PublicKey
	PublicShares []*threshold.PublicShare
}

// Finalize sums the received shares into this participant's key share and
// derives the group key and every participant's public share.
func (p *Participant) Finalize() (*Result, error) {
	g := p.suite.Group
	if len(p.broadcasts) != p.params.Total || len(p.shares) != p.params.Total {
		return nil, fmt.Errorf("%w: %d broadcasts, %d shares of %d",
			ErrIncomplete, len(p.broadcasts), len(p.shares), p.params.Total)
	}

	secret := g.NewScalar()
	for _, s := range p.shares {
		secret = g.NewScalar().Add(secret, s)
	}

	broadcasts := make([]*Round1Data, 0, len(p.broadcasts))
	for _, b := range p.broadcasts {
		broadcasts = append(broadcasts, b)
	}
	groupKey := GroupKey(g, broadcasts)
	pub, err := elgamal.NewPublicKey(g, groupKey)
	if err != nil {
		return nil, err
	}

	publicShares := make([]*threshold.PublicShare, p.params.Total)
	for j := range publicShares {
		point, err := PublicShare(g, broadcasts, j+1)
		if err != nil {
			return nil, err
		}
		if publicShares[j], err = threshold.NewPublicShare(g, j+1, point); err != nil {
			return nil, err
		}
	}

	share := threshold.NewPrivateShare(g, p.index, secret)
	if !share.Public().Value.Equal(publicShares[p.index-1].Value) {
		return nil, errors.New("dkg: key share does not match commitments")
	}
	return &Result{Share: share, Public: pub, PublicShares: publicShares}, nil
}

// GroupKey is the sum of every dealer's C₀.
func GroupKey(g group.Group, broadcasts []*Round1Data) group.Point {
	points := make([]group.Point, len(broadcasts))
	for i, b := range broadcasts {
		points[i] = b.Commitments[0]
	}
	return group.Sum(g, points...)
}

// PublicShare is Σ_dealers Σₖ index^k⋅Cₖ, the public key share of index.
func PublicShare(g group.Group, broadcasts []*Round1Data, index int) (group.Point, error) {
	points := make([]group.Point, len(broadcasts))
	for i, b := range broadcasts {
		p, err := vss.EvaluateCommitments(g, b.Commitments, index)
		if err != nil {
			return nil, err
		}
		points[i] = p
	}
	return group.Sum(g, points...), nil
}
