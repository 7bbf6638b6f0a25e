package dkg

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/thresh/curves"
	"github.com/f3rmion/thresh/elgamal"
	"github.com/f3rmion/thresh/group"
	"github.com/f3rmion/thresh/suite"
	"github.com/f3rmion/thresh/threshold"
	"github.com/f3rmion/thresh/vss"
)

func newParticipants(t *testing.T, s *suite.Suite, params Params) []*Participant {
	t.Helper()
	participants := make([]*Participant, params.Total)
	for i := range participants {
		p, err := NewParticipant(s, params, i+1)
		require.NoError(t, err, "participant %d", i+1)
		participants[i] = p
	}
	return participants
}

func broadcastAll(t *testing.T, participants []*Participant) []*Round1Data {
	t.Helper()
	broadcasts := make([]*Round1Data, len(participants))
	for i, p := range participants {
		b, err := p.Round1Broadcast()
		require.NoError(t, err)
		broadcasts[i] = b
	}
	return broadcasts
}

func runCeremony(t *testing.T, s *suite.Suite, params Params) []*Result {
	t.Helper()
	participants := newParticipants(t, s, params)
	broadcasts := broadcastAll(t, participants)

	for _, p := range participants {
		for _, b := range broadcasts {
			require.NoError(t, p.ReceiveBroadcast(b), "participant %d from %d", p.Index(), b.Index)
		}
	}
	for _, sender := range participants {
		for _, recipient := range participants {
			d, err := sender.Round1PrivateSend(recipient.Index())
			require.NoError(t, err)
			require.NoError(t, recipient.ReceiveShare(d), "participant %d from %d", recipient.Index(), sender.Index())
		}
	}

	results := make([]*Result, params.Total)
	for i, p := range participants {
		r, err := p.Finalize()
		require.NoError(t, err, "participant %d", p.Index())
		results[i] = r
	}
	return results
}

func TestDKGAndDecrypt(t *testing.T) {
	for _, label := range curves.Labels() {
		t.Run(label.String(), func(t *testing.T) {
			s, err := suite.New(label)
			require.NoError(t, err)
			params := Params{Ceremony: uuid.New(), Threshold: 2, Total: 3}
			results := runCeremony(t, s, params)

			t.Run("AgreeOnKeys", func(t *testing.T) {
				for _, r := range results[1:] {
					assert.True(t, r.Public.Equal(results[0].Public))
					for j, ps := range r.PublicShares {
						assert.True(t, ps.Value.Equal(results[0].PublicShares[j].Value))
					}
				}
				for i, r := range results {
					assert.Equal(t, i+1, r.Share.Index)
					assert.True(t, r.Share.Public().Value.Equal(r.PublicShares[i].Value))
				}
			})

			t.Run("SharesReconstructGroupKey", func(t *testing.T) {
				shares := make([]vss.Share, 0, params.Threshold)
				for _, r := range results[:params.Threshold] {
					shares = append(shares, vss.Share{Index: r.Share.Index, Value: r.Share.Value})
				}
				secret, err := vss.ReconstructSecret(s.Group, shares)
				require.NoError(t, err)
				assert.True(t, group.GeneratePoint(s.Group, secret).Equal(results[0].Public.Point()))
			})

			t.Run("ThresholdDecrypt", func(t *testing.T) {
				msg := []byte("jointly generated key")
				enc, err := elgamal.EncryptHybrid(s, results[0].Public, msg)
				require.NoError(t, err)

				c, err := threshold.NewCombiner(s, params.Threshold)
				require.NoError(t, err)
				partials := make([]*threshold.PartialDecryptor, 0, params.Threshold)
				for _, r := range []*Result{results[2], results[0]} {
					pd, err := r.Share.PartialDecrypt(s, enc.Ciphertext)
					require.NoError(t, err)
					partials = append(partials, pd)
				}
				got, err := c.Decrypt(enc.Ciphertext, partials, results[0].PublicShares)
				require.NoError(t, err)
				assert.Equal(t, msg, got)

				_, err = c.Decrypt(enc.Ciphertext, partials[:1], results[0].PublicShares)
				assert.ErrorIs(t, err, threshold.ErrInsufficientShares)
			})
		})
	}
}

func TestDifferentThresholds(t *testing.T) {
	s, err := suite.New(curves.BabyJubjub)
	require.NoError(t, err)
	for _, tc := range []struct{ t, n int }{{1, 1}, {1, 3}, {3, 3}, {3, 5}, {4, 7}} {
		params := Params{Ceremony: uuid.New(), Threshold: tc.t, Total: tc.n}
		results := runCeremony(t, s, params)
		c, err := threshold.NewCombiner(s, tc.t)
		require.NoError(t, err)
		pub, err := c.ReconstructPublic(results[0].PublicShares[:tc.t])
		require.NoError(t, err, "t=%d n=%d", tc.t, tc.n)
		assert.True(t, pub.Equal(results[0].Public), "t=%d n=%d", tc.t, tc.n)
	}
}

func TestInvalidParams(t *testing.T) {
	s, err := suite.New(curves.Default)
	require.NoError(t, err)
	for _, params := range []Params{
		{Threshold: 0, Total: 3},
		{Threshold: 4, Total: 3},
	} {
		_, err := NewParticipant(s, params, 1)
		assert.ErrorIs(t, err, vss.ErrInvalidThreshold)
	}
	params := Params{Threshold: 2, Total: 3}
	for _, index := range []int{0, 4} {
		_, err := NewParticipant(s, params, index)
		assert.ErrorIs(t, err, ErrUnknownParticipant)
	}
}

func TestRejectsBadMessages(t *testing.T) {
	s, err := suite.New(curves.Secp256k1)
	require.NoError(t, err)
	params := Params{Ceremony: uuid.New(), Threshold: 2, Total: 3}

	t.Run("WrongCeremony", func(t *testing.T) {
		ps := newParticipants(t, s, params)
		other := newParticipants(t, s, Params{Ceremony: uuid.New(), Threshold: 2, Total: 3})
		b := broadcastAll(t, other)
		assert.ErrorIs(t, ps[0].ReceiveBroadcast(b[1]), ErrCeremonyMismatch)
	})

	t.Run("ProofBoundToIndex", func(t *testing.T) {
		ps := newParticipants(t, s, params)
		b := broadcastAll(t, ps)
		replayed := *b[1]
		replayed.Index = 3
		assert.ErrorIs(t, ps[0].ReceiveBroadcast(&replayed), ErrInvalidProof)
	})

	t.Run("CommitmentCount", func(t *testing.T) {
		ps := newParticipants(t, s, params)
		b := broadcastAll(t, ps)
		short := *b[1]
		short.Commitments = short.Commitments[:1]
		assert.Error(t, ps[0].ReceiveBroadcast(&short))
	})

	t.Run("Duplicate", func(t *testing.T) {
		ps := newParticipants(t, s, params)
		b := broadcastAll(t, ps)
		require.NoError(t, ps[0].ReceiveBroadcast(b[1]))
		assert.ErrorIs(t, ps[0].ReceiveBroadcast(b[1]), ErrDuplicateMessage)
	})

	t.Run("ShareBeforeBroadcast", func(t *testing.T) {
		ps := newParticipants(t, s, params)
		broadcastAll(t, ps)
		d, err := ps[1].Round1PrivateSend(1)
		require.NoError(t, err)
		assert.ErrorIs(t, ps[0].ReceiveShare(d), ErrMissingBroadcast)
	})

	t.Run("TamperedShare", func(t *testing.T) {
		ps := newParticipants(t, s, params)
		b := broadcastAll(t, ps)
		require.NoError(t, ps[0].ReceiveBroadcast(b[1]))
		d, err := ps[1].Round1PrivateSend(1)
		require.NoError(t, err)
		d.Share = s.Group.NewScalar().Add(d.Share, group.ScalarFromInt(s.Group, 1))
		assert.ErrorIs(t, ps[0].ReceiveShare(d), vss.ErrInvalidShare)
	})

	t.Run("MisaddressedShare", func(t *testing.T) {
		ps := newParticipants(t, s, params)
		b := broadcastAll(t, ps)
		require.NoError(t, ps[0].ReceiveBroadcast(b[1]))
		d, err := ps[1].Round1PrivateSend(3)
		require.NoError(t, err)
		assert.Error(t, ps[0].ReceiveShare(d))
	})

	t.Run("FinalizeTooEarly", func(t *testing.T) {
		ps := newParticipants(t, s, params)
		broadcastAll(t, ps)
		_, err := ps[0].Finalize()
		assert.ErrorIs(t, err, ErrIncomplete)
	})
}
