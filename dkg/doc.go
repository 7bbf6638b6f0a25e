// Package dkg implements dealer-free key generation for threshold
// ElGamal: every participant deals a random secret with Feldman VSS and the
// group key is the sum of all of them, so no single party ever knows the
// decryption key.
//
// # Protocol
//
// Round 1: each participant broadcasts the Feldman commitments to its
// polynomial together with a Schnorr proof of knowledge of the constant
// term, bound to the ceremony identifier and its index, and privately
// sends f(j) to every participant j.
//
// Round 2: each participant checks every broadcast proof and every share
// against its sender's commitments, then calls [Participant.Finalize] to
// sum its shares into a [threshold.PrivateShare].
//
// Transport is not provided. Private shares must travel over
// authenticated, encrypted channels.
//
// # Example
//
//	params := dkg.Params{Ceremony: uuid.New(), Threshold: 2, Total: 3}
//	p, _ := dkg.NewParticipant(s, params, 1)
//	b, _ := p.Round1Broadcast()
//	// broadcast b, send p.Round1PrivateSend(j) to each j,
//	// feed received messages to ReceiveBroadcast and ReceiveShare
//	result, _ := p.Finalize()
package dkg
