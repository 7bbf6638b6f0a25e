// Package session provides a high-level API for threshold ElGamal trustees.
// It wraps the [dkg] and [threshold] packages with a simpler interface that
// handles round management and refuses to answer the same decryption
// request twice.
//
// # Key Generation Ceremony
//
// Each trustee runs the same code independently:
//
//	p, err := session.NewParticipant(s, dkg.Params{
//		Ceremony:  ceremonyID,
//		Threshold: t,
//		Total:     n,
//	}, myIndex)
//	if err != nil {
//		return err
//	}
//
//	r1, err := p.GenerateRound1(allIndexes)
//	if err != nil {
//		return err
//	}
//
//	// Broadcast r1.Broadcast to all trustees
//	// Send r1.PrivateShares[j] to trustee j over a secure channel
//
//	result, err := p.ProcessRound1(&session.Round1Input{
//		Broadcasts:    receivedBroadcasts,
//		PrivateShares: receivedShares,
//	})
//
//	// Store result.Share securely, publish result.Public
//
// # Decryption
//
// A trustee answers a decryption request with a partial decryptor that
// carries its own proof of correctness:
//
//	pd, err := p.PartialDecrypt(ciphertext)
//
// A second request for the same ciphertext returns [ErrAlreadyAnswered].
// The coordinator collects at least t partial decryptors and calls
// [Combine], which rejects any share whose proof does not verify.
//
// # Transport Agnostic
//
// This package does not handle network communication. Messages can be
// moved with any transport; the threshold and elgamal packages provide
// CBOR encodings for partial decryptors and ciphertexts.
package session
