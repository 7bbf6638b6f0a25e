// Package threshold implements t-of-n ElGamal decryption.
//
// The decryption key x is Shamir-shared among n trustees, by a dealer
// ([DistributeKey]) or by the dkg package. To decrypt, each trustee sends
// a [PartialDecryptor] Dᵢ = xᵢ⋅β with a DDH proof tying it to its
// [PublicShare]. A [Combiner] then
//
//  1. checks that at least t shares are present,
//  2. optionally verifies every proof and reports the bad indexes,
//  3. recombines Σ λᵢ⋅Dᵢ = x⋅β without ever learning x, and
//  4. decrypts with that decryptor.
//
// The threshold check is enforced unless the combiner is built with
// [WithSkipThreshold], in which case too few shares produce a wrong
// decryptor rather than an error.
package threshold
