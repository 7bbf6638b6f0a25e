// Package sigma implements non-interactive Sigma protocols for linear
// relations in the exponent.
//
// A [LinearRelation] is a matrix Us of group elements and a vector Vs,
// claiming scalars x with Vs[i] = Σⱼ xⱼ⋅Us[i][j] for every row. [Prove]
// runs the three-move Schnorr protocol and replaces the verifier's coin
// with a Fiat-Shamir [Challenge]; [Verify] recomputes it.
//
// Every concrete proof in this module is one relation shape:
//
//	Dlog      V = x⋅U                       [ProveDlog]
//	Eq-Dlog   Vᵢ = x⋅Uᵢ for all i           [ProveEqDlog]
//	DDH       V = x⋅G and W = x⋅U           [ProveDDH]
//	Schnorr   Y = x⋅G, message hashed in    [Sign]
//
// Eq-Dlog and DDH are single-column relations: one witness, one row per
// pair and exactly one response. A proof with one response per pair, the
// diagonal m×m form, is rejected with [ErrDimensionMismatch], since
// independent responses would not show that the logs are equal.
//
// Proofs can be bound to a caller-chosen nonce, such as a ceremony or
// ciphertext identifier, and fail verification under any other nonce.
package sigma
