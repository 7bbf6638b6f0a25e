// Package elgamal implements ElGamal encryption over a [group.Group] with
// three encapsulation schemes.
//
// Every ciphertext is a pair (α, β) with β = r⋅G. The decryptor D = r⋅Y =
// x⋅β is the Diffie-Hellman value shared by sender and recipient, and α
// encapsulates the message under it:
//
//   - [Plain]: α = D + M for a group element M.
//   - [Hybrid]: α is a symmetric payload under a key derived from D.
//   - [Integrated]: as Hybrid, plus a MAC under a second derived key that is
//     checked before anything is decrypted.
//
// [Decrypt] takes a [Decryptor], which is exactly one of [BySecret],
// [ByRandomness] and [ByDecryptor]. The last lets decryption authority be
// split among trustees, see the threshold package.
//
// Every failure past the structural checks is reported as a
// [*DecryptionError] matching [ErrDecryption], whatever its cause.
package elgamal
