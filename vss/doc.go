// Package vss implements Shamir secret sharing over the scalar field of a
// [group.Group], with Feldman and Pedersen commitments for verifying
// shares.
//
// A dealer calls [ShareSecret] to split a secret into n shares at indexes
// 1..n with threshold t. Each party checks its share with [VerifyFeldman]
// against the published commitments. Any t shares recover the secret with
// [ReconstructSecret]; the same Lagrange weights applied to group-lifted
// shares ([ReconstructPoint]) recover secret⋅P without revealing the
// secret.
//
// The Pedersen variant ([DistributePedersen], [VerifyPedersen]) hides the
// coefficients behind a second generator H from [PedersenGenerator].
package vss
