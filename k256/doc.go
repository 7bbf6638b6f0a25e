// Package k256 provides a secp256k1 implementation of the [group.Group]
// interface, registered under the label "secp256k1".
//
// The curve arithmetic is delegated to the decred secp256k1 package.
// secp256k1 has prime order, so every point that decodes is in the group
// and [K256.Validate] reduces to an on-curve check.
//
// Points are encoded in the 33-byte SEC1 compressed form. The identity,
// which has no SEC1 compressed encoding, is encoded as 33 zero bytes.
package k256
