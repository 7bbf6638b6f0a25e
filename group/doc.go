// Package group is the prime-order group abstraction shared by every
// protocol in this module.
//
// [Group] builds and validates elements, [Scalar] is an exponent modulo
// the order and [Point] is a group element. Concrete curves live in the
// bjj, k256 and ed25519 packages and are looked up by label through the
// curves package.
//
// The free functions in this package are the operations the protocols
// actually call: [Operate], [Combine], [Invert], [GeneratePoint],
// [RandomPoint], [Sum], [LinearCombination], [AssertValid], [IsEqual],
// [AssertEqual], [Pack], [Unpack], [Hexify], [Unhexify] and the
// little-endian helpers used by the secret-sharing code.
//
// # Receivers
//
// Arithmetic methods overwrite their receiver and return it:
//
//	// a + b*c
//	r := g.NewScalar().Mul(b, c)
//	r = g.NewScalar().Add(a, r)
//
// They assume both operands belong to the same group. Anything that came
// over the wire goes through [AssertValid] or [Unpack] first, which turn a
// foreign or small-order point into [ErrGroupMismatch] or
// [ErrPointNotInSubgroup].
//
// # Adding a curve
//
// A backend supplies a Scalar type, a Point type and a Group factory.
// Scalars must stay reduced, SetBytes must refuse encodings that are not
// on the curve, and Validate must refuse points with a component in the
// cofactor subgroup.
package group
