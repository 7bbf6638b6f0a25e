// Package polynomial implements polynomials over a prime field ℤₚ and
// Lagrange interpolation.
//
// Field elements are saferith naturals reduced modulo a saferith modulus,
// usually the order of a [group.Group]. Polynomials are immutable values
// with trimmed coefficient lists, so [Polynomial.Degree] and
// [Polynomial.Equal] are well defined; the zero polynomial has degree
// [ZeroDegree].
//
// [Interpolator] evaluates the polynomial through k points with
// barycentric weights, and [LagrangeCoefficients] gives the weights that
// recombine evaluations into the value at zero, which is how Shamir shares
// are reconstructed.
package polynomial
