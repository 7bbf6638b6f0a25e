// Package bjj is the Baby Jubjub backend, registered as "bjj".
//
// Baby Jubjub is the twisted Edwards curve a*x^2 + y^2 = 1 + d*x^2*y^2
// with a = 168700 and d = 168696 over the BN254 scalar field, which makes
// it cheap to use inside SNARK circuits over BN254. Arithmetic comes from
// gnark-crypto.
//
//	g := &bjj.BJJ{}
//
// The prime subgroup has order
//
//	2736030358979909402780800718157159386076813972158567259200215660948447373041
//
// and the cofactor is 8. [BJJ.Validate] multiplies by the subgroup order
// to reject small-order components, and [BJJ.HashToPoint] clears the
// cofactor of its candidates.
package bjj
