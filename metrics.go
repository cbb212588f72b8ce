package algonufft

import (
	"math"
	"math/cmplx"
)

// Error metrics for comparing a computed vector against a reference, in
// the conventions of the accuracy drivers: relative norms, falling back
// to the absolute norm when the reference vanishes. All three panic on
// length mismatch.

// ErrorLInfty returns the relative maximum error
// max|got-want| / max|want|.
func ErrorLInfty(got, want []complex128) float64 {
	if len(got) != len(want) {
		panic("algonufft: slice length mismatch")
	}

	var diff, ref float64
	for i := range got {
		if d := cmplx.Abs(got[i] - want[i]); d > diff {
			diff = d
		}

		if a := cmplx.Abs(want[i]); a > ref {
			ref = a
		}
	}

	if ref == 0 {
		return diff
	}

	return diff / ref
}

// ErrorL1 returns the relative summed error
// sum|got-want| / sum|want|.
func ErrorL1(got, want []complex128) float64 {
	if len(got) != len(want) {
		panic("algonufft: slice length mismatch")
	}

	var diff, ref float64
	for i := range got {
		diff += cmplx.Abs(got[i] - want[i])
		ref += cmplx.Abs(want[i])
	}

	if ref == 0 {
		return diff
	}

	return diff / ref
}

// ErrorL2 returns the relative Euclidean error
// ||got-want||_2 / ||want||_2.
func ErrorL2(got, want []complex128) float64 {
	if len(got) != len(want) {
		panic("algonufft: slice length mismatch")
	}

	var diff, ref float64
	for i := range got {
		d := got[i] - want[i]
		diff += real(d)*real(d) + imag(d)*imag(d)
		ref += real(want[i])*real(want[i]) + imag(want[i])*imag(want[i])
	}

	if ref == 0 {
		return math.Sqrt(diff)
	}

	return math.Sqrt(diff / ref)
}
