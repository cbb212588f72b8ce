package algonufft

import (
	"math/cmplx"
	"math/rand"
	"testing"
)

// Shared test helper functions used across multiple test files

func assertApproxComplexSliceTolf(t *testing.T, got, want []complex128, tol float64, format string, args ...any) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf(format+": length %d != %d", append(args, len(got), len(want))...)
	}

	for i := range got {
		if cmplx.Abs(got[i]-want[i]) > tol {
			t.Fatalf(format+": entry %d: got %v want %v (diff=%v)",
				append(args, i, got[i], want[i], cmplx.Abs(got[i]-want[i]))...)
		}
	}
}

func randomCoefficients(rnd *rand.Rand, n int) []complex128 {
	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(rnd.Float64()-0.5, rnd.Float64()-0.5)
	}

	return out
}
