package algonufft

import (
	"math"
	"testing"
)

// TestErrorMetrics_KnownValues checks the three relative error norms on
// hand-computed inputs.
func TestErrorMetrics_KnownValues(t *testing.T) {
	t.Parallel()

	want := []complex128{3, 4i}
	got := []complex128{3, 3i}

	// diff = (0, i): linf = 1/4, l1 = 1/7, l2 = 1/5.
	if e := ErrorLInfty(got, want); math.Abs(e-0.25) > 1e-15 {
		t.Errorf("ErrorLInfty = %v, want 0.25", e)
	}

	if e := ErrorL1(got, want); math.Abs(e-1.0/7) > 1e-15 {
		t.Errorf("ErrorL1 = %v, want 1/7", e)
	}

	if e := ErrorL2(got, want); math.Abs(e-0.2) > 1e-15 {
		t.Errorf("ErrorL2 = %v, want 0.2", e)
	}
}

// TestErrorMetrics_Identical verifies zero error for identical vectors.
func TestErrorMetrics_Identical(t *testing.T) {
	t.Parallel()

	v := []complex128{1 + 2i, -3, 4i}

	if e := ErrorLInfty(v, v); e != 0 {
		t.Errorf("ErrorLInfty of identical vectors = %v", e)
	}

	if e := ErrorL2(v, v); e != 0 {
		t.Errorf("ErrorL2 of identical vectors = %v", e)
	}
}

// TestErrorMetrics_ZeroReference verifies the absolute-norm fallback when
// the reference vanishes.
func TestErrorMetrics_ZeroReference(t *testing.T) {
	t.Parallel()

	zero := []complex128{0, 0}
	got := []complex128{3i, 4}

	if e := ErrorLInfty(got, zero); e != 4 {
		t.Errorf("ErrorLInfty against zero reference = %v, want 4", e)
	}

	if e := ErrorL1(got, zero); e != 7 {
		t.Errorf("ErrorL1 against zero reference = %v, want 7", e)
	}

	if e := ErrorL2(got, zero); e != 5 {
		t.Errorf("ErrorL2 against zero reference = %v, want 5", e)
	}
}

// TestErrorMetrics_LengthMismatchPanics verifies the documented panic.
func TestErrorMetrics_LengthMismatchPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("ErrorLInfty with mismatched lengths should panic")
		}
	}()

	ErrorLInfty([]complex128{1}, []complex128{1, 2})
}
