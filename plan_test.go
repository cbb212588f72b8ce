package algonufft

import (
	"errors"
	"math/cmplx"
	"math/rand"
	"testing"
)

// TestNewPlan_Validation verifies malformed configurations are rejected
// with the matching sentinel error.
func TestNewPlan_Validation(t *testing.T) {
	t.Parallel()

	nodes := []float64{0.1, -0.2, 0.3, 0.4}

	cases := []struct {
		name string
		cfg  PlanConfig
		want error
	}{
		{"odd bandwidth", PlanConfig{Bandwidth: [2]int{5, 4}, Nodes: nodes, Support: 2}, ErrInvalidSize},
		{"zero bandwidth", PlanConfig{Bandwidth: [2]int{0, 4}, Nodes: nodes, Support: 2}, ErrInvalidSize},
		{"nil nodes", PlanConfig{Bandwidth: [2]int{4, 4}, Support: 2}, ErrNilSlice},
		{"empty nodes", PlanConfig{Bandwidth: [2]int{4, 4}, Nodes: []float64{}, Support: 2}, ErrInvalidNodes},
		{"odd coordinates", PlanConfig{Bandwidth: [2]int{4, 4}, Nodes: []float64{0.1}, Support: 2}, ErrInvalidNodes},
		{"zero support", PlanConfig{Bandwidth: [2]int{4, 4}, Nodes: nodes}, ErrInvalidSupport},
		{"oversized support", PlanConfig{Bandwidth: [2]int{4, 4}, Nodes: nodes, Support: 16}, ErrInvalidSupport},
		{"bad oversampling", PlanConfig{Bandwidth: [2]int{4, 4}, Nodes: nodes, Support: 2, Oversampling: 0.5}, ErrInvalidOversampling},
	}

	for _, tc := range cases {
		plan, err := NewPlan(tc.cfg)
		if plan != nil {
			t.Errorf("%s: NewPlan should return nil plan", tc.name)
		}

		if !errors.Is(err, tc.want) {
			t.Errorf("%s: NewPlan error = %v, want %v", tc.name, err, tc.want)
		}
	}
}

// TestPlanForward_MatchesDirect verifies the gridded transform converges
// to the direct summation as the window support grows.
func TestPlanForward_MatchesDirect(t *testing.T) {
	t.Parallel()

	const size = 8

	nodes, _, err := LinogramGrid(8, 8)
	if err != nil {
		t.Fatal(err)
	}

	rnd := rand.New(rand.NewSource(7))
	src := randomCoefficients(rnd, size*size)

	cases := []struct {
		support int
		tol     float64
	}{
		{3, 5e-2},
		{5, 2e-3},
		{7, 1e-4},
	}

	for _, tc := range cases {
		plan, err := NewPlan(PlanConfig{
			Bandwidth: [2]int{size, size},
			Nodes:     nodes,
			Support:   tc.support,
		})
		if err != nil {
			t.Fatalf("NewPlan(m=%d) error: %v", tc.support, err)
		}

		fast := make([]complex128, plan.NumNodes())
		direct := make([]complex128, plan.NumNodes())

		if err := plan.Forward(fast, src); err != nil {
			t.Fatalf("Forward(m=%d) error: %v", tc.support, err)
		}

		if err := plan.ForwardDirect(direct, src); err != nil {
			t.Fatalf("ForwardDirect(m=%d) error: %v", tc.support, err)
		}

		if e := ErrorLInfty(fast, direct); e > tc.tol {
			t.Errorf("Forward(m=%d) error %e exceeds %e", tc.support, e, tc.tol)
		}
	}
}

// TestPlanAdjoint_MatchesDirect verifies the fast adjoint against direct
// summation.
func TestPlanAdjoint_MatchesDirect(t *testing.T) {
	t.Parallel()

	const size = 8

	nodes, _, err := LinogramGrid(6, 8)
	if err != nil {
		t.Fatal(err)
	}

	plan, err := NewPlan(PlanConfig{
		Bandwidth: [2]int{size, size},
		Nodes:     nodes,
		Support:   7,
	})
	if err != nil {
		t.Fatal(err)
	}

	rnd := rand.New(rand.NewSource(11))
	src := randomCoefficients(rnd, plan.NumNodes())

	fast := make([]complex128, plan.NumCoefficients())
	direct := make([]complex128, plan.NumCoefficients())

	if err := plan.Adjoint(fast, src); err != nil {
		t.Fatalf("Adjoint error: %v", err)
	}

	if err := plan.AdjointDirect(direct, src); err != nil {
		t.Fatalf("AdjointDirect error: %v", err)
	}

	if e := ErrorLInfty(fast, direct); e > 1e-4 {
		t.Errorf("Adjoint error %e exceeds 1e-4", e)
	}
}

// TestPlanAdjoint_ConsistentWithForward verifies the fast pair satisfies
// <Forward(x), y> = <x, Adjoint(y)>, which the normal-equations solver
// relies on. The gridded adjoint is the exact transpose of the gridded
// forward factorization, so this holds to machine precision regardless
// of the support parameter.
func TestPlanAdjoint_ConsistentWithForward(t *testing.T) {
	t.Parallel()

	const size = 6

	nodes, _, err := LinogramGrid(4, 6)
	if err != nil {
		t.Fatal(err)
	}

	for _, m := range []int{2, 5} {
		plan, err := NewPlan(PlanConfig{
			Bandwidth: [2]int{size, size},
			Nodes:     nodes,
			Support:   m,
		})
		if err != nil {
			t.Fatal(err)
		}

		rnd := rand.New(rand.NewSource(int64(m)))
		x := randomCoefficients(rnd, plan.NumCoefficients())
		y := randomCoefficients(rnd, plan.NumNodes())

		ax := make([]complex128, plan.NumNodes())
		if err := plan.Forward(ax, x); err != nil {
			t.Fatal(err)
		}

		aty := make([]complex128, plan.NumCoefficients())
		if err := plan.Adjoint(aty, y); err != nil {
			t.Fatal(err)
		}

		var lhs, rhs complex128
		for i := range ax {
			lhs += ax[i] * cmplx.Conj(y[i])
		}

		for i := range x {
			rhs += x[i] * cmplx.Conj(aty[i])
		}

		if d := cmplx.Abs(lhs-rhs) / cmplx.Abs(lhs); d > 1e-10 {
			t.Errorf("m=%d: <Ax,y>=%v and <x,A*y>=%v differ by relative %e", m, lhs, rhs, d)
		}
	}
}

// TestPlan_NodeWrapping verifies coordinates are treated 1-periodically.
func TestPlan_NodeWrapping(t *testing.T) {
	t.Parallel()

	const size = 4

	mk := func(nodes []float64) *Plan {
		plan, err := NewPlan(PlanConfig{
			Bandwidth: [2]int{size, size},
			Nodes:     nodes,
			Support:   3,
		})
		if err != nil {
			t.Fatal(err)
		}

		return plan
	}

	a := mk([]float64{0.5, 0.25, 1.2, -0.3})
	b := mk([]float64{-0.5, 0.25, 0.2, 0.7})

	rnd := rand.New(rand.NewSource(3))
	src := randomCoefficients(rnd, size*size)

	fa := make([]complex128, a.NumNodes())
	fb := make([]complex128, b.NumNodes())

	if err := a.Forward(fa, src); err != nil {
		t.Fatal(err)
	}

	if err := b.Forward(fb, src); err != nil {
		t.Fatal(err)
	}

	assertApproxComplexSliceTolf(t, fa, fb, 1e-12, "wrapped nodes")
}

// TestPlan_TransformValidation verifies nil and mis-sized slices are
// rejected on the transform paths.
func TestPlan_TransformValidation(t *testing.T) {
	t.Parallel()

	plan, err := NewPlan(PlanConfig{
		Bandwidth: [2]int{4, 4},
		Nodes:     []float64{0.1, 0.2},
		Support:   2,
	})
	if err != nil {
		t.Fatal(err)
	}

	coeffs := make([]complex128, plan.NumCoefficients())
	samples := make([]complex128, plan.NumNodes())

	if err := plan.Forward(nil, coeffs); !errors.Is(err, ErrNilSlice) {
		t.Errorf("Forward(nil, src) = %v, want ErrNilSlice", err)
	}

	if err := plan.Forward(samples, coeffs[:3]); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Forward with short src = %v, want ErrLengthMismatch", err)
	}

	if err := plan.Adjoint(coeffs, nil); !errors.Is(err, ErrNilSlice) {
		t.Errorf("Adjoint(dst, nil) = %v, want ErrNilSlice", err)
	}

	if err := plan.AdjointDirect(coeffs[:5], samples); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("AdjointDirect with short dst = %v, want ErrLengthMismatch", err)
	}
}
