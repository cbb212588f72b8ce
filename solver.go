package algonufft

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/floats"
)

// Operator is the boundary between the inversion engine and the
// transform it inverts: a linear sampling map from coefficient space to
// sample space together with its conjugate transpose. The engine never
// looks behind this interface, so fast gridded transforms, direct
// summation and synthetic test operators are all interchangeable.
//
// Forward and Adjoint must be consistent: Adjoint is the conjugate
// transpose of Forward up to the approximation error of the underlying
// algorithm. *Plan satisfies Operator.
type Operator interface {
	// Forward evaluates the sampling map, coefficient space to sample
	// space. dst has NumNodes entries, src has NumCoefficients.
	Forward(dst, src []complex128) error

	// Adjoint applies the conjugate transpose of Forward.
	Adjoint(dst, src []complex128) error

	// NumCoefficients returns the dimension of coefficient space.
	NumCoefficients() int

	// NumNodes returns the dimension of sample space.
	NumNodes() int
}

// SolverConfig configures one inversion. The zero value runs plain
// unweighted CGNR for zero iterations, which degenerates to the one-shot
// adjoint approximation; set MaxIterations for a real solve.
type SolverConfig struct {
	// Weights holds one non-negative density weight per node. When set,
	// the residual and normal equations are preconditioned by the
	// sampling density, down-weighting oversampled regions. Nil disables
	// weighting.
	Weights []float64

	// Damping holds one scalar per coefficient, typically 0 or 1,
	// suppressing frequency directions outside a trusted band. It is
	// applied to every adjoint residual, so the whole iteration stays in
	// the masked subspace. Nil disables damping.
	Damping []float64

	// MaxIterations is the number of conjugate-gradient steps Solve
	// performs. A value below 1 selects the one-shot special case: Solve
	// returns the first search direction computed from the primed state
	// instead of iterating.
	MaxIterations int
}

type solverState int

const (
	stateInitialized solverState = iota
	statePrimed
	stateAborted
)

// Solver inverts a non-uniform sampling operator by conjugate gradients
// on the normal equations (CGNR). It recovers coefficients f_hat with
// Forward(f_hat) ~ y for generally non-square, ill-conditioned sampling,
// using only Forward/Adjoint applications.
//
// Solve runs the whole configured iteration. Prime and Step expose the
// loop for callers that monitor per-iteration residuals. Each Solver
// owns its working state; concurrent solves need one Solver (and, unless
// the operator is reentrant, one Operator) each.
type Solver struct {
	op      Operator
	maxIter int

	w    []float64 // node weights, nil when disabled
	wHat []float64 // damping mask, nil when disabled

	y    []complex128
	fHat []complex128 // current iterate
	r    []complex128 // sample-space residual
	zHat []complex128 // adjoint residual
	pHat []complex128 // search direction
	q    []complex128 // sample-space scratch, Forward(p) then w*r

	dotR float64 // weighted squared residual norm
	dotZ float64 // squared adjoint-residual norm

	state      solverState
	stagnated  bool
	iterations int
}

// NewSolver validates the configuration against the operator's
// dimensions and allocates the solver state. The initial iterate is the
// zero coefficient vector.
func NewSolver(op Operator, cfg SolverConfig) (*Solver, error) {
	if op == nil {
		return nil, ErrNilOperator
	}

	numNodes := op.NumNodes()
	numCoeff := op.NumCoefficients()
	if numNodes < 1 || numCoeff < 1 {
		return nil, ErrInvalidSize
	}

	if cfg.Weights != nil {
		if len(cfg.Weights) != numNodes {
			return nil, ErrLengthMismatch
		}

		if floats.HasNaN(cfg.Weights) || floats.Min(cfg.Weights) < 0 {
			return nil, ErrInvalidWeights
		}

		for _, v := range cfg.Weights {
			if math.IsInf(v, 0) {
				return nil, ErrInvalidWeights
			}
		}
	}

	if cfg.Damping != nil {
		if len(cfg.Damping) != numCoeff {
			return nil, ErrLengthMismatch
		}

		if floats.HasNaN(cfg.Damping) {
			return nil, ErrInvalidWeights
		}
	}

	s := &Solver{
		op:      op,
		maxIter: cfg.MaxIterations,
		y:       make([]complex128, numNodes),
		fHat:    make([]complex128, numCoeff),
		r:       make([]complex128, numNodes),
		zHat:    make([]complex128, numCoeff),
		pHat:    make([]complex128, numCoeff),
		q:       make([]complex128, numNodes),
	}

	if cfg.Weights != nil {
		s.w = make([]float64, numNodes)
		copy(s.w, cfg.Weights)
	}

	if cfg.Damping != nil {
		s.wHat = make([]float64, numCoeff)
		copy(s.wHat, cfg.Damping)
	}

	return s, nil
}

// Prime copies the measured samples, resets the iterate to zero and
// computes the initial residual, adjoint residual and search direction.
// After Prime the solver is ready for Step.
func (s *Solver) Prime(y []complex128) error {
	if s.state == stateAborted {
		return ErrAborted
	}

	if y == nil {
		return ErrNilSlice
	}

	if len(y) != len(s.y) {
		return ErrLengthMismatch
	}

	copy(s.y, y)
	for i := range s.fHat {
		s.fHat[i] = 0
	}

	// The initial iterate is zero, so the residual y - Forward(0) is y.
	copy(s.r, s.y)
	s.dotR = s.sampleDot(s.r)

	if err := s.adjointResidual(); err != nil {
		return err
	}

	copy(s.pHat, s.zHat)

	s.state = statePrimed
	s.stagnated = false
	s.iterations = 0

	return nil
}

// adjointResidual computes zHat = Adjoint(w*r) with the damping mask
// applied, and refreshes its squared norm.
func (s *Solver) adjointResidual() error {
	copy(s.q, s.r)
	if s.w != nil {
		for i, v := range s.w {
			s.q[i] *= complex(v, 0)
		}
	}

	if err := s.op.Adjoint(s.zHat, s.q); err != nil {
		s.state = stateAborted
		return fmt.Errorf("algonufft: adjoint operator: %w", err)
	}

	if s.wHat != nil {
		for i, v := range s.wHat {
			s.zHat[i] *= complex(v, 0)
		}
	}

	s.dotZ = coeffDot(s.zHat)

	return nil
}

// Step performs one conjugate-gradient update on the normal equations:
//
//	q     = Forward(p)
//	alpha = ||z||^2 / sum_j w_j |q_j|^2
//	f_hat += alpha p ; r -= alpha q
//	z     = Adjoint(w*r) (damped)
//	beta  = ||z_new||^2 / ||z_old||^2
//	p     = z_new + beta p
//
// A vanishing step-size denominator terminates the iteration with
// ErrStagnation instead of dividing by zero; the current iterate remains
// valid.
func (s *Solver) Step() error {
	switch s.state {
	case stateAborted:
		return ErrAborted
	case stateInitialized:
		return ErrNotPrimed
	}

	if s.stagnated {
		return ErrStagnation
	}

	if err := s.op.Forward(s.q, s.pHat); err != nil {
		s.state = stateAborted
		return fmt.Errorf("algonufft: forward operator: %w", err)
	}

	dotV := s.sampleDot(s.q)
	if !(dotV > 0) || math.IsInf(dotV, 0) {
		s.stagnated = true
		return ErrStagnation
	}

	alpha := s.dotZ / dotV

	cmplxs.AddScaled(s.fHat, complex(alpha, 0), s.pHat)
	cmplxs.AddScaled(s.r, complex(-alpha, 0), s.q)
	s.dotR = s.sampleDot(s.r)

	dotZOld := s.dotZ
	if err := s.adjointResidual(); err != nil {
		return err
	}

	if dotZOld == 0 {
		s.stagnated = true
		return ErrStagnation
	}

	beta := s.dotZ / dotZOld

	cmplxs.Scale(complex(beta, 0), s.pHat)
	cmplxs.Add(s.pHat, s.zHat)

	s.iterations++

	return nil
}

// Solve runs the configured number of iterations against the measured
// samples y and writes the coefficient estimate into dst.
//
// With MaxIterations < 1 the estimate is the first search direction from
// the primed state, the deliberate one-shot adjoint approximation. On
// ErrStagnation dst holds the last iterate reached before the iteration
// stalled.
func (s *Solver) Solve(dst, y []complex128) error {
	if dst == nil {
		return ErrNilSlice
	}

	if len(dst) != len(s.fHat) {
		return ErrLengthMismatch
	}

	if err := s.Prime(y); err != nil {
		return err
	}

	if s.maxIter < 1 {
		copy(dst, s.pHat)
		return nil
	}

	for l := 1; l <= s.maxIter; l++ {
		if err := s.Step(); err != nil {
			copy(dst, s.fHat)
			return err
		}
	}

	copy(dst, s.fHat)

	return nil
}

// Iterate returns a copy of the current coefficient iterate.
func (s *Solver) Iterate() []complex128 {
	out := make([]complex128, len(s.fHat))
	copy(out, s.fHat)

	return out
}

// SearchDirection returns a copy of the current conjugate search
// direction.
func (s *Solver) SearchDirection() []complex128 {
	out := make([]complex128, len(s.pHat))
	copy(out, s.pHat)

	return out
}

// ResidualNorm returns the current residual norm. With weighting enabled
// this is the w-weighted seminorm sqrt(sum_j w_j |r_j|^2).
func (s *Solver) ResidualNorm() float64 {
	return math.Sqrt(s.dotR)
}

// Iterations returns the number of completed conjugate-gradient steps
// since the last Prime.
func (s *Solver) Iterations() int {
	return s.iterations
}

// sampleDot returns the (weighted) squared norm of a sample-space vector.
func (s *Solver) sampleDot(v []complex128) float64 {
	var sum float64
	if s.w != nil {
		for i, c := range v {
			sum += s.w[i] * (real(c)*real(c) + imag(c)*imag(c))
		}

		return sum
	}

	for _, c := range v {
		sum += real(c)*real(c) + imag(c)*imag(c)
	}

	return sum
}

func coeffDot(v []complex128) float64 {
	var sum float64
	for _, c := range v {
		sum += real(c)*real(c) + imag(c)*imag(c)
	}

	return sum
}
