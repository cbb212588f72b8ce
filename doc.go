// Package algonufft implements two-dimensional non-uniform fast Fourier
// transforms and an iterative least-squares inversion engine for
// reconstructing Fourier coefficients from samples taken at arbitrary
// points.
//
// A Plan evaluates a truncated Fourier series at a configured set of
// non-uniform nodes (the forward transform) and applies the conjugate
// transpose of that map (the adjoint transform). The fast path grids the
// coefficients onto an oversampled equispaced grid through a truncated
// Gaussian window; ForwardDirect and AdjointDirect provide the exact
// brute-force sums for reference.
//
// A Solver inverts the sampling map with conjugate gradients on the
// normal equations (CGNR), optionally preconditioned by per-node density
// weights and restricted to a trusted frequency band by a damping mask.
// The solver only ever sees the Operator interface, so any consistent
// forward/adjoint pair can be inverted, not just plans from this package.
//
// LinogramGrid produces the pseudo-polar sampling geometry used by the
// polar FFT drivers, together with its density weights.
package algonufft
