package algonufft

import "errors"

// Sentinel errors returned by plan and solver operations.
var (
	// ErrInvalidSize is returned when a transform size is not valid.
	// Bandwidths must be positive even integers and the oversampled grid
	// must be large enough to hold the truncated window.
	ErrInvalidSize = errors.New("algonufft: invalid transform size")

	// ErrInvalidSupport is returned when the window support parameter m
	// is not a positive integer or exceeds what the oversampled grid allows.
	ErrInvalidSupport = errors.New("algonufft: invalid window support")

	// ErrInvalidOversampling is returned when the oversampling factor is
	// not greater than one.
	ErrInvalidOversampling = errors.New("algonufft: oversampling factor must be greater than 1")

	// ErrInvalidNodes is returned when the node set is empty, has an odd
	// number of coordinates, or contains non-finite values.
	ErrInvalidNodes = errors.New("algonufft: invalid node coordinates")

	// ErrInvalidGrid is returned when a grid generator is asked for a
	// resolution it cannot produce. Linogram grids need positive even
	// slope and offset counts.
	ErrInvalidGrid = errors.New("algonufft: invalid grid resolution")

	// ErrInvalidWeights is returned when a node weight is negative or
	// not finite.
	ErrInvalidWeights = errors.New("algonufft: invalid node weight")

	// ErrNilSlice is returned when a nil slice is passed to a transform
	// or solver method.
	ErrNilSlice = errors.New("algonufft: nil slice")

	// ErrNilOperator is returned when a solver is constructed without a
	// forward/adjoint operator.
	ErrNilOperator = errors.New("algonufft: nil operator")

	// ErrLengthMismatch is returned when input/output slice sizes don't
	// match the plan's or solver's expected dimensions.
	ErrLengthMismatch = errors.New("algonufft: slice length mismatch")

	// ErrNotPrimed is returned when Step is called before Prime has set
	// up the initial residual and search direction.
	ErrNotPrimed = errors.New("algonufft: solver not primed")

	// ErrStagnation is returned when the conjugate-gradient step size
	// denominator vanishes and the iteration cannot make further
	// progress. The current iterate is still valid.
	ErrStagnation = errors.New("algonufft: iteration stagnated")

	// ErrAborted is returned when a solver is used again after an
	// operator call failed mid-solve. Aborted solver state is not reused.
	ErrAborted = errors.New("algonufft: solver aborted after operator failure")
)
