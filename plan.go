package algonufft

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-nufft/internal/window"
)

// PlanConfig describes a two-dimensional non-uniform FFT.
//
// The transform evaluates
//
//	f(x_j) = sum_{k in I_N} f_hat[k] * exp(-2*pi*i*k.x_j)
//
// over the centered index set I_N = [-N0/2, N0/2) x [-N1/2, N1/2) at nodes
// x_j in the torus [-1/2, 1/2)^2. Coefficients are stored row-major, entry
// (k0+N0/2)*N1 + (k1+N1/2) holding index (k0, k1).
type PlanConfig struct {
	// Bandwidth is the coefficient grid size N0 x N1. Both must be
	// positive and even.
	Bandwidth [2]int

	// Nodes holds interleaved (x0, x1) coordinate pairs. Coordinates are
	// wrapped into [-1/2, 1/2); the transform is 1-periodic in each
	// dimension.
	Nodes []float64

	// Support is the window cutoff parameter m. Larger values reduce the
	// gridding error of the fast transform at higher cost per node.
	Support int

	// Oversampling is the factor sigma between the coefficient grid and
	// the internal equispaced grid. Zero selects the default of 2.
	Oversampling float64

	// Wisdom is the window-table cache consulted during precomputation.
	// Nil means the process-wide DefaultWisdom.
	Wisdom *Wisdom
}

// Plan is a precomputed two-dimensional non-uniform FFT over a fixed node
// set. It provides the fast gridded transform pair Forward/Adjoint and
// the exact reference pair ForwardDirect/AdjointDirect.
//
// A Plan owns internal scratch grids and is not safe for concurrent use.
// Concurrent solves need one Plan each.
type Plan struct {
	bw    [2]int
	grid  [2]int
	m     int
	sigma float64

	nodes    []float64
	numNodes int

	win    [2]window.Gaussian
	phiHat [2][]float64

	// Per-node window precomputation: tap weights and the centered grid
	// index of the first tap, per dimension.
	psi   [2][]float64
	first [2][]int

	fftRow *fourier.CmplxFFT
	fftCol *fourier.CmplxFFT

	ghat []complex128
	g    []complex128
	colA []complex128
	colB []complex128
}

// NewPlan validates the configuration, precomputes the window tables and
// returns a ready-to-use plan.
func NewPlan(cfg PlanConfig) (*Plan, error) {
	for _, n := range cfg.Bandwidth {
		if n < 2 || n%2 != 0 {
			return nil, ErrInvalidSize
		}
	}

	sigma := cfg.Oversampling
	if sigma == 0 {
		sigma = 2
	}

	if sigma <= 1 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return nil, ErrInvalidOversampling
	}

	if cfg.Nodes == nil {
		return nil, ErrNilSlice
	}

	if len(cfg.Nodes) == 0 || len(cfg.Nodes)%2 != 0 {
		return nil, ErrInvalidNodes
	}

	for _, x := range cfg.Nodes {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, ErrInvalidNodes
		}
	}

	if cfg.Support < 1 {
		return nil, ErrInvalidSupport
	}

	var grid [2]int
	for d, n := range cfg.Bandwidth {
		gn := int(math.Ceil(sigma * float64(n)))
		if gn%2 != 0 {
			gn++
		}

		grid[d] = gn
	}

	taps := 2*cfg.Support + 2
	if taps > grid[0] || taps > grid[1] {
		return nil, ErrInvalidSupport
	}

	wisdom := cfg.Wisdom
	if wisdom == nil {
		wisdom = window.DefaultWisdom
	}

	p := &Plan{
		bw:       cfg.Bandwidth,
		grid:     grid,
		m:        cfg.Support,
		sigma:    sigma,
		numNodes: len(cfg.Nodes) / 2,
		fftRow:   fourier.NewCmplxFFT(grid[1]),
		fftCol:   fourier.NewCmplxFFT(grid[0]),
		ghat:     make([]complex128, grid[0]*grid[1]),
		g:        make([]complex128, grid[0]*grid[1]),
		colA:     make([]complex128, grid[0]),
		colB:     make([]complex128, grid[0]),
	}

	p.nodes = make([]float64, len(cfg.Nodes))
	for i, x := range cfg.Nodes {
		p.nodes[i] = wrapUnit(x)
	}

	for d := range p.win {
		p.win[d] = window.NewGaussian(grid[d], cfg.Support, sigma)
		p.phiHat[d] = wisdom.Table(cfg.Bandwidth[d], grid[d], cfg.Support, sigma)
	}

	p.precomputePsi()

	return p, nil
}

// precomputePsi tabulates the truncated window values for every node, the
// analogue of a PRE_PSI precomputation stage.
func (p *Plan) precomputePsi() {
	taps := p.taps()
	for d := 0; d < 2; d++ {
		p.psi[d] = make([]float64, p.numNodes*taps)
		p.first[d] = make([]int, p.numNodes)

		n := p.grid[d]
		for j := 0; j < p.numNodes; j++ {
			x := p.nodes[2*j+d]
			u := int(math.Floor(float64(n)*x)) - p.m
			p.first[d][j] = u

			for s := 0; s < taps; s++ {
				p.psi[d][j*taps+s] = p.win[d].Phi(x - float64(u+s)/float64(n))
			}
		}
	}
}

func (p *Plan) taps() int {
	return 2*p.m + 2
}

// Bandwidth returns the coefficient grid size N0 x N1.
func (p *Plan) Bandwidth() [2]int {
	return p.bw
}

// NumCoefficients returns the length of coefficient arrays the plan
// transforms, N0*N1.
func (p *Plan) NumCoefficients() int {
	return p.bw[0] * p.bw[1]
}

// NumNodes returns the number of non-uniform sample points.
func (p *Plan) NumNodes() int {
	return p.numNodes
}

func (p *Plan) checkForward(dst, src []complex128) error {
	if dst == nil || src == nil {
		return ErrNilSlice
	}

	if len(src) != p.NumCoefficients() || len(dst) != p.numNodes {
		return ErrLengthMismatch
	}

	return nil
}

func (p *Plan) checkAdjoint(dst, src []complex128) error {
	if dst == nil || src == nil {
		return ErrNilSlice
	}

	if len(src) != p.numNodes || len(dst) != p.NumCoefficients() {
		return ErrLengthMismatch
	}

	return nil
}

// Forward evaluates the Fourier series at every node using the fast
// gridded transform and stores the sample values in dst.
func (p *Plan) Forward(dst, src []complex128) error {
	if err := p.checkForward(dst, src); err != nil {
		return err
	}

	n0, n1 := p.grid[0], p.grid[1]

	// Deconvolve and place the coefficients on the oversampled grid.
	for i := range p.ghat {
		p.ghat[i] = 0
	}

	for i0 := 0; i0 < p.bw[0]; i0++ {
		b0 := modInt(i0-p.bw[0]/2, n0)
		row := src[i0*p.bw[1] : (i0+1)*p.bw[1]]

		for i1 := 0; i1 < p.bw[1]; i1++ {
			b1 := modInt(i1-p.bw[1]/2, n1)
			p.ghat[b0*n1+b1] = row[i1] / complex(p.phiHat[0][i0]*p.phiHat[1][i1], 0)
		}
	}

	// Equispaced transform with the negative-exponent convention,
	// row-column decomposition.
	for r := 0; r < n0; r++ {
		p.fftRow.Coefficients(p.g[r*n1:(r+1)*n1], p.ghat[r*n1:(r+1)*n1])
	}

	for c := 0; c < n1; c++ {
		for r := 0; r < n0; r++ {
			p.colA[r] = p.g[r*n1+c]
		}

		p.fftCol.Coefficients(p.colB, p.colA)

		for r := 0; r < n0; r++ {
			p.g[r*n1+c] = p.colB[r]
		}
	}

	// Gather through the truncated window.
	taps := p.taps()
	for j := 0; j < p.numNodes; j++ {
		u0, u1 := p.first[0][j], p.first[1][j]
		psi0 := p.psi[0][j*taps : (j+1)*taps]
		psi1 := p.psi[1][j*taps : (j+1)*taps]

		var sum complex128
		for s0 := 0; s0 < taps; s0++ {
			rowOff := modInt(u0+s0, n0) * n1

			var rowSum complex128
			for s1 := 0; s1 < taps; s1++ {
				rowSum += p.g[rowOff+modInt(u1+s1, n1)] * complex(psi1[s1], 0)
			}

			sum += rowSum * complex(psi0[s0], 0)
		}

		dst[j] = sum
	}

	return nil
}

// Adjoint applies the conjugate transpose of Forward, spreading the
// sample values back onto the coefficient grid. It is the exact transpose
// of the truncated factorization, so the pair is consistent for
// normal-equations solvers.
func (p *Plan) Adjoint(dst, src []complex128) error {
	if err := p.checkAdjoint(dst, src); err != nil {
		return err
	}

	n0, n1 := p.grid[0], p.grid[1]

	// Spread through the truncated window.
	for i := range p.g {
		p.g[i] = 0
	}

	taps := p.taps()
	for j := 0; j < p.numNodes; j++ {
		u0, u1 := p.first[0][j], p.first[1][j]
		psi0 := p.psi[0][j*taps : (j+1)*taps]
		psi1 := p.psi[1][j*taps : (j+1)*taps]
		v := src[j]

		for s0 := 0; s0 < taps; s0++ {
			rowOff := modInt(u0+s0, n0) * n1
			v0 := v * complex(psi0[s0], 0)

			for s1 := 0; s1 < taps; s1++ {
				p.g[rowOff+modInt(u1+s1, n1)] += v0 * complex(psi1[s1], 0)
			}
		}
	}

	// Transposed equispaced transform: positive-exponent sums,
	// column-row decomposition.
	for c := 0; c < n1; c++ {
		for r := 0; r < n0; r++ {
			p.colA[r] = p.g[r*n1+c]
		}

		p.fftCol.Sequence(p.colB, p.colA)

		for r := 0; r < n0; r++ {
			p.g[r*n1+c] = p.colB[r]
		}
	}

	for r := 0; r < n0; r++ {
		p.fftRow.Sequence(p.ghat[r*n1:(r+1)*n1], p.g[r*n1:(r+1)*n1])
	}

	// Deconvolve back onto the coefficient grid.
	for i0 := 0; i0 < p.bw[0]; i0++ {
		b0 := modInt(i0-p.bw[0]/2, n0)
		row := dst[i0*p.bw[1] : (i0+1)*p.bw[1]]

		for i1 := 0; i1 < p.bw[1]; i1++ {
			b1 := modInt(i1-p.bw[1]/2, n1)
			row[i1] = p.ghat[b0*n1+b1] / complex(p.phiHat[0][i0]*p.phiHat[1][i1], 0)
		}
	}

	return nil
}

// wrapUnit maps x into [-1/2, 1/2).
func wrapUnit(x float64) float64 {
	return x - math.Floor(x+0.5)
}

// modInt reduces a centered index into [0, n).
func modInt(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}

	return a
}
