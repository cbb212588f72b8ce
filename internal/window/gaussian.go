// Package window provides the truncated Gaussian gridding window used by
// the fast non-uniform transforms, together with a cache for its
// precomputed frequency-domain tables.
package window

import "math"

// Gaussian is the dilated Gaussian gridding window for one dimension of
// an oversampled grid of size n. The shape parameter b follows the
// standard choice for oversampling factor sigma and support m,
// b = (2*sigma/(2*sigma-1)) * m/pi, which balances the truncation and
// aliasing errors of the gridding approximation.
type Gaussian struct {
	n    int
	m    int
	b    float64
	norm float64
}

// NewGaussian returns the window for an oversampled grid of size n,
// support parameter m and oversampling factor sigma.
func NewGaussian(n, m int, sigma float64) Gaussian {
	b := (2 * sigma / (2*sigma - 1)) * float64(m) / math.Pi

	return Gaussian{
		n:    n,
		m:    m,
		b:    b,
		norm: 1 / math.Sqrt(math.Pi*b),
	}
}

// Phi evaluates the spatial window at x, given in torus units so that
// neighbouring grid points are 1/n apart.
func (g Gaussian) Phi(x float64) float64 {
	t := float64(g.n) * x

	return g.norm * math.Exp(-t*t/g.b)
}

// PhiHatScaled returns n times the continuous Fourier transform of Phi at
// integer frequency k. This is the diagonal the deconvolution step of the
// forward transform divides by; it stays well away from zero for all
// |k| <= n/(2*sigma).
func (g Gaussian) PhiHatScaled(k int) float64 {
	t := math.Pi * float64(k) / float64(g.n)

	return math.Exp(-g.b * t * t)
}

// Taps returns the number of grid points the truncated window covers.
func (g Gaussian) Taps() int {
	return 2*g.m + 2
}
