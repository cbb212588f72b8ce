package algonufft

import "math"

// RadialDamping builds a 0/1 coefficient mask that keeps frequency
// indices within cutoff of the grid center and suppresses everything
// outside. The layout matches coefficient arrays for the given
// bandwidth: entry (j, k) of the N0 x N1 grid is 1 when
// hypot(j-N0/2, k-N1/2) <= cutoff.
//
// A cutoff of N0/2 reproduces the anti-aliasing disc the inverse polar
// FFT drivers use; a cutoff covering the whole grid yields the all-ones
// mask, which is a no-op for the solver.
func RadialDamping(bandwidth [2]int, cutoff float64) []float64 {
	n0, n1 := bandwidth[0], bandwidth[1]

	mask := make([]float64, n0*n1)
	for j := 0; j < n0; j++ {
		for k := 0; k < n1; k++ {
			if math.Hypot(float64(j-n0/2), float64(k-n1/2)) <= cutoff {
				mask[j*n1+k] = 1
			}
		}
	}

	return mask
}
