package algonufft

import "math"

// LinogramGrid generates the pseudo-polar sampling geometry with T slopes
// and R offsets. Nodes come in two families, near-horizontal lines for
// negative slope indices and near-vertical lines for non-negative ones,
// which avoids the coordinate singularity of a pure polar layout. The
// returned nodes are interleaved (x0, x1) pairs ordered by (slope,
// offset); weights hold the matching quadrature densities |r|/W, with the
// center offset r = 0 assigned the fixed value 1/(4W) instead of the
// singular general formula. The node count is len(weights) = T*R.
//
// T and R must be positive even integers.
func LinogramGrid(T, R int) (nodes, weights []float64, err error) {
	if T < 2 || R < 2 || T%2 != 0 || R%2 != 0 {
		return nil, nil, ErrInvalidGrid
	}

	w := float64(T) * (float64(R)/2*(float64(R)/2) + 0.25)

	nodes = make([]float64, 2*T*R)
	weights = make([]float64, T*R)

	for t := -T / 2; t < T/2; t++ {
		for r := -R / 2; r < R/2; r++ {
			i := (t+T/2)*R + (r + R/2)

			if t < 0 {
				nodes[2*i] = float64(r) / float64(R)
				nodes[2*i+1] = 4 * (float64(t) + float64(T)/4) / float64(T) * float64(r) / float64(R)
			} else {
				nodes[2*i] = -4 * (float64(t) - float64(T)/4) / float64(T) * float64(r) / float64(R)
				nodes[2*i+1] = float64(r) / float64(R)
			}

			if r == 0 {
				weights[i] = 0.25 / w
			} else {
				weights[i] = math.Abs(float64(r)) / w
			}
		}
	}

	return nodes, weights, nil
}
