package algonufft

import (
	"math"
	"math/cmplx"
)

// ForwardDirect evaluates the Fourier series at every node by direct
// summation. It computes the same map as Forward without gridding error,
// at O(N0*N1*M) cost, and serves as the accuracy reference for the fast
// transform.
func (p *Plan) ForwardDirect(dst, src []complex128) error {
	if err := p.checkForward(dst, src); err != nil {
		return err
	}

	for j := 0; j < p.numNodes; j++ {
		x0 := p.nodes[2*j]
		x1 := p.nodes[2*j+1]

		var sum complex128
		for i0 := 0; i0 < p.bw[0]; i0++ {
			k0 := float64(i0 - p.bw[0]/2)
			row := src[i0*p.bw[1] : (i0+1)*p.bw[1]]

			for i1 := 0; i1 < p.bw[1]; i1++ {
				k1 := float64(i1 - p.bw[1]/2)
				sum += row[i1] * cmplx.Exp(complex(0, -2*math.Pi*(k0*x0+k1*x1)))
			}
		}

		dst[j] = sum
	}

	return nil
}

// AdjointDirect applies the conjugate transpose of ForwardDirect by
// direct summation.
func (p *Plan) AdjointDirect(dst, src []complex128) error {
	if err := p.checkAdjoint(dst, src); err != nil {
		return err
	}

	for i0 := 0; i0 < p.bw[0]; i0++ {
		k0 := float64(i0 - p.bw[0]/2)
		row := dst[i0*p.bw[1] : (i0+1)*p.bw[1]]

		for i1 := 0; i1 < p.bw[1]; i1++ {
			k1 := float64(i1 - p.bw[1]/2)

			var sum complex128
			for j := 0; j < p.numNodes; j++ {
				x0 := p.nodes[2*j]
				x1 := p.nodes[2*j+1]
				sum += src[j] * cmplx.Exp(complex(0, 2*math.Pi*(k0*x0+k1*x1)))
			}

			row[i1] = sum
		}
	}

	return nil
}
