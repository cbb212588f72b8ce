// Command linogramfft benchmarks the pseudo-polar (linogram) FFT and its
// iterative inverse: it compares the fast gridded transform against
// direct summation over a range of window supports, sweeps the inverse
// solver over iteration counts, and writes the error series to plain-text
// files, one value per line.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	algonufft "github.com/cwbudde/algo-nufft"
	"github.com/cwbudde/algo-nufft/internal/dataio"
)

func main() {
	var (
		size       = flag.Int("n", 16, "coefficient grid size NxN (even)")
		slopes     = flag.Int("t", 0, "linogram slope count T (default 3N)")
		offsets    = flag.Int("r", 0, "linogram offset count R (default 3N/2)")
		supportMax = flag.Int("support-max", 12, "largest window support in the forward sweep")
		iterMax    = flag.Int("iter-max", 20, "largest iteration count in the inverse sweep")
		iterStride = flag.Int("iter-stride", 2, "iteration count stride in the inverse sweep")
		dataRe     = flag.String("data-r", "", "file with real parts of the input coefficients")
		dataIm     = flag.String("data-i", "", "file with imaginary parts of the input coefficients")
		seed       = flag.Int64("seed", 1, "rng seed for generated coefficients")
		damping    = flag.Bool("damping", false, "restrict the inverse to the radial frequency disc")
		outDir     = flag.String("out", ".", "directory for the .dat error files")
		configFile = flag.String("config", "", "YAML sweep config; runs the timing comparison instead")
		wisdomFile = flag.String("wisdom", "", "export window wisdom to file after the run")
	)
	flag.Parse()

	if *configFile != "" {
		if err := runComparison(*configFile, *seed); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else if err := runAccuracy(*size, *slopes, *offsets, *supportMax, *iterMax, *iterStride,
		*dataRe, *dataIm, *seed, *damping, *outDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *wisdomFile != "" {
		if err := algonufft.ExportWisdom(*wisdomFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		fmt.Printf("\nWisdom exported to: %s\n", *wisdomFile)
	}
}

func runAccuracy(size, slopes, offsets, supportMax, iterMax, iterStride int,
	dataRe, dataIm string, seed int64, damping bool, outDir string) error {
	if slopes == 0 {
		slopes = 3 * size
	}

	if offsets == 0 {
		offsets = 3 * size / 2
	}

	nodes, weights, err := algonufft.LinogramGrid(slopes, offsets)
	if err != nil {
		return err
	}

	numNodes := len(weights)
	fmt.Printf("N=%d, linogram grid with T=%d, R=%d => M=%d (weight mass %.6f)\n",
		size, slopes, offsets, numNodes, floats.Sum(weights))

	fHat, err := inputCoefficients(dataRe, dataIm, size*size, seed)
	if err != nil {
		return err
	}

	bandwidth := [2]int{size, size}

	refPlan, err := algonufft.NewPlan(algonufft.PlanConfig{
		Bandwidth: bandwidth,
		Nodes:     nodes,
		Support:   2,
	})
	if err != nil {
		return err
	}

	fDirect := make([]complex128, numNodes)

	start := time.Now()
	if err := refPlan.ForwardDirect(fDirect, fHat); err != nil {
		return err
	}

	fmt.Printf("direct linogram FFT: %v\n", time.Since(start))

	// Forward accuracy sweep over the window support.
	fmt.Println("\nTest of the linogram FFT:")

	forwardErrs := make([]float64, 0, supportMax)
	f := make([]complex128, numNodes)

	for m := 1; m <= supportMax; m++ {
		plan, err := algonufft.NewPlan(algonufft.PlanConfig{
			Bandwidth: bandwidth,
			Nodes:     nodes,
			Support:   m,
		})
		if errors.Is(err, algonufft.ErrInvalidSupport) {
			break // window no longer fits the oversampled grid
		}

		if err != nil {
			return err
		}

		start := time.Now()
		if err := plan.Forward(f, fHat); err != nil {
			return err
		}

		elapsed := time.Since(start)

		eMax := algonufft.ErrorLInfty(f, fDirect)
		forwardErrs = append(forwardErrs, eMax)
		fmt.Printf("m=%2d: E_max = %e (%v)\n", m, eMax, elapsed)
	}

	if err := dataio.WriteFloatsFile(filepath.Join(outDir, "linogram_fft_error.dat"), forwardErrs); err != nil {
		return err
	}

	// Inverse accuracy sweep over the iteration count, one goroutine per
	// support value. Every sweep owns its plan and solver.
	type inverseResult struct {
		support int
		iters   []int
		errs    []float64
		elapsed time.Duration
	}

	supports := []int{3, 6, 9}
	results := make([]inverseResult, len(supports))

	var mask []float64
	if damping {
		mask = algonufft.RadialDamping(bandwidth, float64(size)/2)
	}

	var g errgroup.Group
	for i, m := range supports {
		i, m := i, m
		g.Go(func() error {
			plan, err := algonufft.NewPlan(algonufft.PlanConfig{
				Bandwidth: bandwidth,
				Nodes:     nodes,
				Support:   m,
			})
			if errors.Is(err, algonufft.ErrInvalidSupport) {
				return nil // grid too small for this support
			}

			if err != nil {
				return err
			}

			res := inverseResult{support: m}
			fTilde := make([]complex128, size*size)

			start := time.Now()
			for maxIter := 0; maxIter <= iterMax; maxIter += iterStride {
				solver, err := algonufft.NewSolver(plan, algonufft.SolverConfig{
					Weights:       weights,
					Damping:       mask,
					MaxIterations: maxIter,
				})
				if err != nil {
					return err
				}

				if err := solver.Solve(fTilde, fDirect); err != nil {
					return err
				}

				res.iters = append(res.iters, maxIter)
				res.errs = append(res.errs, algonufft.ErrorLInfty(fTilde, fHat))
			}

			res.elapsed = time.Since(start)
			results[i] = res

			name := fmt.Sprintf("linogram_ifft_error%d.dat", m)

			return dataio.WriteFloatsFile(filepath.Join(outDir, name), res.errs)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, res := range results {
		if len(res.iters) == 0 {
			continue
		}

		fmt.Printf("\nTest of the inverse linogram FFT for m=%d (%v):\n", res.support, res.elapsed)
		for i, it := range res.iters {
			fmt.Printf("%3d iterations: E_max = %e\n", it, res.errs[i])
		}
	}

	return nil
}

// sweepConfig drives the timing comparison mode.
type sweepConfig struct {
	LogNMin  int    `yaml:"log_n_min"`
	LogNMax  int    `yaml:"log_n_max"`
	Supports []int  `yaml:"supports"`
	Output   string `yaml:"output"`
}

func runComparison(path string, seed int64) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read sweep config: %w", err)
	}

	cfg := sweepConfig{LogNMin: 4, LogNMax: 7, Supports: []int{3, 6, 9}, Output: "linogram_comparison_fft.dat"}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("parse sweep config: %w", err)
	}

	if cfg.LogNMin < 1 || cfg.LogNMax < cfg.LogNMin {
		return fmt.Errorf("sweep config: bad log_n range [%d, %d]", cfg.LogNMin, cfg.LogNMax)
	}

	out, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("create %s: %w", cfg.Output, err)
	}
	defer out.Close()

	rnd := rand.New(rand.NewSource(seed))

	fmt.Printf("%6s  %3s  %14s  %14s  %12s\n", "N", "m", "t_linogram", "t_ilinogram", "err")

	for logN := cfg.LogNMin; logN <= cfg.LogNMax; logN++ {
		size := 1 << logN
		slopes, offsets := 3*size, 3*size/2

		nodes, weights, err := algonufft.LinogramGrid(slopes, offsets)
		if err != nil {
			return err
		}

		fHat := make([]complex128, size*size)
		for i := range fHat {
			fHat[i] = complex(rnd.Float64(), rnd.Float64())
		}

		f := make([]complex128, len(weights))
		fTilde := make([]complex128, size*size)

		for _, m := range cfg.Supports {
			plan, err := algonufft.NewPlan(algonufft.PlanConfig{
				Bandwidth: [2]int{size, size},
				Nodes:     nodes,
				Support:   m,
			})
			if errors.Is(err, algonufft.ErrInvalidSupport) {
				continue
			}

			if err != nil {
				return err
			}

			start := time.Now()
			if err := plan.Forward(f, fHat); err != nil {
				return err
			}

			tForward := time.Since(start)

			solver, err := algonufft.NewSolver(plan, algonufft.SolverConfig{
				Weights:       weights,
				MaxIterations: m + 3,
			})
			if err != nil {
				return err
			}

			start = time.Now()
			if err := solver.Solve(fTilde, f); err != nil {
				return err
			}

			tInverse := time.Since(start)

			eMax := algonufft.ErrorLInfty(fTilde, fHat)
			fmt.Printf("%6d  %3d  %14v  %14v  %12e\n", size, m, tForward, tInverse, eMax)

			if _, err := fmt.Fprintf(out, "%d\t%d\t%e\t%e\t%e\n",
				size, m, tForward.Seconds(), tInverse.Seconds(), eMax); err != nil {
				return err
			}
		}
	}

	return nil
}

func inputCoefficients(dataRe, dataIm string, n int, seed int64) ([]complex128, error) {
	if dataRe != "" && dataIm != "" {
		return dataio.ReadComplexFiles(dataRe, dataIm, n)
	}

	rnd := rand.New(rand.NewSource(seed))

	fHat := make([]complex128, n)
	for i := range fHat {
		fHat[i] = complex(rnd.Float64(), rnd.Float64())
	}

	return fHat, nil
}
