// Package dataio reads and writes the plain-text data files the
// benchmark drivers exchange: whitespace-separated floating-point inputs
// (coefficient tables, quadrature nodes and weights) and one-value-per-
// line error series.
package dataio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReadFloats reads all whitespace-separated floating-point values from r.
func ReadFloats(r io.Reader) ([]float64, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var vals []float64
	for sc.Scan() {
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("dataio: value %d: %w", len(vals)+1, err)
		}

		vals = append(vals, v)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dataio: read: %w", err)
	}

	return vals, nil
}

// ReadFloatsFile reads whitespace-separated floating-point values from a
// file.
func ReadFloatsFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataio: %w", err)
	}

	defer f.Close()

	vals, err := ReadFloats(f)
	if err != nil {
		return nil, fmt.Errorf("dataio: %s: %w", path, err)
	}

	return vals, nil
}

// ReadComplexFiles combines a real-part file and an imaginary-part file
// into n complex values, the layout the polar FFT drivers use for their
// input coefficients.
func ReadComplexFiles(rePath, imPath string, n int) ([]complex128, error) {
	re, err := ReadFloatsFile(rePath)
	if err != nil {
		return nil, err
	}

	im, err := ReadFloatsFile(imPath)
	if err != nil {
		return nil, err
	}

	if len(re) < n || len(im) < n {
		return nil, fmt.Errorf("dataio: need %d values, have %d real and %d imaginary", n, len(re), len(im))
	}

	vals := make([]complex128, n)
	for i := range vals {
		vals[i] = complex(re[i], im[i])
	}

	return vals, nil
}

// WriteFloats writes one value per line in scientific notation.
func WriteFloats(w io.Writer, vals []float64) error {
	bw := bufio.NewWriter(w)
	for _, v := range vals {
		if _, err := fmt.Fprintln(bw, strconv.FormatFloat(v, 'e', -1, 64)); err != nil {
			return fmt.Errorf("dataio: write: %w", err)
		}
	}

	return bw.Flush()
}

// WriteFloatsFile writes one value per line to a file, creating or
// truncating it.
func WriteFloatsFile(path string, vals []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataio: %w", err)
	}

	if err := WriteFloats(f, vals); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("dataio: %w", err)
	}

	return nil
}
