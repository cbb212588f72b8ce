package window

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// tableKey identifies one precomputed deconvolution table. Sigma takes
// part in the key because the window shape depends on it.
type tableKey struct {
	bandwidth int
	gridSize  int
	support   int
	sigma     float64
}

// Wisdom caches frequency-domain window tables so that repeated plan
// construction over the same geometry does not recompute them. The cache
// has an explicit lifecycle: tables accumulate through Table, persist
// through Export/Import, and are discarded by Clear.
//
// A Wisdom is safe for concurrent use.
type Wisdom struct {
	mu     sync.RWMutex
	tables map[tableKey][]float64
}

// DefaultWisdom is the process-wide cache consulted by plans that are
// not given a private one.
var DefaultWisdom = NewWisdom()

// NewWisdom creates a new empty wisdom cache.
func NewWisdom() *Wisdom {
	return &Wisdom{tables: make(map[tableKey][]float64)}
}

// Table returns the deconvolution table for a centered coefficient range
// of the given bandwidth on an oversampled grid of size gridSize, with
// window support m and oversampling factor sigma. Entry i holds
// n*phiHat(i - bandwidth/2). The table is computed on first use and
// cached; callers must not modify the returned slice.
func (w *Wisdom) Table(bandwidth, gridSize, m int, sigma float64) []float64 {
	key := tableKey{bandwidth: bandwidth, gridSize: gridSize, support: m, sigma: sigma}

	w.mu.RLock()
	tab, ok := w.tables[key]
	w.mu.RUnlock()

	if ok {
		return tab
	}

	g := NewGaussian(gridSize, m, sigma)
	tab = make([]float64, bandwidth)
	for i := range tab {
		tab[i] = g.PhiHatScaled(i - bandwidth/2)
	}

	w.mu.Lock()
	if prev, ok := w.tables[key]; ok {
		tab = prev
	} else {
		w.tables[key] = tab
	}
	w.mu.Unlock()

	return tab
}

// Len returns the number of cached tables.
func (w *Wisdom) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return len(w.tables)
}

// Clear discards all cached tables.
func (w *Wisdom) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.tables = make(map[tableKey][]float64)
}

// Export writes the cache in a portable text format, one table per line:
// bandwidth, grid size, support and sigma followed by the table values,
// all space separated.
func (w *Wisdom) Export(out io.Writer) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	bw := bufio.NewWriter(out)
	for key, tab := range w.tables {
		if _, err := fmt.Fprintf(bw, "%d %d %d %s", key.bandwidth, key.gridSize, key.support,
			strconv.FormatFloat(key.sigma, 'g', -1, 64)); err != nil {
			return err
		}

		for _, v := range tab {
			if _, err := fmt.Fprintf(bw, " %s", strconv.FormatFloat(v, 'e', -1, 64)); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(bw); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Import merges tables from the format produced by Export into the cache.
func (w *Wisdom) Import(in io.Reader) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	line := 0
	for sc.Scan() {
		line++

		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		if len(fields) < 5 {
			return fmt.Errorf("window: wisdom line %d: expected header and values, got %d fields", line, len(fields))
		}

		bandwidth, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("window: wisdom line %d: bad bandwidth: %w", line, err)
		}

		gridSize, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("window: wisdom line %d: bad grid size: %w", line, err)
		}

		support, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("window: wisdom line %d: bad support: %w", line, err)
		}

		sigma, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return fmt.Errorf("window: wisdom line %d: bad sigma: %w", line, err)
		}

		values := fields[4:]
		if len(values) != bandwidth {
			return fmt.Errorf("window: wisdom line %d: expected %d values, got %d", line, bandwidth, len(values))
		}

		tab := make([]float64, len(values))
		for i, f := range values {
			tab[i], err = strconv.ParseFloat(f, 64)
			if err != nil {
				return fmt.Errorf("window: wisdom line %d: bad value: %w", line, err)
			}
		}

		key := tableKey{bandwidth: bandwidth, gridSize: gridSize, support: support, sigma: sigma}

		w.mu.Lock()
		w.tables[key] = tab
		w.mu.Unlock()
	}

	return sc.Err()
}
