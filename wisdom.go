package algonufft

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-nufft/internal/window"
)

// ImportWisdom loads precomputed window tables from a file.
// The file should be in the format produced by ExportWisdom.
func ImportWisdom(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open wisdom file: %w", err)
	}

	defer f.Close()

	if err := window.DefaultWisdom.Import(f); err != nil {
		return fmt.Errorf("failed to import wisdom: %w", err)
	}

	return nil
}

// ExportWisdom saves the current wisdom cache to a file.
// The file can be loaded later with ImportWisdom.
func ExportWisdom(filename string) error {
	return ExportWisdomTo(filename, window.DefaultWisdom)
}

// ExportWisdomTo saves a specific wisdom cache to a file.
// This is useful for persisting tables from private wisdom instances.
func ExportWisdomTo(filename string, wisdom *Wisdom) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create wisdom file: %w", err)
	}

	defer file.Close()

	if err := wisdom.Export(file); err != nil {
		return fmt.Errorf("failed to export wisdom: %w", err)
	}

	return nil
}

// Wisdom is a type alias for the internal window-table cache. Plans
// consult a Wisdom when precomputing their deconvolution diagonals; a
// nil PlanConfig.Wisdom means the process-wide default cache.
type Wisdom = window.Wisdom

// NewWisdom creates a new empty wisdom cache.
func NewWisdom() *Wisdom {
	return window.NewWisdom()
}

// ImportWisdomFromString loads wisdom data from a string.
// This is useful for embedding precomputed tables in binaries.
func ImportWisdomFromString(data string) error {
	err := window.DefaultWisdom.Import(strings.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to import wisdom from string: %w", err)
	}

	return nil
}

// ClearWisdom removes all entries from the default wisdom cache.
func ClearWisdom() {
	window.DefaultWisdom.Clear()
}

// WisdomLen returns the number of entries in the default wisdom cache.
func WisdomLen() int {
	return window.DefaultWisdom.Len()
}
