package dataio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadFloats(t *testing.T) {
	t.Parallel()

	vals, err := ReadFloats(strings.NewReader("1.0 2e-3\n\t-4 5.5e2\n"))
	require.NoError(t, err)
	require.Equal(t, []float64{1.0, 0.002, -4, 550}, vals)

	vals, err = ReadFloats(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, vals)

	_, err = ReadFloats(strings.NewReader("1.0 not-a-number"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "value 2")
}

func TestReadComplexFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rePath := filepath.Join(dir, "input_data_r.dat")
	imPath := filepath.Join(dir, "input_data_i.dat")

	require.NoError(t, os.WriteFile(rePath, []byte("1.5 2.5 3.5\n"), 0o644))
	require.NoError(t, os.WriteFile(imPath, []byte("-1 0 1\n"), 0o644))

	vals, err := ReadComplexFiles(rePath, imPath, 3)
	require.NoError(t, err)
	require.Equal(t, []complex128{complex(1.5, -1), complex(2.5, 0), complex(3.5, 1)}, vals)

	_, err = ReadComplexFiles(rePath, imPath, 5)
	require.Error(t, err, "asking for more values than the files hold must fail")

	_, err = ReadComplexFiles(filepath.Join(dir, "missing.dat"), imPath, 3)
	require.Error(t, err)
}

func TestWriteFloats_RoundTrip(t *testing.T) {
	t.Parallel()

	want := []float64{1.25e-8, -3, 0, 2.5e17}

	path := filepath.Join(t.TempDir(), "errors.dat")
	require.NoError(t, WriteFloatsFile(path, want))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, len(want), "one value per line")

	got, err := ReadFloatsFile(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
