package motif

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Small fixture in JASPAR PFM format.
const testPFM = `>MA0001.1 TestTF
A  [ 4 19  0  0  0 ]
C  [16  0 20  0  0 ]
G  [ 0  1  0 20  0 ]
T  [ 0  0  0  0 20 ]
`

func TestParsePFM_Jaspar(t *testing.T) {
	fm, err := ParsePFM(strings.NewReader(testPFM))
	require.NoError(t, err)

	assert.Equal(t, "MA0001.1", fm.Name)
	assert.Equal(t, 5, fm.Width())
	assert.Equal(t, []int{4, 19, 0, 0, 0}, fm.Counts[0])
	assert.Equal(t, []int{16, 0, 20, 0, 0}, fm.Counts[1])
	assert.Equal(t, []int{0, 1, 0, 20, 0}, fm.Counts[2])
	assert.Equal(t, []int{0, 0, 0, 0, 20}, fm.Counts[3])
}

func TestParsePFM_BareRows(t *testing.T) {
	// Unlabeled rows are taken in A, C, G, T order.
	in := "4 19 0\n16 0 20\n0 1 0\n0 0 0\n"
	fm, err := ParsePFM(strings.NewReader(in))
	require.NoError(t, err)

	assert.Empty(t, fm.Name)
	assert.Equal(t, 3, fm.Width())
	assert.Equal(t, []int{4, 19, 0}, fm.Counts[0])
	assert.Equal(t, []int{0, 0, 0}, fm.Counts[3])
}

func TestParsePFM_LabelsOutOfOrder(t *testing.T) {
	in := ">shuffled\nT 7 8\nG 5 6\nC 3 4\nA 1 2\n"
	fm, err := ParsePFM(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, fm.Counts[0])
	assert.Equal(t, []int{3, 4}, fm.Counts[1])
	assert.Equal(t, []int{5, 6}, fm.Counts[2])
	assert.Equal(t, []int{7, 8}, fm.Counts[3])
}

func TestParsePFM_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty input", ""},
		{"too few rows", "1 2\n3 4\n"},
		{"too many rows", "1\n2\n3\n4\n5\n"},
		{"non-numeric count", "1 2\n3 x\n5 6\n7 8\n"},
		{"ragged rows", "1 2\n3 4 5\n6 7\n8 9\n"},
		{"negative count", "1 2\n3 -4\n5 6\n7 8\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePFM(strings.NewReader(tt.in))
			require.ErrorIs(t, err, ErrInvalidMatrix)
		})
	}
}

func TestReadPFM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pfm")
	require.NoError(t, os.WriteFile(path, []byte(testPFM), 0644))

	fm, err := ReadPFM(path)
	require.NoError(t, err)
	assert.Equal(t, "MA0001.1", fm.Name)
	assert.Equal(t, 5, fm.Width())
}

func TestReadPFM_Gzipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pfm.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(testPFM))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	fm, err := ReadPFM(path)
	require.NoError(t, err)
	assert.Equal(t, "MA0001.1", fm.Name)
	assert.Equal(t, []int{0, 0, 0, 0, 20}, fm.Counts[3])
}

func TestReadPFM_MissingFile(t *testing.T) {
	_, err := ReadPFM(filepath.Join(t.TempDir(), "nope.pfm"))
	require.Error(t, err)
}
