// Package motif implements position-weight-matrix construction, thresholding
// and strand scanning for transcription-factor binding-site detection.
package motif

import (
	"errors"
	"fmt"
	"math"
)

// Bases lists the nucleotide alphabet in matrix row order.
const Bases = "ACGT"

// ErrInvalidMatrix reports a malformed position frequency matrix.
var ErrInvalidMatrix = errors.New("invalid frequency matrix")

// baseIndex maps a nucleotide symbol to its matrix row, or -1 for
// anything outside the ACGT alphabet.
func baseIndex(b byte) int {
	switch b {
	case 'A', 'a':
		return 0
	case 'C', 'c':
		return 1
	case 'G', 'g':
		return 2
	case 'T', 't':
		return 3
	}
	return -1
}

// complementIndex returns the row of the complementary base.
// Row order is A, C, G, T, so the complement of row i is row 3-i.
func complementIndex(i int) int { return 3 - i }

// FrequencyMatrix holds raw per-base counts for each motif position.
// Rows follow the order of Bases; all four rows must have equal length.
type FrequencyMatrix struct {
	Name   string
	Counts [4][]int
}

// Width returns the motif width, or 0 for an empty matrix.
func (f *FrequencyMatrix) Width() int {
	return len(f.Counts[0])
}

// validate checks row lengths and count signs.
func (f *FrequencyMatrix) validate() error {
	w := f.Width()
	for i := range f.Counts {
		if len(f.Counts[i]) != w {
			return fmt.Errorf("%w: base %c has %d positions, want %d",
				ErrInvalidMatrix, Bases[i], len(f.Counts[i]), w)
		}
		for j, n := range f.Counts[i] {
			if n < 0 {
				return fmt.Errorf("%w: negative count %d for base %c at position %d",
					ErrInvalidMatrix, n, Bases[i], j)
			}
		}
	}
	if w == 0 {
		return fmt.Errorf("%w: matrix has no positions", ErrInvalidMatrix)
	}
	return nil
}

// Probabilities returns per-position base probabilities in A, C, G, T
// order, after adding the pseudocount to every count and normalizing each
// column.
func (f *FrequencyMatrix) Probabilities(pseudocount float64) ([][4]float64, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	probs := make([][4]float64, f.Width())
	for j := range probs {
		total := 0.0
		for i := 0; i < 4; i++ {
			total += float64(f.Counts[i][j]) + pseudocount
		}
		if total == 0 {
			return nil, fmt.Errorf("%w: column %d sums to zero after pseudocount", ErrInvalidMatrix, j)
		}
		for i := 0; i < 4; i++ {
			probs[j][i] = (float64(f.Counts[i][j]) + pseudocount) / total
		}
	}
	return probs, nil
}

// ScoringMatrix is a position weight matrix of background-adjusted log2-odds
// scores. It is immutable after construction and safe to share across
// goroutines.
type ScoringMatrix struct {
	name   string
	scores [4][]float64
	bg     Background
}

// NewScoringMatrix converts a frequency matrix into a scoring matrix.
// Each count is incremented by pseudocount, the column is normalized to
// probabilities, each probability is divided by the background probability
// of its base and the ratio is log2-transformed. A zero-valued background
// selects the uniform distribution.
func NewScoringMatrix(freq *FrequencyMatrix, pseudocount float64, bg Background) (*ScoringMatrix, error) {
	probs, err := freq.Probabilities(pseudocount)
	if err != nil {
		return nil, err
	}
	if bg.isZero() {
		bg = UniformBackground()
	}

	m := &ScoringMatrix{name: freq.Name, bg: bg}
	for i := range m.scores {
		m.scores[i] = make([]float64, len(probs))
	}
	for j := range probs {
		for i := 0; i < 4; i++ {
			m.scores[i][j] = math.Log2(probs[j][i] / bg[i])
		}
	}
	return m, nil
}

// Name returns the motif name carried over from the frequency matrix.
func (m *ScoringMatrix) Name() string { return m.name }

// Width returns the motif width.
func (m *ScoringMatrix) Width() int { return len(m.scores[0]) }

// Background returns the background distribution the matrix was built against.
func (m *ScoringMatrix) Background() Background { return m.bg }

// Score returns the log2-odds score of base b at motif position j,
// or -Inf if b is outside the ACGT alphabet.
func (m *ScoringMatrix) Score(b byte, j int) float64 {
	i := baseIndex(b)
	if i < 0 {
		return math.Inf(-1)
	}
	return m.scores[i][j]
}

// Column returns the four scores of position j in A, C, G, T order.
func (m *ScoringMatrix) Column(j int) [4]float64 {
	return [4]float64{m.scores[0][j], m.scores[1][j], m.scores[2][j], m.scores[3][j]}
}

// ReverseComplement derives the companion matrix that scores the reverse
// strand: position order is reversed and complementary base rows are
// swapped. Applying it twice yields the original matrix.
func (m *ScoringMatrix) ReverseComplement() *ScoringMatrix {
	w := m.Width()
	rc := &ScoringMatrix{name: m.name, bg: m.bg.complement()}
	for i := range rc.scores {
		row := make([]float64, w)
		src := m.scores[complementIndex(i)]
		for j := 0; j < w; j++ {
			row[j] = src[w-1-j]
		}
		rc.scores[i] = row
	}
	return rc
}
