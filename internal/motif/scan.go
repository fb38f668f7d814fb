package motif

import (
	"iter"
	"math"
)

// Scan returns a restartable iterator over every motif-width window of seq
// whose score reaches minScore, yielding the window offset and its score.
// Windows containing symbols outside ACGT score -Inf and are never yielded.
// Offsets are always in seq's own coordinates; callers cover both strands by
// scanning once with the forward matrix and once with its reverse complement.
func (m *ScoringMatrix) Scan(seq []byte, minScore float64) iter.Seq2[int, float64] {
	w := m.Width()
	return func(yield func(int, float64) bool) {
		for i := 0; i+w <= len(seq); i++ {
			score, ok := m.windowScore(seq, i)
			if !ok || score < minScore {
				continue
			}
			if !yield(i, score) {
				return
			}
		}
	}
}

// windowScore sums the per-position scores of the window starting at i.
// ok is false when the window contains a non-ACGT symbol.
func (m *ScoringMatrix) windowScore(seq []byte, i int) (score float64, ok bool) {
	w := m.Width()
	for j := 0; j < w; j++ {
		c := baseIndex(seq[i+j])
		if c < 0 {
			return math.Inf(-1), false
		}
		score += m.scores[c][j]
	}
	return score, true
}
