package motif

import "math"

const (
	// strictTierCutoff is the per-position score a column maximum must reach
	// to count toward the strict tier boundary.
	strictTierCutoff = 1.9

	// scoreScale is the discretization granularity used to convert p-values
	// into score thresholds.
	scoreScale = 1000
)

// Thresholds bundles the score cutoffs derived from one scoring matrix.
// MinScore gates reporting; MaxScore and Strict bound the confidence tiers.
type Thresholds struct {
	MinScore float64 // smallest reportable window score, from the p-value
	MaxScore float64 // sum of the best score at every position
	Strict   float64 // sum of per-position best scores reaching strictTierCutoff
}

// ComputeThresholds derives all three cutoffs for a matrix at the given
// p-value. The matrix's own background weights the score distribution.
func ComputeThresholds(m *ScoringMatrix, pvalue float64) Thresholds {
	maxScore, strict := m.TierBoundaries()
	return Thresholds{
		MinScore: m.MinScoreForPValue(pvalue),
		MaxScore: maxScore,
		Strict:   strict,
	}
}

// TierBoundaries returns the maximum attainable window score and the strict
// tier boundary: the same per-position maxima summed only where they reach
// strictTierCutoff.
func (m *ScoringMatrix) TierBoundaries() (maxScore, strict float64) {
	w := m.Width()
	for j := 0; j < w; j++ {
		best := m.scores[0][j]
		for i := 1; i < 4; i++ {
			if m.scores[i][j] > best {
				best = m.scores[i][j]
			}
		}
		maxScore += best
		if best >= strictTierCutoff {
			strict += best
		}
	}
	return maxScore, strict
}

// MinScoreForPValue returns the smallest score s such that a random window
// drawn from the matrix's background scores at least s with probability at
// most pvalue. Scores are discretized to 1/scoreScale and the distribution
// of window scores is built by convolving the per-position score
// distributions, so the result is deterministic and monotonically
// non-decreasing as pvalue decreases.
func (m *ScoringMatrix) MinScoreForPValue(pvalue float64) float64 {
	w := m.Width()

	// Integer-scale the matrix and shift each position so its smallest
	// value maps to bin zero.
	scaled := make([][4]int, w)
	mins := make([]int, w)
	minSum := 0
	for j := 0; j < w; j++ {
		lo := math.MaxInt
		for i := 0; i < 4; i++ {
			v := int(math.Round(m.scores[i][j] * scoreScale))
			scaled[j][i] = v
			if v < lo {
				lo = v
			}
		}
		mins[j] = lo
		minSum += lo
	}

	// Convolve one position at a time. dist[s] is the probability that the
	// positions folded in so far sum to s bins above their joint minimum.
	dist := []float64{1}
	for j := 0; j < w; j++ {
		span := 0
		for i := 0; i < 4; i++ {
			if d := scaled[j][i] - mins[j]; d > span {
				span = d
			}
		}
		next := make([]float64, len(dist)+span)
		for s, p := range dist {
			if p == 0 {
				continue
			}
			for i := 0; i < 4; i++ {
				next[s+scaled[j][i]-mins[j]] += p * m.bg[i]
			}
		}
		dist = next
	}

	// Walk the tail from the top until it exceeds pvalue; the bin above the
	// stopping point is the smallest score with tail mass <= pvalue.
	tail := 0.0
	for s := len(dist) - 1; s >= 0; s-- {
		tail += dist[s]
		if tail > pvalue {
			return float64(s+1+minSum) / scoreScale
		}
	}
	return float64(minSum) / scoreScale
}
