package detect

import "github.com/althonos/minimotif/internal/motif"

// Hit is a raw scanner hit: the window offset in forward sequence
// coordinates and its score.
type Hit struct {
	Pos   int
	Score float64
}

// Scanner produces motif hits over a sequence. Implementations may score
// windows natively or delegate to an external scanning tool; the detector
// only depends on this capability.
type Scanner interface {
	Scan(seq []byte, minScore float64) []Hit
}

// MatrixScanner scores windows with a scoring matrix.
type MatrixScanner struct {
	m *motif.ScoringMatrix
}

// NewMatrixScanner wraps a scoring matrix as a Scanner.
func NewMatrixScanner(m *motif.ScoringMatrix) MatrixScanner {
	return MatrixScanner{m: m}
}

// Scan returns every window reaching minScore in ascending offset order.
func (s MatrixScanner) Scan(seq []byte, minScore float64) []Hit {
	var hits []Hit
	for pos, score := range s.m.Scan(seq, minScore) {
		hits = append(hits, Hit{Pos: pos, Score: score})
	}
	return hits
}
