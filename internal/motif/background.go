package motif

import (
	"errors"
	"fmt"
)

// ErrEmptySequence reports a zero-length background reference sequence.
var ErrEmptySequence = errors.New("empty sequence")

// Background is a nucleotide probability distribution in A, C, G, T order.
type Background [4]float64

// UniformBackground returns the flat distribution used when no reference
// sequence is available.
func UniformBackground() Background {
	return Background{0.25, 0.25, 0.25, 0.25}
}

// GCContent returns the fraction of G and C symbols in seq, or 0 for an
// empty sequence. Case is ignored.
func GCContent(seq []byte) float64 {
	if len(seq) == 0 {
		return 0
	}
	gc := 0
	for _, b := range seq {
		switch b {
		case 'G', 'g', 'C', 'c':
			gc++
		}
	}
	return float64(gc) / float64(len(seq))
}

// NewBackground derives a background distribution from the GC content of a
// reference sequence: the GC fraction is split evenly between G and C, the
// remainder evenly between A and T.
func NewBackground(seq []byte) (Background, error) {
	if len(seq) == 0 {
		return Background{}, fmt.Errorf("background reference: %w", ErrEmptySequence)
	}
	return NewBackgroundFromGC(GCContent(seq)), nil
}

// NewBackgroundFromGC builds the distribution for a known GC fraction.
func NewBackgroundFromGC(gc float64) Background {
	gcHalf := gc / 2
	atHalf := 0.5 - gcHalf
	return Background{atHalf, gcHalf, gcHalf, atHalf}
}

// complement swaps the probabilities of complementary bases.
func (b Background) complement() Background {
	return Background{b[3], b[2], b[1], b[0]}
}

// isZero reports whether b is the zero value rather than a distribution.
func (b Background) isZero() bool {
	return b[0] == 0 && b[1] == 0 && b[2] == 0 && b[3] == 0
}
