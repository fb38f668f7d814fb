// Package detect scans sequence records for motif occurrences and maps
// them onto genome coordinates with a confidence tier.
package detect

import "github.com/althonos/minimotif/internal/motif"

// Confidence is an ordinal hit-strength tier.
type Confidence string

const (
	Weak   Confidence = "weak"
	Medium Confidence = "medium"
	Strong Confidence = "strong"
)

// Classify maps a raw hit score onto a tier. Scores at or below the strict
// boundary are weak; scores at or above the midpoint between the strict
// boundary and the maximum score are strong; everything between is medium.
func Classify(score float64, th motif.Thresholds) Confidence {
	if score <= th.Strict {
		return Weak
	}
	if score >= (th.Strict+th.MaxScore)/2 {
		return Strong
	}
	return Medium
}
