package detect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/althonos/minimotif/internal/fasta"
	"github.com/althonos/minimotif/internal/motif"
)

// acgtMatrix returns a width-4 matrix whose consensus ACGT is the only
// window passing the p-value 0.004 threshold under a uniform background.
func acgtMatrix(t *testing.T) *motif.ScoringMatrix {
	t.Helper()
	freq := &motif.FrequencyMatrix{
		Name: "acgt",
		Counts: [4][]int{
			{18, 0, 1, 0},
			{0, 18, 0, 1},
			{1, 0, 17, 1},
			{1, 2, 2, 18},
		},
	}
	m, err := motif.NewScoringMatrix(freq, 0.1, motif.Background{})
	require.NoError(t, err)
	return m
}

// aaccMatrix returns a width-4 matrix with the non-palindromic consensus
// AACC, so forward and reverse occurrences are distinguishable.
func aaccMatrix(t *testing.T) *motif.ScoringMatrix {
	t.Helper()
	freq := &motif.FrequencyMatrix{
		Name: "aacc",
		Counts: [4][]int{
			{18, 18, 0, 0},
			{0, 0, 18, 18},
			{1, 1, 1, 1},
			{1, 1, 1, 1},
		},
	}
	m, err := motif.NewScoringMatrix(freq, 0.1, motif.Background{})
	require.NoError(t, err)
	return m
}

func TestDetectRecord_BothStrands(t *testing.T) {
	m := acgtMatrix(t)
	d := NewDetector(m, 0.004)
	maxScore, _ := m.TierBoundaries()

	rec := fasta.NewRecord("locus1~100:110~+", []byte("ACGTACGT"))
	matches, err := d.DetectRecord(rec)
	require.NoError(t, err)
	require.Len(t, matches, 4)

	// Forward hits first in offset order, then reverse hits. The consensus
	// is palindromic, so both strands hit the same offsets.
	for _, rm := range matches {
		assert.Equal(t, "locus1", rm.Region)
		assert.Equal(t, "ACGT", rm.Match.Site)
		assert.InDelta(t, maxScore, rm.Match.Score, 1e-9)
		assert.Equal(t, Strong, rm.Match.Confidence)
	}
	assert.Equal(t, []string{"+", "+", "-", "-"},
		[]string{matches[0].Match.Strand, matches[1].Match.Strand, matches[2].Match.Strand, matches[3].Match.Strand})
	assert.Equal(t, 100, matches[0].Match.Start)
	assert.Equal(t, 104, matches[0].Match.End)
	assert.Equal(t, 104, matches[1].Match.Start)
	assert.Equal(t, 108, matches[1].Match.End)
	assert.Equal(t, 100, matches[2].Match.Start)
	assert.Equal(t, 104, matches[3].Match.Start)
}

func TestDetectRecord_ReverseStrandSite(t *testing.T) {
	d := NewDetector(aaccMatrix(t), 0.004)

	// GGTT at offset 2 is the reverse complement of the consensus; there is
	// no forward occurrence anywhere in the sequence.
	rec := fasta.NewRecord("locusX~500:508~+", []byte("TTGGTTTT"))
	matches, err := d.DetectRecord(rec)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	got := matches[0].Match
	assert.Equal(t, "-", got.Strand)
	assert.Equal(t, 502, got.Start)
	assert.Equal(t, 506, got.End)
	assert.Equal(t, "AACC", got.Site, "site must read in motif orientation")
}

func TestDetectRecord_GenePairAttribution(t *testing.T) {
	d := NewDetector(acgtMatrix(t), 0.004)

	// Midpoint of 100:110 is 105: the hit at 100 goes left, the one at 106
	// goes right.
	rec := fasta.NewRecord("geneA-geneB~100:110~-+", []byte("ACGTTTACGT"))
	matches, err := d.DetectRecord(rec)
	require.NoError(t, err)
	require.Len(t, matches, 4)

	assert.Equal(t, "geneA", matches[0].Region)
	assert.Equal(t, 100, matches[0].Match.Start)
	assert.Equal(t, "geneB", matches[1].Region)
	assert.Equal(t, 106, matches[1].Match.Start)
	assert.Equal(t, "geneA", matches[2].Region)
	assert.Equal(t, "geneB", matches[3].Region)
}

func TestDetectRecord_LowercaseSequence(t *testing.T) {
	d := NewDetector(acgtMatrix(t), 0.004)

	rec := fasta.NewRecord("locus1~0:8~+", []byte("acgtacgt"))
	matches, err := d.DetectRecord(rec)
	require.NoError(t, err)
	require.Len(t, matches, 4)
	assert.Equal(t, "acgt", matches[0].Match.Site, "site keeps the source case")
}

func TestDetectRecord_MalformedHeader(t *testing.T) {
	d := NewDetector(acgtMatrix(t), 0.004)

	_, err := d.DetectRecord(fasta.NewRecord("no separators here", []byte("ACGT")))
	var herr *HeaderError
	require.ErrorAs(t, err, &herr)
}

func TestDetectRecord_NoHits(t *testing.T) {
	d := NewDetector(acgtMatrix(t), 0.004)

	matches, err := d.DetectRecord(fasta.NewRecord("locus1~0:8~+", []byte("TTTTTTTT")))
	require.NoError(t, err)
	assert.Empty(t, matches)

	// Shorter than the motif: no windows at all.
	matches, err = d.DetectRecord(fasta.NewRecord("locus1~0:2~+", []byte("AC")))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestDetectAll(t *testing.T) {
	d := NewDetector(acgtMatrix(t), 0.004)

	src := fasta.NewRecords([]*fasta.Record{
		fasta.NewRecord("geneA-geneB~100:110~x", []byte("ACGTTTACGT")),
		fasta.NewRecord("locus9~500:520~+", []byte("TTACGTTT")),
	})

	table, err := d.DetectAll(src, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"geneA", "geneB", "locus9"}, table.Regions())
	assert.Equal(t, 6, table.Len())

	geneA := table.Matches("geneA")
	require.Len(t, geneA, 2)
	assert.Equal(t, "+", geneA[0].Strand)
	assert.Equal(t, "-", geneA[1].Strand)
	assert.Equal(t, 100, geneA[0].Start)

	locus9 := table.Matches("locus9")
	require.Len(t, locus9, 2)
	assert.Equal(t, 502, locus9[0].Start)
	assert.Equal(t, 506, locus9[0].End)
}

func TestDetectAll_SkipsMalformedRecords(t *testing.T) {
	d := NewDetector(acgtMatrix(t), 0.004)

	src := fasta.NewRecords([]*fasta.Record{
		fasta.NewRecord("not a valid header", []byte("ACGTACGT")),
		fasta.NewRecord("locus1~0:8~+", []byte("ACGTACGT")),
	})

	table, err := d.DetectAll(src, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"locus1"}, table.Regions())
	assert.Equal(t, 4, table.Len())
}

func TestDetectAll_Deterministic(t *testing.T) {
	recs := func() *fasta.Records {
		var rs []*fasta.Record
		for i := 0; i < 20; i++ {
			rs = append(rs, fasta.NewRecord(
				"locus"+string(rune('a'+i))+"~0:8~+", []byte("ACGTACGT")))
		}
		return fasta.NewRecords(rs)
	}

	d := NewDetector(acgtMatrix(t), 0.004)
	first, err := d.DetectAll(recs(), 8)
	require.NoError(t, err)
	second, err := d.DetectAll(recs(), 1)
	require.NoError(t, err)

	assert.Equal(t, first.Regions(), second.Regions())
	for _, region := range first.Regions() {
		assert.Equal(t, first.Matches(region), second.Matches(region))
	}
}

func TestDetectAll_EmptyInput(t *testing.T) {
	d := NewDetector(acgtMatrix(t), 0.004)

	table, err := d.DetectAll(fasta.NewRecords(nil), 0)
	require.NoError(t, err)
	assert.Zero(t, table.Len())
}

// failingParser yields one record then an error.
type failingParser struct{ calls int }

func (p *failingParser) Next() (*fasta.Record, error) {
	p.calls++
	if p.calls == 1 {
		return fasta.NewRecord("locus1~0:8~+", []byte("ACGTACGT")), nil
	}
	return nil, errors.New("disk fell over")
}

func (p *failingParser) Close() error { return nil }

func TestDetectAll_ParserError(t *testing.T) {
	d := NewDetector(acgtMatrix(t), 0.004)

	_, err := d.DetectAll(&failingParser{}, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read record")
}
