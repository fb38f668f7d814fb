package genbank

import (
	"fmt"

	"github.com/althonos/minimotif/internal/fasta"
)

// DefaultUpstream is the regulatory window length in bases.
const DefaultUpstream = 300

// ExtractRegions derives the two region sets scans run against: the coding
// set holds one forward-strand slice per CDS-bearing gene, the regulatory
// set holds the window upstream of each gene's 5' end, clipped against
// neighboring gene bodies and the genome bounds.
//
// A divergently transcribed pair (a minus-strand gene directly followed by
// a plus-strand gene) whose upstream claims overlap shares one record
// spanning the intergenic gap, named "left-right" with a "-+" suffix.
// Convergent gaps are downstream of both genes and produce nothing.
func ExtractRegions(rec *Record, upstream int) (coding, regulatory []*fasta.Record) {
	if upstream <= 0 {
		upstream = DefaultUpstream
	}
	idx := BuildGeneIndex(rec.Genes)

	for _, g := range rec.Genes {
		if !g.CDS {
			continue
		}
		coding = append(coding, regionRecord(rec, g.Locus, g.Start, g.End, strandString(g.Strand)))
	}

	consumed := make([]bool, len(rec.Genes))
	for i, g := range rec.Genes {
		if consumed[i] {
			continue
		}
		if g.Strand < 0 && i+1 < len(rec.Genes) {
			next := rec.Genes[i+1]
			divergent := next.Strand > 0 && g.End < next.Start &&
				g.End+upstream > next.Start-upstream
			if divergent {
				gapStart, gapEnd := g.End, next.Start
				for _, o := range idx.Overlapping(gapStart, gapEnd) {
					if o.End > gapStart {
						gapStart = o.End
					}
				}
				if gapStart < gapEnd {
					name := g.Locus + "-" + next.Locus
					regulatory = append(regulatory, regionRecord(rec, name, gapStart, gapEnd, "-+"))
				}
				consumed[i+1] = true
				continue
			}
		}
		if r := upstreamRecord(rec, idx, g, upstream); r != nil {
			regulatory = append(regulatory, r)
		}
	}

	return coding, regulatory
}

// upstreamRecord returns the gene's promoter-side window clipped against
// overlapping gene bodies, or nil when no space remains.
func upstreamRecord(rec *Record, idx *GeneIndex, g *Gene, upstream int) *fasta.Record {
	var a, b int
	if g.Strand >= 0 {
		a, b = g.Start-upstream, g.Start
		if a < 0 {
			a = 0
		}
		for _, o := range idx.Overlapping(a, b) {
			if o.End > a {
				a = o.End
			}
		}
	} else {
		a, b = g.End, g.End+upstream
		if n := len(rec.Seq); b > n {
			b = n
		}
		for _, o := range idx.Overlapping(a, b) {
			if o.Start < b {
				b = o.Start
			}
		}
	}
	if a >= b {
		return nil
	}
	return regionRecord(rec, g.Locus, a, b, strandString(g.Strand))
}

func regionRecord(rec *Record, name string, start, end int, extra string) *fasta.Record {
	header := fmt.Sprintf("%s~%d:%d~%s", name, start, end, extra)
	return fasta.NewRecord(header, rec.Seq[start:end])
}

func strandString(strand int8) string {
	if strand < 0 {
		return "-"
	}
	return "+"
}
