package genbank

import "sort"

// GeneIndex provides fast overlap queries over gene spans using a
// sorted-slice approach with a running maximum of end coordinates.
// Build once, query many times.
type GeneIndex struct {
	genes  []*Gene // sorted by start
	maxEnd []int   // maxEnd[i] = max End of genes[:i+1]
}

// BuildGeneIndex constructs a gene index from a gene list.
func BuildGeneIndex(genes []*Gene) *GeneIndex {
	sorted := make([]*Gene, len(genes))
	copy(sorted, genes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	// Prefix-max array so the backward scan below can stop as soon as
	// nothing further left reaches into the query.
	maxEnd := make([]int, len(sorted))
	for i, g := range sorted {
		maxEnd[i] = g.End
		if i > 0 && maxEnd[i-1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i-1]
		}
	}

	return &GeneIndex{genes: sorted, maxEnd: maxEnd}
}

// Overlapping returns all genes whose span intersects the half-open
// interval [start, end).
func (t *GeneIndex) Overlapping(start, end int) []*Gene {
	if len(t.genes) == 0 || start >= end {
		return nil
	}

	// Find the first gene starting at or past the query end; everything
	// right of it starts too late to overlap.
	hi := sort.Search(len(t.genes), func(i int) bool {
		return t.genes[i].Start >= end
	})

	var result []*Gene
	for i := hi - 1; i >= 0; i-- {
		// maxEnd[i] covers genes[:i+1], the part still to be scanned.
		if t.maxEnd[i] <= start {
			break
		}
		if t.genes[i].End > start {
			result = append(result, t.genes[i])
		}
	}
	// Restore ascending start order.
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result
}
