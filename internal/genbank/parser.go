// Package genbank parses GenBank flat files and extracts the coding and
// regulatory regions motif scans run against.
package genbank

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Gene is one annotated gene span. Start and End are zero-based half-open
// genome coordinates; Strand is +1 or -1.
type Gene struct {
	Locus  string // locus_tag, falling back to the gene name
	Name   string // /gene qualifier, may be empty
	Start  int
	End    int
	Strand int8
	CDS    bool
}

// Record is one LOCUS entry: its name, full sequence and its genes sorted
// by start coordinate.
type Record struct {
	Name  string
	Seq   []byte
	Genes []*Gene
}

// ReadFile parses every record in a GenBank flat file.
// Supports gzipped files by extension.
func ReadFile(path string) ([]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open genbank file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	recs, err := Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parse genbank %s: %w", path, err)
	}
	return recs, nil
}

// qualifierIndent is the column GenBank qualifier and continuation lines
// start at; feature keys sit left of it.
const qualifierIndent = 21

// feature is one FEATURES entry while a record is being parsed.
type feature struct {
	key      string
	location string
	quals    map[string]string
	qualSeen bool
}

// Parse parses GenBank records from a reader. Malformed feature locations
// are skipped rather than failing the whole file.
func Parse(r io.Reader) ([]*Record, error) {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for long lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var records []*Record
	var rec *Record
	var feats []*feature
	var cur *feature
	section := ""

	finalize := func() {
		if rec == nil {
			return
		}
		rec.Genes = assembleGenes(feats, len(rec.Seq))
		records = append(records, rec)
		rec, feats, cur = nil, nil, nil
		section = ""
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "LOCUS"):
			finalize()
			fields := strings.Fields(line)
			rec = &Record{}
			if len(fields) > 1 {
				rec.Name = fields[1]
			}
			continue
		case strings.HasPrefix(line, "//"):
			finalize()
			continue
		}
		if rec == nil {
			continue
		}
		if len(line) > 0 && line[0] != ' ' {
			// New top-level section keyword.
			switch {
			case strings.HasPrefix(line, "FEATURES"):
				section = "FEATURES"
			case strings.HasPrefix(line, "ORIGIN"):
				section = "ORIGIN"
			default:
				section = ""
			}
			continue
		}

		switch section {
		case "FEATURES":
			trimmed := strings.TrimLeft(line, " ")
			if trimmed == "" {
				continue
			}
			indent := len(line) - len(trimmed)
			if indent < qualifierIndent {
				// New feature: key and the first slice of its location.
				fields := strings.Fields(trimmed)
				cur = &feature{key: fields[0], quals: make(map[string]string)}
				if len(fields) > 1 {
					cur.location = fields[1]
				}
				feats = append(feats, cur)
				continue
			}
			if cur == nil {
				continue
			}
			trimmed = strings.TrimSpace(trimmed)
			if strings.HasPrefix(trimmed, "/") {
				cur.qualSeen = true
				key, value, found := strings.Cut(trimmed[1:], "=")
				if found {
					cur.quals[key] = strings.Trim(value, "\"")
				} else {
					cur.quals[key] = ""
				}
			} else if !cur.qualSeen {
				// Location expressions may wrap before the qualifiers start.
				cur.location += trimmed
			}

		case "ORIGIN":
			for i := 0; i < len(line); i++ {
				if c := line[i]; (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
					rec.Seq = append(rec.Seq, c)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan genbank: %w", err)
	}
	finalize()

	return records, nil
}

// assembleGenes merges gene and CDS features into Gene entries keyed by
// locus, clamps spans to the sequence and sorts by start coordinate.
func assembleGenes(feats []*feature, seqLen int) []*Gene {
	byLocus := make(map[string]*Gene)
	var genes []*Gene

	for _, f := range feats {
		if f.key != "gene" && f.key != "CDS" {
			continue
		}
		start, end, strand, err := parseLocation(f.location)
		if err != nil {
			continue // skip malformed locations
		}
		locus := f.quals["locus_tag"]
		if locus == "" {
			locus = f.quals["gene"]
		}
		if locus == "" {
			continue
		}

		g, ok := byLocus[locus]
		if !ok {
			g = &Gene{Locus: locus, Start: start, End: end, Strand: strand}
			byLocus[locus] = g
			genes = append(genes, g)
		}
		if f.key == "gene" {
			// The gene feature's span is authoritative over the CDS span.
			g.Start, g.End, g.Strand = start, end, strand
		} else {
			g.CDS = true
		}
		if name := f.quals["gene"]; name != "" {
			g.Name = name
		}
	}

	kept := genes[:0]
	for _, g := range genes {
		if g.Start >= seqLen {
			continue
		}
		if g.End > seqLen {
			g.End = seqLen
		}
		kept = append(kept, g)
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Start != kept[j].Start {
			return kept[i].Start < kept[j].Start
		}
		return kept[i].End < kept[j].End
	})
	return kept
}

// parseLocation converts a GenBank location expression to a zero-based
// half-open span. complement(..) flips the strand; join(..) and order(..)
// collapse to their outer span; partial markers (< and >) are ignored.
func parseLocation(loc string) (start, end int, strand int8, err error) {
	strand = 1
	s := strings.TrimSpace(loc)
	if rest, ok := strings.CutPrefix(s, "complement("); ok {
		strand = -1
		s = strings.TrimSuffix(rest, ")")
	}
	if rest, ok := strings.CutPrefix(s, "join("); ok {
		s = strings.TrimSuffix(rest, ")")
	} else if rest, ok := strings.CutPrefix(s, "order("); ok {
		s = strings.TrimSuffix(rest, ")")
	}

	first := true
	for _, part := range strings.Split(s, ",") {
		lo, hi, perr := parseSpan(part)
		if perr != nil {
			return 0, 0, 0, perr
		}
		if first || lo < start {
			start = lo
		}
		if first || hi > end {
			end = hi
		}
		first = false
	}
	return start, end, strand, nil
}

// parseSpan parses "a..b" or a single base "a" (one-based inclusive) into
// zero-based half-open bounds.
func parseSpan(s string) (int, int, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")

	lo, hi, found := strings.Cut(s, "..")
	if !found {
		hi = lo
	}
	a, err := strconv.Atoi(lo)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid location bound %q", lo)
	}
	b, err := strconv.Atoi(hi)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid location bound %q", hi)
	}
	if a < 1 || b < a {
		return 0, 0, fmt.Errorf("invalid span %q", s)
	}
	return a - 1, b, nil
}
