package detect

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/althonos/minimotif/internal/fasta"
	"github.com/althonos/minimotif/internal/motif"
)

// Detector scans sequence records on both strands. The scanners and
// thresholds are derived once and shared read-only across workers.
type Detector struct {
	fwd    Scanner
	rev    Scanner
	width  int
	th     motif.Thresholds
	logger *zap.Logger
}

// NewDetector creates a detector scanning natively with the matrix and its
// reverse complement, with score thresholds derived for the given p-value.
func NewDetector(m *motif.ScoringMatrix, pvalue float64) *Detector {
	return NewDetectorScanners(
		NewMatrixScanner(m),
		NewMatrixScanner(m.ReverseComplement()),
		m.Width(),
		motif.ComputeThresholds(m, pvalue),
	)
}

// NewDetectorScanners creates a detector over explicit forward and reverse
// scanners, for callers that delegate scanning to an external tool.
func NewDetectorScanners(fwd, rev Scanner, width int, th motif.Thresholds) *Detector {
	return &Detector{
		fwd:    fwd,
		rev:    rev,
		width:  width,
		th:     th,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for warning and info messages.
func (d *Detector) SetLogger(l *zap.Logger) {
	d.logger = l
}

// Thresholds returns the score cutoffs the detector scans with.
func (d *Detector) Thresholds() motif.Thresholds {
	return d.th
}

// DetectRecord scans a single record and returns its matches with resolved
// region names, forward-strand matches first, then reverse-strand matches,
// each group in ascending offset order. Reverse-strand offsets are forward
// coordinates of the window's leftmost base; their sites are reported
// reverse complemented. Records with an empty sequence yield no matches.
func (d *Detector) DetectRecord(rec *fasta.Record) ([]RegionMatch, error) {
	if len(rec.Seq) == 0 {
		return nil, nil
	}
	header, err := ParseHeader(rec.ID)
	if err != nil {
		return nil, err
	}

	var out []RegionMatch

	for _, h := range d.fwd.Scan(rec.Seq, d.th.MinScore) {
		region, absStart, absEnd := header.Resolve(h.Pos, d.width)
		out = append(out, RegionMatch{Region: region, Match: Match{
			Start:      absStart,
			End:        absEnd,
			Strand:     "+",
			Score:      h.Score,
			Confidence: Classify(h.Score, d.th),
			Site:       string(rec.Seq[h.Pos : h.Pos+d.width]),
		}})
	}

	for _, h := range d.rev.Scan(rec.Seq, d.th.MinScore) {
		region, absStart, absEnd := header.Resolve(h.Pos, d.width)
		out = append(out, RegionMatch{Region: region, Match: Match{
			Start:      absStart,
			End:        absEnd,
			Strand:     "-",
			Score:      h.Score,
			Confidence: Classify(h.Score, d.th),
			Site:       string(fasta.ReverseComplement(rec.Seq[h.Pos : h.Pos+d.width])),
		}})
	}

	return out, nil
}

// DetectAll scans every record from the parser and aggregates matches by
// resolved region. Records with malformed identifiers are skipped and
// logged rather than aborting the pass. If workers is 0, runtime.NumCPU()
// is used.
func (d *Detector) DetectAll(parser fasta.RecordParser, workers int) (*Table, error) {
	items := make(chan WorkItem, 2*runtime.NumCPU())
	var parseErr error
	recordCount := 0

	go func() {
		defer close(items)
		seq := 0
		for {
			rec, err := parser.Next()
			if err != nil {
				parseErr = fmt.Errorf("read record: %w", err)
				return
			}
			if rec == nil {
				return
			}
			recordCount++
			items <- WorkItem{Seq: seq, Record: rec}
			seq++
		}
	}()

	results := d.ParallelDetect(items, workers)

	table := NewTable()
	err := OrderedCollect(results, func(r WorkResult) error {
		if r.Err != nil {
			d.logger.Warn("skipping record",
				zap.String("record", r.Record.ID),
				zap.Error(r.Err))
			return nil
		}
		for _, rm := range r.Matches {
			table.Add(rm.Region, rm.Match)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if parseErr != nil {
		return nil, parseErr
	}

	if recordCount == 0 {
		d.logger.Info("0 records scanned")
	}

	return table, nil
}
