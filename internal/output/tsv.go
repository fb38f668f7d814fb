// Package output provides scan result and matrix formatters.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/althonos/minimotif/internal/detect"
)

// resultColumns is the result file layout, shared by writer and reader.
var resultColumns = []string{
	"Region",
	"Location",
	"Strand",
	"Score",
	"Confidence",
	"Sequence",
}

// Writer writes motif matches in tab-delimited format.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a new tab-delimited results writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteHeader writes the header line.
func (tw *Writer) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(resultColumns, "\t") + "\n")
	return err
}

// Write writes a single match row. Location is the half-open start:end
// span on the genome.
func (tw *Writer) Write(region string, m detect.Match) error {
	values := []string{
		region,
		fmt.Sprintf("%d:%d", m.Start, m.End),
		m.Strand,
		strconv.FormatFloat(m.Score, 'g', -1, 64),
		string(m.Confidence),
		m.Site,
	}
	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// WriteTable writes the header and every match in table order, then
// flushes.
func (tw *Writer) WriteTable(table *detect.Table) error {
	if err := tw.WriteHeader(); err != nil {
		return err
	}
	if err := table.Each(tw.Write); err != nil {
		return err
	}
	return tw.Flush()
}

// Flush flushes any buffered data to the underlying writer.
func (tw *Writer) Flush() error {
	return tw.w.Flush()
}
