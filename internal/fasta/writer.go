package fasta

import (
	"bufio"
	"io"
)

// lineWidth is the number of bases written per sequence line.
const lineWidth = 60

// Writer writes records in FASTA format, wrapping sequences at lineWidth.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a new FASTA writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write writes a single record.
func (fw *Writer) Write(rec *Record) error {
	if err := fw.w.WriteByte('>'); err != nil {
		return err
	}
	if _, err := fw.w.WriteString(rec.Header()); err != nil {
		return err
	}
	if err := fw.w.WriteByte('\n'); err != nil {
		return err
	}
	for i := 0; i < len(rec.Seq); i += lineWidth {
		end := i + lineWidth
		if end > len(rec.Seq) {
			end = len(rec.Seq)
		}
		if _, err := fw.w.Write(rec.Seq[i:end]); err != nil {
			return err
		}
		if err := fw.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes any buffered data to the underlying writer.
func (fw *Writer) Flush() error {
	return fw.w.Flush()
}
