// Package fasta provides FASTA file parsing and writing.
package fasta

import "strings"

// Record is a single FASTA record. ID is the first whitespace-delimited
// token of the header line; Description holds the rest, if any.
type Record struct {
	ID          string
	Description string
	Seq         []byte
}

// NewRecord builds a record, splitting the header into ID and description.
func NewRecord(header string, seq []byte) *Record {
	rec := &Record{Seq: seq}
	header = strings.TrimSpace(header)
	if i := strings.IndexAny(header, " \t"); i >= 0 {
		rec.ID = header[:i]
		rec.Description = strings.TrimSpace(header[i+1:])
	} else {
		rec.ID = header
	}
	return rec
}

// Header reassembles the full header line without the leading '>'.
func (r *Record) Header() string {
	if r.Description == "" {
		return r.ID
	}
	return r.ID + " " + r.Description
}
