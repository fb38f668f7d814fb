package fasta

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// RecordParser is the interface for sources that stream FASTA records.
// Both file-backed parsers and in-memory record lists implement it.
type RecordParser interface {
	// Next reads the next record.
	// Returns nil, nil when there are no more records.
	Next() (*Record, error)

	// Close closes the parser and releases resources.
	Close() error
}

// Parser reads records from a FASTA file.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
}

// NewParser creates a new FASTA parser for the given file.
// Supports both plain and gzipped files; "-" reads from stdin.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fasta file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read fasta file: %w", err)
	}

	// Seek back to beginning
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek fasta file: %w", err)
	}

	// Check for gzip magic number (0x1f, 0x8b)
	if n == 2 && buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin).
func NewParserFromReader(r io.Reader) *Parser {
	return &Parser{reader: bufio.NewReader(r)}
}

// Next reads the next record from the FASTA file.
// Returns nil, nil when there are no more records.
func (p *Parser) Next() (*Record, error) {
	// Find the next header line, skipping blank lines.
	var header string
	for {
		line, err := p.reader.ReadString('\n')
		if len(line) > 0 {
			p.lineNumber++
		}
		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			if !strings.HasPrefix(line, ">") {
				return nil, &ParseError{
					Line:    p.lineNumber,
					Message: fmt.Sprintf("expected record header, found %q", line),
				}
			}
			header = strings.TrimPrefix(line, ">")
			break
		}
		if err != nil {
			if err == io.EOF {
				return nil, nil
			}
			return nil, fmt.Errorf("read record header: %w", err)
		}
	}

	// Accumulate sequence lines until the next header or EOF.
	var seq []byte
	for {
		if next, err := p.reader.Peek(1); err == nil && next[0] == '>' {
			break
		}
		line, err := p.reader.ReadString('\n')
		if len(line) > 0 {
			p.lineNumber++
			seq = append(seq, []byte(strings.TrimSpace(line))...)
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read sequence line: %w", err)
		}
	}

	rec := NewRecord(header, seq)
	return rec, nil
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// Records adapts an in-memory record list to the RecordParser interface,
// so extracted regions can feed detection without a round trip to disk.
type Records struct {
	recs []*Record
	next int
}

// NewRecords wraps a record slice in a RecordParser.
func NewRecords(recs []*Record) *Records {
	return &Records{recs: recs}
}

// Next returns the next record, or nil, nil when the list is exhausted.
func (r *Records) Next() (*Record, error) {
	if r.next >= len(r.recs) {
		return nil, nil
	}
	rec := r.recs[r.next]
	r.next++
	return rec, nil
}

// Close is a no-op for in-memory records.
func (r *Records) Close() error { return nil }

// ParseError represents an error during FASTA parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("fasta parse error at line %d: %s", e.Line, e.Message)
}
