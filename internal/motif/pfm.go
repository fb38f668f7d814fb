package motif

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadPFM loads a frequency matrix from a JASPAR-style PFM file.
// Supports gzipped files by extension.
func ReadPFM(path string) (*FrequencyMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pfm file: %w", err)
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

	fm, err := ParsePFM(reader)
	if err != nil {
		return nil, fmt.Errorf("parse pfm %s: %w", path, err)
	}
	return fm, nil
}

// ParsePFM parses a position frequency matrix in JASPAR text form: an
// optional ">name" header followed by four count rows. Rows may carry a
// leading base letter ("A [ 4 19 0 ]") or be bare count lists in A, C, G, T
// order; brackets are ignored.
func ParsePFM(r io.Reader) (*FrequencyMatrix, error) {
	scanner := bufio.NewScanner(r)
	fm := &FrequencyMatrix{}
	rows := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if fields := strings.Fields(strings.TrimPrefix(line, ">")); len(fields) > 0 {
				fm.Name = fields[0]
			}
			continue
		}
		if rows == 4 {
			return nil, fmt.Errorf("%w: more than four count rows", ErrInvalidMatrix)
		}

		idx := rows
		rest := line
		if i := baseIndex(line[0]); i >= 0 && (len(line) == 1 || !isCountByte(line[1])) {
			idx = i
			rest = line[1:]
		}
		rest = strings.NewReplacer("[", " ", "]", " ").Replace(rest)

		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return nil, fmt.Errorf("%w: count row %q is empty", ErrInvalidMatrix, line)
		}
		counts := make([]int, len(fields))
		for k, field := range fields {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid count %q", ErrInvalidMatrix, field)
			}
			counts[k] = n
		}
		fm.Counts[idx] = counts
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan pfm: %w", err)
	}
	if rows != 4 {
		return nil, fmt.Errorf("%w: expected four count rows, found %d", ErrInvalidMatrix, rows)
	}
	if err := fm.validate(); err != nil {
		return nil, err
	}
	return fm, nil
}

// isCountByte reports whether b can start a count field, which disambiguates
// a row label ("A 4 19") from a row that simply begins with a digit.
func isCountByte(b byte) bool {
	return b >= '0' && b <= '9'
}
