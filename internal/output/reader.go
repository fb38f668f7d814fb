package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/althonos/minimotif/internal/detect"
)

// ParseResults reads a tab-delimited results file back into a table,
// preserving region and row order.
func ParseResults(r io.Reader) (*detect.Table, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	header := strings.Join(resultColumns, "\t")
	table := detect.NewTable()
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineNum == 1 {
			if line != header {
				return nil, fmt.Errorf("line 1: unexpected header %q", line)
			}
			continue
		}
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != len(resultColumns) {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", lineNum, len(resultColumns), len(fields))
		}

		startStr, endStr, found := strings.Cut(fields[1], ":")
		if !found {
			return nil, fmt.Errorf("line %d: invalid location %q", lineNum, fields[1])
		}
		start, err := strconv.Atoi(startStr)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid location %q", lineNum, fields[1])
		}
		end, err := strconv.Atoi(endStr)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid location %q", lineNum, fields[1])
		}
		score, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid score %q", lineNum, fields[3])
		}

		table.Add(fields[0], detect.Match{
			Start:      start,
			End:        end,
			Strand:     fields[2],
			Score:      score,
			Confidence: detect.Confidence(fields[4]),
			Site:       fields[5],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	return table, nil
}
