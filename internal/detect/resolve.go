package detect

import (
	"fmt"
	"strconv"
	"strings"
)

// Header carries the genome interval a region record was extracted from.
// Record identifiers follow the layout region~start:end~extra, where extra
// is opaque annotation kept only for diagnostics.
type Header struct {
	Region string
	Start  int
	End    int
	Extra  string
}

// HeaderError reports a record identifier that does not follow the
// region~start:end~extra layout.
type HeaderError struct {
	ID      string
	Message string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("malformed record header %q: %s", e.ID, e.Message)
}

// ParseHeader splits a record identifier into its header fields.
func ParseHeader(id string) (Header, error) {
	parts := strings.SplitN(id, "~", 3)
	if len(parts) != 3 {
		return Header{}, &HeaderError{ID: id, Message: "expected three ~-separated fields"}
	}

	coords := strings.Split(parts[1], ":")
	if len(coords) != 2 {
		return Header{}, &HeaderError{ID: id, Message: "expected start:end coordinates"}
	}
	start, err := parseCoord(coords[0])
	if err != nil {
		return Header{}, &HeaderError{ID: id, Message: fmt.Sprintf("invalid start: %s", coords[0])}
	}
	end, err := parseCoord(coords[1])
	if err != nil {
		return Header{}, &HeaderError{ID: id, Message: fmt.Sprintf("invalid end: %s", coords[1])}
	}
	if start > end {
		return Header{}, &HeaderError{ID: id, Message: fmt.Sprintf("start %d exceeds end %d", start, end)}
	}

	return Header{Region: parts[0], Start: start, End: end, Extra: parts[2]}, nil
}

// parseCoord parses a non-negative integer coordinate.
func parseCoord(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative coordinate %d", n)
	}
	return n, nil
}

// Resolve maps a window at localOffset within the record back onto genome
// coordinates and names the region the hit belongs to. A region named
// geneA-geneB (exactly one hyphen) spans an intergenic window between two
// genes: the hit is attributed to geneA when its absolute start lies at or
// before the interval midpoint, otherwise to geneB. Region names with zero
// or more than one hyphen pass through unchanged.
func (h Header) Resolve(localOffset, width int) (region string, absStart, absEnd int) {
	absStart = h.Start + localOffset
	absEnd = absStart + width
	region = h.Region

	if parts := strings.Split(h.Region, "-"); len(parts) == 2 {
		midpoint := h.Start + (h.End-h.Start)/2
		if absStart <= midpoint {
			region = parts[0]
		} else {
			region = parts[1]
		}
	}
	return region, absStart, absEnd
}
