package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/althonos/minimotif/internal/motif"
)

// WritePWM writes the scoring matrix as one tab-delimited row per motif
// position, with A, C, G, T columns of log2-odds scores.
func WritePWM(w io.Writer, m *motif.ScoringMatrix) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("A\tC\tG\tT\n"); err != nil {
		return err
	}
	fields := make([]string, 4)
	for j := 0; j < m.Width(); j++ {
		col := m.Column(j)
		for i, s := range col {
			fields[i] = strconv.FormatFloat(s, 'g', -1, 64)
		}
		if _, err := bw.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
