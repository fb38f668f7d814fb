// Package logo renders motif information-content charts.
package logo

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/althonos/minimotif/internal/motif"
)

// InformationContent returns per-position information content in bits:
// 2 minus the column entropy of the base probabilities.
func InformationContent(probs [][4]float64) []float64 {
	bits := make([]float64, len(probs))
	for j, col := range probs {
		entropy := 0.0
		for _, p := range col {
			if p > 0 {
				entropy -= p * math.Log2(p)
			}
		}
		bits[j] = 2 - entropy
	}
	return bits
}

// Render draws the motif as a stacked per-base information-content chart
// and writes it to path. The image format follows the file extension
// (.png, .pdf, .svg, ...). Each base's stack segment is its probability
// share of the column's information content.
func Render(freq *motif.FrequencyMatrix, pseudocount float64, path string) error {
	probs, err := freq.Probabilities(pseudocount)
	if err != nil {
		return err
	}
	bits := InformationContent(probs)

	p := plot.New()
	p.Title.Text = freq.Name
	p.X.Label.Text = "Position"
	p.Y.Label.Text = "Bits"
	p.Y.Min, p.Y.Max = 0, 2

	var prev *plotter.BarChart
	for i := 0; i < 4; i++ {
		values := make(plotter.Values, len(probs))
		for j := range probs {
			values[j] = probs[j][i] * bits[j]
		}
		bars, err := plotter.NewBarChart(values, vg.Points(18))
		if err != nil {
			return fmt.Errorf("build bar chart: %w", err)
		}
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = 0
		if prev != nil {
			bars.StackOn(prev)
		}
		p.Add(bars)
		p.Legend.Add(string(motif.Bases[i]), bars)
		prev = bars
	}

	labels := make([]string, len(probs))
	for j := range labels {
		labels[j] = strconv.Itoa(j + 1)
	}
	p.NominalX(labels...)
	p.Legend.Top = true

	width := vg.Points(float64(len(probs))*24 + 96)
	if err := p.Save(width, 3*vg.Inch, path); err != nil {
		return fmt.Errorf("save logo: %w", err)
	}
	return nil
}
