package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/althonos/minimotif/internal/logo"
	"github.com/althonos/minimotif/internal/motif"
)

func runLogo(args []string) int {
	fs := flag.NewFlagSet("logo", flag.ExitOnError)

	var (
		outFile     string
		pseudocount float64
	)

	fs.StringVar(&outFile, "o", "", "Output image file (default: {motif}_logo.png)")
	fs.StringVar(&outFile, "output", "", "Output image file (default: {motif}_logo.png)")
	fs.Float64Var(&pseudocount, "pseudocount", viper.GetFloat64("scan.pseudocount"), "Pseudocount added to each count before normalization")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Render a motif's per-position information content as a bar chart.

Usage:
  minimotif logo [options] <pfm-file>

The image format follows the output file extension (.png, .svg, .pdf, ...).

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  minimotif logo lexA.pfm
  minimotif logo -o lexA.svg lexA.pfm
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: PFM file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}

	freq, err := motif.ReadPFM(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Hint: Check that the PFM file path is correct\n")
		}
		return ExitError
	}

	if outFile == "" {
		name := freq.Name
		if name == "" {
			name = stemName(fs.Arg(0))
		}
		outFile = name + "_logo.png"
	}

	if err := logo.Render(freq, pseudocount, outFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	fmt.Fprintf(os.Stderr, "Wrote %s\n", outFile)
	return ExitSuccess
}
