package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/althonos/minimotif/internal/duckdb"
)

func runSearch(args []string) int {
	fs := flag.NewFlagSet("search", flag.ExitOnError)

	var (
		dbPath     string
		region     string
		regulator  string
		confidence string
	)

	fs.StringVar(&dbPath, "db", "", "DuckDB database written by 'minimotif scan --db'")
	fs.StringVar(&region, "region", "", "Region (gene) name to look up")
	fs.StringVar(&regulator, "regulator", "", "Regulator (motif) name to look up")
	fs.StringVar(&confidence, "confidence", "", "Only hits of this tier: weak, medium or strong")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Query motif hits stored in a DuckDB database.

Usage:
  minimotif search [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  minimotif search --db hits.duckdb --region thrA
  minimotif search --db hits.duckdb --regulator lexA --confidence strong
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if dbPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --db is required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if region == "" && regulator == "" {
		fmt.Fprintf(os.Stderr, "Error: --region or --regulator is required\n\n")
		fs.Usage()
		return ExitUsage
	}

	switch confidence {
	case "", "weak", "medium", "strong":
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown confidence tier %q\n", confidence)
		fmt.Fprintf(os.Stderr, "Hint: valid tiers are weak, medium and strong\n")
		return ExitUsage
	}

	store, err := duckdb.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer store.Close()

	var hits []duckdb.Hit
	if region != "" {
		hits, err = store.SearchByRegion(region, confidence)
	} else {
		hits, err = store.SearchByRegulator(regulator, confidence)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	// With both filters given, the region query runs in the database and
	// the regulator filter is applied here.
	if region != "" && regulator != "" {
		filtered := hits[:0]
		for _, h := range hits {
			if h.Regulator == regulator {
				filtered = append(filtered, h)
			}
		}
		hits = filtered
	}

	w := bufio.NewWriter(os.Stdout)
	fmt.Fprintln(w, strings.Join([]string{
		"Regulator", "Genome", "Type", "Region", "Start", "End",
		"Strand", "Score", "Confidence", "Sequence",
	}, "\t"))
	for _, h := range hits {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
			h.Regulator, h.Genome, h.RegionType, h.Region, h.Start, h.End,
			h.Strand, strconv.FormatFloat(h.Score, 'g', -1, 64), h.Confidence, h.Site)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	fmt.Fprintf(os.Stderr, "%d hits\n", len(hits))
	return ExitSuccess
}
