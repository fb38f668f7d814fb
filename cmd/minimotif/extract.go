package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/althonos/minimotif/internal/fasta"
	"github.com/althonos/minimotif/internal/genbank"
)

func runExtract(args []string) int {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)

	var (
		outDir   string
		upstream int
	)

	fs.StringVar(&outDir, "outdir", ".", "Output directory for region FASTA files")
	fs.IntVar(&upstream, "upstream", viper.GetInt("extract.upstream"), "Upstream window length in bp for regulatory regions")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Extract coding and regulatory regions from GenBank genomes.

Usage:
  minimotif extract [options] <genbank-file>...

For each genome this writes two FASTA files into the output directory:
  {genome}_co_region.fasta   one record per protein-coding gene
  {genome}_reg_region.fasta  upstream windows, divergent gene pairs merged

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  minimotif extract genome.gb
  minimotif extract --upstream 500 --outdir regions genome1.gb genome2.gbff.gz
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: GenBank file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create output directory: %v\n", err)
		return ExitError
	}

	for _, path := range fs.Args() {
		records, err := genbank.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}

		var coding, regulatory []*fasta.Record
		for _, rec := range records {
			co, reg := genbank.ExtractRegions(rec, upstream)
			coding = append(coding, co...)
			regulatory = append(regulatory, reg...)
		}

		genome := stemName(path)
		coPath := filepath.Join(outDir, genome+"_co_region.fasta")
		if err := writeFastaFile(coPath, coding); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		regPath := filepath.Join(outDir, genome+"_reg_region.fasta")
		if err := writeFastaFile(regPath, regulatory); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(os.Stderr, "%s: %d coding regions -> %s\n", genome, len(coding), coPath)
		fmt.Fprintf(os.Stderr, "%s: %d regulatory regions -> %s\n", genome, len(regulatory), regPath)
	}

	return ExitSuccess
}

func writeFastaFile(path string, recs []*fasta.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	fw := fasta.NewWriter(f)
	for _, rec := range recs {
		if err := fw.Write(rec); err != nil {
			f.Close()
			return err
		}
	}
	if err := fw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
