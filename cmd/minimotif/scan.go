package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/althonos/minimotif/internal/detect"
	"github.com/althonos/minimotif/internal/duckdb"
	"github.com/althonos/minimotif/internal/fasta"
	"github.com/althonos/minimotif/internal/genbank"
	"github.com/althonos/minimotif/internal/motif"
	"github.com/althonos/minimotif/internal/output"
)

// Genome input formats
const (
	formatGenBank = "genbank"
	formatFASTA   = "fasta"
)

// scanOptions carries the settings shared by every genome in a scan run.
type scanOptions struct {
	outDir      string
	pvalue      float64
	pseudocount float64
	workers     int
	coding      bool
	upstream    int
	regionType  string
}

// scanPass is one region set scanned against the matrix.
type scanPass struct {
	regionType string
	records    []*fasta.Record
}

func runScan(args []string) int {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)

	var (
		opts    scanOptions
		dbPath  string
		verbose bool
	)

	fs.StringVar(&opts.outDir, "outdir", ".", "Output directory for PWM and results files")
	fs.Float64Var(&opts.pvalue, "pvalue", viper.GetFloat64("scan.pvalue"), "Score threshold p-value")
	fs.Float64Var(&opts.pseudocount, "pseudocount", viper.GetFloat64("scan.pseudocount"), "Pseudocount added to each count before normalization")
	fs.IntVar(&opts.workers, "workers", viper.GetInt("scan.workers"), "Scan workers (0 = one per CPU)")
	fs.BoolVar(&opts.coding, "coding", false, "Also scan coding regions (GenBank input)")
	fs.IntVar(&opts.upstream, "upstream", viper.GetInt("extract.upstream"), "Upstream window length in bp for regulatory regions (GenBank input)")
	fs.StringVar(&opts.regionType, "type", "reg", "Region type label for FASTA input: co or reg")
	fs.StringVar(&dbPath, "db", "", "DuckDB database to store hits in (optional)")
	fs.BoolVar(&verbose, "verbose", false, "Enable debug logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Scan genome regions for motif occurrences.

Usage:
  minimotif scan [options] <pfm-file> <genome-file>...

Arguments:
  <pfm-file>     JASPAR-style position frequency matrix
  <genome-file>  GenBank genome (regions extracted on the fly) or FASTA
                 region file with region~start:end~strand headers
                 (use '-' for FASTA on stdin)

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  minimotif scan lexA.pfm genome.gb
  minimotif scan --coding --db hits.duckdb lexA.pfm genome.gb
  minimotif scan --type co lexA.pfm genome_co_region.fasta
  minimotif scan --pvalue 1e-5 --workers 8 lexA.pfm genome1.gb genome2.gb
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if fs.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "Error: PFM and genome file arguments required\n\n")
		fs.Usage()
		return ExitUsage
	}

	if opts.pvalue <= 0 || opts.pvalue > 1 {
		fmt.Fprintf(os.Stderr, "Error: --pvalue must be in (0, 1], got %g\n", opts.pvalue)
		return ExitUsage
	}
	if opts.pseudocount <= 0 {
		fmt.Fprintf(os.Stderr, "Error: --pseudocount must be positive, got %g\n", opts.pseudocount)
		return ExitUsage
	}

	logger := newLogger(verbose)
	defer logger.Sync()

	pfmPath := fs.Arg(0)
	freq, err := motif.ReadPFM(pfmPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Hint: Check that the PFM file path is correct\n")
		}
		return ExitError
	}

	regulator := freq.Name
	if regulator == "" {
		regulator = stemName(pfmPath)
	}

	if err := os.MkdirAll(opts.outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create output directory: %v\n", err)
		return ExitError
	}

	var store *duckdb.Store
	if dbPath != "" {
		store, err = duckdb.Open(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		defer store.Close()
	}

	for _, genomePath := range fs.Args()[1:] {
		if code := scanGenome(genomePath, regulator, freq, opts, store, logger); code != ExitSuccess {
			return code
		}
	}

	return ExitSuccess
}

// scanGenome runs every pass of one genome file: region collection, matrix
// build against the genome background, detection, and output.
func scanGenome(path, regulator string, freq *motif.FrequencyMatrix, opts scanOptions, store *duckdb.Store, logger *zap.Logger) int {
	genome := stemName(path)

	var passes []scanPass
	var gc float64

	switch detectGenomeFormat(path) {
	case formatGenBank:
		records, err := genbank.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}

		var seqs [][]byte
		var codingRecs, regRecs []*fasta.Record
		for _, rec := range records {
			seqs = append(seqs, rec.Seq)
			co, reg := genbank.ExtractRegions(rec, opts.upstream)
			codingRecs = append(codingRecs, co...)
			regRecs = append(regRecs, reg...)
		}

		gc = weightedGC(seqs)
		if opts.coding {
			passes = append(passes, scanPass{"co", codingRecs})
		}
		passes = append(passes, scanPass{"reg", regRecs})

	default:
		recs, err := readFastaRecords(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}

		seqs := make([][]byte, len(recs))
		for i, rec := range recs {
			seqs[i] = rec.Seq
		}

		gc = weightedGC(seqs)
		passes = append(passes, scanPass{opts.regionType, recs})
	}

	matrix, err := motif.NewScoringMatrix(freq, opts.pseudocount, motif.NewBackgroundFromGC(gc))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	// Rewritten per genome: the log2-odds values depend on the genome's
	// background.
	pwmPath := filepath.Join(opts.outDir, regulator+"_PWM.tsv")
	if err := writePWMFile(pwmPath, matrix); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing PWM file: %v\n", err)
		return ExitError
	}

	det := detect.NewDetector(matrix, opts.pvalue)
	det.SetLogger(logger)

	fmt.Fprintf(os.Stderr, "Scanning %s with %s (GC content %.1f%%)\n", genome, regulator, gc*100)

	for _, pass := range passes {
		table, err := det.DetectAll(fasta.NewRecords(pass.records), opts.workers)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}

		resultsPath := filepath.Join(opts.outDir,
			fmt.Sprintf("%s_%s_%s_pwm_results.tsv", regulator, genome, pass.regionType))
		if err := writeResultsFile(resultsPath, table); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(os.Stderr, "  %s: %d hits in %d regions -> %s\n",
			pass.regionType, table.Len(), len(table.Regions()), resultsPath)

		if store != nil {
			if err := store.WriteTable(regulator, genome, pass.regionType, table); err != nil {
				fmt.Fprintf(os.Stderr, "Error storing hits: %v\n", err)
				return ExitError
			}
		}
	}

	return ExitSuccess
}

func writeResultsFile(path string, table *detect.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := output.NewWriter(f).WriteTable(table); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writePWMFile(path string, m *motif.ScoringMatrix) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := output.WritePWM(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// readFastaRecords reads all records from a FASTA file into memory. The
// records are needed twice (background estimation, then scanning), so
// streaming is not an option here.
func readFastaRecords(path string) ([]*fasta.Record, error) {
	parser, err := fasta.NewParser(path)
	if err != nil {
		return nil, err
	}
	defer parser.Close()

	var recs []*fasta.Record
	for {
		rec, err := parser.Next()
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return recs, nil
		}
		recs = append(recs, rec)
	}
}

// weightedGC is the GC fraction across all sequences, weighted by length.
// Falls back to 0.5 (uniform background) when there is no sequence at all.
func weightedGC(seqs [][]byte) float64 {
	var gc, total float64
	for _, s := range seqs {
		if len(s) == 0 {
			continue
		}
		gc += motif.GCContent(s) * float64(len(s))
		total += float64(len(s))
	}
	if total == 0 {
		return 0.5
	}
	return gc / total
}

// stemName is the file base name up to the first dot, the stem used in
// output file names.
func stemName(path string) string {
	if path == "-" {
		return "stdin"
	}
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return base
}

// detectGenomeFormat detects the genome file format based on extension or
// content.
func detectGenomeFormat(path string) string {
	if path == "-" {
		return formatFASTA
	}

	lowerPath := strings.ToLower(path)
	if strings.HasSuffix(lowerPath, ".gz") {
		lowerPath = lowerPath[:len(lowerPath)-3]
	}

	switch filepath.Ext(lowerPath) {
	case ".gb", ".gbk", ".gbff", ".genbank":
		return formatGenBank
	case ".fasta", ".fa", ".fna", ".ffn":
		return formatFASTA
	}

	// Peek at the content: GenBank flat files start with a LOCUS line.
	f, err := os.Open(path)
	if err != nil {
		return formatFASTA
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil || n == 0 {
		return formatFASTA
	}
	if strings.HasPrefix(strings.TrimLeft(string(buf[:n]), " \t\r\n"), "LOCUS") {
		return formatGenBank
	}
	return formatFASTA
}
