// Package main provides the minimotif command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	// Parse global flags first
	flag.Parse()

	if showVersion {
		printVersion()
		return ExitSuccess
	}

	initConfig()

	// Check for subcommand
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "scan":
		return runScan(args[1:])
	case "extract":
		return runExtract(args[1:])
	case "logo":
		return runLogo(args[1:])
	case "search":
		return runSearch(args[1:])
	case "config":
		return runConfig(args[1:])
	case "version":
		printVersion()
		return ExitSuccess
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printVersion() {
	fmt.Printf("minimotif version %s (%s) built %s\n", version, commit, date)
}

// initConfig points viper at ~/.minimotif.yaml and registers the defaults
// that subcommand flags fall back to. The config file is optional.
func initConfig() {
	viper.SetDefault("scan.pseudocount", 0.1)
	viper.SetDefault("scan.pvalue", 1e-4)
	viper.SetDefault("scan.workers", 0)
	viper.SetDefault("extract.upstream", 300)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	viper.SetConfigFile(filepath.Join(home, ".minimotif.yaml"))
	_ = viper.ReadInConfig()
}

// newLogger builds the stderr console logger shared by the subcommands.
// Warnings are always shown; --verbose lowers the level to debug.
func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `minimotif - Transcription-factor binding-site scanner

Usage:
  minimotif [options] <command> [arguments]

Commands:
  scan        Scan genome regions for motif occurrences
  extract     Extract coding and regulatory regions from GenBank files
  logo        Render a motif information-content logo
  search      Query stored hits in a DuckDB database
  config      Manage minimotif configuration
  version     Show version information
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Extract scan regions from a GenBank genome
  minimotif extract genome.gb

  # Scan a genome's regulatory regions with a JASPAR-style count matrix
  minimotif scan lexA.pfm genome.gb

  # Scan pre-extracted FASTA regions and store hits in DuckDB
  minimotif scan --db hits.duckdb lexA.pfm genome_reg_region.fasta

  # Query stored hits for one region
  minimotif search --db hits.duckdb --region thrA

  # Render the motif logo
  minimotif logo lexA.pfm

For more information on a command, use:
  minimotif <command> --help
`)
}
