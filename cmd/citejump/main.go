// Package main provides the citejump CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/citejump/internal/bib"
	"github.com/matsen/citejump/internal/config"
	"github.com/matsen/citejump/internal/match"
	"github.com/matsen/citejump/internal/pdftext"
	"github.com/matsen/citejump/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// verbose enables matcher diagnostics on stderr
var verbose bool

// configPath is an explicit config file location
var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "citejump",
	Short: "Resolve in-text citations against a paper's bibliography",
	Long: `citejump resolves in-text citation labels ("Guo et al. (2016)") found in a
PDF's text to the corresponding entries of the paper's bibliography.

It combines strong identifiers (arXiv ids, DOIs, journal/volume/page) parsed
from the PDF's own reference list with fuzzy author/year scoring, and reports
an explicit candidate list when several entries are equally plausible.

Bibliographies are stored as git-versionable JSONL; queries run against an
ephemeral SQLite view. All commands output JSON by default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	_ = godotenv.Load()
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print matcher diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/citejump/config.yml)")
	rootCmd.Version = Version
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	if configPath == "" {
		configPath = os.Getenv("CITEJUMP_CONFIG")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustLoadEntries reads the bibliography JSONL, exits on error or empty.
func mustLoadEntries(path string) []bib.Entry {
	if path == "" {
		exitWithError(ExitConfigError, "no bibliography given: pass --refs or set refs_path in config")
	}
	entries, err := storage.ReadEntries(path)
	if err != nil {
		exitWithError(ExitDataError, "reading bibliography: %v", err)
	}
	if len(entries) == 0 {
		exitWithError(ExitDataError, "bibliography %s is empty or missing", path)
	}
	return entries
}

// mustLoadText returns the document text from --pdf or --text, exits on error.
// Returns "" when neither flag was given.
func mustLoadText(pdfPath, textPath string) string {
	switch {
	case pdfPath != "" && textPath != "":
		exitWithError(ExitError, "--pdf and --text are mutually exclusive")
	case pdfPath != "":
		text, err := pdftext.ExtractFile(pdfPath, 0)
		if err != nil {
			exitWithError(ExitDataError, "extracting PDF text: %v", err)
		}
		return text
	case textPath != "":
		data, err := os.ReadFile(textPath)
		if err != nil {
			exitWithError(ExitDataError, "reading text file: %v", err)
		}
		return string(data)
	}
	return ""
}

// traceFunc returns the diagnostics hook for --verbose, or nil.
func traceFunc() match.TraceFunc {
	if !verbose {
		return nil
	}
	return func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
