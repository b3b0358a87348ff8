package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/citejump/internal/bib"
	"github.com/matsen/citejump/internal/match"
	"github.com/matsen/citejump/internal/refparse"
)

var (
	resolveRefsPath string
	resolvePDFPath  string
	resolveTextPath string
	resolveMinRefs  int
)

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVar(&resolveRefsPath, "refs", "", "Bibliography JSONL file")
	resolveCmd.Flags().StringVar(&resolvePDFPath, "pdf", "", "PDF to parse the reference list from")
	resolveCmd.Flags().StringVar(&resolveTextPath, "text", "", "Pre-extracted document text file")
	resolveCmd.Flags().IntVar(&resolveMinRefs, "min-refs", refparse.DefaultMinRecords, "Reference count below which a larger text window is tried")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [LABEL...]",
	Short: "Resolve citation labels against a bibliography",
	Long: `Resolve in-text citation labels to bibliography entries.

Labels are given as arguments, or read one per line from stdin when no
arguments are present. With --pdf or --text, the document's own reference
list is parsed first so strong identifiers (arXiv ids, DOIs, journal/volume/
page) can be used; without it, resolution relies on fuzzy author/year
scoring alone.

Examples:
  citejump resolve --refs refs.jsonl "Guo et al. (2016)"
  citejump resolve --refs refs.jsonl --pdf paper.pdf "Guo (2011a)" "Li and Wang 2019"
  grep -o '...' body.txt | citejump resolve --refs refs.jsonl --text paper.txt`,
	RunE: runResolve,
}

// LabelResolution pairs a label with its ranked matches.
type LabelResolution struct {
	Label   string              `json:"label"`
	Matches []match.MatchResult `json:"matches"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	if resolveRefsPath == "" {
		resolveRefsPath = cfg.RefsPath
	}
	entries := mustLoadEntries(resolveRefsPath)

	scores, err := cfg.MatchScores()
	if err != nil {
		exitWithError(ExitConfigError, "config scores: %v", err)
	}

	var index *bib.AuthorYearIndex
	if text := mustLoadText(resolvePDFPath, resolveTextPath); text != "" {
		records, idx := refparse.ParseDocument(text, resolveMinRefs, cfg.SampleOptions())
		if verbose {
			fmt.Fprintf(os.Stderr, "parsed %d reference record(s) under %d key(s)\n", len(records), idx.Len())
		}
		index = idx
	}

	labels := args
	if len(labels) == 0 {
		labels = readLabelsFromStdin()
	}
	if len(labels) == 0 {
		exitWithError(ExitError, "no labels to resolve")
	}

	resolver := &match.Resolver{
		Entries: entries,
		Index:   index,
		Scores:  scores,
		Trace:   traceFunc(),
	}

	results := make([]LabelResolution, 0, len(labels))
	for _, label := range labels {
		results = append(results, LabelResolution{
			Label:   label,
			Matches: resolver.Resolve(label),
		})
	}

	if humanOutput {
		printResolutionsHuman(results, entries)
		return nil
	}
	return outputJSON(results)
}

func readLabelsFromStdin() []string {
	var labels []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			labels = append(labels, line)
		}
	}
	return labels
}

func printResolutionsHuman(results []LabelResolution, entries []bib.Entry) {
	byIndex := make(map[int]bib.Entry, len(entries))
	for _, e := range entries {
		byIndex[e.Index] = e
	}

	for _, res := range results {
		fmt.Printf("%s\n", res.Label)
		if len(res.Matches) == 0 {
			fmt.Printf("  no match\n\n")
			continue
		}
		for _, m := range res.Matches {
			marker := ""
			if m.Ambiguous {
				marker = " (ambiguous)"
			}
			fmt.Printf("  → %s  [%s/%s %.1f]%s\n", m.EntryID, m.Method, m.Confidence, m.Score, marker)
			if e, ok := byIndex[m.EntryIndex]; ok && e.Title != "" {
				fmt.Printf("    %s\n", truncateString(e.Title, 70))
			}
			for _, c := range m.Candidates {
				fmt.Printf("    ? %s  %s\n", c.EntryID, c.Summary)
			}
		}
		fmt.Println()
	}
}
