package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/citejump/internal/citation"
)

var (
	labelsPDFPath  string
	labelsTextPath string
	labelsParsed   bool
)

func init() {
	rootCmd.AddCommand(labelsCmd)
	labelsCmd.Flags().StringVar(&labelsPDFPath, "pdf", "", "PDF to scan for citation labels")
	labelsCmd.Flags().StringVar(&labelsTextPath, "text", "", "Pre-extracted document text file")
	labelsCmd.Flags().BoolVar(&labelsParsed, "parsed", false, "Include the structured decomposition of each label")
}

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List in-text citation labels detected in a document",
	Long: `Detect author-year citation labels in a document's body text.

Examples:
  citejump labels --pdf paper.pdf
  citejump labels --text paper.txt --parsed --human`,
	RunE: runLabels,
}

// DetectedLabel is one detected label, optionally with its decomposition.
type DetectedLabel struct {
	Label  string          `json:"label"`
	Parsed *citation.Label `json:"parsed,omitempty"`
}

func runLabels(cmd *cobra.Command, args []string) error {
	text := mustLoadText(labelsPDFPath, labelsTextPath)
	if text == "" {
		exitWithError(ExitError, "one of --pdf or --text is required")
	}

	found := citation.ExtractLabels(text)
	out := make([]DetectedLabel, 0, len(found))
	for _, l := range found {
		d := DetectedLabel{Label: l}
		if labelsParsed {
			parsed := citation.ParseLabel(l)
			d.Parsed = &parsed
		}
		out = append(out, d)
	}

	if humanOutput {
		for _, d := range out {
			if d.Parsed != nil {
				fmt.Printf("%s  → authors=%v year=%s%s etal=%v\n",
					d.Label, d.Parsed.Surnames, d.Parsed.YearBase, d.Parsed.YearSuffix, d.Parsed.EtAl)
			} else {
				fmt.Println(d.Label)
			}
		}
		return nil
	}
	return outputJSON(out)
}
