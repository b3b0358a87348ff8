package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/citejump/internal/textsample"
)

var (
	samplePDFPath  string
	sampleTextPath string
)

func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().StringVar(&samplePDFPath, "pdf", "", "PDF to build sample windows for")
	sampleCmd.Flags().StringVar(&sampleTextPath, "text", "", "Pre-extracted document text file")
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Show the text-sample windows for a document",
	Long: `Show the growing text windows the reference-list parser would try, in
order. Useful for debugging why a reference list was or wasn't found.`,
	RunE: runSample,
}

// SampleWindow describes one candidate window without its text.
type SampleWindow struct {
	Kind       textsample.Kind `json:"kind"`
	Tail       int             `json:"tail,omitempty"`
	StartIndex int             `json:"start_index"`
	Length     int             `json:"length"`
}

func runSample(cmd *cobra.Command, args []string) error {
	text := mustLoadText(samplePDFPath, sampleTextPath)
	if text == "" {
		exitWithError(ExitError, "one of --pdf or --text is required")
	}

	cfg := mustLoadConfig()
	candidates := textsample.Build(text, cfg.SampleOptions())

	windows := make([]SampleWindow, len(candidates))
	for i, c := range candidates {
		windows[i] = SampleWindow{Kind: c.Kind, Tail: c.Tail, StartIndex: c.StartIndex, Length: len(c.Text)}
	}

	if humanOutput {
		for _, w := range windows {
			fmt.Printf("%-10s tail=%-7d start=%-9d len=%d\n", w.Kind, w.Tail, w.StartIndex, w.Length)
		}
		return nil
	}
	return outputJSON(windows)
}
