package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/citejump/internal/storage"
)

var (
	entriesRefsPath string
	entriesAuthor   string
	entriesYear     string
)

func init() {
	rootCmd.AddCommand(entriesCmd)
	entriesCmd.Flags().StringVar(&entriesRefsPath, "refs", "", "Bibliography JSONL file")
	entriesCmd.Flags().StringVar(&entriesAuthor, "author", "", "Filter by author surname substring")
	entriesCmd.Flags().StringVar(&entriesYear, "year", "", "Filter by exact year")
}

var entriesCmd = &cobra.Command{
	Use:   "entries [ID]",
	Short: "List or look up bibliography entries",
	Long: `List bibliography entries, optionally filtered, or look one up by id.

The JSONL file is loaded into an ephemeral in-memory SQLite view for
querying; nothing is written back.

Examples:
  citejump entries --refs refs.jsonl
  citejump entries --refs refs.jsonl --author Guo --year 2011
  citejump entries --refs refs.jsonl Guo:2011pmb`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEntries,
}

func runEntries(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	if entriesRefsPath == "" {
		entriesRefsPath = cfg.RefsPath
	}
	entries := mustLoadEntries(entriesRefsPath)

	db, err := storage.Open(":memory:")
	if err != nil {
		exitWithError(ExitError, "opening entry view: %v", err)
	}
	defer db.Close()

	if err := db.Load(entries); err != nil {
		exitWithError(ExitDataError, "loading entries: %v", err)
	}

	if len(args) == 1 {
		entry, err := db.GetByID(args[0])
		if err != nil {
			exitWithError(ExitError, "looking up entry: %v", err)
		}
		if entry == nil {
			exitWithError(ExitDataError, "entry %q not found", args[0])
		}
		if humanOutput {
			fmt.Println(formatEntryLine(*entry))
			return nil
		}
		return outputJSON(entry)
	}

	found, err := db.Search(entriesAuthor, entriesYear)
	if err != nil {
		exitWithError(ExitError, "searching entries: %v", err)
	}

	if humanOutput {
		for _, e := range found {
			fmt.Println(formatEntryLine(e))
		}
		fmt.Printf("\n%d entries\n", len(found))
		return nil
	}
	return outputJSON(found)
}
