package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/citejump/internal/bib"
	"github.com/matsen/citejump/internal/storage"
)

var (
	addRefsPath     string
	reindexRefsPath string
)

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addRefsPath, "refs", "", "Bibliography JSONL file")

	rootCmd.AddCommand(reindexCmd)
	reindexCmd.Flags().StringVar(&reindexRefsPath, "refs", "", "Bibliography JSONL file")
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Append bibliography entries from stdin",
	Long: `Append entries to the bibliography JSONL file. Entries are read from
stdin, one JSON object per line, and given the next free index when they
don't carry one.

Example:
  echo '{"id":"Guo:2011pm","year":"2011"}' | citejump add --refs refs.jsonl`,
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	if addRefsPath == "" {
		addRefsPath = cfg.RefsPath
	}
	if addRefsPath == "" {
		exitWithError(ExitConfigError, "no bibliography given: pass --refs or set refs_path in config")
	}

	existing, err := storage.ReadEntries(addRefsPath)
	if err != nil {
		exitWithError(ExitDataError, "reading bibliography: %v", err)
	}
	next := len(existing)

	added := 0
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, storage.MaxJSONLLineCapacity), storage.MaxJSONLLineCapacity)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e bib.Entry
		if err := json.Unmarshal(line, &e); err != nil {
			exitWithError(ExitDataError, "parsing entry: %v", err)
		}
		if e.ID == "" {
			exitWithError(ExitDataError, "entry without an id")
		}
		if e.Index == 0 && next > 0 {
			e.Index = next
		}
		if err := storage.AppendEntry(addRefsPath, e); err != nil {
			exitWithError(ExitDataError, "appending entry: %v", err)
		}
		next++
		added++
	}
	if err := scanner.Err(); err != nil {
		exitWithError(ExitDataError, "reading stdin: %v", err)
	}

	if humanOutput {
		fmt.Printf("added %d entries to %s\n", added, addRefsPath)
		return nil
	}
	return outputJSON(map[string]int{"added": added})
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rewrite the bibliography with sequential indexes",
	Long: `Rewrite the bibliography JSONL file so entry indexes match file
position. Useful after hand-editing or merging files.`,
	RunE: runReindex,
}

func runReindex(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	if reindexRefsPath == "" {
		reindexRefsPath = cfg.RefsPath
	}
	entries := mustLoadEntries(reindexRefsPath)

	for i := range entries {
		entries[i].Index = i
	}
	if err := storage.WriteEntries(reindexRefsPath, entries); err != nil {
		exitWithError(ExitDataError, "writing bibliography: %v", err)
	}

	if humanOutput {
		fmt.Printf("reindexed %d entries in %s\n", len(entries), reindexRefsPath)
		return nil
	}
	return outputJSON(map[string]int{"entries": len(entries)})
}
