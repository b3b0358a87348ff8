package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/citejump/internal/bib"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON)
// and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// formatEntryLine renders one entry for human-readable listings.
func formatEntryLine(e bib.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s", e.Index, e.ID)
	if len(e.AuthorLastNames) > 0 {
		authors := strings.Join(e.AuthorLastNames, ", ")
		if e.AuthorCount > len(e.AuthorLastNames) {
			authors += " et al."
		}
		fmt.Fprintf(&b, "  %s", authors)
	}
	if e.Year != "" {
		fmt.Fprintf(&b, " (%s)", e.Year)
	}
	if e.Title != "" {
		fmt.Fprintf(&b, "\n    %s", truncateString(e.Title, 70))
	}
	if p := e.Publication; p != nil && p.JournalTitle != "" {
		fmt.Fprintf(&b, "\n    %s %s", p.JournalTitle, p.JournalVolume)
		if p.PageStart != "" {
			fmt.Fprintf(&b, ", %s", p.PageStart)
		}
	}
	return b.String()
}
