// Package bib defines the core domain types for bibliography matching.
package bib

// Entry represents one canonical bibliography record for the paper under
// examination, as supplied by the caller. The matching engine treats entries
// as read-only for the duration of a resolution call.
type Entry struct {
	// Identity
	Index int    `json:"index"` // Ordinal position in the bibliography
	ID    string `json:"id"`    // Stable identifier (citekey, record id, ...)

	// Authors
	AuthorLastNames []string `json:"author_last_names"`     // Ordered; may be truncated
	AuthorCount     int      `json:"author_count"`          // Total count; may exceed listed names
	AuthorText      string   `json:"author_text,omitempty"` // Free-text author string as printed

	// Metadata
	Title       string       `json:"title,omitempty"`
	Year        string       `json:"year,omitempty"` // May be absent or non-numeric
	Publication *Publication `json:"publication,omitempty"`

	// External identifiers
	ArxivID string `json:"arxiv_id,omitempty"`
	DOI     string `json:"doi,omitempty"`
}

// Publication holds the structured journal fields an entry may carry.
// Only these four fields are ever read by the matchers.
type Publication struct {
	JournalTitle  string `json:"journal_title,omitempty"`
	JournalVolume string `json:"journal_volume,omitempty"`
	PageStart     string `json:"page_start,omitempty"`
	ArticleID     string `json:"article_id,omitempty"`
}

// SecondAuthor returns the entry's second listed author surname, if any.
// Used to render disambiguation summaries for same-first-author collisions.
func (e *Entry) SecondAuthor() string {
	if len(e.AuthorLastNames) > 1 {
		return e.AuthorLastNames[1]
	}
	return ""
}
