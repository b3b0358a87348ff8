package bib

// ReferenceRecord holds the fields extracted from the PDF's own reference
// list for one bibliography item. All fields are optional; absent fields are
// empty strings. Multiple records may share the same first-author + year key
// when the reference list itself contains two same-author/same-year papers.
type ReferenceRecord struct {
	// Strong identifiers
	ArxivID string `json:"arxiv_id,omitempty"`
	DOI     string `json:"doi,omitempty"`

	// Bibliographic fields
	JournalAbbrev string `json:"journal_abbrev,omitempty"`
	Volume        string `json:"volume,omitempty"`
	PageStart     string `json:"page_start,omitempty"` // Start page or article id

	// Author fields as captured by the reference-list parser. FirstAuthor
	// and Year form the index key; Authors/AuthorText feed record-priority
	// scoring when several records collide under one key.
	FirstAuthor string   `json:"first_author,omitempty"`
	Year        string   `json:"year,omitempty"`
	Authors     []string `json:"authors,omitempty"`
	AuthorText  string   `json:"author_text,omitempty"`
}

// Empty reports whether the record carries no usable matching signal.
func (r ReferenceRecord) Empty() bool {
	return r.ArxivID == "" && r.DOI == "" && r.JournalAbbrev == "" &&
		r.Volume == "" && r.PageStart == ""
}
