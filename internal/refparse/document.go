package refparse

import (
	"github.com/matsen/citejump/internal/bib"
	"github.com/matsen/citejump/internal/textsample"
)

// DefaultMinRecords is the record count below which a parse attempt is
// considered insufficient and the next larger text window is tried.
const DefaultMinRecords = 5

// ParseDocument parses the reference list out of a full document text,
// growing the text window until the parse yields at least minRecords records
// or the full text has been tried. This is the retry loop the sample builder
// leaves to its caller: each attempt re-parses only the window's text, so
// small documents and documents with trailing reference sections never pay
// for a full-text parse.
func ParseDocument(fullText string, minRecords int, opts textsample.Options) ([]bib.ReferenceRecord, *bib.AuthorYearIndex) {
	if minRecords <= 0 {
		minRecords = DefaultMinRecords
	}

	var best []bib.ReferenceRecord
	for _, cand := range textsample.Build(fullText, opts) {
		records := ParseReferences(cand.Text)
		if len(records) > len(best) {
			best = records
		}
		if len(best) >= minRecords {
			break
		}
	}
	return best, BuildIndex(best)
}
