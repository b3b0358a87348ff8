package bib

import (
	"strings"

	"github.com/matsen/citejump/internal/norm"
)

// AuthorYearIndex maps a normalized "first-surname year" key to the parsed
// reference records filed under it. It is built once per document and treated
// as read-only by the matching engine.
type AuthorYearIndex struct {
	records map[string][]ReferenceRecord
}

// NewAuthorYearIndex returns an empty index.
func NewAuthorYearIndex() *AuthorYearIndex {
	return &AuthorYearIndex{records: make(map[string][]ReferenceRecord)}
}

// Key builds the canonical index key for a surname and year. The year may
// carry a one-letter suffix ("2011a") when the reference list distinguishes
// same-author/same-year papers that way.
func Key(surname, year string) string {
	return strings.ToLower(strings.TrimSpace(surname)) + " " + strings.TrimSpace(year)
}

// KeyVariants returns the lookup keys to probe for a surname, most specific
// first: the exact key, a ß→ss folding, a diacritic-stripped folding, and a
// first-word-only variant for compound surnames truncated by the upstream
// parser. Duplicates are removed while preserving order.
func KeyVariants(surname, year string) []string {
	surname = strings.TrimSpace(surname)
	candidates := []string{
		Key(surname, year),
		Key(strings.ReplaceAll(surname, "ß", "ss"), year),
		Key(norm.FoldDiacritics(surname), year),
	}
	if first, _, ok := strings.Cut(surname, " "); ok && first != "" {
		candidates = append(candidates, Key(first, year), Key(norm.FoldDiacritics(first), year))
	}

	seen := make(map[string]bool, len(candidates))
	variants := candidates[:0]
	for _, k := range candidates {
		if !seen[k] {
			seen[k] = true
			variants = append(variants, k)
		}
	}
	return variants
}

// Add files a record under the given surname and year.
func (x *AuthorYearIndex) Add(surname, year string, rec ReferenceRecord) {
	k := Key(surname, year)
	x.records[k] = append(x.records[k], rec)
}

// Lookup returns the records filed under key, or nil.
func (x *AuthorYearIndex) Lookup(key string) []ReferenceRecord {
	if x == nil {
		return nil
	}
	return x.records[key]
}

// LookupVariants probes each key in order and returns the records under the
// first key that has any, or nil if none do.
func (x *AuthorYearIndex) LookupVariants(keys []string) []ReferenceRecord {
	if x == nil {
		return nil
	}
	for _, k := range keys {
		if recs := x.records[k]; len(recs) > 0 {
			return recs
		}
	}
	return nil
}

// Len returns the number of distinct keys in the index.
func (x *AuthorYearIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.records)
}
