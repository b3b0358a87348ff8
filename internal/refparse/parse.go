// Package refparse turns the free text of a paper's reference list into
// structured reference records and the author-year index the resolver
// consumes. It is collaborator glue around the matching engine: heuristic by
// nature, tuned for the numbered reference styles common in physics and
// computer-science papers.
package refparse

import (
	"regexp"
	"strings"

	"github.com/matsen/citejump/internal/bib"
	"github.com/matsen/citejump/internal/norm"
)

var (
	sectionHeading = regexp.MustCompile(`(?mi)^\s*(?:references|bibliography|literature cited)\s*:?\s*$`)

	bracketMarker = regexp.MustCompile(`(?m)\[\d{1,3}\]`)
	numberMarker  = regexp.MustCompile(`(?m)^\s*\d{1,3}\.\s+`)

	arxivRef = regexp.MustCompile(`(?i)arxiv:\s*([a-z][a-z.-]*/\d{7}|\d{4}\.\d{4,5})(?:v\d+)?`)
	doiRef   = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

	// "Phys. Lett. B 700 (2011) 9": volume, then year, then page.
	journalYearPage = regexp.MustCompile(`([A-Z][A-Za-z.\s]{0,40}?)\s+(\d{1,4})\s*\((\d{4})\)\s*,?\s*([A-Z]?\d+)`)
	// "Phys. Lett. B 700, 9 (2011)": volume, page, then year.
	journalPageYear = regexp.MustCompile(`([A-Z][A-Za-z.\s]{0,40}?)\s+(\d{1,4})\s*[,:]\s*([A-Z]?\d+)\s*\((\d{4}[a-z]?)\)`)

	yearParen = regexp.MustCompile(`\((\d{4}[a-z]?)\)`)
	yearBare  = regexp.MustCompile(`\b(\d{4}[a-z]?)\b`)

	initialsTok = regexp.MustCompile(`^[A-Z](?:\.-?[A-Z])*\.?$`)
)

// ParseReferences extracts one record per reference-list item found in text.
// Items the parser cannot key by first author and year are dropped: the
// index is useless without the key, and the precise matcher has the full
// entry list to fall back on.
func ParseReferences(text string) []bib.ReferenceRecord {
	section := referencesSection(text)

	var records []bib.ReferenceRecord
	for _, item := range splitItems(section) {
		rec, ok := parseItem(item)
		if ok {
			records = append(records, rec)
		}
	}
	return records
}

// BuildIndex files records under their first-author + year key. Records
// without a key are skipped.
func BuildIndex(records []bib.ReferenceRecord) *bib.AuthorYearIndex {
	idx := bib.NewAuthorYearIndex()
	for _, rec := range records {
		if rec.FirstAuthor == "" || rec.Year == "" {
			continue
		}
		idx.Add(rec.FirstAuthor, rec.Year, rec)
	}
	return idx
}

// referencesSection returns the text after the last reference-section
// heading, or the whole text when no heading is found.
func referencesSection(text string) string {
	locs := sectionHeading.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}
	return text[locs[len(locs)-1][1]:]
}

// splitItems separates a reference section into per-reference chunks, by
// bracketed markers, numbered lines, or blank lines, in that order of
// preference.
func splitItems(section string) []string {
	if locs := bracketMarker.FindAllStringIndex(section, -1); len(locs) > 1 {
		return splitAt(section, locs)
	}
	if locs := numberMarker.FindAllStringIndex(section, -1); len(locs) > 1 {
		return splitAt(section, locs)
	}

	var items []string
	for _, block := range strings.Split(section, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			items = append(items, block)
		}
	}
	return items
}

func splitAt(s string, locs [][]int) []string {
	var items []string
	for i, loc := range locs {
		end := len(s)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		item := strings.TrimSpace(s[loc[1]:end])
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseItem extracts the identifiers, bibliographic fields and author key
// from one reference item. Reports false when no author-year key could be
// derived.
func parseItem(item string) (bib.ReferenceRecord, bool) {
	item = strings.Join(strings.Fields(item), " ")
	var rec bib.ReferenceRecord

	if m := arxivRef.FindStringSubmatch(item); m != nil {
		rec.ArxivID = m[1]
	}
	if m := doiRef.FindString(item); m != "" {
		rec.DOI = strings.TrimRight(m, ".,;:)")
	}

	journalStart := len(item)
	if m := journalPageYear.FindStringSubmatchIndex(item); m != nil {
		rec.JournalAbbrev = strings.TrimSpace(item[m[2]:m[3]])
		rec.Volume = item[m[4]:m[5]]
		rec.PageStart = item[m[6]:m[7]]
		rec.Year = item[m[8]:m[9]]
		journalStart = m[0]
	} else if m := journalYearPage.FindStringSubmatchIndex(item); m != nil {
		rec.JournalAbbrev = strings.TrimSpace(item[m[2]:m[3]])
		rec.Volume = item[m[4]:m[5]]
		rec.Year = item[m[6]:m[7]]
		rec.PageStart = item[m[8]:m[9]]
		journalStart = m[0]
	}

	if rec.Year == "" {
		if m := yearParen.FindStringSubmatch(item); m != nil {
			rec.Year = m[1]
		} else if m := yearBare.FindStringSubmatch(item); m != nil {
			rec.Year = m[1]
		}
	}

	rec.AuthorText, rec.Authors = parseAuthors(item, journalStart)
	if len(rec.Authors) > 0 {
		rec.FirstAuthor = rec.Authors[0]
	}

	if rec.FirstAuthor == "" || rec.Year == "" {
		return rec, false
	}
	return rec, true
}

// parseAuthors reads the leading author run of a reference item: the text up
// to the first quote, year or journal citation, split on commas and "and".
// Returns the raw author text and the surnames found in it.
func parseAuthors(item string, journalStart int) (string, []string) {
	end := len(item)
	if journalStart >= 0 && journalStart < end {
		end = journalStart
	}
	if i := strings.IndexAny(item, `"“`); i >= 0 && i < end {
		end = i
	}
	if m := yearBare.FindStringIndex(item); m != nil && m[0] < end {
		end = m[0]
	}
	head := strings.TrimRight(item[:end], " ,.;:")
	if head == "" {
		return "", nil
	}

	var surnames []string
	head = strings.ReplaceAll(head, " and ", ", ")
	head = strings.ReplaceAll(head, " & ", ", ")
	for _, piece := range strings.Split(head, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" || strings.EqualFold(piece, "et al.") || strings.EqualFold(piece, "et al") {
			continue
		}
		if s := surnameOf(piece); s != "" {
			surnames = append(surnames, s)
		}
		if len(surnames) >= 8 {
			break
		}
	}
	return head, surnames
}

// surnameOf extracts the surname from one author fragment, skipping
// initials tokens and keeping lowercase particles ("van", "de") attached.
func surnameOf(piece string) string {
	var nameToks []string
	for _, tok := range strings.Fields(piece) {
		if initialsTok.MatchString(tok) {
			continue
		}
		tok = strings.Trim(tok, ".")
		switch strings.ToLower(tok) {
		case "", "et", "al":
			continue
		}
		nameToks = append(nameToks, tok)
	}
	if len(nameToks) == 0 {
		return ""
	}
	name := strings.Join(nameToks, " ")
	// A fragment that still looks like "First Last" keeps only the surname.
	if len(nameToks) > 1 && !startsLower(nameToks[0]) {
		return norm.LastName(name)
	}
	return name
}

func startsLower(s string) bool {
	return len(s) > 0 && s[0] >= 'a' && s[0] <= 'z'
}
