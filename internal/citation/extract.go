package citation

import "regexp"

// Label styles detected in body text. Narrative style keeps the
// parenthesized year attached ("Guo et al. (2016)"); parenthetical style is
// the whole "(Guo et al. 2016)" group, possibly holding several citations
// separated by semicolons.
var (
	name = `[A-Z][\p{L}'’-]+(?:\s+[A-Z][\p{L}'’-]+)?`

	narrativeLabel = regexp.MustCompile(
		name + `(?:\s+(?:et\.?\s*al\.?|and\s+` + name + `|&\s+` + name + `))?\s*\(\d{4}[a-z]?\)`)

	parentheticalGroup = regexp.MustCompile(
		`\(((?:` + name + `(?:\s+(?:et\.?\s*al\.?|and\s+` + name + `|&\s+` + name + `))?,?\s+\d{4}[a-z]?)(?:;\s*[^()]*)?)\)`)

	parentheticalItem = regexp.MustCompile(
		name + `(?:\s+(?:et\.?\s*al\.?|and\s+` + name + `|&\s+` + name + `))?,?\s+\d{4}[a-z]?`)
)

// ExtractLabels returns the citation label strings detected in body text, in
// document order, deduplicated. Parenthetical groups are split into their
// individual citations.
func ExtractLabels(body string) []string {
	type hit struct {
		pos  int
		text string
	}
	var hits []hit

	for _, m := range narrativeLabel.FindAllStringIndex(body, -1) {
		hits = append(hits, hit{m[0], body[m[0]:m[1]]})
	}
	for _, m := range parentheticalGroup.FindAllStringSubmatchIndex(body, -1) {
		group := body[m[2]:m[3]]
		for _, im := range parentheticalItem.FindAllStringIndex(group, -1) {
			hits = append(hits, hit{m[2] + im[0], group[im[0]:im[1]]})
		}
	}

	// Narrative matches subsume any parenthetical re-match at the same spot;
	// sort by position and drop duplicates.
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j-1].pos > hits[j].pos; j-- {
			hits[j-1], hits[j] = hits[j], hits[j-1]
		}
	}

	seen := make(map[string]bool)
	var labels []string
	for _, h := range hits {
		if !seen[h.text] {
			seen[h.text] = true
			labels = append(labels, h.text)
		}
	}
	return labels
}
