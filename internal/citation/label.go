// Package citation parses in-text citation labels into structured form and
// detects label strings inside a document's body text.
package citation

import (
	"regexp"
	"strings"
	"unicode"
)

// Label is the structured decomposition of a raw in-text citation label such
// as "Guo et al. (2016)" or "X. Guo and Li 2011a".
type Label struct {
	Raw        string            // Original label text
	Surnames   []string          // Ordered author surnames named by the label
	Initials   map[string]string // Surname → printed initial letters ("JR")
	YearBase   string            // 4-digit year, "" when absent
	YearSuffix string            // Single disambiguation letter, "" when absent
	EtAl       bool              // Label was of "et al." form
}

var (
	parenYear = regexp.MustCompile(`\((\d{4}[a-z]?)\)`)
	etAlPart  = regexp.MustCompile(`(?i)\bet\.?\s*al\.?`)
	yearPart  = regexp.MustCompile(`\b(\d{4})([a-z])?\b`)
	andSep    = regexp.MustCompile(`(?i)\s+(?:and|&)\s+`)
)

// ParseLabel decomposes a raw label. It never fails: a label with no
// recognizable author or year yields a Label with empty Surnames and YearBase,
// which the resolver treats as "nothing to search for".
func ParseLabel(raw string) Label {
	label := Label{Raw: raw, Initials: make(map[string]string)}

	// "(2015)" → " 2015" so the year scan below sees a bare year.
	s := parenYear.ReplaceAllString(raw, " $1")

	if m := yearPart.FindStringSubmatchIndex(s); m != nil {
		label.YearBase = s[m[2]:m[3]]
		if m[4] >= 0 {
			label.YearSuffix = s[m[4]:m[5]]
		}
		// Authors precede the year in every supported label style.
		s = s[:m[0]]
	}

	if etAlPart.MatchString(s) {
		label.EtAl = true
		s = etAlPart.ReplaceAllString(s, " ")
	}

	for _, part := range splitAuthors(s) {
		surname, initials := parseAuthor(part)
		if surname == "" {
			continue
		}
		label.Surnames = append(label.Surnames, surname)
		if initials != "" {
			label.Initials[surname] = initials
		}
	}
	return label
}

// splitAuthors separates an author list on ";", "and", "&" and commas.
// A comma followed by bare initials belongs to one author ("Guo, X.") and is
// kept together; a comma followed by a capitalized name starts a new author.
func splitAuthors(s string) []string {
	s = strings.Trim(s, " \t\n([{)]}")
	if s == "" {
		return nil
	}

	var parts []string
	for _, chunk := range andSep.Split(s, -1) {
		for _, piece := range strings.Split(chunk, ";") {
			parts = append(parts, splitCommaAuthors(piece)...)
		}
	}
	return parts
}

func splitCommaAuthors(s string) []string {
	segs := strings.Split(s, ",")
	var out []string
	var cur string
	for _, seg := range segs {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if cur == "" {
			cur = seg
			continue
		}
		if isInitialsOnly(seg) {
			// "Guo, X.": initials attach to the pending surname.
			cur += ", " + seg
			continue
		}
		out = append(out, cur)
		cur = seg
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}

// isInitialsOnly reports whether every token in s is an initial ("X.", "J.-P.").
func isInitialsOnly(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if initialLetters(f) == "" {
			return false
		}
	}
	return true
}

// parseAuthor splits one author fragment into surname and initial letters.
// Handles "Guo", "X. Guo", "Guo, X." and compound surnames ("van Beijeren").
func parseAuthor(s string) (surname, initials string) {
	s = strings.Trim(s, " \t([{)]}")
	if s == "" {
		return "", ""
	}

	var nameToks []string
	for _, tok := range strings.Fields(strings.ReplaceAll(s, ",", " ")) {
		if letters := initialLetters(tok); letters != "" {
			initials += letters
			continue
		}
		tok = strings.Trim(tok, ".")
		if hasLetter(tok) {
			nameToks = append(nameToks, tok)
		}
	}
	return strings.Join(nameToks, " "), initials
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// initialLetters extracts the uppercase initial letters from a token like
// "X.", "J.-P." or "JR", or returns "" when the token is not an initials
// token (any lowercase letter or run longer than three letters disqualifies).
func initialLetters(tok string) string {
	stripped := strings.Map(func(r rune) rune {
		if r == '.' || r == '-' {
			return -1
		}
		return r
	}, tok)
	if stripped == "" || len([]rune(stripped)) > 3 {
		return ""
	}
	// A bare capitalized token without dots ("Guo") is a name, not initials.
	if !strings.Contains(tok, ".") && len([]rune(stripped)) > 1 {
		return ""
	}
	for _, r := range stripped {
		if r < 'A' || r > 'Z' {
			return ""
		}
	}
	return stripped
}
