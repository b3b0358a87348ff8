// Package norm provides identifier and name normalization for bibliographic
// matching. Every function is total: empty or malformed input yields an
// empty/neutral value, never an error.
package norm

import (
	"regexp"
	"strings"
)

var (
	arxivPrefix  = regexp.MustCompile(`(?i)^arxiv:\s*`)
	arxivVersion = regexp.MustCompile(`(?i)v\d+$`)
	yearPattern  = regexp.MustCompile(`^(\d{4})([a-z])?$`)
)

// DOI resolver prefixes stripped by NormalizeDOI, longest first.
var doiPrefixes = []string{
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"https://doi.org/",
	"http://doi.org/",
	"doi.org/",
	"doi:",
}

// NormalizeArxivID canonicalizes an arXiv identifier into a comparison key:
// the "arXiv:" prefix and any version suffix are stripped, and all
// non-alphanumeric separators are removed. Both new-style ("1604.01234v2")
// and old-style ("hep-ph/9905221") identifiers normalize consistently.
// Returns "" for absent input.
func NormalizeArxivID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	id = arxivPrefix.ReplaceAllString(id, "")
	id = arxivVersion.ReplaceAllString(id, "")

	var b strings.Builder
	for _, r := range strings.ToLower(id) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeDOI lower-cases a DOI and strips any resolver prefix.
// Returns "" for absent input.
func NormalizeDOI(doi string) string {
	doi = strings.ToLower(strings.TrimSpace(doi))
	for _, p := range doiPrefixes {
		if strings.HasPrefix(doi, p) {
			doi = doi[len(p):]
			break
		}
	}
	return doi
}

// JournalMatches compares two journal title/abbreviation strings with
// punctuation, whitespace and case folded away, so "Phys. Lett. B" matches
// "Phys Lett B" and "PHYS.LETT.B". Empty input never matches.
func JournalMatches(a, b string) bool {
	fa, fb := foldJournal(a), foldJournal(b)
	return fa != "" && fa == fb
}

func foldJournal(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LastName extracts the surname token from a "Last, First" or "First Last"
// formatted name. Returns "" for empty input.
func LastName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if last, _, ok := strings.Cut(name, ","); ok {
		return strings.TrimSpace(last)
	}
	fields := strings.Fields(name)
	return fields[len(fields)-1]
}

// YearBase returns the 4-digit base of a year string that may carry a
// single-letter disambiguation suffix ("2011a" → "2011"). Returns "" for
// non-numeric input.
func YearBase(year string) string {
	base, _ := SplitYear(year)
	return base
}

// SplitYear splits a year string into its 4-digit base and optional
// one-letter suffix. Returns ("", "") when the input is not a 4-digit year.
func SplitYear(year string) (base, suffix string) {
	m := yearPattern.FindStringSubmatch(strings.TrimSpace(year))
	if m == nil {
		return "", ""
	}
	return m[1], m[2]
}

// diacriticFold maps accented Latin letters to their ASCII base. Covers the
// Latin-1 supplement and the extended letters that actually occur in author
// names; anything unmapped passes through unchanged.
var diacriticFold = map[rune]string{
	'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'ä': "a", 'å': "a", 'ā': "a", 'ă': "a", 'ą': "a",
	'ç': "c", 'ć': "c", 'č': "c",
	'ď': "d", 'đ': "d",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e", 'ē': "e", 'ĕ': "e", 'ė': "e", 'ę': "e", 'ě': "e",
	'ğ': "g", 'ģ': "g",
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i", 'ī': "i", 'į': "i", 'ı': "i",
	'ł': "l", 'ľ': "l", 'ļ': "l",
	'ñ': "n", 'ń': "n", 'ň': "n", 'ņ': "n",
	'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ö': "o", 'ø': "o", 'ō': "o", 'ő': "o",
	'ŕ': "r", 'ř': "r",
	'ś': "s", 'š': "s", 'ş': "s", 'ș': "s",
	'ť': "t", 'ţ': "t", 'ț': "t",
	'ù': "u", 'ú': "u", 'û': "u", 'ü': "u", 'ū': "u", 'ů': "u", 'ű': "u", 'ų': "u",
	'ý': "y", 'ÿ': "y",
	'ź': "z", 'ż': "z", 'ž': "z",
	'À': "A", 'Á': "A", 'Â': "A", 'Ã': "A", 'Ä': "A", 'Å': "A", 'Ā': "A", 'Ą': "A",
	'Ç': "C", 'Ć': "C", 'Č': "C",
	'È': "E", 'É': "E", 'Ê': "E", 'Ë': "E", 'Ē': "E", 'Ė': "E", 'Ę': "E", 'Ě': "E",
	'Ğ': "G",
	'Ì': "I", 'Í': "I", 'Î': "I", 'Ï': "I", 'İ': "I",
	'Ł': "L",
	'Ñ': "N", 'Ń': "N", 'Ň': "N",
	'Ò': "O", 'Ó': "O", 'Ô': "O", 'Õ': "O", 'Ö': "O", 'Ø': "O", 'Ő': "O",
	'Ř': "R",
	'Ś': "S", 'Š': "S", 'Ş': "S",
	'Ù': "U", 'Ú': "U", 'Û': "U", 'Ü': "U", 'Ū': "U", 'Ů': "U", 'Ű': "U",
	'Ý': "Y",
	'Ź': "Z", 'Ż': "Z", 'Ž': "Z",
	'æ': "ae", 'Æ': "AE", 'œ': "oe", 'Œ': "OE", 'ß': "ss", 'þ': "th", 'ð': "d",
}

// FoldDiacritics strips diacritics from Latin letters ("Müller" → "Muller",
// "Straße" → "Strasse"). Characters without a mapping pass through.
func FoldDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if repl, ok := diacriticFold[r]; ok {
			b.WriteString(repl)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EqualFoldName compares two surnames case-insensitively with diacritics
// folded on both sides.
func EqualFoldName(a, b string) bool {
	return strings.EqualFold(FoldDiacritics(a), FoldDiacritics(b))
}

// ContainsFoldName reports whether hay contains needle after case and
// diacritic folding. Used for substring-level author overlap.
func ContainsFoldName(hay, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(
		strings.ToLower(FoldDiacritics(hay)),
		strings.ToLower(FoldDiacritics(needle)),
	)
}
