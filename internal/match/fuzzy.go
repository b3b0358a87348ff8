package match

import (
	"strconv"
	"strings"

	"github.com/matsen/citejump/internal/bib"
	"github.com/matsen/citejump/internal/norm"
)

// Target carries everything the fuzzy matcher knows about one citation label.
type Target struct {
	Surnames []string            // Ordered author surnames from the label
	YearBase string              // 4-digit base year, "" when absent
	Initials map[string]string   // Surname → printed initial letters
	EtAl     bool                // Label was of "et al." form
	Hint     *bib.ReferenceRecord // Bibliographic hint for suffix disambiguation
}

// FuzzyScore is one scored candidate entry.
type FuzzyScore struct {
	Entry       *bib.Entry
	Score       float64
	YearMatched bool
}

// ScoreFuzzyMatches scores every entry against the target using weak signals
// and returns the candidates that reach Scores.FuzzyFloor, in entry order.
// Candidates below the floor are omitted entirely, distinguishing "weak
// evidence" from "no evidence". Callers sort by descending score.
func ScoreFuzzyMatches(entries []bib.Entry, t Target, sc *Scores, trace TraceFunc) []FuzzyScore {
	if sc == nil {
		sc = DefaultScores()
	}

	var out []FuzzyScore
	for i := range entries {
		e := &entries[i]
		score, yearMatched := scoreEntry(e, t, sc)
		if score >= sc.FuzzyFloor {
			trace.emit("fuzzy: entry %d scored %.1f (year matched: %v)", e.Index, score, yearMatched)
			out = append(out, FuzzyScore{Entry: e, Score: score, YearMatched: yearMatched})
		}
	}
	return out
}

func scoreEntry(e *bib.Entry, t Target, sc *Scores) (float64, bool) {
	var score float64

	// Year: exact base match, or off-by-one for preprint/published drift.
	yearMatched := false
	if entryYear := norm.YearBase(e.Year); entryYear != "" && t.YearBase != "" {
		if entryYear == t.YearBase {
			score += sc.YearExact
			yearMatched = true
		} else if yearsAdjacent(entryYear, t.YearBase) {
			score += sc.YearNear
		}
	}

	score += scoreAuthors(e, t, sc)
	score += scoreAuthorCount(e, t, sc)

	// Initials are the main defense against same-surname collisions.
	for surname, initials := range t.Initials {
		switch matchInitials(e.AuthorText, surname, initials) {
		case initialsAgree:
			score += sc.InitialsMatch
		case initialsDisagree:
			score -= sc.InitialsConflict
		}
	}

	// Bibliographic corroboration only means anything once the year matched;
	// it exists to pick between suffix variants of the same author-year.
	if t.Hint != nil && yearMatched && e.Publication != nil {
		pub := e.Publication
		if t.Hint.Volume != "" && pub.JournalVolume != "" {
			if fieldsEqual(t.Hint.Volume, pub.JournalVolume) {
				score += sc.HintVolume
			} else {
				score -= sc.HintVolume
			}
		}
		if pageMatches(t.Hint.PageStart, pub) {
			score += sc.HintPage
		}
	}

	return score, yearMatched
}

// scoreAuthors awards structured-author overlap, falling back to the
// free-text author string when the structured signal is weak.
func scoreAuthors(e *bib.Entry, t Target, sc *Scores) float64 {
	var score float64
	matched := 0

	for _, surname := range t.Surnames {
		for _, listed := range e.AuthorLastNames {
			if norm.EqualFoldName(surname, listed) {
				score += sc.AuthorFull
				matched++
				break
			}
			if norm.ContainsFoldName(listed, surname) || norm.ContainsFoldName(surname, listed) {
				score += sc.AuthorPartial
				matched++
				break
			}
		}
	}
	if len(t.Surnames) > 0 && firstAuthorOverlap(t.Surnames[0], e) {
		score += sc.FirstAuthor
	}
	if matched > 0 {
		bonus := sc.OverlapStep * float64(matched)
		if bonus > sc.OverlapCap {
			bonus = sc.OverlapCap
		}
		score += bonus
	}

	// Free-text fallback: only when the structured authors gave us no full
	// surname match to stand on.
	if score < sc.AuthorFull && e.AuthorText != "" {
		score += scoreAuthorText(e.AuthorText, t, sc)
	}
	return score
}

// scoreAuthorText scans the free-text author string for target surnames.
// The first target author earns the first-author bonus only when its match
// position implies it leads the list (before the first comma).
func scoreAuthorText(text string, t Target, sc *Scores) float64 {
	folded := strings.ToLower(norm.FoldDiacritics(text))
	var score float64
	for i, surname := range t.Surnames {
		needle := strings.ToLower(norm.FoldDiacritics(surname))
		if needle == "" {
			continue
		}
		pos := strings.Index(folded, needle)
		if pos < 0 {
			continue
		}
		score += sc.AuthorPartial
		if i == 0 {
			if comma := strings.Index(folded, ","); comma == -1 || pos < comma {
				score += sc.FirstAuthor
			}
		}
	}
	return score
}

// scoreAuthorCount rewards entries whose author count is plausible for the
// label form: a non-"et al." label naming one or two authors should match an
// entry with exactly that many, while an "et al." label implies more than two.
func scoreAuthorCount(e *bib.Entry, t Target, sc *Scores) float64 {
	count := e.AuthorCount
	if count == 0 {
		count = len(e.AuthorLastNames)
	}
	if count == 0 {
		return 0
	}

	if t.EtAl {
		if count > 2 {
			return sc.CountMatch
		}
		return -sc.CountMismatch
	}
	if n := len(t.Surnames); n > 0 && n <= 2 {
		if count == n {
			return sc.CountMatch
		}
		return -sc.CountMismatch
	}
	return 0
}

// yearsAdjacent reports whether two 4-digit year strings differ by one.
func yearsAdjacent(a, b string) bool {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA != nil || errB != nil {
		return false
	}
	d := ai - bi
	return d == 1 || d == -1
}

// Initials comparison outcomes.
const (
	initialsAbsent   = 0
	initialsAgree    = 1
	initialsDisagree = -1
)

// matchInitials looks for the surname inside a free-text author string and
// compares the printed initials adjacent to it against the label's initials,
// as an ordered prefix sequence: "J" agrees with "J. R. Smith", "JR" agrees
// with "J. R." but disagrees with "J. K.". Returns initialsAbsent when the
// surname is missing or carries no initials information.
func matchInitials(authorText, surname, initials string) int {
	if authorText == "" || surname == "" || initials == "" {
		return initialsAbsent
	}

	toks := tokenizeAuthors(authorText)
	target := strings.ToLower(norm.FoldDiacritics(surname))

	for i, tok := range toks {
		if strings.ToLower(norm.FoldDiacritics(tok.text)) != target {
			continue
		}
		letters := adjacentInitials(toks, i)
		if letters == "" {
			continue
		}
		if sequencesAgree(strings.ToUpper(initials), letters) {
			return initialsAgree
		}
		return initialsDisagree
	}
	return initialsAbsent
}

// authorToken is one whitespace-separated token of an author string, with
// trailing list punctuation stripped and remembered.
type authorToken struct {
	text     string // Token with trailing "," / ";" removed
	boundary bool   // Token was followed by a list separator
}

func tokenizeAuthors(s string) []authorToken {
	fields := strings.Fields(s)
	toks := make([]authorToken, 0, len(fields))
	for _, f := range fields {
		trimmed := strings.TrimRight(f, ",;")
		if trimmed == "" {
			continue
		}
		toks = append(toks, authorToken{text: trimmed, boundary: trimmed != f})
	}
	return toks
}

// adjacentInitials collects the initial letters printed next to the surname
// token at index i. "Smith, J. R." reads forward after the comma;
// "J. R. Smith" reads backward. Scanning stops at list separators and at
// lowercase connective words so a neighbor author's initials are never
// swallowed.
func adjacentInitials(toks []authorToken, i int) string {
	// In "J. Smith, R. Jones" an initials token right before the surname wins
	// over the trailing comma, which only separates authors here.
	precededByInitials := i > 0 && !toks[i-1].boundary && looksLikeInitials(toks[i-1].text)

	if toks[i].boundary && !precededByInitials {
		// "Smith, J. R." style: given names follow, up to the next separator.
		var letters []byte
		for j := i + 1; j < len(toks); j++ {
			l := initialLetterOf(toks[j].text)
			if l == 0 {
				break
			}
			letters = append(letters, l)
			if toks[j].boundary {
				break
			}
		}
		return string(letters)
	}

	// "J. R. Smith" style: initials or given names precede.
	var letters []byte
	for j := i - 1; j >= 0; j-- {
		if toks[j].boundary || isConnective(toks[j].text) {
			break
		}
		l := initialLetterOf(toks[j].text)
		if l == 0 {
			break
		}
		letters = append([]byte{l}, letters...)
	}
	return string(letters)
}

// initialLetterOf returns the uppercase initial of a name or initials token,
// or 0 for tokens that cannot start a given name.
func initialLetterOf(tok string) byte {
	tok = strings.Trim(tok, ".-")
	if tok == "" {
		return 0
	}
	c := tok[0]
	if c >= 'A' && c <= 'Z' {
		return c
	}
	return 0
}

// looksLikeInitials reports whether a token is an initials token such as
// "J.", "J.-P." or "J" (as opposed to a spelled-out given name).
func looksLikeInitials(tok string) bool {
	stripped := strings.Map(func(r rune) rune {
		if r == '.' || r == '-' {
			return -1
		}
		return r
	}, tok)
	if stripped == "" || len(stripped) > 3 {
		return false
	}
	if !strings.Contains(tok, ".") && len(stripped) > 1 {
		return false
	}
	for i := 0; i < len(stripped); i++ {
		if stripped[i] < 'A' || stripped[i] > 'Z' {
			return false
		}
	}
	return true
}

func isConnective(tok string) bool {
	switch strings.ToLower(strings.Trim(tok, ".")) {
	case "and", "&", "et", "al":
		return true
	}
	return false
}

// sequencesAgree compares two initials sequences as ordered prefixes: they
// agree when one is a prefix of the other.
func sequencesAgree(a, b string) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	return strings.HasPrefix(b, a)
}
