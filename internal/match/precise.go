package match

import (
	"strings"

	"github.com/matsen/citejump/internal/bib"
	"github.com/matsen/citejump/internal/norm"
)

// FindPreciseMatch resolves one parsed reference record to a canonical entry
// via strong identifiers and bibliographic fields. The priority ladder is:
//
//  1. arXiv id exact: return immediately, high confidence.
//  2. DOI exact: return immediately, high confidence.
//  3. Journal name + volume, with page, author and year corroboration
//     bonuses; best candidate across all entries wins.
//  4. Volume + page with unverified journal name, accepted only with author
//     or year corroboration; considered only when tier 3 found nothing.
//
// A tier-3/4 candidate is accepted only when its total score reaches
// Scores.PreciseAccept. Returns nil when nothing clears the threshold,
// the normal "not found by precise identifiers" outcome, not an error.
func FindPreciseMatch(entries []bib.Entry, rec bib.ReferenceRecord, surnames []string, yearBase string, sc *Scores, trace TraceFunc) *MatchResult {
	if sc == nil {
		sc = DefaultScores()
	}

	recArxiv := norm.NormalizeArxivID(rec.ArxivID)
	recDOI := norm.NormalizeDOI(rec.DOI)

	var firstSurname string
	if len(surnames) > 0 {
		firstSurname = surnames[0]
	}

	var bestJournal, bestVolPage *MatchResult
	var bestJournalScore, bestVolPageScore float64

	for i := range entries {
		e := &entries[i]

		if recArxiv != "" && recArxiv == norm.NormalizeArxivID(e.ArxivID) {
			trace.emit("precise: arXiv id %q matches entry %d", rec.ArxivID, e.Index)
			return &MatchResult{
				EntryIndex: e.Index, EntryID: e.ID,
				Confidence: ConfidenceHigh, Method: MethodExact, Score: sc.ArxivExact,
			}
		}
		if recDOI != "" && recDOI == norm.NormalizeDOI(e.DOI) {
			trace.emit("precise: DOI %q matches entry %d", rec.DOI, e.Index)
			return &MatchResult{
				EntryIndex: e.Index, EntryID: e.ID,
				Confidence: ConfidenceHigh, Method: MethodExact, Score: sc.DOIExact,
			}
		}

		pub := e.Publication
		if pub == nil {
			continue
		}
		volEqual := fieldsEqual(rec.Volume, pub.JournalVolume)
		pageEqual := pageMatches(rec.PageStart, pub)
		authorOK := firstAuthorOverlap(firstSurname, e)
		yearOK := yearBase != "" && yearBase == norm.YearBase(e.Year)

		// Tier 3: journal + volume. The page bonus is what separates two
		// same-author/same-year papers in the same journal.
		if volEqual && norm.JournalMatches(rec.JournalAbbrev, pub.JournalTitle) {
			score := sc.JournalVolume
			if pageEqual {
				score += sc.PageBonus
			}
			if authorOK {
				score += sc.AuthorBonus
			}
			if yearOK {
				score += sc.YearBonus
			}
			if score > bestJournalScore {
				bestJournalScore = score
				bestJournal = &MatchResult{EntryIndex: e.Index, EntryID: e.ID, Method: MethodExact, Score: score}
			}
			continue
		}

		// Tier 4: bare volume + page coincidence needs extra corroboration.
		if volEqual && pageEqual && (authorOK || yearOK) {
			score := sc.VolumePage
			if authorOK {
				score += sc.AuthorBonus
			}
			if yearOK {
				score += sc.YearBonus
			}
			if score > bestVolPageScore {
				bestVolPageScore = score
				bestVolPage = &MatchResult{EntryIndex: e.Index, EntryID: e.ID, Method: MethodExact, Score: score}
			}
		}
	}

	best := bestJournal
	if best == nil {
		best = bestVolPage
	}
	if best == nil || best.Score < sc.PreciseAccept {
		if best != nil {
			trace.emit("precise: best candidate entry %d scored %.1f, below accept threshold %.1f",
				best.EntryIndex, best.Score, sc.PreciseAccept)
		}
		return nil
	}
	if best.Score >= sc.PreciseHigh {
		best.Confidence = ConfidenceHigh
	} else {
		best.Confidence = ConfidenceMedium
	}
	trace.emit("precise: entry %d accepted with score %.1f (%s)", best.EntryIndex, best.Score, best.Confidence)
	return best
}

// fieldsEqual compares two bibliographic field strings; both must be
// non-empty. Malformed values simply fail the comparison.
func fieldsEqual(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}

// pageMatches checks the record's start page against the entry's page or
// article id.
func pageMatches(page string, pub *bib.Publication) bool {
	return fieldsEqual(page, pub.PageStart) || fieldsEqual(page, pub.ArticleID)
}

// firstAuthorOverlap reports whether the first target surname appears as, or
// is contained in / contains, the entry's first listed author surname.
func firstAuthorOverlap(surname string, e *bib.Entry) bool {
	if surname == "" || len(e.AuthorLastNames) == 0 {
		return false
	}
	first := e.AuthorLastNames[0]
	return norm.EqualFoldName(surname, first) ||
		norm.ContainsFoldName(first, surname) ||
		norm.ContainsFoldName(surname, first)
}
