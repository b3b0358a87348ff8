package match

import (
	"sort"

	"github.com/matsen/citejump/internal/bib"
	"github.com/matsen/citejump/internal/citation"
)

// Resolver drives the precise and fuzzy matchers for one document. It holds
// no mutable state: every field is read-only during a call, so a single
// Resolver may serve concurrent label resolutions.
type Resolver struct {
	Entries []bib.Entry          // Canonical bibliography of the paper
	Index   *bib.AuthorYearIndex // Optional PDF-parsed reference index
	Scores  *Scores              // Optional overrides; nil means DefaultScores
	Trace   TraceFunc            // Optional diagnostics; nil means silent
}

// Resolve parses a raw label and resolves it. At most MaxResults results are
// returned; an empty slice means the label had nothing to search for or
// nothing matched.
func (r *Resolver) Resolve(raw string) []MatchResult {
	return r.ResolveLabel(citation.ParseLabel(raw))
}

// ResolveLabel resolves an already-parsed label.
//
// When an author-year index is available the precise matcher runs first
// against the records filed under the label's key (probing diacritic, ß and
// compound-surname key variants, then the year-base-only key). Ties between
// records that resolve to distinct entries surface as an ambiguous result.
// Otherwise resolution falls back to fuzzy scoring over all entries.
func (r *Resolver) ResolveLabel(label citation.Label) []MatchResult {
	if len(label.Surnames) == 0 && label.YearBase == "" {
		return nil
	}
	sc := r.Scores
	if sc == nil {
		sc = DefaultScores()
	}

	var firstSurname string
	if len(label.Surnames) > 0 {
		firstSurname = label.Surnames[0]
	}

	if r.Index != nil && firstSurname != "" && label.YearBase != "" {
		recs := r.Index.LookupVariants(bib.KeyVariants(firstSurname, label.YearBase+label.YearSuffix))
		if len(recs) == 0 && label.YearSuffix != "" {
			// "2011" vs "2011a" naming mismatch between label and list.
			recs = r.Index.LookupVariants(bib.KeyVariants(firstSurname, label.YearBase))
		}
		if len(recs) > 0 {
			r.Trace.emit("resolve: %d indexed record(s) for %q %s%s",
				len(recs), firstSurname, label.YearBase, label.YearSuffix)
			if results := r.resolveRecords(recs, label, sc); len(results) > 0 {
				return results
			}
		}
	}

	return r.resolveFuzzy(label, firstSurname, sc)
}

// resolveRecords matches the label against the records found under its
// author-year key. Returns nil to fall through to fuzzy matching.
func (r *Resolver) resolveRecords(recs []bib.ReferenceRecord, label citation.Label, sc *Scores) []MatchResult {
	// Several records plus printed initials: let the precise matcher resolve
	// each record, then re-rank by initials agreement against the entries'
	// author text and accept only a non-negative adjusted score.
	if len(recs) > 1 && len(label.Initials) > 0 {
		return r.resolveByInitials(recs, label, sc)
	}

	best, tied := rankRecords(recs, label, sc)
	if len(tied) > 1 {
		return r.resolveTied(tied, label, sc)
	}
	if m := FindPreciseMatch(r.Entries, best, label.Surnames, label.YearBase, sc, r.Trace); m != nil {
		return []MatchResult{*m}
	}
	return nil
}

// resolveByInitials precise-matches every record and picks the one whose
// resolved entry carries agreeing initials in its author text.
func (r *Resolver) resolveByInitials(recs []bib.ReferenceRecord, label citation.Label, sc *Scores) []MatchResult {
	var best *MatchResult
	bestAdj := 0.0
	for _, rec := range recs {
		m := FindPreciseMatch(r.Entries, rec, label.Surnames, label.YearBase, sc, r.Trace)
		if m == nil {
			continue
		}
		adj := m.Score
		entry := r.entryAt(m.EntryIndex)
		if entry != nil {
			for surname, initials := range label.Initials {
				switch matchInitials(entry.AuthorText, surname, initials) {
				case initialsAgree:
					adj += sc.InitialsMatch
				case initialsDisagree:
					adj -= sc.InitialsConflict
				}
			}
		}
		r.Trace.emit("resolve: record → entry %d, initials-adjusted score %.1f", m.EntryIndex, adj)
		if best == nil || adj > bestAdj {
			best, bestAdj = m, adj
		}
	}
	if best != nil && bestAdj >= 0 {
		return []MatchResult{*best}
	}
	return nil
}

// resolveTied precise-matches every tied record. Two or more distinct entry
// resolutions make the label ambiguous: the first resolution is returned as
// the primary result, downgraded to medium confidence, with every distinct
// entry attached as an ambiguous candidate.
func (r *Resolver) resolveTied(tied []bib.ReferenceRecord, label citation.Label, sc *Scores) []MatchResult {
	var matches []MatchResult
	seen := make(map[int]bool)
	for _, rec := range tied {
		m := FindPreciseMatch(r.Entries, rec, label.Surnames, label.YearBase, sc, r.Trace)
		if m == nil || seen[m.EntryIndex] {
			continue
		}
		seen[m.EntryIndex] = true
		matches = append(matches, *m)
	}

	switch len(matches) {
	case 0:
		return nil
	case 1:
		return matches[:1]
	}

	primary := matches[0]
	primary.Ambiguous = true
	primary.Confidence = ConfidenceMedium
	for i := range matches {
		if e := r.entryAt(matches[i].EntryIndex); e != nil {
			primary.Candidates = append(primary.Candidates, candidateFor(e))
		}
	}
	r.Trace.emit("resolve: ambiguous, %d distinct entries tie for the label", len(matches))
	return []MatchResult{primary}
}

// rankRecords scores each record by structured-author overlap plus initials
// agreement and returns the winner, along with every record sharing the top
// score when there is no clear winner.
func rankRecords(recs []bib.ReferenceRecord, label citation.Label, sc *Scores) (bib.ReferenceRecord, []bib.ReferenceRecord) {
	if len(recs) == 1 {
		return recs[0], recs[:1]
	}

	scores := make([]float64, len(recs))
	for i, rec := range recs {
		scores[i] = recordPriority(rec, label, sc)
	}
	top := scores[0]
	for _, s := range scores[1:] {
		if s > top {
			top = s
		}
	}

	var tied []bib.ReferenceRecord
	for i, s := range scores {
		if s == top {
			tied = append(tied, recs[i])
		}
	}
	return tied[0], tied
}

// recordPriority scores how well a record's own author information supports
// the label. Records without author fields score zero, which deliberately
// leaves same-key records tied.
func recordPriority(rec bib.ReferenceRecord, label citation.Label, sc *Scores) float64 {
	var score float64
	for _, surname := range label.Surnames {
		for _, a := range rec.Authors {
			if fieldsEqual(surname, a) {
				score += sc.AuthorFull
				break
			}
		}
	}
	for surname, initials := range label.Initials {
		switch matchInitials(rec.AuthorText, surname, initials) {
		case initialsAgree:
			score += sc.InitialsMatch
		case initialsDisagree:
			score -= sc.InitialsConflict
		}
	}
	return score
}

// resolveFuzzy runs the fuzzy matcher over all entries and shapes the final
// ranked result list.
func (r *Resolver) resolveFuzzy(label citation.Label, firstSurname string, sc *Scores) []MatchResult {
	// A year suffix ("2011a") cannot be told apart from its siblings by weak
	// signals alone; a single indexed record for the exact suffixed key
	// supplies the journal/volume/page hint that can.
	var hint *bib.ReferenceRecord
	if label.YearSuffix != "" && r.Index != nil && firstSurname != "" {
		hinted := r.Index.LookupVariants(bib.KeyVariants(firstSurname, label.YearBase+label.YearSuffix))
		if len(hinted) == 1 && !hinted[0].Empty() {
			hint = &hinted[0]
		}
	}

	scored := ScoreFuzzyMatches(r.Entries, Target{
		Surnames: label.Surnames,
		YearBase: label.YearBase,
		Initials: label.Initials,
		EtAl:     label.EtAl,
		Hint:     hint,
	}, sc, r.Trace)
	if len(scored) == 0 {
		return nil
	}

	// Stable order: score descending, then original entry index. The index
	// tie-break makes the otherwise order-dependent result deterministic.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Entry.Index < scored[j].Entry.Index
	})

	// Entries matching the year beat any that merely resemble the authors.
	anyYear := false
	for _, s := range scored {
		if s.YearMatched {
			anyYear = true
			break
		}
	}
	if anyYear {
		kept := scored[:0]
		for _, s := range scored {
			if s.YearMatched {
				kept = append(kept, s)
			}
		}
		scored = kept
	}

	// Without a hint, a bare fuzzy match cannot safely disambiguate suffix
	// variants; return only the single best candidate.
	if label.YearSuffix != "" && hint == nil {
		scored = scored[:1]
	}

	top := scored[0].Score
	var results []MatchResult
	for _, s := range scored {
		if top-s.Score > sc.FuzzyWindow {
			break
		}
		results = append(results, MatchResult{
			EntryIndex: s.Entry.Index,
			EntryID:    s.Entry.ID,
			Confidence: sc.fuzzyConfidence(s.Score),
			Method:     MethodFuzzy,
			Score:      s.Score,
		})
		if len(results) == MaxResults {
			break
		}
	}
	return results
}

// entryAt finds the entry with the given ordinal index. Entries are usually
// stored in index order, so the direct probe almost always hits.
func (r *Resolver) entryAt(index int) *bib.Entry {
	if index >= 0 && index < len(r.Entries) && r.Entries[index].Index == index {
		return &r.Entries[index]
	}
	for i := range r.Entries {
		if r.Entries[i].Index == index {
			return &r.Entries[i]
		}
	}
	return nil
}
