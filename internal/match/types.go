// Package match resolves in-text citation labels to canonical bibliography
// entries. It combines strong identifiers (arXiv id, DOI, journal/volume/
// page) with weak signals (author overlap, year proximity, initials) into a
// deterministic, score-based decision.
package match

import (
	"fmt"
	"strings"

	"github.com/matsen/citejump/internal/bib"
)

// Confidence is the tier assigned to a resolution.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Method tags how a resolution was reached.
type Method string

const (
	MethodExact Method = "exact" // Strong identifier or corroborated journal fields
	MethodFuzzy Method = "fuzzy" // Weak-signal scoring only
)

// MaxResults caps how many matches a single label resolution may return.
const MaxResults = 3

// MatchResult is the engine's output for one label.
type MatchResult struct {
	EntryIndex int        `json:"entry_index"`
	EntryID    string     `json:"entry_id"`
	Confidence Confidence `json:"confidence"`
	Method     Method     `json:"method"`
	Score      float64    `json:"score"`
	Ambiguous  bool       `json:"ambiguous,omitempty"`
	// Candidates is populated only when Ambiguous is set, and then always
	// holds at least two entries.
	Candidates []AmbiguousCandidate `json:"candidates,omitempty"`
}

// AmbiguousCandidate describes one of several equally plausible entries so a
// caller can present a disambiguation choice.
type AmbiguousCandidate struct {
	EntryIndex   int    `json:"entry_index"`
	EntryID      string `json:"entry_id"`
	Summary      string `json:"summary"` // journal/volume/page/author-count
	Title        string `json:"title,omitempty"`
	SecondAuthor string `json:"second_author,omitempty"`
}

// TraceFunc receives diagnostic messages explaining why candidates were
// chosen or rejected. It carries no control-flow meaning; nil disables it.
type TraceFunc func(format string, args ...any)

func (t TraceFunc) emit(format string, args ...any) {
	if t != nil {
		t(format, args...)
	}
}

// Scores holds every bonus, penalty and threshold the matchers use. The
// magnitudes are empirically tuned as a set: the acceptance thresholds are
// calibrated against these exact values, so override with care.
type Scores struct {
	// Precise matcher
	ArxivExact    float64 // Normalized arXiv ids equal
	DOIExact      float64 // Normalized DOIs equal
	JournalVolume float64 // Journal name + volume match
	VolumePage    float64 // Volume + page match with unverified journal
	PageBonus     float64 // Page/article id also matches in the journal tier
	AuthorBonus   float64 // First-author surname corroborates
	YearBonus     float64 // Year corroborates
	PreciseAccept float64 // Minimum total for a journal/volume-tier match
	PreciseHigh   float64 // High-confidence threshold

	// Fuzzy matcher
	YearExact        float64 // Base years equal
	YearNear         float64 // Years off by one (preprint vs published)
	AuthorFull       float64 // Surname equals a listed author surname
	AuthorPartial    float64 // Surname contained in / contains a listed surname
	FirstAuthor      float64 // First label author matches first listed author
	OverlapStep      float64 // Per matched surname, scaled overlap bonus
	OverlapCap       float64 // Cap on the scaled overlap bonus
	CountMatch       float64 // Author-count plausibility reward
	CountMismatch    float64 // Author-count plausibility penalty
	InitialsMatch    float64 // Initials agree next to the surname
	InitialsConflict float64 // Initials disagree next to the surname
	HintVolume       float64 // Hinted volume equal (reward) / unequal (penalty)
	HintPage         float64 // Hinted page or article id equal
	FuzzyFloor       float64 // Below this a candidate is not returned at all
	FuzzyMedium      float64 // Medium-confidence threshold
	FuzzyHigh        float64 // High-confidence threshold
	FuzzyWindow      float64 // Runner-up must be within this of the top score
}

// DefaultScores returns the tuned score set.
func DefaultScores() *Scores {
	return &Scores{
		ArxivExact:    10,
		DOIExact:      10,
		JournalVolume: 4,
		VolumePage:    4,
		PageBonus:     3,
		AuthorBonus:   1,
		YearBonus:     1,
		PreciseAccept: 5,
		PreciseHigh:   7,

		YearExact:        3,
		YearNear:         1,
		AuthorFull:       1,
		AuthorPartial:    0.5,
		FirstAuthor:      1,
		OverlapStep:      0.5,
		OverlapCap:       1.5,
		CountMatch:       1,
		CountMismatch:    1,
		InitialsMatch:    2.5,
		InitialsConflict: 2.5,
		HintVolume:       2,
		HintPage:         2,
		FuzzyFloor:       4,
		FuzzyMedium:      5,
		FuzzyHigh:        7,
		FuzzyWindow:      2,
	}
}

// fuzzyConfidence maps a fuzzy score to its tier.
func (s *Scores) fuzzyConfidence(score float64) Confidence {
	switch {
	case score >= s.FuzzyHigh:
		return ConfidenceHigh
	case score >= s.FuzzyMedium:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// candidateFor renders an entry as an ambiguous candidate with a
// human-readable journal/volume/page/author-count summary.
func candidateFor(e *bib.Entry) AmbiguousCandidate {
	var parts []string
	if p := e.Publication; p != nil {
		if p.JournalTitle != "" {
			parts = append(parts, p.JournalTitle)
		}
		if p.JournalVolume != "" {
			parts = append(parts, p.JournalVolume)
		}
		if p.PageStart != "" {
			parts = append(parts, p.PageStart)
		} else if p.ArticleID != "" {
			parts = append(parts, p.ArticleID)
		}
	}
	if n := e.AuthorCount; n > 0 {
		parts = append(parts, fmt.Sprintf("%d authors", n))
	} else if n := len(e.AuthorLastNames); n > 0 {
		parts = append(parts, fmt.Sprintf("%d authors", n))
	}
	return AmbiguousCandidate{
		EntryIndex:   e.Index,
		EntryID:      e.ID,
		Summary:      strings.Join(parts, " "),
		Title:        e.Title,
		SecondAuthor: e.SecondAuthor(),
	}
}
