// Package textsample produces growing text windows over extracted PDF text.
//
// Parsing a reference list out of a large document is expensive, and the list
// almost always lives in the last few pages. The builder emits a sequence of
// candidate windows, smallest first, so the caller can try the cheap windows
// and only fall back to the full text when a parse comes up short. The retry
// loop itself belongs to the caller; the builder only defines the windows.
package textsample

import "strings"

// PageSeparator is the control character that delimits pages in extracted
// text, when the extractor emits one per page.
const PageSeparator = '\f'

// Kind classifies how a candidate window was produced.
type Kind string

const (
	KindTailPages Kind = "tailPages" // Last N pages, counted by page separators
	KindTailChars Kind = "tailChars" // Last N characters, when no separators exist
	KindFull      Kind = "full"      // The entire input text
)

// Candidate is one text window. StartIndex is the byte offset of Text within
// the original input; Tail is the page or character count the window was
// grown to (0 for KindFull).
type Candidate struct {
	Kind       Kind
	Tail       int
	StartIndex int
	Text       string
}

// Options tunes the growth schedule.
type Options struct {
	MaxTailPages int   // Most page separators collected from the end
	MaxTailChars int   // Largest character window attempted
	PageSteps    []int // Page-count growth steps, ascending
	CharSteps    []int // Character-count growth steps, ascending
}

// Default growth schedule. The first step covers a typical reference section;
// later steps double-or-so until the whole document is cheaper than another
// retry.
var (
	DefaultPageSteps = []int{4, 8, 16, 32}
	DefaultCharSteps = []int{16000, 40000, 100000, 250000}
)

const (
	DefaultMaxTailPages = 32
	DefaultMaxTailChars = 250000
)

func (o Options) withDefaults() Options {
	if o.MaxTailPages <= 0 {
		o.MaxTailPages = DefaultMaxTailPages
	}
	if o.MaxTailChars <= 0 {
		o.MaxTailChars = DefaultMaxTailChars
	}
	if len(o.PageSteps) == 0 {
		o.PageSteps = DefaultPageSteps
	}
	if len(o.CharSteps) == 0 {
		o.CharSteps = DefaultCharSteps
	}
	return o
}

// Build returns the ordered candidate sequence for text. The final candidate
// always has StartIndex 0 and covers the entire input, and no two candidates
// share a StartIndex.
func Build(text string, opts Options) []Candidate {
	opts = opts.withDefaults()

	var out []Candidate
	if strings.ContainsRune(text, PageSeparator) {
		out = buildTailPages(text, opts)
	} else {
		out = buildTailChars(text, opts)
	}

	// The sequence must end at offset 0. Re-tag rather than append when the
	// last grown window already reached the start.
	if n := len(out); n > 0 && out[n-1].StartIndex == 0 {
		out[n-1].Kind = KindFull
		out[n-1].Tail = 0
	} else {
		out = append(out, Candidate{Kind: KindFull, StartIndex: 0, Text: text})
	}
	return out
}

// buildTailPages emits windows that start one past the k-th page separator
// from the end, for each configured page step.
func buildTailPages(text string, opts Options) []Candidate {
	// Offsets of the last MaxTailPages separators, nearest-to-end first.
	var seps []int
	for i := len(text) - 1; i >= 0 && len(seps) < opts.MaxTailPages; i-- {
		if text[i] == PageSeparator {
			seps = append(seps, i)
		}
	}

	var out []Candidate
	seen := make(map[int]bool)
	for _, step := range opts.PageSteps {
		start := 0
		if step < len(seps) {
			start = seps[step-1] + 1
		}
		if seen[start] {
			continue
		}
		seen[start] = true
		out = append(out, Candidate{Kind: KindTailPages, Tail: step, StartIndex: start, Text: text[start:]})
		if start == 0 {
			break
		}
	}
	return out
}

// buildTailChars emits windows covering the last N characters for each
// configured character step.
func buildTailChars(text string, opts Options) []Candidate {
	var out []Candidate
	seen := make(map[int]bool)
	for _, step := range opts.CharSteps {
		if step > opts.MaxTailChars {
			break
		}
		start := len(text) - step
		if start < 0 {
			start = 0
		}
		if seen[start] {
			continue
		}
		seen[start] = true
		out = append(out, Candidate{Kind: KindTailChars, Tail: step, StartIndex: start, Text: text[start:]})
		if start == 0 {
			break
		}
	}
	return out
}
