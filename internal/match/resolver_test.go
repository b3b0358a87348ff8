package match

import (
	"reflect"
	"testing"

	"github.com/matsen/citejump/internal/bib"
)

// paperIndex files the given records under the Guo 2011 key, mirroring a
// reference list that cites both twin papers.
func paperIndex(recs ...bib.ReferenceRecord) *bib.AuthorYearIndex {
	idx := bib.NewAuthorYearIndex()
	for _, rec := range recs {
		idx.Add(rec.FirstAuthor, rec.Year, rec)
	}
	return idx
}

func TestResolveNothingToSearch(t *testing.T) {
	r := &Resolver{Entries: paperEntries()}
	for _, raw := range []string{"", "???", "see text"} {
		if got := r.Resolve(raw); len(got) != 0 {
			t.Errorf("Resolve(%q) = %v, want no results", raw, got)
		}
	}
}

func TestResolvePreciseViaIndex(t *testing.T) {
	idx := paperIndex(bib.ReferenceRecord{
		JournalAbbrev: "Phys. Lett. B", Volume: "701", PageStart: "22",
		FirstAuthor: "Guo", Year: "2011",
	})
	r := &Resolver{Entries: paperEntries(), Index: idx}

	got := r.Resolve("Guo (2011)")
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
	m := got[0]
	if m.EntryIndex != 1 || m.Method != MethodExact || m.Confidence != ConfidenceHigh {
		t.Errorf("got entry %d %s/%s, want entry 1 exact/high", m.EntryIndex, m.Method, m.Confidence)
	}
	if m.Score != 9 {
		t.Errorf("Score = %.1f, want 9", m.Score)
	}
}

func TestResolveAmbiguousTie(t *testing.T) {
	// Two records under the same key, neither carrying author detail: the
	// resolver cannot prefer one and must say so.
	idx := paperIndex(
		bib.ReferenceRecord{
			JournalAbbrev: "Phys. Lett. B", Volume: "700", PageStart: "9",
			FirstAuthor: "Guo", Year: "2011",
		},
		bib.ReferenceRecord{
			JournalAbbrev: "Phys. Lett. B", Volume: "701", PageStart: "22",
			FirstAuthor: "Guo", Year: "2011",
		},
	)
	r := &Resolver{Entries: paperEntries(), Index: idx}

	got := r.Resolve("Guo (2011)")
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
	m := got[0]
	if !m.Ambiguous {
		t.Fatal("result not flagged ambiguous")
	}
	if m.Confidence != ConfidenceMedium {
		t.Errorf("Confidence = %s, want medium", m.Confidence)
	}
	if m.EntryIndex != 0 {
		t.Errorf("primary EntryIndex = %d, want 0", m.EntryIndex)
	}
	if len(m.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(m.Candidates))
	}
	if m.Candidates[0].EntryID != "Guo:2011pm" || m.Candidates[1].EntryID != "Guo:2011xy" {
		t.Errorf("candidate ids = %s, %s", m.Candidates[0].EntryID, m.Candidates[1].EntryID)
	}
	if m.Candidates[0].Summary == "" || m.Candidates[0].SecondAuthor != "Ono" {
		t.Errorf("candidate summary = %q / second author %q",
			m.Candidates[0].Summary, m.Candidates[0].SecondAuthor)
	}
}

func TestResolveInitialsRerank(t *testing.T) {
	entries := []bib.Entry{
		{
			Index: 0, ID: "GuoX:2011",
			AuthorLastNames: []string{"Guo"}, AuthorCount: 1,
			AuthorText: "X. Guo", Year: "2011",
			Publication: &bib.Publication{JournalTitle: "J. Phys. G", JournalVolume: "100", PageStart: "1"},
		},
		{
			Index: 1, ID: "GuoY:2011",
			AuthorLastNames: []string{"Guo"}, AuthorCount: 1,
			AuthorText: "Y. Guo", Year: "2011",
			Publication: &bib.Publication{JournalTitle: "J. Phys. G", JournalVolume: "100", PageStart: "2"},
		},
	}
	idx := paperIndex(
		bib.ReferenceRecord{JournalAbbrev: "J. Phys. G", Volume: "100", PageStart: "1", FirstAuthor: "Guo", Year: "2011"},
		bib.ReferenceRecord{JournalAbbrev: "J. Phys. G", Volume: "100", PageStart: "2", FirstAuthor: "Guo", Year: "2011"},
	)
	r := &Resolver{Entries: entries, Index: idx}

	tests := []struct {
		label string
		want  int
	}{
		{"X. Guo (2011)", 0},
		{"Y. Guo (2011)", 1},
	}
	for _, tt := range tests {
		got := r.Resolve(tt.label)
		if len(got) != 1 {
			t.Fatalf("Resolve(%q) returned %d results, want 1", tt.label, len(got))
		}
		if got[0].EntryIndex != tt.want {
			t.Errorf("Resolve(%q) = entry %d, want %d", tt.label, got[0].EntryIndex, tt.want)
		}
	}
}

func TestResolveSuffixFallsBackToBaseKey(t *testing.T) {
	// The label says "2011b" but the reference list filed the paper under a
	// plain "2011"; the base-year key still finds it.
	idx := paperIndex(bib.ReferenceRecord{
		JournalAbbrev: "Phys. Lett. B", Volume: "701", PageStart: "22",
		FirstAuthor: "Guo", Year: "2011",
	})
	r := &Resolver{Entries: paperEntries(), Index: idx}

	got := r.Resolve("Guo (2011b)")
	if len(got) != 1 || got[0].EntryIndex != 1 || got[0].Method != MethodExact {
		t.Fatalf("got %v, want a precise match on entry 1", got)
	}
}

func TestResolveFuzzyFallback(t *testing.T) {
	r := &Resolver{Entries: paperEntries()}

	got := r.Resolve("Smith et al. (2015)")
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
	m := got[0]
	if m.EntryIndex != 2 || m.Method != MethodFuzzy {
		t.Errorf("got entry %d via %s, want entry 2 via fuzzy", m.EntryIndex, m.Method)
	}
	if m.Score != 6.5 || m.Confidence != ConfidenceMedium {
		t.Errorf("got score %.1f at %s, want 6.5 at medium", m.Score, m.Confidence)
	}
}

func TestResolveFuzzyYearFilter(t *testing.T) {
	entries := []bib.Entry{
		{
			Index: 0, ID: "Guo:1999",
			AuthorLastNames: []string{"Guo", "Ono"}, AuthorCount: 2,
			AuthorText: "X. Guo, T. Ono", Year: "1999",
		},
		{
			Index: 1, ID: "Guo:2011",
			AuthorLastNames: []string{"Guo", "Ono"}, AuthorCount: 2,
			AuthorText: "X. Guo, T. Ono", Year: "2011",
		},
	}
	r := &Resolver{Entries: entries}

	// Both entries clear the floor on author signal alone; only the
	// year-matching one survives.
	got := r.Resolve("Guo and Ono (2011)")
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
	if got[0].EntryIndex != 1 || got[0].Confidence != ConfidenceHigh {
		t.Errorf("got entry %d at %s, want entry 1 at high", got[0].EntryIndex, got[0].Confidence)
	}
}

func TestResolveSuffixWithoutHintSingleResult(t *testing.T) {
	entries := []bib.Entry{
		{
			Index: 0, ID: "Lee:2019a",
			AuthorLastNames: []string{"Lee"}, AuthorCount: 1, Year: "2019",
		},
		{
			Index: 1, ID: "Lee:2019b",
			AuthorLastNames: []string{"Lee"}, AuthorCount: 1, Year: "2019",
		},
	}
	r := &Resolver{Entries: entries}

	// Weak signals cannot tell suffix siblings apart; without a hint only the
	// single best candidate comes back.
	got := r.Resolve("Lee (2019a)")
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
	if got[0].EntryIndex != 0 {
		t.Errorf("EntryIndex = %d, want 0", got[0].EntryIndex)
	}
}

func TestResolveFuzzyCapsResults(t *testing.T) {
	var entries []bib.Entry
	for i := 0; i < 5; i++ {
		entries = append(entries, bib.Entry{
			Index: i, ID: "Guo:clone",
			AuthorLastNames: []string{"Guo"}, AuthorCount: 1, Year: "2011",
		})
	}
	r := &Resolver{Entries: entries}

	got := r.Resolve("Guo (2011)")
	if len(got) != MaxResults {
		t.Fatalf("got %d results, want %d", len(got), MaxResults)
	}
	for i, m := range got {
		if m.EntryIndex != i {
			t.Errorf("result %d = entry %d, want entry-order tie-break", i, m.EntryIndex)
		}
	}
}

func TestResolveDeterministic(t *testing.T) {
	r := &Resolver{Entries: paperEntries()}

	first := r.Resolve("Guo (2011)")
	for i := 0; i < 10; i++ {
		if got := r.Resolve("Guo (2011)"); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
	if len(first) != 2 || first[0].EntryIndex != 0 || first[1].EntryIndex != 1 {
		t.Errorf("results = %v, want entries 0 and 1 in index order", first)
	}
}
