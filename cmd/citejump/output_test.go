package main

import (
	"strings"
	"testing"

	"github.com/matsen/citejump/internal/bib"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten chars!", 18, "exactly ten chars!"},
		{"this is a longer string", 10, "this is..."},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestFormatEntryLine(t *testing.T) {
	e := bib.Entry{
		Index: 3, ID: "Guo:2011pm",
		AuthorLastNames: []string{"Guo", "Ono"}, AuthorCount: 5,
		Title: "Charm mixing at next-to-leading order",
		Year:  "2011",
		Publication: &bib.Publication{
			JournalTitle: "Phys. Lett. B", JournalVolume: "700", PageStart: "9",
		},
	}

	got := formatEntryLine(e)
	for _, want := range []string{"[3] Guo:2011pm", "Guo, Ono et al.", "(2011)", "Phys. Lett. B 700, 9"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatEntryLine missing %q in:\n%s", want, got)
		}
	}
}

func TestFormatEntryLineMinimal(t *testing.T) {
	got := formatEntryLine(bib.Entry{Index: 0, ID: "x"})
	if got != "[0] x" {
		t.Errorf("formatEntryLine = %q, want %q", got, "[0] x")
	}
}
