package textsample

import (
	"fmt"
	"strings"
	"testing"
)

// pagedText builds n pages of distinct text joined by the page separator.
func pagedText(n int) string {
	pages := make([]string, n)
	for i := range pages {
		pages[i] = fmt.Sprintf("page%d body text\n", i)
	}
	return strings.Join(pages, string(PageSeparator))
}

func TestBuildTailPages(t *testing.T) {
	text := pagedText(10)
	out := Build(text, Options{})

	if len(out) != 3 {
		t.Fatalf("Build returned %d candidates, want 3", len(out))
	}

	wantKinds := []Kind{KindTailPages, KindTailPages, KindFull}
	wantTails := []int{4, 8, 0}
	for i, c := range out {
		if c.Kind != wantKinds[i] || c.Tail != wantTails[i] {
			t.Errorf("candidate %d = %s/%d, want %s/%d", i, c.Kind, c.Tail, wantKinds[i], wantTails[i])
		}
		if c.Text != text[c.StartIndex:] {
			t.Errorf("candidate %d text does not match text[%d:]", i, c.StartIndex)
		}
	}

	// The 4-page window covers exactly the last four pages.
	if !strings.Contains(out[0].Text, "page6") || strings.Contains(out[0].Text, "page5") {
		t.Errorf("4-page window covers wrong pages: starts %q", out[0].Text[:12])
	}
	if !strings.Contains(out[1].Text, "page2") || strings.Contains(out[1].Text, "page1 ") {
		t.Errorf("8-page window covers wrong pages: starts %q", out[1].Text[:12])
	}
}

func TestBuildTailChars(t *testing.T) {
	text := strings.Repeat("a", 50000)
	out := Build(text, Options{})

	if len(out) != 3 {
		t.Fatalf("Build returned %d candidates, want 3", len(out))
	}
	wantStarts := []int{34000, 10000, 0}
	wantKinds := []Kind{KindTailChars, KindTailChars, KindFull}
	for i, c := range out {
		if c.StartIndex != wantStarts[i] || c.Kind != wantKinds[i] {
			t.Errorf("candidate %d = %s start %d, want %s start %d",
				i, c.Kind, c.StartIndex, wantKinds[i], wantStarts[i])
		}
	}
}

func TestBuildEndsAtStart(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts Options
	}{
		{"empty", "", Options{}},
		{"short text", "short text", Options{}},
		{"few pages", pagedText(5), Options{}},
		{"many pages", pagedText(40), Options{}},
		{"custom page steps", pagedText(5), Options{PageSteps: []int{1, 2}}},
		{"custom char steps", strings.Repeat("x", 9000), Options{CharSteps: []int{100, 2000}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Build(tt.text, tt.opts)
			if len(out) == 0 {
				t.Fatal("Build returned no candidates")
			}

			last := out[len(out)-1]
			if last.Kind != KindFull || last.StartIndex != 0 || last.Text != tt.text {
				t.Errorf("final candidate = %s start %d, want full text at 0", last.Kind, last.StartIndex)
			}

			seen := make(map[int]bool)
			prev := len(tt.text) + 1
			for i, c := range out {
				if seen[c.StartIndex] {
					t.Errorf("candidate %d repeats StartIndex %d", i, c.StartIndex)
				}
				seen[c.StartIndex] = true
				if c.StartIndex >= prev {
					t.Errorf("candidate %d does not grow: start %d after %d", i, c.StartIndex, prev)
				}
				prev = c.StartIndex
			}
		})
	}
}

func TestBuildCustomPageSteps(t *testing.T) {
	text := pagedText(5)
	out := Build(text, Options{PageSteps: []int{1, 2}})

	if len(out) != 3 {
		t.Fatalf("Build returned %d candidates, want 3", len(out))
	}
	if out[0].Tail != 1 || out[1].Tail != 2 {
		t.Errorf("tails = %d, %d, want 1, 2", out[0].Tail, out[1].Tail)
	}
	if !strings.Contains(out[0].Text, "page4") || strings.Contains(out[0].Text, "page3") {
		t.Errorf("1-page window covers wrong pages")
	}
}
