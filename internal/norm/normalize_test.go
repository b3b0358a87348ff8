package norm

import "testing"

func TestNormalizeArxivID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"empty", "", ""},
		{"bare new style", "1604.01234", "160401234"},
		{"prefix and version", "arXiv:1604.01234v2", "160401234"},
		{"prefix with space", "arXiv: 1604.01234", "160401234"},
		{"old style", "hep-ph/9905221", "hepph9905221"},
		{"old style with version", "arXiv:hep-ph/9905221v3", "hepph9905221"},
		{"case folded", "ArXiv:HEP-PH/9905221", "hepph9905221"},
		{"whitespace", "  1103.1234  ", "11031234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeArxivID(tt.id); got != tt.want {
				t.Errorf("NormalizeArxivID(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		name string
		doi  string
		want string
	}{
		{"empty", "", ""},
		{"bare", "10.1007/JHEP05(2015)013", "10.1007/jhep05(2015)013"},
		{"doi prefix", "doi:10.1016/j.physletb.2011.04.045", "10.1016/j.physletb.2011.04.045"},
		{"https resolver", "https://doi.org/10.1103/PhysRevD.84.034032", "10.1103/physrevd.84.034032"},
		{"dx resolver", "http://dx.doi.org/10.1103/PhysRevD.84.034032", "10.1103/physrevd.84.034032"},
		{"bare resolver host", "doi.org/10.1000/xyz", "10.1000/xyz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDOI(tt.doi); got != tt.want {
				t.Errorf("NormalizeDOI(%q) = %q, want %q", tt.doi, got, tt.want)
			}
		})
	}
}

func TestJournalMatches(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", "Phys. Lett. B", "Phys. Lett. B", true},
		{"punctuation folded", "Phys. Lett. B", "Phys Lett B", true},
		{"case folded", "PHYS.LETT.B", "Phys. Lett. B", true},
		{"different", "Phys. Lett. B", "Phys. Rev. D", false},
		{"empty never matches", "", "", false},
		{"one empty", "Phys. Lett. B", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JournalMatches(tt.a, tt.b); got != tt.want {
				t.Errorf("JournalMatches(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLastName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"last first", "Guo, Xin", "Guo"},
		{"first last", "Xin Guo", "Guo"},
		{"bare surname", "Guo", "Guo"},
		{"middle names", "John Ronald Reuel Tolkien", "Tolkien"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LastName(tt.in); got != tt.want {
				t.Errorf("LastName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitYear(t *testing.T) {
	tests := []struct {
		name       string
		year       string
		wantBase   string
		wantSuffix string
	}{
		{"plain", "2011", "2011", ""},
		{"suffixed", "2011a", "2011", "a"},
		{"whitespace", " 2011b ", "2011", "b"},
		{"non numeric", "in press", "", ""},
		{"too short", "211", "", ""},
		{"trailing junk", "2011ab", "", ""},
		{"empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, suffix := SplitYear(tt.year)
			if base != tt.wantBase || suffix != tt.wantSuffix {
				t.Errorf("SplitYear(%q) = (%q, %q), want (%q, %q)",
					tt.year, base, suffix, tt.wantBase, tt.wantSuffix)
			}
		})
	}
}

func TestFoldDiacritics(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Muller", "Muller"},
		{"Müller", "Muller"},
		{"Straße", "Strasse"},
		{"Gonzälez-Ñuñez", "Gonzalez-Nunez"},
		{"Łukasz", "Lukasz"},
		{"Cœur", "Coeur"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FoldDiacritics(tt.in); got != tt.want {
			t.Errorf("FoldDiacritics(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEqualFoldName(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Müller", "muller", true},
		{"Straße", "STRASSE", true},
		{"Guo", "Guo", true},
		{"Guo", "Ono", false},
	}
	for _, tt := range tests {
		if got := EqualFoldName(tt.a, tt.b); got != tt.want {
			t.Errorf("EqualFoldName(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestContainsFoldName(t *testing.T) {
	tests := []struct {
		hay, needle string
		want        bool
	}{
		{"Castro Neto", "Castro", true},
		{"Müller-Hill", "muller", true},
		{"Guo", "", false},
		{"Guo", "Ono", false},
	}
	for _, tt := range tests {
		if got := ContainsFoldName(tt.hay, tt.needle); got != tt.want {
			t.Errorf("ContainsFoldName(%q, %q) = %v, want %v", tt.hay, tt.needle, got, tt.want)
		}
	}
}
