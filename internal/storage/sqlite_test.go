package storage

import (
	"reflect"
	"testing"
)

func openLoaded(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Load(testEntries()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return db
}

func TestDBCount(t *testing.T) {
	db := openLoaded(t)
	n, err := db.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestDBGetByID(t *testing.T) {
	db := openLoaded(t)

	got, err := db.GetByID("Guo:2011pm")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID returned nil for a loaded entry")
	}
	want := testEntries()[0]
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("entry mismatch:\ngot  %+v\nwant %+v", *got, want)
	}

	missing, err := db.GetByID("nope")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if missing != nil {
		t.Errorf("got %+v, want nil for an unknown id", missing)
	}
}

func TestDBSearch(t *testing.T) {
	db := openLoaded(t)

	tests := []struct {
		name    string
		author  string
		year    string
		wantIDs []string
	}{
		{"all", "", "", []string{"Guo:2011pm", "Smith:2015ab"}},
		{"by author", "Guo", "", []string{"Guo:2011pm"}},
		{"by year", "", "2015", []string{"Smith:2015ab"}},
		{"author and year", "Smith", "2015", []string{"Smith:2015ab"}},
		{"no hits", "Guo", "2015", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.Search(tt.author, tt.year)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			var ids []string
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("Search(%q, %q) = %v, want %v", tt.author, tt.year, ids, tt.wantIDs)
			}
		})
	}
}

func TestDBLoadReplaces(t *testing.T) {
	db := openLoaded(t)

	if err := db.Load(testEntries()[:1]); err != nil {
		t.Fatalf("Load: %v", err)
	}
	n, err := db.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count after reload = %d, want 1", n)
	}
}
