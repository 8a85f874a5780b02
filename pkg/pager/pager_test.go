package pager

import "testing"

func TestBuildEntriesMergesSharedDescriptions(t *testing.T) {
	entries := BuildEntries([]Completion{
		{Text: "foo.go", Description: "Go source"},
		{Text: "bar.go", Description: "Go source"},
		{Text: "README.md", Description: "docs"},
	}, nil)
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	var merged Entry
	for _, e := range entries {
		if e.Description == "Go source" {
			merged = e
		}
	}
	if len(merged.Completions) != 2 {
		t.Fatalf("merged completions = %v, want 2 entries", merged.Completions)
	}
}

func TestBuildEntriesKeepsNoDescriptionSeparate(t *testing.T) {
	entries := BuildEntries([]Completion{
		{Text: "a"},
		{Text: "b"},
	}, nil)
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2 (no merging without description)", len(entries))
	}
}

func TestFilterFuzzyMatchesDescription(t *testing.T) {
	entries := BuildEntries([]Completion{
		{Text: "foo", Description: "configuration file"},
		{Text: "bar", Description: "binary"},
	}, nil)
	got := Filter(entries, "", "cfgfile")
	if len(got) != 1 || got[0].Description != "configuration file" {
		t.Fatalf("Filter = %+v, want only 'configuration file'", got)
	}
}

func TestFilterEmptyQueryKeepsAll(t *testing.T) {
	entries := BuildEntries([]Completion{{Text: "a"}, {Text: "b"}}, nil)
	if got := Filter(entries, "", ""); len(got) != 2 {
		t.Fatalf("Filter(\"\") = %d entries, want 2", len(got))
	}
}

func TestLayoutGridSingleColumnAlwaysFits(t *testing.T) {
	entries := make([]Entry, 20)
	for i := range entries {
		entries[i] = Entry{PreferredWidth: 100}
	}
	g := LayoutGrid(entries, 10)
	if g.Columns != 1 {
		t.Fatalf("Columns = %d, want 1 when nothing else fits", g.Columns)
	}
	if g.Rows != 20 {
		t.Fatalf("Rows = %d, want 20", g.Rows)
	}
}

func TestLayoutGridPrefersMoreColumnsWhenTheyFit(t *testing.T) {
	entries := make([]Entry, 6)
	for i := range entries {
		entries[i] = Entry{PreferredWidth: 5}
	}
	g := LayoutGrid(entries, 80)
	if g.Columns != 6 {
		t.Fatalf("Columns = %d, want 6 (all fit wide)", g.Columns)
	}
}

func TestStateNavigationEastWrapsToNextRow(t *testing.T) {
	entries := make([]Entry, 6)
	grid := Grid{Columns: 2, Rows: 3, ColumnWidths: []int{5, 5}}
	s := NewState(entries, grid, 3)
	s.Move(North) // selects 0
	for i := 0; i < 3; i++ {
		s.Move(East)
	}
	if s.Selected() < 0 {
		t.Fatalf("selection should not be deselected by East moves")
	}
}

func TestStateNextPrevWraps(t *testing.T) {
	entries := make([]Entry, 3)
	s := NewState(entries, Grid{Columns: 1, Rows: 3}, 3)
	s.Move(Next)
	s.Move(Next)
	s.Move(Next)
	if s.Selected() != 0 {
		t.Fatalf("Selected = %d, want wrap back to 0 after 3 Next on 3 items", s.Selected())
	}
}

func TestStateDeselect(t *testing.T) {
	entries := make([]Entry, 3)
	s := NewState(entries, Grid{Columns: 1, Rows: 3}, 3)
	s.Move(Next)
	s.Move(Deselect)
	if s.Selected() != -1 {
		t.Fatalf("Selected = %d, want -1 after Deselect", s.Selected())
	}
}

func TestStateNavigationRaggedLastColumn(t *testing.T) {
	// 19 items, 4 rows x 5 columns (column-major; the last column is
	// ragged with only 3 rows). next, west, east, next, next must select
	// 0, 15, 0, 1, 2.
	entries := make([]Entry, 19)
	grid := Grid{Columns: 5, Rows: 4}
	s := NewState(entries, grid, 4)

	want := []int{0, 15, 0, 1, 2}
	moves := []Direction{Next, West, East, Next, Next}
	for i, d := range moves {
		s.Move(d)
		if got := s.Selected(); got != want[i] {
			t.Fatalf("after move %d: Selected = %d, want %d", i, got, want[i])
		}
	}
}

func TestTrailerReportsHiddenRows(t *testing.T) {
	entries := make([]Entry, 10)
	s := NewState(entries, Grid{Columns: 1, Rows: 10}, 4)
	if tr := Trailer(s); tr == "" {
		t.Fatalf("Trailer should report hidden rows when only 4 of 10 are visible")
	}
}
