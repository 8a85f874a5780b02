package pager

// Direction is a pager navigation command.
type Direction int

const (
	North Direction = iota
	South
	East
	West
	PageNorth
	PageSouth
	Next
	Prev
	Deselect
)

// State holds the pager's live selection, scroll, search, and
// disclosure state for one completion invocation. A fresh State is
// reconstructed for every completion invocation per the data model's
// lifecycle rule.
type State struct {
	Entries []Entry
	Grid    Grid

	selected     int // -1 means no selection
	startRow     int
	disclosed    bool
	visibleRows  int
	searchActive bool
	searchField  string
}

// NewState builds pager state from entries already laid out into grid,
// bounding the visible row count to visibleRows (the top half of the
// terminal height, per §4.5, computed by the caller).
func NewState(entries []Entry, grid Grid, visibleRows int) *State {
	return &State{Entries: entries, Grid: grid, selected: -1, visibleRows: visibleRows}
}

// Selected returns the index of the currently selected completion, or
// -1 if none is selected.
func (s *State) Selected() int { return s.selected }

// SelectedCompletion returns the currently selected entry (a merged
// multi-completion entry is returned whole), or ok=false if nothing is
// selected.
func (s *State) SelectedCompletion() (entry Entry, ok bool) {
	if s.selected < 0 || s.selected >= len(s.Entries) {
		return Entry{}, false
	}
	return s.Entries[s.selected], true
}

func (s *State) count() int { return len(s.Entries) }

// Move applies a navigation command, maintaining column memory and the
// disclosure/scroll invariants described in §4.5.
func (s *State) Move(d Direction) {
	n := s.count()
	if n == 0 {
		return
	}
	rows, cols := s.Grid.Rows, s.Grid.Columns
	if rows == 0 {
		rows = 1
	}

	switch d {
	case Deselect:
		s.selected = -1
		return
	case Next:
		s.selected = wrap(s.selected+1, n)
	case Prev:
		s.selected = wrap(s.selected-1, n)
	case North, South, East, West, PageNorth, PageSouth:
		if s.selected < 0 {
			s.selected = 0
		} else {
			s.selected = s.moveCardinal(d, rows, cols)
		}
	}
	s.afterMove()
}

func wrap(i, n int) int {
	if n == 0 {
		return -1
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// moveCardinal computes the destination index for one cardinal move.
// Completions are stored column-major (index = column*rows + row), so
// within a column, adjacent rows are adjacent flat indices: North/South
// are exactly Prev/Next (±1, wrapped mod the entry count). Moving a
// whole column over is ±rows in the same flat space. East past the last
// occupied column wraps to the next row's first column, and west before
// the first column wraps to the previous row's last occupied column, so
// a ragged last column (fewer rows than the rest) is handled too.
func (s *State) moveCardinal(d Direction, rows, cols int) int {
	n := s.count()
	step := 0
	switch d {
	case East:
		if s.selected+rows >= n {
			return (s.selected%rows + 1) % rows
		}
		step = rows
	case West:
		if s.selected-rows < 0 {
			row := (s.selected%rows + rows - 1) % rows
			return row + rows*((n-1-row)/rows)
		}
		step = -rows
	case South:
		step = 1
	case North:
		step = -1
	case PageSouth:
		step = s.visibleRowsOrDefault()
	case PageNorth:
		step = -s.visibleRowsOrDefault()
	}
	return wrap(s.selected+step, n)
}

func (s *State) visibleRowsOrDefault() int {
	if s.visibleRows > 0 {
		return s.visibleRows
	}
	return 1
}

// afterMove applies column memory (re-clamping an out-of-range
// selection back by whole columns), disclosure, and scroll bookkeeping.
func (s *State) afterMove() {
	rows := s.Grid.Rows
	if rows == 0 {
		rows = 1
	}
	n := s.count()
	for s.selected >= n && s.selected-rows >= 0 {
		s.selected -= rows
	}
	if s.selected >= n {
		s.selected = n - 1
	}
	if s.selected < 0 {
		return
	}

	row := s.selected % rows
	if s.visibleRows <= 0 {
		return
	}
	if row >= s.startRow && row < s.startRow+s.visibleRows {
		return
	}
	if !s.disclosed {
		s.disclosed = true
		if row < s.startRow+s.visibleRows {
			return
		}
	}
	if row >= s.startRow+s.visibleRows {
		s.startRow = row - s.visibleRows + 1
	} else if row < s.startRow {
		s.startRow = row
	}
}

// Reflow re-applies column memory after the grid is recomputed (e.g.
// on a terminal resize): an out-of-range selection is walked back by
// whole columns until it lands in range again.
func (s *State) Reflow(grid Grid) {
	s.Grid = grid
	s.afterMove()
}

// VisibleRange returns the [start, end) row range currently shown.
func (s *State) VisibleRange() (start, end int) {
	if s.visibleRows <= 0 {
		return 0, s.Grid.Rows
	}
	end = s.startRow + s.visibleRows
	if end > s.Grid.Rows {
		end = s.Grid.Rows
	}
	return s.startRow, end
}

// RemainingRows reports how many rows beyond the visible window remain
// hidden, for the "...and K more rows" trailer. Returns 0 once fully
// disclosed and scrolled to the end.
func (s *State) RemainingRows() int {
	_, end := s.VisibleRange()
	if r := s.Grid.Rows - end; r > 0 {
		return r
	}
	return 0
}

// ToggleSearch flips search-field visibility.
func (s *State) ToggleSearch() { s.searchActive = !s.searchActive }

// SearchActive reports whether the search field is visible.
func (s *State) SearchActive() bool { return s.searchActive }

// SetSearchField updates the live search query text.
func (s *State) SetSearchField(q string) { s.searchField = q }

// SearchField returns the live search query text.
func (s *State) SearchField() string { return s.searchField }
