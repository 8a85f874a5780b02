package screen

import (
	"bytes"
	"errors"
	"io"
	"os"
	"syscall"

	"gitlab.com/tinyland/lab/shelline/pkg/color"
)

// Screen owns the actual and desired grids and an outputter that
// buffers bytes until Flush. The editor loop builds a new desired grid
// each frame via Grid.Append, then calls Update to reconcile it against
// the actual grid and emit the minimal byte diff.
type Screen struct {
	Actual  *Grid
	Caps    TermCaps
	Profile color.Profile
	Support color.Support
	Env     *color.Environment

	out bytes.Buffer

	needClear    bool
	stickyRight  bool
	stat         fileStat
	forceRepaint bool

	out2 io.Writer
}

type fileStat struct {
	stdoutMTime int64
	stderrMTime int64
	have        bool
}

// New constructs a Screen writing to w, with colors rendered through
// profile/support and highlight roles resolved through env.
func New(w io.Writer, width int, caps TermCaps, profile color.Profile, support color.Support, env *color.Environment) *Screen {
	return &Screen{
		Actual:  NewGrid(width),
		Caps:    caps,
		Profile: profile,
		Support: support,
		Env:     env,
		out2:    w,
	}
}

// NeedClear forces the next Update to emit clear-to-end-of-line on
// every line it writes, used after output that may have left stray
// bytes on the terminal (e.g. an externally run command).
func (s *Screen) NeedClear() { s.needClear = true }

// CheckExternalModification re-stats stdout/stderr; if either's mtime
// has moved since the last check, the actual grid's knowledge is
// discarded (keeping only the believed cursor row) and the next Update
// performs a full repaint from the current line. Returns true if stdout
// reports EIO, signaling the caller should exit (terminal closed).
func (s *Screen) CheckExternalModification() (shouldExit bool) {
	outInfo, outErr := os.Stdout.Stat()
	errInfo, errErr := os.Stderr.Stat()
	if errors.Is(outErr, syscall.EIO) {
		return true
	}

	var outM, errM int64
	if outErr == nil {
		outM = outInfo.ModTime().UnixNano()
	}
	if errErr == nil {
		errM = errInfo.ModTime().UnixNano()
	}

	if s.stat.have && (outM != s.stat.stdoutMTime || errM != s.stat.stderrMTime) {
		y := s.Actual.Cursor.Y
		s.Actual.Reset()
		s.Actual.Cursor.Y = y
		s.forceRepaint = true
	}
	s.stat = fileStat{stdoutMTime: outM, stderrMTime: errM, have: true}
	return false
}

// Update reconciles desired against the actual grid, writes the
// resulting bytes to the outputter's buffer (not yet to the
// destination writer; call Flush for that), and then makes actual ==
// desired. If Caps is a dumb terminal, falls back to the reduced
// CR+explicit-text rendering instead of diffing; the prompt is not
// written on that path.
func (s *Screen) Update(desired *Grid, explicitText string) {
	if s.Caps.Dumb() {
		s.renderDumb(explicitText)
		s.Actual = desired
		return
	}

	s.forceRepaint = false

	for i := 0; i < len(desired.Lines); i++ {
		var actualLine Line
		if i < len(s.Actual.Lines) {
			actualLine = s.Actual.Lines[i]
		}
		s.diffLine(desired, i, actualLine)
	}

	if len(s.Actual.Lines) > len(desired.Lines) {
		s.moveCursor(Position{X: 0, Y: len(desired.Lines) - 1})
		lastWidth := lineWidth(desired.Lines[len(desired.Lines)-1])
		landsLastColumn := desired.Width > 0 && lastWidth == desired.Width
		if !landsLastColumn {
			s.write(s.Caps.ClrEos)
		}
	}

	s.moveCursor(desired.Cursor)
	s.needClear = false
	s.Actual = desired
}

// diffLine reconciles one desired line against its actual counterpart.
func (s *Screen) diffLine(desired *Grid, i int, actualLine Line) {
	dline := desired.Lines[i]
	prefix := sharedPrefix(dline.Cells, actualLine.Cells)
	skip := cellsWidth(dline.Cells[:prefix])
	indentWidth := dline.Indent * 4
	if skip < indentWidth {
		skip = min(indentWidth, cellsWidth(dline.Cells))
	}

	// If the line above is soft-wrapped and this line's own first cell
	// is about to change, the terminal's wrap state for the boundary
	// between the two lines is load-bearing: cap this line's skip so
	// its first two columns are always re-emitted, keeping the
	// terminal's own soft-wrap coherent.
	if i > 0 && desired.Lines[i-1].SoftWrap && changesAt(dline.Cells, actualLine.Cells, 0) {
		capWidth := cellsWidth(capCells(dline.Cells, 2))
		if skip > 0 && skip < capWidth {
			skip = 0
		} else if skip >= capWidth {
			skip -= capWidth
			if skip < 0 {
				skip = 0
			}
		}
	}

	atSoftWrapTarget := i > 0 && desired.Lines[i-1].SoftWrap && skip == 0
	if !atSoftWrapTarget {
		s.moveCursor(Position{X: skip, Y: i})
	}

	var lastHL color.Highlight
	haveHL := false
	x := skip
	for _, c := range dline.Cells[prefixCellIndex(dline.Cells, skip):] {
		if !haveHL || c.Highlight != lastHL {
			s.emitHighlight(c.Highlight)
			lastHL = c.Highlight
			haveHL = true
		}
		s.writeRune(c.Char)
		x += c.Width
	}
	s.stickyRight = desired.Width > 0 && x == desired.Width

	actualWidth := cellsWidth(actualLine.Cells)
	desiredWidth := cellsWidth(dline.Cells)
	if desiredWidth < actualWidth || s.needClear {
		s.write(s.Caps.ClrEol)
	}
}

// prefixCellIndex returns the cell index whose cumulative width equals
// skip (cells are never split mid-cluster by construction here since
// sharedPrefix already stopped at a safe boundary).
func prefixCellIndex(cells []Cell, skip int) int {
	w := 0
	for i, c := range cells {
		if w >= skip {
			return i
		}
		w += c.Width
	}
	return len(cells)
}

// capCells returns the first n cells of cells (or all of them if
// shorter), used to measure the width of a fixed-size leading span.
func capCells(cells []Cell, n int) []Cell {
	if len(cells) < n {
		return cells
	}
	return cells[:n]
}

func changesAt(a, b []Cell, idx int) bool {
	if idx >= len(a) || idx >= len(b) {
		return len(a) != len(b)
	}
	return a[idx] != b[idx]
}

// sharedPrefix returns the number of leading cells that match exactly
// (character and highlight) between a and b, backed up so the boundary
// never falls inside a zero-width combining-character run.
func sharedPrefix(a, b []Cell) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	for n > 0 && n < len(a) && a[n].isZeroWidth() {
		n--
	}
	return n
}

func cellsWidth(cells []Cell) int {
	w := 0
	for _, c := range cells {
		w += c.Width
	}
	return w
}

func lineWidth(l Line) int { return cellsWidth(l.Cells) }

func (s *Screen) writeRune(r rune) {
	if r == 0 {
		r = ' '
	}
	s.out.WriteRune(r)
}

func (s *Screen) emitHighlight(h color.Highlight) {
	fg, bg := s.Env.ResolvePair(h)
	s.write(color.Render(s.Profile, fg, s.Support))
	if bg.Color != color.None {
		// Background rendering reuses the same Spec/Render path; the
		// foreground-only Render above already applied fg's attrs, so
		// only bg's color contributes here.
		bgOnly := color.Spec{Color: bg.Color}
		s.write(backgroundEscape(s.Profile, bgOnly, s.Support))
	}
}

// backgroundEscape mirrors color.Render but targets the background SGR
// slot; kept in this package since only the screen renderer needs
// background-only sequences.
func backgroundEscape(p color.Profile, spec color.Spec, support color.Support) string {
	fgSeq := color.Render(p, spec, support)
	if fgSeq == "" {
		return ""
	}
	// Shift SGR "38" (set foreground) to "48" (set background); both
	// lipgloss/termenv truecolor and 256-color sequences use this
	// convention, so a literal substitution is sufficient and avoids a
	// second render path through lipgloss.
	return shiftForegroundToBackground(fgSeq)
}

func shiftForegroundToBackground(seq string) string {
	out := []byte(seq)
	for i := 0; i+1 < len(out); i++ {
		if out[i] == '3' && out[i+1] == '8' && (i == 0 || out[i-1] == '[' || out[i-1] == ';') {
			out[i] = '4'
		}
	}
	return string(out)
}

func (s *Screen) write(seq string) {
	if seq == "" {
		return
	}
	s.out.WriteString(seq)
}

// moveCursor emits the shortest sequence that moves from the believed
// actual cursor to target, preferring CR when the target column is 0,
// then cursor_up/down, then cursor_left/right (parameterized form when
// shorter than repeating the singular one). A sticky-right cursor is
// resynchronized with CR/LF first.
func (s *Screen) moveCursor(target Position) {
	cur := s.Actual.Cursor
	if s.stickyRight {
		s.write("\r")
		cur.X = 0
		s.stickyRight = false
	}

	dy := target.Y - cur.Y
	switch {
	case dy > 0:
		for i := 0; i < dy; i++ {
			s.write(s.Caps.CursorDown)
		}
	case dy < 0:
		for i := 0; i < -dy; i++ {
			s.write(s.Caps.CursorUp)
		}
	}

	if target.X == 0 {
		s.write("\r")
	} else {
		dx := target.X - cur.X
		switch {
		case dx > 0:
			s.writeHorizontal(s.Caps.ParmRightCursor, s.Caps.CursorRight, dx)
		case dx < 0:
			s.writeHorizontal(s.Caps.ParmLeftCursor, s.Caps.CursorLeft, -dx)
		}
	}
	s.Actual.Cursor = target
}

func (s *Screen) writeHorizontal(parm func(int) string, single string, n int) {
	if parm != nil {
		parametrized := parm(n)
		repeated := n * len(single)
		if len(parametrized) < repeated {
			s.write(parametrized)
			return
		}
	}
	for i := 0; i < n; i++ {
		s.write(single)
	}
}

// renderDumb implements the dumb-terminal fallback: CR, then the
// explicit text with no prompt/right-prompt/autosuggestion and no
// diffing.
func (s *Screen) renderDumb(explicitText string) {
	s.write("\r")
	s.write(explicitText)
}

// Flush writes the buffered bytes to the underlying writer and clears
// the buffer. I/O errors here are non-fatal per the error taxonomy:
// the current repaint is simply truncated and the next frame retries.
func (s *Screen) Flush() error {
	if s.out.Len() == 0 {
		return nil
	}
	_, err := s.out2.Write(s.out.Bytes())
	s.out.Reset()
	return err
}
