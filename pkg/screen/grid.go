// Package screen implements the screen diff engine: two cell grids,
// actual and desired, and the logic that turns their difference into a
// minimal stream of cursor-motion and write bytes.
package screen

import "gitlab.com/tinyland/lab/shelline/pkg/color"

// Cell is a single (code point, highlight) pair occupying one grid
// position. A zero Cell (code point 0) is an unwritten/blank position.
type Cell struct {
	Char      rune
	Highlight color.Highlight
	Width     int // display width of Char, as supplied by the caller
}

// Line is an ordered sequence of cells plus a soft-wrap flag and the
// indentation level the line was started at.
type Line struct {
	Cells    []Cell
	SoftWrap bool
	Indent   int
}

// isZeroWidth reports whether c is a combining/zero-width cell, used by
// the diff engine to avoid splitting a shared prefix mid-cluster.
func (c Cell) isZeroWidth() bool { return c.Width == 0 && c.Char != 0 }

// Grid is an ordered sequence of lines plus a cursor position and the
// known width it was built against.
type Grid struct {
	Lines  []Line
	Cursor Position
	Width  int
}

// Position is a zero-based (column, row) pair.
type Position struct {
	X, Y int
}

// NewGrid returns an empty grid of the given terminal width.
func NewGrid(width int) *Grid {
	return &Grid{Width: width, Lines: []Line{{}}}
}

// Reset clears g back to a single empty line, keeping Width.
func (g *Grid) Reset() {
	g.Lines = []Line{{}}
	g.Cursor = Position{}
}

// curLine returns the index of the line currently being built (the
// last one).
func (g *Grid) curLine() int { return len(g.Lines) - 1 }

// Append is the desired-grid construction primitive the editor loop
// drives: append one character with its highlight, current indent
// level, the first line's prompt width (used to compute continuation
// indentation), and the character's display width.
//
//   - '\n' starts a new line; the line just finished has its soft-wrap
//     flag cleared, and the new line is indented by promptWidth +
//     indent*4 spaces (each pushed back through Append as plain cells).
//   - '\r' clears the current line and resets x to 0.
//   - otherwise, if the character would not fit in the remaining
//     width, the current line is marked soft-wrapped and a new line is
//     started first; the cell is appended; if that lands exactly on
//     the grid width, a new line is started and the just-completed one
//     is marked soft-wrapped.
func (g *Grid) Append(ch rune, hl color.Highlight, indent int, promptWidth int, width int) {
	switch ch {
	case '\n':
		g.Lines[g.curLine()].SoftWrap = false
		g.startLine(indent)
		pad := promptWidth + indent*4
		for i := 0; i < pad; i++ {
			g.appendCell(Cell{Char: ' ', Width: 1})
		}
		return
	case '\r':
		li := g.curLine()
		g.Lines[li].Cells = g.Lines[li].Cells[:0]
		g.Cursor.X = 0
		return
	}

	if g.Width > 0 && g.Cursor.X+width > g.Width {
		g.Lines[g.curLine()].SoftWrap = true
		g.startLine(indent)
	}
	g.appendCell(Cell{Char: ch, Highlight: hl, Width: width})
	if g.Width > 0 && g.Cursor.X == g.Width {
		g.Lines[g.curLine()].SoftWrap = true
		g.startLine(indent)
	}
}

func (g *Grid) appendCell(c Cell) {
	li := g.curLine()
	g.Lines[li].Cells = append(g.Lines[li].Cells, c)
	g.Cursor.X += c.Width
}

func (g *Grid) startLine(indent int) {
	g.Lines = append(g.Lines, Line{Indent: indent})
	g.Cursor.X = 0
	g.Cursor.Y++
}
