// Package line implements the editable command line: text, cursor,
// selection, and the motion/edit operations the editor loop drives.
package line

import (
	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"

	"gitlab.com/tinyland/lab/shelline/pkg/color"
)

// Direction is a motion direction.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// WordStyle selects which word-boundary state machine move_word uses.
type WordStyle int

const (
	StylePunctuation WordStyle = iota
	StyleWhitespaceOnly
	StylePathComponents
)

// Precision selects jump's stopping rule.
type Precision int

const (
	JumpTo Precision = iota
	JumpTill
)

// Line is the editable line: an ordered sequence of code points, a
// cursor offset, an active-or-not selection span, and a parallel
// highlight-spec slice (kept equal in length to Runes at every
// observable moment, per the highlight invariant).
type Line struct {
	Runes      []rune
	Cursor     int
	Highlights []color.Highlight

	selectionActive bool
	anchor          int
	selStart        int
	selStop         int

	killRing []string
}

// New builds an empty Line.
func New() *Line { return &Line{} }

// NewFromText builds a Line pre-populated with text, cursor at the end.
func NewFromText(text string) *Line {
	l := &Line{}
	l.InsertString(text, 0, len(text))
	return l
}

// Text returns the line's contents as a string.
func (l *Line) Text() string { return string(l.Runes) }

// Len returns the number of code points in the line.
func (l *Line) Len() int { return len(l.Runes) }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// InsertString inserts the substring of text starting at rune offset
// start of length runes (clamped to text's valid range) at the
// current cursor, advancing the cursor past it. Highlight slots for
// the new runes are zero-valued (normal role) until the next
// highlight pass fills them in.
func (l *Line) InsertString(text string, start, length int) {
	runes := []rune(text)
	start = clamp(start, 0, len(runes))
	end := clamp(start+length, start, len(runes))
	ins := runes[start:end]
	if len(ins) == 0 {
		return
	}
	l.insertAt(l.Cursor, ins)
}

func (l *Line) insertAt(pos int, runes []rune) {
	pos = clamp(pos, 0, len(l.Runes))
	l.Runes = append(l.Runes[:pos:pos], append(append([]rune{}, runes...), l.Runes[pos:]...)...)
	blanks := make([]color.Highlight, len(runes))
	l.Highlights = append(l.Highlights[:pos:pos], append(blanks, l.Highlights[pos:]...)...)
	l.Cursor = pos + len(runes)
	l.clampSelection()
}

// abbrevTriggers is the set of characters whose insertion triggers
// abbreviation expansion (§4.7).
var abbrevTriggers = map[rune]bool{
	' ': true, ';': true, '|': true, '&': true, '^': true, '>': true, '<': true,
}

// InsertChar inserts one code point at the cursor and reports whether
// it is an abbreviation-expansion trigger character, so the editor
// loop knows to invoke expansion.
func (l *Line) InsertChar(c rune) (triggersAbbrev bool) {
	l.insertAt(l.Cursor, []rune{c})
	return abbrevTriggers[c]
}

// RemoveBackward removes one code point before the cursor, and
// continues removing while the just-removed character has display
// width 0 (so a base character is always removed together with its
// combining marks).
func (l *Line) RemoveBackward() {
	for l.Cursor > 0 {
		r := l.Runes[l.Cursor-1]
		l.removeRange(l.Cursor-1, l.Cursor)
		if runewidth.RuneWidth(r) != 0 {
			break
		}
	}
}

func (l *Line) removeRange(start, stop int) {
	start = clamp(start, 0, len(l.Runes))
	stop = clamp(stop, start, len(l.Runes))
	if start == stop {
		return
	}
	l.Runes = append(l.Runes[:start], l.Runes[stop:]...)
	l.Highlights = append(l.Highlights[:start], l.Highlights[stop:]...)
	if l.Cursor > stop {
		l.Cursor -= stop - start
	} else if l.Cursor > start {
		l.Cursor = start
	}
	l.clampSelection()
}

func (l *Line) clampSelection() {
	l.Cursor = clamp(l.Cursor, 0, len(l.Runes))
	l.selStart = clamp(l.selStart, 0, len(l.Runes))
	l.selStop = clamp(l.selStop, 0, len(l.Runes))
}

// BeginSelection anchors a selection at the current cursor.
func (l *Line) BeginSelection() {
	l.selectionActive = true
	l.anchor = l.Cursor
	l.updateSelectionBounds()
}

// EndSelection clears the active flag without discarding the bounds
// (so SwapSelectionStartStop / KillSelection can still reference it
// until the next BeginSelection).
func (l *Line) EndSelection() { l.selectionActive = false }

// SelectionActive reports whether a selection is currently active.
func (l *Line) SelectionActive() bool { return l.selectionActive }

// Selection returns the current [start, stop) selection span.
func (l *Line) Selection() (start, stop int) { return l.selStart, l.selStop }

// updateSelectionBounds recomputes (start, stop) from the anchor and
// cursor as (min, max), called after every cursor motion while a
// selection is active.
func (l *Line) updateSelectionBounds() {
	if l.anchor < l.Cursor {
		l.selStart, l.selStop = l.anchor, l.Cursor
	} else {
		l.selStart, l.selStop = l.Cursor, l.anchor
	}
}

// SwapSelectionStartStop swaps which end of the selection the anchor
// is pinned to, letting the user extend from either end.
func (l *Line) SwapSelectionStartStop() {
	if l.Cursor == l.selStart {
		l.anchor = l.selStart
		l.Cursor = l.selStop
	} else {
		l.anchor = l.selStop
		l.Cursor = l.selStart
	}
	l.updateSelectionBounds()
}

// KillSelection copies [start, stop) to the kill ring and erases it.
func (l *Line) KillSelection() {
	if l.selStart >= l.selStop {
		return
	}
	killed := string(l.Runes[l.selStart:l.selStop])
	l.killRing = append(l.killRing, killed)
	l.removeRange(l.selStart, l.selStop)
	l.selectionActive = false
}

// Yank inserts the most recent kill-ring entry at the cursor.
func (l *Line) Yank() {
	if len(l.killRing) == 0 {
		return
	}
	l.insertAt(l.Cursor, []rune(l.killRing[len(l.killRing)-1]))
}

// MoveCursor moves the cursor to pos (clamped), updating the selection
// span if one is active.
func (l *Line) MoveCursor(pos int) {
	l.Cursor = clamp(pos, 0, len(l.Runes))
	if l.selectionActive {
		l.updateSelectionBounds()
	}
}

// ReplaceCurrentToken replaces the token under the cursor (as
// determined by the whitespace word-boundary rule) with newText,
// leaving the cursor immediately after it.
func (l *Line) ReplaceCurrentToken(newText string) {
	start, stop := l.tokenBounds()
	l.removeRange(start, stop)
	l.Cursor = start
	l.insertAt(start, []rune(newText))
}

func (l *Line) tokenBounds() (start, stop int) {
	start, stop = l.Cursor, l.Cursor
	for start > 0 && !isSpace(l.Runes[start-1]) {
		start--
	}
	for stop < len(l.Runes) && !isSpace(l.Runes[stop]) {
		stop++
	}
	return start, stop
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' }

// GraphemeBoundaries returns the byte offsets of each grapheme cluster
// boundary in the line's text, for cursor rendering and width-aware
// motion beyond the rune granularity RemoveBackward already handles.
func GraphemeBoundaries(text string) []int {
	var bounds []int
	offset := 0
	seg := graphemes.FromString(text)
	for seg.Next() {
		bounds = append(bounds, offset)
		offset += len(seg.Value())
	}
	bounds = append(bounds, offset)
	return bounds
}
