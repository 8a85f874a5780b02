package screen

import "strconv"

// TermCaps holds the subset of the terminfo database the diff engine
// consumes: cursor_up, cursor_down, cursor_left, cursor_right, their
// parameterized forms, clr_eol, clr_eos, and the feature flags that
// gate the dumb-terminal fallback.
type TermCaps struct {
	CursorUp    string
	CursorDown  string
	CursorLeft  string
	CursorRight string
	ClrEol      string
	ClrEos      string

	// ParmLeftCursor/ParmRightCursor build the parameterized "move by n"
	// form; nil means the terminal has no such capability and only the
	// singular form (repeated n times) is available.
	ParmLeftCursor  func(n int) string
	ParmRightCursor func(n int) string

	AutoRightMargin   bool
	EatNewlineGlitch  bool
}

// DefaultTermCaps returns the ANSI/xterm capability set, sufficient for
// the overwhelming majority of terminals fish itself targets.
func DefaultTermCaps() TermCaps {
	return TermCaps{
		CursorUp:        "\x1b[A",
		CursorDown:      "\x1b[B",
		CursorLeft:      "\x1b[D",
		CursorRight:     "\x1b[C",
		ClrEol:          "\x1b[K",
		ClrEos:          "\x1b[J",
		ParmLeftCursor:  func(n int) string { return "\x1b[" + strconv.Itoa(n) + "D" },
		ParmRightCursor: func(n int) string { return "\x1b[" + strconv.Itoa(n) + "C" },
		AutoRightMargin: true,
	}
}

// Dumb reports whether any of the four directional motions is missing,
// the condition that triggers the dumb-terminal fallback in §4.3.
func (c TermCaps) Dumb() bool {
	return c.CursorUp == "" || c.CursorDown == "" || c.CursorLeft == "" || c.CursorRight == ""
}
