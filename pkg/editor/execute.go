package editor

import (
	"strings"

	"gitlab.com/tinyland/lab/shelline/pkg/expand"
)

// execute implements the execute handler's flow: clear an active
// pager, detect and continue an unfinished backslash continuation,
// ask the parser whether the line is complete, and on completion
// re-expand abbreviations, re-highlight synchronously, record history,
// and set the finished flag so read_line returns.
func (e *Editor) execute() {
	if e.Pager != nil {
		e.Pager = nil
		return
	}

	text := e.Line.Text()

	if endsInUnescapedContinuation(text, e.Line.Cursor) {
		e.Line.MoveCursor(e.Line.Len())
		e.Line.InsertChar('\n')
		return
	}

	if e.Parser == nil {
		e.finish(text)
		return
	}

	ok, incomplete, _ := e.Parser.DetectErrors(text, true)
	if incomplete {
		e.Line.MoveCursor(e.Line.Len())
		e.Line.InsertChar('\n')
		return
	}
	if !ok {
		// A genuine syntax error (not just incompleteness): leave the
		// line for the user to fix, matching how an interactive shell
		// declines to execute invalid input rather than silently
		// discarding it.
		return
	}

	e.finish(text)
}

func (e *Editor) finish(text string) {
	if expanded, _, ok := expand.ExpandAbbreviation(text, e.Line.Cursor, e.Abbrevs); ok {
		e.Line.Runes = []rune(expanded)
		e.Line.Cursor = len(e.Line.Runes)
		text = expanded
	}

	// Synchronous re-highlight, so the final colors match the accepted
	// text; no worker is involved.
	if e.Highlight != nil {
		e.Line.Highlights = e.Highlight.Highlight(text)
	}

	if e.History != nil && !strings.HasPrefix(text, " ") {
		if e.FileDetector != nil {
			e.History.AddPendingWithFileDetection(text, e.FileDetector.DetectPaths)
		} else {
			e.History.Add(text)
		}
	}

	e.finished = true
}

// endsInUnescapedContinuation reports whether text ends in a backslash
// that is not itself escaped (an odd run of trailing backslashes), or
// the cursor sits on trailing whitespace after such a backslash.
func endsInUnescapedContinuation(text string, cursor int) bool {
	runes := []rune(text)
	i := len(runes)
	for i > cursor && i > 0 && isHorizontalSpace(runes[i-1]) {
		i--
	}
	run := 0
	for i-run-1 >= 0 && runes[i-run-1] == '\\' {
		run++
	}
	return run%2 == 1
}

func isHorizontalSpace(r rune) bool { return r == ' ' || r == '\t' }
