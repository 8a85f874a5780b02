package editor

import "gitlab.com/tinyland/lab/shelline/pkg/expand"

// selfInsert implements the self-insert handler. When the pager's
// search field is focused, the character extends that query instead
// of the command line (self-insertion only ends paging when the
// search field is not focused, per endsPaging). Otherwise it inserts
// into the editable line and, on a trigger character, attempts one
// abbreviation expansion.
func (e *Editor) selfInsert(r rune) {
	if e.Pager != nil && e.Pager.SearchActive() {
		e.Pager.SetSearchField(e.Pager.SearchField() + string(r))
		return
	}

	triggers := e.Line.InsertChar(r)
	if !triggers {
		return
	}
	if expanded, cursor, ok := expand.ExpandAbbreviationOnTrigger(e.Line.Text(), e.Line.Cursor, e.Abbrevs); ok {
		e.Line.Runes = []rune(expanded)
		e.Line.Cursor = cursor
	}
}
