package editor

import (
	"gitlab.com/tinyland/lab/shelline/pkg/color"
	"gitlab.com/tinyland/lab/shelline/pkg/escape"
	"gitlab.com/tinyland/lab/shelline/pkg/pager"
	"gitlab.com/tinyland/lab/shelline/pkg/promptlayout"
	"gitlab.com/tinyland/lab/shelline/pkg/screen"
)

// Prompts holds the left/right prompt strings the driving loop feeds
// into BuildDesiredGrid each frame; the core never computes a prompt's
// text itself (that's the config/startup loader's job, out of scope
// per §1).
type Prompts struct {
	Left  string
	Right string
}

// BuildDesiredGrid assembles one frame's desired screen.Grid from the
// prompt layout (§4.4), the editable line's text and highlights (§4.7),
// any live autosuggestion, and an active pager (§4.5), and returns it for
// the caller to pass to the screen diff engine. This is the orchestration point §2 describes
// as "on each repaint, C8 feeds C7+C4+C5 into C3".
func (e *Editor) BuildDesiredGrid(caps *escape.Capabilities, cache *escape.LayoutCache, prompts Prompts, suggestion string, width int) *screen.Grid {
	text := e.Line.Text()
	firstLine := text
	for i, r := range text {
		if r == '\n' {
			firstLine = text[:i]
			break
		}
	}

	layout := promptlayout.Layout(caps, width, prompts.Left, prompts.Right, firstLine, suggestion, cache)

	grid := screen.NewGrid(width)
	promptWidth := layout.Left.LastWidth

	for _, r := range layout.Left.Text {
		grid.Append(r, color.Highlight{}, 0, promptWidth, runeWidth(r))
	}

	runes := e.Line.Runes
	hl := e.Line.Highlights
	for i, r := range runes {
		h := color.Highlight{}
		if i < len(hl) {
			h = hl[i]
		}
		indent := 0
		grid.Append(r, h, indent, promptWidth, runeWidth(r))
	}

	cursorGridPos := grid.Cursor

	if layout.Suggestion != "" {
		sh := color.Highlight{Foreground: color.RoleAutosuggestion}
		for _, r := range layout.Suggestion {
			grid.Append(r, sh, 0, promptWidth, runeWidth(r))
		}
	}

	if layout.Right.Text != "" {
		pad := width - grid.Cursor.X - layout.Right.LastWidth
		if pad > 0 {
			for i := 0; i < pad; i++ {
				grid.Append(' ', color.Highlight{}, 0, promptWidth, 1)
			}
		}
		for _, r := range layout.Right.Text {
			grid.Append(r, color.Highlight{}, 0, promptWidth, runeWidth(r))
		}
	}

	grid.Cursor = cursorGridPos

	if e.Pager != nil {
		appendPager(grid, e.Pager, promptWidth)
	}

	return grid
}

// appendPager draws the pager's visible rows (and its trailer, search
// field if focused) below the command line, matching §4.5's rendering
// rules: shared prefix, completion, padded description, with distinct
// roles for the selected row.
func appendPager(grid *screen.Grid, p *pager.State, promptWidth int) {
	grid.Append('\n', color.Highlight{}, 0, promptWidth, 0)

	start, end := p.VisibleRange()
	rows := p.Grid.Rows
	cols := p.Grid.Columns
	for row := start; row < end; row++ {
		for col := 0; col < cols; col++ {
			idx := col*rows + row
			if idx >= len(p.Entries) {
				continue
			}
			entry := p.Entries[idx]
			selected := idx == p.Selected()
			alternate := row%2 == 1
			colWidth := 0
			if col < len(p.Grid.ColumnWidths) {
				colWidth = p.Grid.ColumnWidths[col]
			}
			cell := pager.RenderCell(entry, "", colWidth, selected, alternate)
			writeRow(grid, cell, promptWidth)
		}
		grid.Append('\n', color.Highlight{}, 0, promptWidth, 0)
	}

	if trailer := pager.Trailer(p); trailer != "" {
		for _, r := range trailer {
			grid.Append(r, color.Highlight{Foreground: color.RolePagerProgress}, 0, promptWidth, runeWidth(r))
		}
		grid.Append('\n', color.Highlight{}, 0, promptWidth, 0)
	}

	if p.SearchActive() {
		for _, r := range "search: " + p.SearchField() {
			grid.Append(r, color.Highlight{}, 0, promptWidth, runeWidth(r))
		}
	}
}

func writeRow(grid *screen.Grid, row pager.Row, promptWidth int) {
	for _, r := range row.Prefix {
		grid.Append(r, color.Highlight{Foreground: row.PrefixRole}, 0, promptWidth, runeWidth(r))
	}
	for _, r := range row.Completion {
		grid.Append(r, color.Highlight{Foreground: row.CompletionRole}, 0, promptWidth, runeWidth(r))
	}
	for _, r := range row.Description {
		grid.Append(r, color.Highlight{Foreground: row.DescriptionRole}, 0, promptWidth, runeWidth(r))
	}
	grid.Append(' ', color.Highlight{}, 0, promptWidth, 1)
}

// runeWidth reports r's display-column width, clamping go-runewidth's
// -1 (unprintable control character) to 0 so Append's wrap arithmetic
// never sees a negative width.
func runeWidth(r rune) int {
	w := escape.Width(string(r))
	if w < 0 {
		return 0
	}
	return w
}
