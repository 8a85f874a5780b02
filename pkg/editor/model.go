package editor

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/shelline/pkg/color"
	"gitlab.com/tinyland/lab/shelline/pkg/expand"
	"gitlab.com/tinyland/lab/shelline/pkg/history"
	"gitlab.com/tinyland/lab/shelline/pkg/line"
	"gitlab.com/tinyland/lab/shelline/pkg/pager"
	"gitlab.com/tinyland/lab/shelline/pkg/screen"
	"gitlab.com/tinyland/lab/shelline/pkg/worker"
)

// Parser is the external parser dependency: pure functions the editor
// calls to decide whether the command line is complete and to locate
// command-substitution extents, per §6.
type Parser interface {
	DetectErrors(text string, acceptIncomplete bool) (ok, incomplete bool, errs []string)
	LocateCmdsubstExtent(text string, cursor int) (start, end int)
}

// CompletionSource is the external completion dependency, always
// called from a worker per §6.
type CompletionSource interface {
	Complete(text string, flags CompletionRequestFlags) []expand.Candidate
}

// Highlighter produces a highlight spec per code point of text; it is
// invoked from a worker against an immutable snapshot, per C9, and once
// synchronously by execute when a command line is accepted.
type Highlighter interface {
	Highlight(text string) []color.Highlight
}

// Autosuggester proposes a continuation of text (from history or the
// completion source), run from a worker, per C9.
type Autosuggester interface {
	Suggest(text string) string
}

// FileDetector enumerates the files/directories a command line
// references, for AddPendingWithFileDetection per §4.6. Optional: when
// nil, Execute records history with the plain Add path instead.
type FileDetector interface {
	DetectPaths(content string) []string
}

// CompletionRequestFlags selects the kind of completion request.
type CompletionRequestFlags int

const (
	CompleteDefault CompletionRequestFlags = iota
	CompleteFuzzy
	CompleteAutosuggestion
	CompleteDescriptions
)

// InputEvent is the atomic message the input subsystem delivers to the
// editor loop's Update.
type InputEvent struct {
	Command Command
	Rune    rune // populated only for SelfInsert
}

// workerResultMsg wraps a drained worker.Result as a bubbletea message.
type workerResultMsg struct{ result worker.Result }

// Editor is the editor-loop model: it owns the editable line and
// orchestrates the pager, history, and screen components in response
// to InputEvents. It implements tea.Model so it can be driven by
// bubbletea's event loop, matching how the rest of this module treats
// terminal I/O.
type Editor struct {
	Line    *line.Line
	History *history.Store
	Screen  *screen.Screen
	Workers *worker.Pool
	Gen     *worker.Counter
	Abbrevs expand.Abbreviations
	Parser  Parser
	Complete CompletionSource
	Highlight Highlighter
	Suggest   Autosuggester
	FileDetector FileDetector

	Pager *pager.State

	// suggestion is the live autosuggestion text delivered by the last
	// fresh autosuggestion worker result; it is displayed by the
	// driving loop's call to BuildDesiredGrid and only spliced into
	// Line by AcceptAutosuggestion.
	suggestion string

	coalescing   bool
	repaintNeeded bool
	finished     bool
	canceled     bool

	searchCursor      *history.Cursor
	lastSearchQuery   string
	historyNavigating bool

	pendingJump        jumpState
	awaitingJumpTarget bool
}

// New builds an Editor over an empty line.
func New(gen *worker.Counter, pool *worker.Pool, hist *history.Store, scr *screen.Screen, abbrevs expand.Abbreviations, p Parser, cs CompletionSource) *Editor {
	return &Editor{
		Line:    line.New(),
		History: hist,
		Screen:  scr,
		Workers: pool,
		Gen:     gen,
		Abbrevs: abbrevs,
		Parser:  p,
		Complete: cs,
	}
}

// Init satisfies tea.Model.
func (e *Editor) Init() tea.Cmd { return nil }

// Reset starts a new editable line for the next read call, per the
// data model's lifecycle rule that the editable line lives only for
// the duration of one read call; History, Screen, and the worker pool
// outlive it.
func (e *Editor) Reset() {
	e.Line = line.New()
	e.Pager = nil
	e.suggestion = ""
	e.searchCursor = nil
	e.lastSearchQuery = ""
	e.finished = false
	e.canceled = false
	e.awaitingJumpTarget = false
}

// DeliverWorkerResult applies a drained worker.Result from outside the
// bubbletea Update path, for a driving loop that calls Workers.Drain()
// directly instead of routing through tea.Program.
func (e *Editor) DeliverWorkerResult(r worker.Result) { e.applyWorkerResult(r) }

// Finished reports whether the execute handler has set the
// read_line-returns flag.
func (e *Editor) Finished() bool { return e.finished }

// Canceled reports whether the loop ended via EOF rather than a
// completed Execute. The Cancel command never sets it.
func (e *Editor) Canceled() bool { return e.canceled }

// Update dispatches one InputEvent (or a worker result) to its
// handler, per the dispatch table semantics in §4.8.
func (e *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case InputEvent:
		e.dispatch(m)
	case workerResultMsg:
		e.applyWorkerResult(m.result)
	}
	return e, nil
}

// View renders nothing on its own; the screen diff engine (fed from
// BuildDesiredGrid) owns actual terminal output, matching how the rest
// of the module treats the screen as a side channel rather than
// bubbletea's own render path.
func (e *Editor) View() string { return "" }

func (e *Editor) dispatch(ev InputEvent) {
	if ev.Command != Repaint {
		e.coalescing = false
	}

	if e.Pager != nil && endsPaging(ev.Command, e.Pager.SearchActive()) {
		e.Pager = nil
	}

	if !historySearchCommands[ev.Command] && ev.Command != Repaint && ev.Command != ForceRepaint && ev.Command != Null {
		e.historyNavigating = false
		e.searchCursor = nil
	}

	if e.awaitingJumpTarget && ev.Command == SelfInsert {
		e.awaitingJumpTarget = false
		e.pendingJump.target = ev.Rune
		e.pendingJump.valid = true
		e.Line.Jump(e.pendingJump.dir, e.pendingJump.precision, e.pendingJump.target)
		e.Gen.Bump()
		e.requestRepaint()
		return
	}

	switch ev.Command {
	case BeginningOfLine:
		e.Line.MoveCursor(lineStart(e.Line.Runes, e.Line.Cursor))
	case EndOfLine:
		e.Line.MoveCursor(lineEnd(e.Line.Runes, e.Line.Cursor))
	case BeginningOfBuffer:
		e.Line.MoveCursor(0)
	case EndOfBuffer:
		e.Line.MoveCursor(e.Line.Len())
	case UpLine:
		e.moveVertical(-1)
	case DownLine:
		e.moveVertical(1)
	case ForwardChar:
		e.Line.MoveCursor(e.Line.Cursor + 1)
	case BackwardChar:
		e.Line.MoveCursor(e.Line.Cursor - 1)
	case ForwardWord:
		e.moveWord(line.Forward, line.StylePunctuation, false)
	case BackwardWord:
		e.moveWord(line.Backward, line.StylePunctuation, false)
	case ForwardBigword:
		e.moveWord(line.Forward, line.StyleWhitespaceOnly, false)
	case BackwardBigword:
		e.moveWord(line.Backward, line.StyleWhitespaceOnly, false)
	case Null:
		// no-op by definition
	case Cancel:
		e.cancelSearchAndPaging()
	case ForceRepaint:
		e.Screen.NeedClear()
		e.requestRepaint()
	case Repaint:
		e.requestRepaintCoalesced()
	case EOF:
		e.finished = true
		e.canceled = true
	case Complete:
		e.runCompletion(CompleteDefault)
	case CompleteAndSearch:
		e.runCompletion(CompleteFuzzy)
	case PagerToggleSearch:
		if e.Pager != nil {
			e.Pager.ToggleSearch()
		}
	case KillLine:
		e.killToLineEnd()
	case BackwardKillLine:
		e.killToLineStart()
	case KillWholeLine:
		e.killWholeLine()
	case Yank:
		e.Line.Yank()
	case YankPop:
		// The kill ring has no cycle cursor; YankPop re-yanks the most
		// recent entry, matching Yank until a ring-cycling API exists.
		e.Line.Yank()
	case BackwardDeleteChar:
		e.Line.RemoveBackward()
	case DeleteChar:
		e.deleteForward()
	case Execute:
		e.execute()
	case HistorySearchBackward:
		e.historySearch(history.Contains, true)
	case HistorySearchForward:
		e.historySearch(history.Contains, false)
	case HistoryTokenSearchBackward:
		e.historySearch(history.Prefix, true)
	case HistoryTokenSearchForward:
		e.historySearch(history.Prefix, false)
	case SuppressAutosuggestion:
		e.suggestion = ""
	case AcceptAutosuggestion:
		e.ApplyAutosuggestion(e.suggestion)
		e.suggestion = ""
	case TransposeChars:
		e.transposeChars()
	case TransposeWords:
		// Moves the cursor back one word; the two words around the
		// cursor are not swapped.
		e.moveWord(line.Backward, line.StylePunctuation, false)
	case UpcaseWord:
		e.convertWordCase(strings.ToUpper)
	case DowncaseWord:
		e.convertWordCase(strings.ToLower)
	case CapitalizeWord:
		e.convertWordCase(capitalize)
	case BeginSelection:
		e.Line.BeginSelection()
	case SwapSelectionStartStop:
		e.Line.SwapSelectionStartStop()
	case EndSelection:
		e.Line.EndSelection()
	case KillSelection:
		e.Line.KillSelection()
	case ForwardJump:
		e.armJump(line.Forward, line.JumpTo)
	case BackwardJump:
		e.armJump(line.Backward, line.JumpTo)
	case ForwardJumpTill:
		e.armJump(line.Forward, line.JumpTill)
	case BackwardJumpTill:
		e.armJump(line.Backward, line.JumpTill)
	case RepeatJump:
		e.repeatJump(false)
	case ReverseRepeatJump:
		e.repeatJump(true)
	case SelfInsert:
		e.selfInsert(ev.Rune)
	}

	e.Gen.Bump()
	e.requestRepaint()
	e.scheduleBackgroundWork(ev.Command)
}

// scheduleBackgroundWork submits highlight and autosuggestion jobs
// against the post-mutation snapshot, per §4.9: "C8 schedules highlight
// and autosuggestion jobs via C9 against an immutable snapshot of the
// command line". Autosuggestion is skipped for an empty line and after
// suppress-autosuggestion; every other command, navigation included,
// submits one. A line ending in whitespace is suggested against like
// any other non-empty line.
func (e *Editor) scheduleBackgroundWork(cmd Command) {
	if e.Workers == nil {
		return
	}
	text := e.Line.Text()

	if e.Highlight != nil {
		h := e.Highlight
		e.Workers.Submit(context.Background(), "highlight", func(ctx context.Context, gen worker.Generation) any {
			return h.Highlight(text)
		})
	}

	if e.Suggest != nil && cmd != SuppressAutosuggestion && text != "" {
		s := e.Suggest
		e.Workers.Submit(context.Background(), "autosuggestion", func(ctx context.Context, gen worker.Generation) any {
			return s.Suggest(text)
		})
	}
}

func lineStart(runes []rune, cursor int) int {
	i := cursor
	for i > 0 && runes[i-1] != '\n' {
		i--
	}
	return i
}

func lineEnd(runes []rune, cursor int) int {
	i := cursor
	for i < len(runes) && runes[i] != '\n' {
		i++
	}
	return i
}

// moveVertical moves the cursor up (delta -1) or down (delta 1) one
// embedded-newline line, preserving the column offset from that
// line's start where possible, for multi-line command buffers (a
// continuation inserted by Execute, or a pasted multi-line command).
func (e *Editor) moveVertical(delta int) {
	runes := e.Line.Runes
	curStart := lineStart(runes, e.Line.Cursor)
	col := e.Line.Cursor - curStart

	var targetStart int
	if delta < 0 {
		if curStart == 0 {
			return
		}
		targetStart = lineStart(runes, curStart-1)
	} else {
		end := lineEnd(runes, e.Line.Cursor)
		if end >= len(runes) {
			return
		}
		targetStart = end + 1
	}
	targetEnd := lineEnd(runes, targetStart)
	pos := targetStart + col
	if pos > targetEnd {
		pos = targetEnd
	}
	e.Line.MoveCursor(pos)
}

func (e *Editor) moveWord(dir line.Direction, style line.WordStyle, erase bool) {
	e.Line.MoveWord(dir, style, erase, false)
}

func (e *Editor) killToLineEnd() {
	e.Line.BeginSelection()
	e.Line.MoveCursor(e.Line.Len())
	e.Line.KillSelection()
}

func (e *Editor) killToLineStart() {
	e.Line.BeginSelection()
	e.Line.MoveCursor(0)
	e.Line.KillSelection()
}

func (e *Editor) killWholeLine() {
	e.Line.BeginSelection()
	e.Line.MoveCursor(0)
	e.Line.SwapSelectionStartStop()
	e.Line.MoveCursor(e.Line.Len())
	e.Line.KillSelection()
}

func (e *Editor) deleteForward() {
	if e.Line.Cursor >= e.Line.Len() {
		return
	}
	e.Line.MoveCursor(e.Line.Cursor + 1)
	e.Line.RemoveBackward()
}

// convertWordCase applies transform to the word starting at (or right
// after, if the cursor sits in whitespace) the cursor, leaving the
// cursor at the word's end, matching upcase-word/downcase-word/
// capitalize-word.
func (e *Editor) convertWordCase(transform func(string) string) {
	runes := e.Line.Runes
	i := e.Line.Cursor
	for i < len(runes) && isBlank(runes[i]) {
		i++
	}
	start := i
	for i < len(runes) && !isBlank(runes[i]) {
		i++
	}
	if start == i {
		return
	}
	converted := []rune(transform(string(runes[start:i])))
	out := make([]rune, 0, len(runes)-(i-start)+len(converted))
	out = append(out, runes[:start]...)
	out = append(out, converted...)
	out = append(out, runes[i:]...)
	e.Line.Runes = out

	hl := e.Line.Highlights
	blanks := make([]color.Highlight, len(converted))
	e.Line.Highlights = append(append(append([]color.Highlight{}, hl[:start]...), blanks...), hl[i:]...)

	e.Line.Cursor = start + len(converted)
}

func isBlank(r rune) bool { return r == ' ' || r == '\t' || r == '\n' }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
}

func (e *Editor) transposeChars() {
	c := e.Line.Cursor
	if c == 0 || c >= e.Line.Len() {
		return
	}
	a, b := e.Line.Runes[c-1], e.Line.Runes[c]
	e.Line.Runes[c-1], e.Line.Runes[c] = b, a
}

func (e *Editor) cancelSearchAndPaging() {
	e.searchCursor = nil
	e.Pager = nil
}

func (e *Editor) requestRepaint() {
	e.repaintNeeded = true
}

func (e *Editor) requestRepaintCoalesced() {
	if e.coalescing {
		return
	}
	e.coalescing = true
	e.repaintNeeded = true
}

// RepaintNeeded reports and clears the repaint-needed flag, for the
// driving loop to act on.
func (e *Editor) RepaintNeeded() bool {
	v := e.repaintNeeded
	e.repaintNeeded = false
	return v
}

func (e *Editor) historySearch(mode history.Mode, backward bool) {
	if e.History == nil {
		return
	}
	if !e.historyNavigating {
		e.lastSearchQuery = e.Line.Text()
		e.searchCursor = e.History.Search(mode, e.lastSearchQuery, history.SearchFlags{})
		e.historyNavigating = true
	}
	var it history.Item
	var ok bool
	if backward {
		it, ok = e.searchCursor.Next()
	} else {
		it, ok = e.searchCursor.Prev()
	}
	if !ok {
		return
	}
	e.Line.Runes = []rune(it.Content)
	e.Line.Cursor = len(e.Line.Runes)
}

func (e *Editor) armJump(dir line.Direction, precision line.Precision) {
	e.awaitingJumpTarget = true
	e.pendingJump = jumpState{dir: dir, precision: precision}
}

func (e *Editor) repeatJump(reverse bool) {
	if !e.pendingJump.valid {
		return
	}
	dir := e.pendingJump.dir
	if reverse {
		dir = oppositeDirection(dir)
	}
	e.Line.Jump(dir, e.pendingJump.precision, e.pendingJump.target)
}

func oppositeDirection(d line.Direction) line.Direction {
	if d == line.Forward {
		return line.Backward
	}
	return line.Forward
}

// runCompletion submits a completion request to the worker pool; the
// result arrives later as a workerResultMsg and is applied by
// applyWorkerResult once its generation is still current.
func (e *Editor) runCompletion(flags CompletionRequestFlags) {
	if e.Complete == nil || e.Workers == nil {
		return
	}
	text := e.Line.Text()
	cursor := e.Line.Cursor
	source := e.Complete
	e.Workers.Submit(context.Background(), "completion", func(ctx context.Context, gen worker.Generation) any {
		candidates := source.Complete(text, flags)
		return completionResult{cursor: cursor, candidates: candidates}
	})
}

type completionResult struct {
	cursor     int
	candidates []expand.Candidate
}

// CurrentSuggestion returns the live autosuggestion text, for the
// driving loop to pass into BuildDesiredGrid each frame.
func (e *Editor) CurrentSuggestion() string { return e.suggestion }

// ApplyAutosuggestion splices suggestion onto the end of the line,
// called by AcceptAutosuggestion with the live suggestion text.
func (e *Editor) ApplyAutosuggestion(suggestion string) {
	if suggestion == "" {
		return
	}
	e.Line.MoveCursor(e.Line.Len())
	e.Line.InsertString(suggestion, 0, len(suggestion))
}

func (e *Editor) applyWorkerResult(r worker.Result) {
	if e.Gen.Stale(r.Generation) {
		return
	}
	switch r.Label {
	case "highlight":
		if hl, ok := r.Value.([]color.Highlight); ok {
			e.Line.Highlights = hl
		}
	case "autosuggestion":
		if s, ok := r.Value.(string); ok {
			e.suggestion = s
		}
	case "completion":
		if cr, ok := r.Value.(completionResult); ok {
			e.applyCompletionResult(cr)
		}
	}
}

func (e *Editor) applyCompletionResult(cr completionResult) {
	if len(cr.candidates) == 0 {
		return
	}
	if len(cr.candidates) == 1 {
		newText, newCursor := expand.ApplyCompletion(e.Line.Text(), cr.cursor, cr.candidates[0])
		e.Line.Runes = []rune(newText)
		e.Line.Cursor = newCursor
		return
	}
	completions := make([]pager.Completion, 0, len(cr.candidates))
	for _, c := range cr.candidates {
		completions = append(completions, pager.Completion{
			Text: c.Text,
			Flags: pager.Flags{
				ReplacesToken: c.Flags.ReplacesToken,
				NoSpace:       c.Flags.NoSpace,
			},
		})
	}
	entries := pager.BuildEntries(completions, func(s string) string { return s })
	width := 80
	if e.Screen != nil && e.Screen.Actual != nil && e.Screen.Actual.Width > 0 {
		width = e.Screen.Actual.Width
	}
	grid := pager.LayoutGrid(entries, width)
	e.Pager = pager.NewState(entries, grid, defaultPagerVisibleRows)
}

// defaultPagerVisibleRows bounds the pager to a fixed window until the
// driving loop threads through the terminal's live row count.
const defaultPagerVisibleRows = 10

type jumpState struct {
	dir       line.Direction
	precision line.Precision
	target    rune
	valid     bool
}
