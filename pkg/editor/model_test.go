package editor

import (
	"path/filepath"
	"testing"

	"gitlab.com/tinyland/lab/shelline/pkg/escape"
	"gitlab.com/tinyland/lab/shelline/pkg/history"
	"gitlab.com/tinyland/lab/shelline/pkg/worker"
)

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	gen := &worker.Counter{}
	pool := worker.New(gen, 8)
	hist := history.Named(t.Name(), filepath.Join(t.TempDir(), "history.yml"))
	return New(gen, pool, hist, nil, nil, nil, nil)
}

func send(e *Editor, cmd Command) {
	e.dispatch(InputEvent{Command: cmd})
}

func sendRune(e *Editor, r rune) {
	e.dispatch(InputEvent{Command: SelfInsert, Rune: r})
}

func TestSelfInsertAppendsToLine(t *testing.T) {
	e := newTestEditor(t)
	for _, r := range "echo hi" {
		sendRune(e, r)
	}
	if got := e.Line.Text(); got != "echo hi" {
		t.Fatalf("Line.Text() = %q, want %q", got, "echo hi")
	}
	if e.Line.Cursor != len(e.Line.Runes) {
		t.Fatalf("cursor = %d, want end of line %d", e.Line.Cursor, len(e.Line.Runes))
	}
}

func TestExecuteFinishesAndRecordsHistory(t *testing.T) {
	e := newTestEditor(t)
	for _, r := range "echo hi" {
		sendRune(e, r)
	}
	send(e, Execute)

	if !e.Finished() {
		t.Fatalf("Finished() = false, want true after Execute")
	}
	if e.Canceled() {
		t.Fatalf("Canceled() = true, want false after a normal Execute")
	}

	cur := e.History.Search(history.Contains, "echo hi", history.SearchFlags{})
	if _, ok := cur.Next(); !ok {
		t.Fatalf("expected Execute to record the line in history")
	}
}

func TestExecuteLeavesUnbalancedQuoteUnfinished(t *testing.T) {
	e := newTestEditor(t)
	e.Parser = stubParser{}
	for _, r := range `echo "unterminated` {
		sendRune(e, r)
	}
	send(e, Execute)

	if e.Finished() {
		t.Fatalf("Finished() = true, want false for an incomplete parse to insert a continuation line instead")
	}
	if got := e.Line.Text(); got != "echo \"unterminated\n" {
		t.Fatalf("Line.Text() = %q, want a trailing newline continuation", got)
	}
}

// stubParser treats any line with an odd number of double quotes as
// incomplete, exercising execute()'s continuation-insertion path.
type stubParser struct{}

func (stubParser) DetectErrors(text string, acceptIncomplete bool) (ok, incomplete bool, errs []string) {
	count := 0
	for _, r := range text {
		if r == '"' {
			count++
		}
	}
	if count%2 == 1 {
		return false, true, nil
	}
	return true, false, nil
}

func (stubParser) LocateCmdsubstExtent(text string, cursor int) (start, end int) { return 0, 0 }

func TestEOFFinishesAndCancels(t *testing.T) {
	e := newTestEditor(t)
	send(e, EOF)
	if !e.Finished() || !e.Canceled() {
		t.Fatalf("EOF should set both Finished and Canceled, got finished=%v canceled=%v", e.Finished(), e.Canceled())
	}
}

func TestCancelDoesNotFinishTheLoop(t *testing.T) {
	e := newTestEditor(t)
	sendRune(e, 'a')
	send(e, Cancel)
	if e.Finished() {
		t.Fatalf("Cancel alone must not end read_line; only EOF or a completed Execute does")
	}
}

func TestAcceptAutosuggestionSplicesTextOnlyOnAccept(t *testing.T) {
	e := newTestEditor(t)
	for _, r := range "ech" {
		sendRune(e, r)
	}
	e.suggestion = "o hi"

	if got := e.Line.Text(); got != "ech" {
		t.Fatalf("a delivered suggestion must not mutate Line before being accepted, got %q", got)
	}

	send(e, AcceptAutosuggestion)

	if got := e.Line.Text(); got != "echo hi" {
		t.Fatalf("Line.Text() after AcceptAutosuggestion = %q, want %q", got, "echo hi")
	}
	if e.CurrentSuggestion() != "" {
		t.Fatalf("CurrentSuggestion() should be cleared after acceptance")
	}
}

func TestSuppressAutosuggestionClearsWithoutTouchingLine(t *testing.T) {
	e := newTestEditor(t)
	sendRune(e, 'a')
	e.suggestion = "bc"
	send(e, SuppressAutosuggestion)
	if e.CurrentSuggestion() != "" {
		t.Fatalf("SuppressAutosuggestion should clear the live suggestion")
	}
	if got := e.Line.Text(); got != "a" {
		t.Fatalf("SuppressAutosuggestion must not touch the line, got %q", got)
	}
}

func TestResetClearsLinePagerAndFlags(t *testing.T) {
	e := newTestEditor(t)
	for _, r := range "echo hi" {
		sendRune(e, r)
	}
	send(e, Execute)
	if !e.Finished() {
		t.Fatalf("setup: expected Execute to finish the line")
	}

	e.Reset()

	if e.Line.Len() != 0 {
		t.Fatalf("Reset() should start a fresh empty Line, got %q", e.Line.Text())
	}
	if e.Finished() || e.Canceled() {
		t.Fatalf("Reset() should clear finished/canceled flags")
	}
	if e.Pager != nil {
		t.Fatalf("Reset() should clear an active pager")
	}
}

func TestScheduleBackgroundWorkSkipsAutosuggestionForEmptyLine(t *testing.T) {
	e := newTestEditor(t)
	var suggestCalls []string
	e.Suggest = recordingSuggester{calls: &suggestCalls}

	send(e, BeginningOfLine) // dispatch on an empty line

	e.Workers.Wait()
	drained := e.Workers.Drain()
	if len(drained) != 0 {
		t.Fatalf("expected no autosuggestion job submitted for an empty line, got %d results", len(drained))
	}
}

func TestScheduleBackgroundWorkSubmitsAutosuggestionForNonemptyLine(t *testing.T) {
	e := newTestEditor(t)
	var suggestCalls []string
	e.Suggest = recordingSuggester{calls: &suggestCalls}

	sendRune(e, 'a')

	e.Workers.Wait()
	for _, r := range e.Workers.Drain() {
		e.DeliverWorkerResult(r)
	}
	if e.CurrentSuggestion() != "a-suggested" {
		t.Fatalf("CurrentSuggestion() = %q, want the autosuggestion worker's result applied", e.CurrentSuggestion())
	}
}

type recordingSuggester struct{ calls *[]string }

func (r recordingSuggester) Suggest(text string) string {
	*r.calls = append(*r.calls, text)
	return text + "-suggested"
}

func TestBuildDesiredGridKeepsOneCharacterPerColumn(t *testing.T) {
	e := newTestEditor(t)
	for _, r := range "echo hi" {
		sendRune(e, r)
	}

	caps := escape.NewCapabilities()
	cache := escape.NewLayoutCache(caps, 4)
	grid := e.BuildDesiredGrid(caps, cache, Prompts{Left: "> "}, "", 80)

	if len(grid.Lines) != 1 {
		t.Fatalf("len(grid.Lines) = %d, want 1: each plain ASCII character must occupy one column, not force a wrap", len(grid.Lines))
	}
	var got []rune
	for _, c := range grid.Lines[0].Cells {
		got = append(got, c.Char)
	}
	want := "> echo hi"
	if string(got) != want {
		t.Fatalf("rendered line = %q, want %q", string(got), want)
	}
}

func TestDeliverWorkerResultDropsStaleGeneration(t *testing.T) {
	e := newTestEditor(t)
	stale := e.Gen.Current()
	e.Gen.Bump()
	e.DeliverWorkerResult(worker.Result{Generation: stale, Label: "autosuggestion", Value: "should not apply"})
	if e.CurrentSuggestion() != "" {
		t.Fatalf("a stale-generation result must be dropped, got suggestion %q", e.CurrentSuggestion())
	}
}
