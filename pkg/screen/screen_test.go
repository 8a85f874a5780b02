package screen

import (
	"bytes"
	"testing"

	"gitlab.com/tinyland/lab/shelline/pkg/color"
)

func testEnv() *color.Environment {
	return color.NewEnvironmentWith(func(string) (string, bool) { return "", false })
}

func buildGrid(width int, text string) *Grid {
	g := NewGrid(width)
	for _, r := range text {
		g.Append(r, color.Highlight{}, 0, 0, 1)
	}
	return g
}

func TestUpdateWritesText(t *testing.T) {
	var buf bytes.Buffer
	profile, support := color.DetectProfile()
	s := New(&buf, 80, DefaultTermCaps(), profile, support, testEnv())

	s.Update(buildGrid(80, "hello"), "hello")
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("hello")) {
		t.Fatalf("output %q does not contain %q", buf.String(), "hello")
	}
}

func TestUpdateClosureEmitsNoBytesOnSecondCall(t *testing.T) {
	var buf bytes.Buffer
	profile, support := color.DetectProfile()
	s := New(&buf, 80, DefaultTermCaps(), profile, support, testEnv())

	desired := buildGrid(80, "hello world")
	s.Update(desired, "hello world")
	s.Flush()
	buf.Reset()

	s.Update(buildGrid(80, "hello world"), "hello world")
	s.Flush()

	if buf.Len() != 0 {
		t.Fatalf("second identical Update emitted %d bytes, want 0: %q", buf.Len(), buf.String())
	}
}

func TestSharedPrefixStopsAtFirstDifference(t *testing.T) {
	a := []Cell{{Char: 'a', Width: 1}, {Char: 'b', Width: 1}, {Char: 'c', Width: 1}}
	b := []Cell{{Char: 'a', Width: 1}, {Char: 'x', Width: 1}, {Char: 'c', Width: 1}}
	if n := sharedPrefix(a, b); n != 1 {
		t.Fatalf("sharedPrefix = %d, want 1", n)
	}
}

func TestSharedPrefixBacksUpFromZeroWidthBoundary(t *testing.T) {
	a := []Cell{{Char: 'a', Width: 1}, {Char: '́', Width: 0}}
	b := []Cell{{Char: 'a', Width: 1}}
	n := sharedPrefix(a, b)
	if n != 0 {
		t.Fatalf("sharedPrefix = %d, want 0 (backed up off zero-width boundary)", n)
	}
}

func TestGridAppendNewlineResetsSoftWrap(t *testing.T) {
	g := NewGrid(80)
	g.Append('a', color.Highlight{}, 0, 0, 1)
	g.Lines[0].SoftWrap = true
	g.Append('\n', color.Highlight{}, 0, 0, 0)
	if g.Lines[0].SoftWrap {
		t.Fatalf("soft-wrap flag should clear on newline")
	}
	if len(g.Lines) != 2 {
		t.Fatalf("len(Lines) = %d, want 2", len(g.Lines))
	}
}

func TestGridAppendWrapsAtWidth(t *testing.T) {
	g := NewGrid(3)
	for _, r := range "abcd" {
		g.Append(r, color.Highlight{}, 0, 0, 1)
	}
	if len(g.Lines) != 2 {
		t.Fatalf("len(Lines) = %d, want 2 (wrapped)", len(g.Lines))
	}
	if !g.Lines[0].SoftWrap {
		t.Fatalf("first line should be marked soft-wrapped")
	}
}

func TestGridAppendCarriageReturnClearsLine(t *testing.T) {
	g := NewGrid(80)
	g.Append('a', color.Highlight{}, 0, 0, 1)
	g.Append('b', color.Highlight{}, 0, 0, 1)
	g.Append('\r', color.Highlight{}, 0, 0, 0)
	if len(g.Lines[0].Cells) != 0 {
		t.Fatalf("CR should clear the current line")
	}
	if g.Cursor.X != 0 {
		t.Fatalf("CR should reset x to 0, got %d", g.Cursor.X)
	}
}

func TestTermCapsDumbFallback(t *testing.T) {
	caps := DefaultTermCaps()
	caps.CursorUp = ""
	if !caps.Dumb() {
		t.Fatalf("missing CursorUp should trigger dumb fallback")
	}
	if DefaultTermCaps().Dumb() {
		t.Fatalf("DefaultTermCaps should not be dumb")
	}
}
