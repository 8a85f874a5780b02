package line

import "testing"

func TestInsertCharAdvancesCursor(t *testing.T) {
	l := New()
	l.InsertChar('a')
	l.InsertChar('b')
	if l.Text() != "ab" || l.Cursor != 2 {
		t.Fatalf("Text=%q Cursor=%d, want ab/2", l.Text(), l.Cursor)
	}
}

func TestHighlightsStayInSyncWithRunes(t *testing.T) {
	l := New()
	l.InsertChar('a')
	l.InsertChar('b')
	l.InsertChar('c')
	if len(l.Highlights) != len(l.Runes) {
		t.Fatalf("Highlights len %d != Runes len %d", len(l.Highlights), len(l.Runes))
	}
	l.RemoveBackward()
	if len(l.Highlights) != len(l.Runes) {
		t.Fatalf("after RemoveBackward: Highlights len %d != Runes len %d", len(l.Highlights), len(l.Runes))
	}
}

func TestInsertCharTriggersAbbrev(t *testing.T) {
	l := New()
	if triggered := l.InsertChar('a'); triggered {
		t.Fatalf("'a' should not trigger abbreviation expansion")
	}
	if triggered := l.InsertChar(' '); !triggered {
		t.Fatalf("space should trigger abbreviation expansion")
	}
}

func TestRemoveBackwardSkipsZeroWidthCombining(t *testing.T) {
	l := NewFromText("á") // 'a' + combining acute accent (decomposed)
	l.MoveCursor(l.Len())
	l.RemoveBackward()
	if l.Text() != "" {
		t.Fatalf("Text = %q, want empty (base+combining removed together)", l.Text())
	}
}

func TestSelectionBoundsAreMinMaxOfAnchorAndCursor(t *testing.T) {
	l := NewFromText("hello world")
	l.MoveCursor(5)
	l.BeginSelection()
	l.MoveCursor(2)
	start, stop := l.Selection()
	if start != 2 || stop != 5 {
		t.Fatalf("Selection = (%d,%d), want (2,5)", start, stop)
	}
}

func TestKillSelectionErasesAndStoresInKillRing(t *testing.T) {
	l := NewFromText("hello world")
	l.MoveCursor(0)
	l.BeginSelection()
	l.MoveCursor(5)
	l.KillSelection()
	if l.Text() != " world" {
		t.Fatalf("Text = %q, want %q", l.Text(), " world")
	}
	l.Cursor = 0
	l.Yank()
	if l.Text() != "hello world" {
		t.Fatalf("Text after Yank = %q, want %q", l.Text(), "hello world")
	}
}

func TestMoveWordForwardPunctuationStyle(t *testing.T) {
	l := NewFromText("foo.bar baz")
	l.MoveCursor(0)
	l.MoveWord(Forward, StylePunctuation, false, false)
	if l.Cursor != 3 {
		t.Fatalf("Cursor = %d, want 3 (end of 'foo')", l.Cursor)
	}
}

func TestMoveWordBackward(t *testing.T) {
	l := NewFromText("foo bar")
	l.MoveCursor(l.Len())
	l.MoveWord(Backward, StylePunctuation, false, false)
	if l.Cursor != 4 {
		t.Fatalf("Cursor = %d, want 4 (start of 'bar')", l.Cursor)
	}
}

func TestMoveWordEraseForward(t *testing.T) {
	l := NewFromText("foo bar")
	l.MoveCursor(0)
	l.MoveWord(Forward, StyleWhitespaceOnly, true, false)
	if l.Text() != " bar" {
		t.Fatalf("Text = %q, want %q", l.Text(), " bar")
	}
}

func TestJumpToFindsNextOccurrence(t *testing.T) {
	l := NewFromText("abcXdefXghi")
	l.MoveCursor(0)
	if moved := l.Jump(Forward, JumpTo, 'X'); !moved {
		t.Fatalf("Jump should find 'X'")
	}
	if l.Cursor != 3 {
		t.Fatalf("Cursor = %d, want 3", l.Cursor)
	}
}

func TestJumpTillStopsBeforeTarget(t *testing.T) {
	l := NewFromText("abcXdef")
	l.MoveCursor(0)
	l.Jump(Forward, JumpTill, 'X')
	if l.Cursor != 2 {
		t.Fatalf("Cursor = %d, want 2 (just before 'X')", l.Cursor)
	}
}

func TestReplaceCurrentToken(t *testing.T) {
	l := NewFromText("echo foo bar")
	l.MoveCursor(6) // inside "foo"
	l.ReplaceCurrentToken("replaced")
	if l.Text() != "echo replaced bar" {
		t.Fatalf("Text = %q, want %q", l.Text(), "echo replaced bar")
	}
}

func TestInsertStringClampsRange(t *testing.T) {
	l := New()
	l.InsertString("hello", 2, 1000)
	if l.Text() != "llo" {
		t.Fatalf("Text = %q, want %q (clamped)", l.Text(), "llo")
	}
}

func TestGraphemeBoundariesSplitsOnClusters(t *testing.T) {
	bounds := GraphemeBoundaries("ab")
	if len(bounds) != 3 {
		t.Fatalf("len(bounds) = %d, want 3 (0,1,2)", len(bounds))
	}
}
