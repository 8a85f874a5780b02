package escape

import "testing"

func testCaps() *Capabilities {
	return NewCapabilities(
		"\x1b[1m",   // enter_bold_mode
		"\x1b[22m",  // exit attribute-ish
		"\x1b[4m",   // enter_underline_mode
		"\x1b[23m",  // exit_italics_mode
	)
}

func TestLenRecognizesCapabilityAttr(t *testing.T) {
	caps := testCaps()
	n := Len(caps, "\x1b[1mhello")
	if n != 4 {
		t.Fatalf("Len = %d, want 4", n)
	}
}

func TestLenZeroWhenNotEscape(t *testing.T) {
	if n := Len(testCaps(), "hello"); n != 0 {
		t.Fatalf("Len = %d, want 0", n)
	}
}

func TestLenZeroForUnrecognizedFamily(t *testing.T) {
	// ESC followed by a control char outside every family's grammar.
	if n := Len(nil, "\x1b\x01"); n != 0 {
		t.Fatalf("Len = %d, want 0", n)
	}
}

func TestLenCSIGeneric(t *testing.T) {
	n := Len(nil, "\x1b[38;5;200mtext")
	if n != len("\x1b[38;5;200m") {
		t.Fatalf("Len = %d, want %d", n, len("\x1b[38;5;200m"))
	}
}

func TestLenThreeByte(t *testing.T) {
	n := Len(nil, "\x1b[A")
	if n != 3 {
		t.Fatalf("Len = %d, want 3", n)
	}
}

func TestLenTwoByte(t *testing.T) {
	n := Len(nil, "\x1bM")
	if n != 2 {
		t.Fatalf("Len = %d, want 2", n)
	}
}

func TestLenOSCTerminatedByBEL(t *testing.T) {
	n := Len(nil, "\x1b]0;title\atext")
	if n != len("\x1b]0;title\a") {
		t.Fatalf("Len = %d, want %d", n, len("\x1b]0;title\a"))
	}
}

func TestLenOSCTerminatedByST(t *testing.T) {
	n := Len(nil, "\x1b]0;title\x1b\\text")
	if n != len("\x1b]0;title\x1b\\") {
		t.Fatalf("Len = %d, want %d", n, len("\x1b]0;title\x1b\\"))
	}
}

func TestLenWindowTitle(t *testing.T) {
	n := Len(nil, "\x1bksome title\x1b\\rest")
	if n != len("\x1bksome title\x1b\\") {
		t.Fatalf("Len = %d, want %d", n, len("\x1bksome title\x1b\\"))
	}
}

func TestLenTmuxSingleEscapeTerminates(t *testing.T) {
	// A single ESC before the backslash is an odd count: terminator.
	seq := "\x1bPtmux;payload\x1b\\rest"
	n := Len(nil, seq)
	if n != len("\x1bPtmux;payload\x1b\\") {
		t.Fatalf("Len = %d, want %d", n, len("\x1bPtmux;payload\x1b\\"))
	}
}

func TestLenTmuxDoubledEscapeIsEscapedLiteral(t *testing.T) {
	// Two ESCs before the backslash: even count, so the backslash is an
	// escaped literal and the payload continues past it.
	seq := "\x1bPtmux;a\x1b\x1b\\bmore\x1b\\"
	n := Len(nil, seq)
	want := len("\x1bPtmux;a\x1b\x1b\\bmore\x1b\\")
	if n != want {
		t.Fatalf("Len = %d, want %d", n, want)
	}
}

func TestMeasureRunEmpty(t *testing.T) {
	if w := MeasureRun(nil, ""); w != 0 {
		t.Fatalf("MeasureRun(\"\") = %d, want 0", w)
	}
}

func TestMeasureRunAdditive(t *testing.T) {
	a, b := "hello ", "world"
	wa := MeasureRun(nil, a)
	wtotal := MeasureRun(nil, a+b)
	wb := MeasureRun(nil, b)
	if wtotal != wa+wb {
		t.Fatalf("MeasureRun not additive: %d + %d != %d", wa, wb, wtotal)
	}
}

func TestMeasureRunTabStop(t *testing.T) {
	if w := MeasureRun(nil, "\t"); w != 8 {
		t.Fatalf("MeasureRun(tab) = %d, want 8", w)
	}
	if w := MeasureRun(nil, "a\t"); w != 8 {
		t.Fatalf("MeasureRun(a+tab) = %d, want 8", w)
	}
	if w := MeasureRun(nil, "12345678\t"); w != 16 {
		t.Fatalf("MeasureRun = %d, want 16", w)
	}
}

func TestMeasureRunLeadingControlIsZero(t *testing.T) {
	if w := MeasureRun(nil, "\x01abc"); w != 3 {
		t.Fatalf("MeasureRun = %d, want 3", w)
	}
}

func TestMeasureRunSkipsEscape(t *testing.T) {
	caps := testCaps()
	plain := MeasureRun(caps, "hello")
	withEscape := MeasureRun(caps, "\x1b[1mhello\x1b[22m")
	if plain != withEscape {
		t.Fatalf("escape contributed width: %d != %d", plain, withEscape)
	}
}

func TestSplitRuns(t *testing.T) {
	runs := SplitRuns("foo\nbar\rbaz")
	want := []string{"foo", "bar", "baz"}
	if len(runs) != len(want) {
		t.Fatalf("SplitRuns = %v, want %v", runs, want)
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Fatalf("SplitRuns[%d] = %q, want %q", i, runs[i], want[i])
		}
	}
}
