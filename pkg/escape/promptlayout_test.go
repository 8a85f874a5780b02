package escape

import "testing"

func TestCalcPromptLayoutFitsWithoutTruncation(t *testing.T) {
	l := CalcPromptLayout(nil, "short", 80)
	if l.Text != "short" {
		t.Fatalf("Text = %q, want %q", l.Text, "short")
	}
	if l.MaxWidth != 5 || l.LastWidth != 5 {
		t.Fatalf("widths = %d/%d, want 5/5", l.MaxWidth, l.LastWidth)
	}
}

func TestCalcPromptLayoutTruncatesLongRun(t *testing.T) {
	l := CalcPromptLayout(nil, "0123456789abcdef", 8)
	if l.MaxWidth > 8 {
		t.Fatalf("MaxWidth = %d, want <= 8", l.MaxWidth)
	}
	if len([]rune(l.Text)) == 0 || []rune(l.Text)[0] != []rune(ellipsis)[0] {
		t.Fatalf("Text = %q, want leading ellipsis", l.Text)
	}
}

func TestCalcPromptLayoutNeverExceedsMaxWidth(t *testing.T) {
	prompts := []string{"", "a", "hello world", "0123456789abcdefghijklmnop"}
	for _, p := range prompts {
		for w := 2; w <= 20; w++ {
			l := CalcPromptLayout(nil, p, w)
			if l.MaxWidth > w {
				t.Fatalf("CalcPromptLayout(%q, %d).MaxWidth = %d, exceeds max", p, w, l.MaxWidth)
			}
		}
	}
}

func TestCalcPromptLayoutMultiLine(t *testing.T) {
	l := CalcPromptLayout(nil, "line one\nline two", 80)
	if len(l.LineBreaks) != 1 {
		t.Fatalf("LineBreaks = %v, want 1 entry", l.LineBreaks)
	}
}

func TestLayoutCacheReturnsSameResultAndEvicts(t *testing.T) {
	c := NewLayoutCache(nil, 2)
	a := c.Get("prompt-a", 40)
	again := c.Get("prompt-a", 40)
	if a.Text != again.Text {
		t.Fatalf("cache returned different results for same key")
	}
	c.Get("prompt-b", 40)
	c.Get("prompt-c", 40) // evicts prompt-a
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (bounded)", c.Len())
	}
}
