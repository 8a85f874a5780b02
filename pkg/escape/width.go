package escape

import (
	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

const tabStop = 8

// IsRunTerminator reports whether r ends a run: NUL, newline, carriage
// return, or form feed.
func IsRunTerminator(r rune) bool {
	switch r {
	case 0, '\n', '\r', ctrlL:
		return true
	default:
		return false
	}
}

// SplitRuns splits s at run terminators, excluding the terminators
// themselves from the returned runs.
func SplitRuns(s string) []string {
	var runs []string
	start := 0
	rs := []rune(s)
	for i, r := range rs {
		if IsRunTerminator(r) {
			runs = append(runs, string(rs[start:i]))
			start = i + 1
		}
	}
	runs = append(runs, string(rs[start:]))
	return runs
}

// clusters splits a run (assumed free of run terminators) into grapheme
// clusters, so that combining marks are measured together with their
// base character rather than as independent zero-width runes.
func clusters(s string) []string {
	var out []string
	seg := graphemes.FromString(s)
	for seg.Next() {
		out = append(out, seg.Value())
	}
	return out
}

// ClusterWidth returns the display width of a single grapheme cluster:
// the width of its first rune (go-runewidth's East-Asian-aware table),
// with combining/zero-width trailing runes contributing nothing extra.
// A leading control character (width -1 from go-runewidth) is reported
// as -1 here; callers measuring a whole run treat a leading -1 as 0.
func ClusterWidth(cluster string) int {
	rs := []rune(cluster)
	if len(rs) == 0 {
		return 0
	}
	return runewidth.RuneWidth(rs[0])
}

// MeasureRun computes the display width of a run (a slice of text
// containing no run terminator). Tabs advance to the next multiple-of-8
// column. A leading control character of width -1 counts as 0 instead,
// matching terminals that render an unprintable leading byte as nothing
// rather than backing the cursor up. Escape sequences recognized by caps
// contribute 0 width and are skipped over entirely.
func MeasureRun(caps *Capabilities, run string) int {
	width := 0
	rs := []rune(run)
	i := 0
	for i < len(rs) {
		if rs[i] == esc {
			if n := Len(caps, string(rs[i:])); n > 0 {
				i += n
				continue
			}
		}
		if rs[i] == '\t' {
			width += tabStop - (width % tabStop)
			i++
			continue
		}

		// Advance by one grapheme cluster starting at i.
		rest := string(rs[i:])
		cs := clusters(rest)
		var cluster string
		if len(cs) > 0 {
			cluster = cs[0]
		} else {
			cluster = string(rs[i])
		}
		w := ClusterWidth(cluster)
		if w < 0 {
			w = 0
		}
		width += w
		i += len([]rune(cluster))
	}
	return width
}

// Width is a convenience wrapper measuring a string that is known to
// contain neither run terminators nor escape sequences.
func Width(s string) int {
	return MeasureRun(nil, s)
}
