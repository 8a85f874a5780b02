// Package promptlayout selects how much of the left prompt, right
// prompt, command line, and autosuggestion fit together on one row,
// picking the richest of five fixed layouts that fits the terminal
// width.
package promptlayout

import (
	"strings"

	"gitlab.com/tinyland/lab/shelline/pkg/escape"
)

// Case identifies which of the five fit layouts was selected.
type Case int

const (
	CaseAll Case = iota
	CaseDropSuggestion
	CaseDropRightPrompt
	CaseDropRightPromptTruncateSuggestion
	CaseFallback
)

// Result is the outcome of Layout: the (possibly truncated/dropped)
// pieces to draw, ready for the screen diff engine.
type Result struct {
	Case                   Case
	Left                   escape.Layout
	Right                  escape.Layout
	Suggestion             string
	SuggestionTruncated    bool
}

// Layout implements §4.4: given a screen width, a left prompt, a right
// prompt, the first line of the command, and an autosuggestion string,
// pick the first of the five layouts that fits. A command line
// containing a newline always drops the autosuggestion.
func Layout(caps *escape.Capabilities, width int, leftPrompt, rightPrompt, commandFirstLine, suggestion string, cache *escape.LayoutCache) Result {
	if strings.ContainsRune(commandFirstLine, '\n') {
		suggestion = ""
	}

	left := layoutOf(cache, caps, leftPrompt, width)
	cmdWidth := escape.MeasureRun(caps, commandFirstLine)

	// Case 1: everything fits.
	right := layoutOf(cache, caps, rightPrompt, width)
	sugWidth := escape.Width(suggestion)
	if left.LastWidth+right.LastWidth+cmdWidth+sugWidth <= width {
		return Result{Case: CaseAll, Left: left, Right: right, Suggestion: suggestion}
	}

	// Case 2: drop the autosuggestion; if room remains, show a
	// truncated-with-ellipsis form of it instead of nothing.
	if left.LastWidth+right.LastWidth+cmdWidth <= width {
		remaining := width - (left.LastWidth + right.LastWidth + cmdWidth)
		trunc, truncated := truncateSuggestion(suggestion, remaining)
		return Result{Case: CaseDropSuggestion, Left: left, Right: right, Suggestion: trunc, SuggestionTruncated: truncated}
	}

	// Case 3: drop the right prompt, keep the suggestion in full.
	noRight := escape.Layout{}
	if left.LastWidth+cmdWidth+sugWidth <= width {
		return Result{Case: CaseDropRightPrompt, Left: left, Right: noRight, Suggestion: suggestion}
	}

	// Case 4: drop the right prompt; truncate the suggestion if room
	// remains.
	if left.LastWidth+cmdWidth <= width {
		remaining := width - (left.LastWidth + cmdWidth)
		trunc, truncated := truncateSuggestion(suggestion, remaining)
		return Result{Case: CaseDropRightPromptTruncateSuggestion, Left: left, Right: noRight, Suggestion: trunc, SuggestionTruncated: truncated}
	}

	// Case 5: fallback. Keep left, drop right, keep suggestion; may
	// exceed width.
	return Result{Case: CaseFallback, Left: left, Right: noRight, Suggestion: suggestion}
}

func layoutOf(cache *escape.LayoutCache, caps *escape.Capabilities, prompt string, width int) escape.Layout {
	if cache != nil {
		return cache.Get(prompt, width)
	}
	return escape.CalcPromptLayout(caps, prompt, width)
}

const ellipsis = "…"

// truncateSuggestion keeps the suggestion in full if it already fits
// within remaining columns; otherwise, if at least two columns remain,
// truncates it with a trailing ellipsis; otherwise drops it entirely.
func truncateSuggestion(suggestion string, remaining int) (string, bool) {
	if suggestion == "" {
		return "", false
	}
	if escape.Width(suggestion) <= remaining {
		return suggestion, false
	}
	if remaining < 2 {
		return "", true
	}
	rs := []rune(suggestion)
	for k := len(rs); k >= 0; k-- {
		candidate := string(rs[:k]) + ellipsis
		if escape.Width(candidate) <= remaining {
			return candidate, true
		}
	}
	return "", true
}
