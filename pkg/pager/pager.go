// Package pager implements the completion pager: grid layout, 8-
// direction navigation with column memory, and search filtering.
package pager

import (
	"strings"

	"gitlab.com/tinyland/lab/shelline/pkg/escape"
)

// Flags describes the per-completion flags the pager and C10 consume.
type Flags struct {
	ReplacesToken bool
	NoSpace       bool
}

// Completion is one raw completion object as handed to the pager.
type Completion struct {
	Text        string
	Description string
	Flags       Flags
}

// Entry is a pager completion entry: one or more completions sharing a
// description, merged per §4.5 step 2.
type Entry struct {
	Completions      []string
	Description      string
	Representative   Completion
	CompletionWidth  int
	DescriptionWidth int
	PreferredWidth   int
}

// BuildEntries escapes each completion for display, merges entries with
// identical non-empty descriptions, and measures each group's widths.
func BuildEntries(completions []Completion, escapeFn func(string) string) []Entry {
	if escapeFn == nil {
		escapeFn = func(s string) string { return s }
	}

	var order []string
	byDesc := make(map[string]*Entry)
	var noDesc []Entry

	for _, c := range completions {
		text := escapeFn(c.Text)
		if c.Description == "" {
			noDesc = append(noDesc, entryFor([]string{text}, "", c))
			continue
		}
		if e, ok := byDesc[c.Description]; ok {
			e.Completions = append(e.Completions, text)
			continue
		}
		e := entryFor([]string{text}, c.Description, c)
		byDesc[c.Description] = &e
		order = append(order, c.Description)
	}

	entries := make([]Entry, 0, len(noDesc)+len(order))
	entries = append(entries, noDesc...)
	for _, d := range order {
		e := *byDesc[d]
		e.CompletionWidth = widthOfJoined(e.Completions)
		e.PreferredWidth = preferredWidth(e.CompletionWidth, e.DescriptionWidth, e.Description != "")
		entries = append(entries, e)
	}
	return entries
}

func entryFor(completions []string, description string, rep Completion) Entry {
	cw := widthOfJoined(completions)
	dw := escape.Width(description)
	return Entry{
		Completions:      completions,
		Description:      description,
		Representative:   rep,
		CompletionWidth:  cw,
		DescriptionWidth: dw,
		PreferredWidth:   preferredWidth(cw, dw, description != ""),
	}
}

func widthOfJoined(parts []string) int {
	return escape.Width(strings.Join(parts, ", "))
}

// preferredWidth is completion + separator(2) + "(" + description + ")"
// when a description is present, or just the completion width alone.
func preferredWidth(completionWidth, descriptionWidth int, hasDescription bool) int {
	if !hasDescription {
		return completionWidth
	}
	return completionWidth + 2 + 2 + descriptionWidth
}

// Filter keeps only entries whose description or any completion
// (prefixed by prefix) fuzzy-substring-matches query. An empty query
// matches everything.
func Filter(entries []Entry, prefix, query string) []Entry {
	if query == "" {
		return entries
	}
	var out []Entry
	for _, e := range entries {
		if fuzzyContains(e.Description, query) {
			out = append(out, e)
			continue
		}
		matched := false
		for _, c := range e.Completions {
			if fuzzyContains(prefix+c, query) {
				matched = true
				break
			}
		}
		if matched {
			out = append(out, e)
		}
	}
	return out
}

// fuzzyContains reports whether every rune of query appears in s, in
// order, case-insensitively, not necessarily contiguous.
func fuzzyContains(s, query string) bool {
	s = strings.ToLower(s)
	query = strings.ToLower(query)
	i := 0
	qr := []rune(query)
	if len(qr) == 0 {
		return true
	}
	for _, r := range s {
		if r == qr[i] {
			i++
			if i == len(qr) {
				return true
			}
		}
	}
	return false
}
