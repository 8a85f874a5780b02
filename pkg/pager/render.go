package pager

import (
	"fmt"
	"strings"

	"gitlab.com/tinyland/lab/shelline/pkg/color"
	"gitlab.com/tinyland/lab/shelline/pkg/escape"
)

// Row is one rendered completion cell: the shared-prefix text, the
// completion text, the description text (already padded/truncated to
// fit), and which highlight roles to draw each with.
type Row struct {
	Prefix          string
	Completion      string
	Description     string
	PrefixRole      color.Role
	CompletionRole  color.Role
	DescriptionRole color.Role
}

// RenderCell formats one grid cell for entry at columnWidth, giving
// more space to the completion and less to the description when the
// description would be truncated to less than 2 columns below its
// natural width. selected/alternate pick the role triple.
func RenderCell(entry Entry, prefix string, columnWidth int, selected, alternate bool) Row {
	completionRole, descriptionRole, prefixRole := roles(selected, alternate)

	completionText := strings.Join(entry.Completions, ", ")
	descText := entry.Description

	availableForDesc := columnWidth - entry.CompletionWidth - 4
	if descText != "" && escape.Width(descText) > availableForDesc {
		natural := escape.Width(descText)
		if natural-availableForDesc <= 2 {
			// Within the near-miss threshold: borrow width from the
			// completion side instead of truncating the description.
			availableForDesc = escape.Width(descText)
		}
		descText = truncateWithEllipsis(descText, availableForDesc)
	}

	pad := columnWidth - entry.CompletionWidth
	if pad < 0 {
		pad = 0
	}

	row := Row{
		Prefix:          prefix,
		Completion:      completionText + strings.Repeat(" ", pad),
		PrefixRole:      prefixRole,
		CompletionRole:  completionRole,
		DescriptionRole: descriptionRole,
	}
	if descText != "" {
		row.Description = fmt.Sprintf("  (%s)", descText)
	}
	return row
}

func roles(selected, alternate bool) (completion, description, prefix color.Role) {
	switch {
	case selected:
		return color.RolePagerSelectedCompletion, color.RolePagerSelectedDescription, color.RolePagerSelectedPrefix
	case alternate:
		return color.RolePagerSecondaryCompletion, color.RolePagerSecondaryDescription, color.RolePagerSecondaryPrefix
	default:
		return color.RolePagerCompletion, color.RolePagerDescription, color.RolePagerPrefix
	}
}

func truncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if escape.Width(s) <= maxWidth {
		return s
	}
	if maxWidth < 2 {
		return ""
	}
	rs := []rune(s)
	for k := len(rs); k >= 0; k-- {
		candidate := string(rs[:k]) + "…"
		if escape.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}

// Trailer returns the "...and K more rows" message, or "" when fully
// disclosed with nothing left to scroll to.
func Trailer(s *State) string {
	remaining := s.RemainingRows()
	if remaining <= 0 {
		return ""
	}
	return fmt.Sprintf("…and %d more rows", remaining)
}
