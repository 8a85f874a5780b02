package expand

// CompletionFlags mirror the flags the pager attaches to a completion
// candidate.
type CompletionFlags struct {
	ReplacesToken  bool
	NoSpace        bool
	AllowEscape    bool
	SuppressTilde  bool
}

// Candidate is one completion result as delivered by the external
// completion source.
type Candidate struct {
	Text  string
	Flags CompletionFlags
}

// ApplyCompletion inserts candidate into text at cursor per §4.10:
// locates the current token, replaces or appends per ReplacesToken,
// escapes the candidate for the token's quoting context when allowed,
// appends a trailing space unless NoSpace (moved past a closing quote
// if present, synthesizing one if the token's quote is still open and
// the insertion isn't replacing it outright).
func ApplyCompletion(text string, cursor int, c Candidate) (newText string, newCursor int) {
	tok := tokenAt(text, cursor)
	runes := []rune(text)

	quote := openQuoteAt(text, Token{Start: tok.Start, Stop: cursor})
	insertText := c.Text
	if c.Flags.AllowEscape {
		if quote != 0 {
			insertText = escapeForQuote(insertText, quote)
		} else {
			insertText = shellEscape(insertText, c.Flags.SuppressTilde)
		}
	}

	insertAt := cursor
	var prefix, suffix []rune
	if c.Flags.ReplacesToken {
		insertAt = tok.Start
		prefix = runes[:tok.Start]
		suffix = runes[cursor:]
	} else {
		prefix = runes[:cursor]
		suffix = runes[cursor:]
	}

	// If a closing quote follows immediately in suffix, the candidate
	// lands inside the quote and, when a trailing space is due, the
	// space goes after that quote rather than before it.
	closingQuoteFollows := quote != 0 && len(suffix) > 0 && suffix[0] == quote

	body := []rune(insertText)
	newCursor = insertAt + len(body)

	var out []rune
	out = append(out, prefix...)
	out = append(out, body...)
	switch {
	case c.Flags.NoSpace:
		out = append(out, suffix...)
	case closingQuoteFollows:
		out = append(out, suffix[0])
		out = append(out, ' ')
		out = append(out, suffix[1:]...)
	case !c.Flags.ReplacesToken && quote != 0:
		// The token's quote is still open and nothing closes it in
		// suffix; synthesize the closing quote before the trailing
		// space rather than leaving it open and the candidate's
		// metacharacters effectively unquoted.
		out = append(out, quote)
		out = append(out, ' ')
		out = append(out, suffix...)
	default:
		out = append(out, ' ')
		out = append(out, suffix...)
	}

	return string(out), newCursor
}
