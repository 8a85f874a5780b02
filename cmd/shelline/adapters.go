package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gitlab.com/tinyland/lab/shelline/pkg/color"
	"gitlab.com/tinyland/lab/shelline/pkg/editor"
	"gitlab.com/tinyland/lab/shelline/pkg/expand"
	"gitlab.com/tinyland/lab/shelline/pkg/history"
)

// demoParser is a minimal stand-in for the external parser named in
// §6: it judges completeness by bracket/quote balance rather than a
// real grammar. The real parser/AST/expander is explicitly out of
// scope (§1); this exists only so the demo binary has something to
// call.
type demoParser struct{}

func (demoParser) DetectErrors(text string, acceptIncomplete bool) (ok, incomplete bool, errs []string) {
	depth := 0
	var quote rune
	escaped := false
	for _, r := range text {
		if escaped {
			escaped = false
			continue
		}
		switch {
		case quote != 0:
			if r == '\\' && quote == '"' {
				escaped = true
			} else if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '\\':
			escaped = true
		case r == '(':
			depth++
		case r == ')':
			depth--
		}
	}
	if quote != 0 || depth > 0 {
		return false, true, nil
	}
	if depth < 0 {
		return false, false, []string{"unexpected )"}
	}
	return true, false, nil
}

func (demoParser) LocateCmdsubstExtent(text string, cursor int) (start, end int) {
	runes := []rune(text)
	start, end = -1, -1
	depth := 0
	for i, r := range runes {
		switch r {
		case '(':
			if depth == 0 && i <= cursor {
				start = i
			}
			depth++
		case ')':
			depth--
			if depth == 0 && start >= 0 && i >= cursor {
				end = i + 1
				return start, end
			}
		}
	}
	if start >= 0 {
		return start, len(runes)
	}
	return 0, 0
}

// demoCompletionSource offers PATH executables (for a command-position
// token) and filesystem entries (otherwise), matching the narrow
// "complete(text, flags) -> list<completion>" contract in §6. The real
// completion source (glob expansion, completion scripts) is an
// external collaborator out of scope per §1.
type demoCompletionSource struct{}

func (demoCompletionSource) Complete(text string, flags editor.CompletionRequestFlags) []expand.Candidate {
	tokens := expand.Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	last := tokens[len(tokens)-1]
	prefix := string([]rune(text)[last.Start:last.Stop])

	var out []expand.Candidate
	if last.CommandPosition {
		out = append(out, pathCandidates(prefix)...)
	}
	out = append(out, fileCandidates(prefix)...)
	return out
}

func pathCandidates(prefix string) []expand.Candidate {
	var out []expand.Candidate
	for _, dir := range strings.Split(os.Getenv("PATH"), string(os.PathListSeparator)) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
				continue
			}
			out = append(out, expand.Candidate{Text: e.Name(), Flags: expand.CompletionFlags{ReplacesToken: true, AllowEscape: true}})
		}
	}
	return out
}

func fileCandidates(prefix string) []expand.Candidate {
	dir, base := filepath.Split(prefix)
	lookIn := dir
	if lookIn == "" {
		lookIn = "."
	}
	entries, err := os.ReadDir(lookIn)
	if err != nil {
		return nil
	}
	var out []expand.Candidate
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), base) {
			continue
		}
		text := dir + e.Name()
		flags := expand.CompletionFlags{ReplacesToken: true, AllowEscape: true}
		if e.IsDir() {
			text += "/"
			flags.NoSpace = true
		}
		out = append(out, expand.Candidate{Text: text, Flags: flags})
	}
	return out
}

// demoHighlighter assigns a highlight role per code point from
// command-position/token-position classification, reusing the same
// tokenizer C10's abbreviation expansion uses (§4.10), plus the error
// role for input the demo parser rejects as unbalanced, per §7's
// "parser error ... rendering the error role on the offending source
// range" policy.
type demoHighlighter struct{ parser demoParser }

func (h demoHighlighter) Highlight(text string) []color.Highlight {
	runes := []rune(text)
	hl := make([]color.Highlight, len(runes))
	tokens := expand.Tokenize(text)
	for _, tok := range tokens {
		role := color.RoleParam
		word := string(runes[tok.Start:tok.Stop])
		switch {
		case tok.CommandPosition:
			role = color.RoleCommand
		case strings.HasPrefix(word, "-"):
			role = color.RoleOperator
		case strings.ContainsAny(word, "<>|&"):
			role = color.RoleRedirection
		}
		for i := tok.Start; i < tok.Stop && i < len(hl); i++ {
			hl[i] = color.Highlight{Foreground: role}
		}
	}
	if _, incomplete, errs := h.parser.DetectErrors(text, true); !incomplete && len(errs) > 0 {
		for i := range hl {
			hl[i] = color.Highlight{Foreground: color.RoleError}
		}
	}
	return hl
}

// demoAutosuggester proposes the newest history item whose content
// starts with text, matching the "autosuggestion ... proposing a
// continuation ... from history" role described in the glossary.
type demoAutosuggester struct{ history *history.Store }

func (a demoAutosuggester) Suggest(text string) string {
	if text == "" || a.history == nil {
		return ""
	}
	cur := a.history.Search(history.Prefix, text, history.SearchFlags{})
	it, ok := cur.Next()
	if !ok || it.Content == text {
		return ""
	}
	return it.Content[len(text):]
}

// pathDetector implements editor.FileDetector by re-parsing content
// for bare filesystem-looking tokens, for AddPendingWithFileDetection
// (§4.6).
type pathDetector struct{}

func (pathDetector) DetectPaths(content string) []string { return detectReferencedPaths(content) }

func detectReferencedPaths(content string) []string {
	var out []string
	for _, tok := range strings.Fields(content) {
		tok = strings.Trim(tok, "'\"")
		if strings.ContainsAny(tok, "/.") {
			if _, err := os.Stat(tok); err == nil {
				out = append(out, tok)
			}
		}
	}
	return out
}

// runCommand executes the accepted command line through the user's
// shell, transferring terminal ownership away per §5's "executing a
// user command" suspension point; the real job/process supervisor is
// out of scope (§1) so this is the demo's narrow stand-in.
func runCommand(text string) error {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	cmd := exec.Command(shell, "-c", text)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
