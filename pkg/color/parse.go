package color

import (
	"strconv"
	"strings"
)

var namedTokens = map[string]Named{
	"black": Black, "red": Red, "green": Green, "brown": Brown,
	"yellow": Yellow, "blue": Blue, "magenta": Magenta, "purple": Purple,
	"cyan": Cyan, "white": White,
	// fish's legacy bright-color spellings (original_source/src/color.cpp
	// predecessor), not covered by spec.md's base-eight list.
	"brblack": Black, "brred": Red, "brgreen": Green, "bryellow": Yellow,
	"brblue": Blue, "brmagenta": Magenta, "brcyan": Cyan, "brwhite": White,
}

// ParseToken parses a single color word or hex triple into a Color.
// Recognizes hex triples with or without a leading '#' (3 or 6 digits),
// named color words, and the special words "normal"/"reset". Unknown
// tokens yield (None, false).
func ParseToken(tok string) (Color, bool) {
	lower := strings.ToLower(strings.TrimSpace(tok))
	switch lower {
	case "":
		return None, false
	case "normal":
		return Normal, true
	case "reset":
		return Reset, true
	}
	if n, ok := namedTokens[lower]; ok {
		return NewNamed(n), true
	}
	if c, ok := parseHex(lower); ok {
		return c, true
	}
	return None, false
}

// parseHex parses "#rgb", "rgb", "#rrggbb", or "rrggbb" into an Rgb Color.
func parseHex(s string) (Color, bool) {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3:
		r, ok1 := hexNibble(s[0])
		g, ok2 := hexNibble(s[1])
		b, ok3 := hexNibble(s[2])
		if !ok1 || !ok2 || !ok3 {
			return None, false
		}
		return NewRGB(r*17, g*17, b*17), true
	case 6:
		rv, err1 := strconv.ParseUint(s[0:2], 16, 8)
		gv, err2 := strconv.ParseUint(s[2:4], 16, 8)
		bv, err3 := strconv.ParseUint(s[4:6], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return None, false
		}
		return NewRGB(uint8(rv), uint8(gv), uint8(bv)), true
	default:
		return None, false
	}
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// Args is the parsed result of a set_color-style argument list: any
// number of positional fallback foreground color candidates (first
// parseable one wins when rendering, but all are kept for Best), an
// optional background candidate, and the attribute bag.
type Args struct {
	Foreground []Color
	Background Color
	Attrs      Attrs
}

// ParseArgs parses a token list in the shape accepted by fish's
// set_color: zero or more positional color words (treated as ordered
// fallback candidates), modifier flags -o/--bold, -u/--underline,
// -i/--italics, -d/--dim, -r/--reverse, and -b/--background <color>.
// Unparseable positional tokens are silently skipped, matching fish's
// tolerance for stale/garbage $fish_color_* values.
func ParseArgs(tokens []string) Args {
	var args Args
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t {
		case "-o", "--bold":
			args.Attrs.Bold = true
		case "-u", "--underline":
			args.Attrs.Underline = true
		case "-i", "--italics":
			args.Attrs.Italic = true
		case "-d", "--dim":
			args.Attrs.Dim = true
		case "-r", "--reverse":
			args.Attrs.Reverse = true
		case "-b", "--background":
			if i+1 < len(tokens) {
				i++
				if c, ok := ParseToken(tokens[i]); ok {
					args.Background = c
				}
			}
		default:
			if strings.HasPrefix(t, "-b") && len(t) > 2 {
				if c, ok := ParseToken(t[2:]); ok {
					args.Background = c
				}
				continue
			}
			if c, ok := ParseToken(t); ok {
				args.Foreground = append(args.Foreground, c)
			}
		}
	}
	return args
}
