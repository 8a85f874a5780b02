package color

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Profile wraps the subset of termenv's color-profile detection this
// package needs, so Render never has to special-case terminal probing
// itself.
type Profile struct {
	profile termenv.Profile
}

// DetectProfile probes the current terminal's color support via termenv
// and returns the matching Support mask plus a Profile usable with
// Render.
func DetectProfile() (Profile, Support) {
	p := termenv.EnvColorProfile()
	return Profile{profile: p}, Support{
		Term256:   p >= termenv.ANSI256,
		Term24Bit: p >= termenv.TrueColor,
	}
}

// Render folds spec.Color to what p supports and returns the ANSI
// escape sequence that applies spec's color and attributes, built with
// lipgloss so attribute combination (bold+underline+reverse, etc.)
// follows the same code path the rest of the module uses for styling.
func Render(p Profile, spec Spec, support Support) string {
	style := lipgloss.NewStyle()

	folded := Fold(spec.Color, support)
	if fg, ok := ansiColor(p, folded); ok {
		style = style.Foreground(fg)
	}
	if spec.Attrs.Bold {
		style = style.Bold(true)
	}
	if spec.Attrs.Underline {
		style = style.Underline(true)
	}
	if spec.Attrs.Italic {
		style = style.Italic(true)
	}
	if spec.Attrs.Reverse {
		style = style.Reverse(true)
	}
	if spec.Attrs.Dim {
		style = style.Faint(true)
	}

	rendered := style.Render("\x00")
	i := strings.IndexByte(rendered, 0)
	if i < 0 {
		return ""
	}
	return rendered[:i]
}

// RenderReset returns the escape sequence that clears all SGR
// attributes, for use after a Render'd region ends.
func RenderReset() string {
	return "\x1b[0m"
}

func ansiColor(p Profile, c Color) (termenv.Color, bool) {
	switch c.Kind {
	case KindNamed:
		if c.Named == NamedNormal {
			return nil, false
		}
		return p.profile.Color(strconv.Itoa(ansiIndex(c.Named))), true
	case KindRgb:
		return p.profile.Color(rgbHex(c)), true
	default:
		return nil, false
	}
}

// ansiIndex maps a Named color to its standard SGR 30-37 foreground
// index (0-7; Brown and Yellow share 3, Magenta and Purple share 5).
// NamedNormal maps to the terminal default and is handled by the caller
// skipping Foreground entirely.
func ansiIndex(n Named) int {
	if n == NamedNormal {
		return 9 // "default foreground" per ANSI/SGR
	}
	return ansiIndexes[n]
}

var ansiIndexes = [...]int{
	Black: 0, Red: 1, Green: 2, Brown: 3, Yellow: 3, Blue: 4,
	Magenta: 5, Purple: 5, Cyan: 6, White: 7,
}

func rgbHex(c Color) string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 7)
	buf[0] = '#'
	put := func(i int, v uint8) {
		buf[i] = hexDigits[v>>4]
		buf[i+1] = hexDigits[v&0xf]
	}
	put(1, c.R)
	put(3, c.G)
	put(5, c.B)
	return string(buf)
}

// Name returns the canonical lowercase word for a Named color, as
// accepted back by ParseToken.
func Name(n Named) string {
	if int(n) < 0 || int(n) >= len(namedNames) {
		return ""
	}
	return namedNames[n]
}
