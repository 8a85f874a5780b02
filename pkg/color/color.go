// Package color implements the color/attribute model: parsing of
// set_color-style tokens into a tagged Color variant plus an attribute
// bag, and selecting/folding the best representable color for a given
// terminal's capabilities.
package color

// Kind tags the variant a Color holds.
type Kind int

const (
	KindNone Kind = iota
	KindNamed
	KindRgb
	KindNormal
	KindReset
)

// Named enumerates the closed set of base named colors, index 0-10,
// matching the palette a plain terminal can always render without 256-
// or 24-bit color support.
type Named int

const (
	Black Named = iota
	Red
	Green
	Brown
	Yellow
	Blue
	Magenta
	Purple
	Cyan
	White
	NamedNormal
)

var namedNames = [...]string{
	Black: "black", Red: "red", Green: "green", Brown: "brown",
	Yellow: "yellow", Blue: "blue", Magenta: "magenta", Purple: "purple",
	Cyan: "cyan", White: "white", NamedNormal: "normal",
}

// namedRGB gives a representative RGB value for each named color, used
// only when folding an RGB color down to its nearest named equivalent.
var namedRGB = [...][3]uint8{
	Black:       {0, 0, 0},
	Red:         {194, 54, 33},
	Green:       {37, 188, 36},
	Brown:       {173, 173, 39},
	Yellow:      {255, 255, 85},
	Blue:        {38, 139, 210},
	Magenta:     {211, 56, 211},
	Purple:      {163, 71, 186},
	Cyan:        {51, 187, 200},
	White:       {203, 204, 205},
	NamedNormal: {192, 192, 192},
}

// Color is a tagged variant: {None, Named(0-10), Rgb(r,g,b), Normal,
// Reset}. Equality is structural (plain == works). A color is "special"
// if it is neither Named nor Rgb.
type Color struct {
	Kind  Kind
	Named Named
	R, G, B uint8
}

// None is the zero Color.
var None = Color{Kind: KindNone}

// Normal is the special "inherit terminal default" color.
var Normal = Color{Kind: KindNormal}

// Reset is the special "reset all attributes" color.
var Reset = Color{Kind: KindReset}

// NewNamed constructs a Named color.
func NewNamed(n Named) Color { return Color{Kind: KindNamed, Named: n} }

// NewRGB constructs an Rgb color.
func NewRGB(r, g, b uint8) Color { return Color{Kind: KindRgb, R: r, G: g, B: b} }

// Special reports whether c is not Named and not Rgb.
func (c Color) Special() bool {
	return c.Kind != KindNamed && c.Kind != KindRgb
}

// Attrs is the independent attribute bag accompanying a Color.
type Attrs struct {
	Bold      bool
	Underline bool
	Italic    bool
	Dim       bool
	Reverse   bool
}

// Spec pairs a Color with its Attrs, as fish's set_color produces.
type Spec struct {
	Color Color
	Attrs Attrs
}
