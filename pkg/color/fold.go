package color

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Support describes which color depths a terminal can render, mirroring
// the capability mask best_color is defined against in spec.md §4.2.
type Support struct {
	Term256   bool
	Term24Bit bool
}

// SupportFromProfile derives a Support mask from a termenv color
// profile, so callers that already detected terminal capabilities via
// termenv don't need to duplicate the profile→mask mapping.
func SupportFromProfile(hasANSI256, hasTrueColor bool) Support {
	return Support{Term256: hasANSI256, Term24Bit: hasTrueColor}
}

// cube256Levels are the six intensity levels of the 6x6x6 color cube
// occupying 256-color palette indices 16-231.
var cube256Levels = [6]uint8{0, 95, 135, 175, 215, 255}

// Fold reduces c to a form representable given support. Rgb colors pass
// through unchanged when 24-bit color is supported. Otherwise, if
// 256-color is supported, the Rgb value is snapped to the nearest cube
// or grayscale-ramp color (still represented as Rgb, now at one of the
// palette's exact values). Otherwise it is folded to the nearest of the
// eleven base Named colors. Named/Normal/Reset/None colors always pass
// through unchanged. Fold is idempotent: folding an already-folded color
// again returns the same color, since cube/gray-ramp snapping is a
// projection and Named colors are left alone.
func Fold(c Color, support Support) Color {
	if c.Kind != KindRgb {
		return c
	}
	if support.Term24Bit {
		return c
	}
	if support.Term256 {
		r, g, b := nearestCube256(c.R, c.G, c.B)
		return NewRGB(r, g, b)
	}
	return NewNamed(nearestNamedColor(c.R, c.G, c.B))
}

// Best selects the best representable color among candidates for the
// given support mask. An Rgb candidate is returned unchanged when
// 24-bit color is supported. Otherwise, a Named candidate (exactly
// representable on any terminal) is preferred over folding an Rgb
// candidate. If only Rgb candidates are present, the first one is
// folded per support. Stable under repeated application: re-running
// Best over its own single-element output returns that output again.
func Best(candidates []Color, support Support) Color {
	if len(candidates) == 0 {
		return None
	}
	if support.Term24Bit {
		for _, c := range candidates {
			if c.Kind == KindRgb {
				return c
			}
		}
	}
	for _, c := range candidates {
		if c.Kind == KindNamed || c.Kind == KindNormal || c.Kind == KindReset {
			return c
		}
	}
	for _, c := range candidates {
		if c.Kind == KindRgb {
			return Fold(c, support)
		}
	}
	return candidates[0]
}

// nearestCube256 snaps (r,g,b) to the nearest representable value among
// the 216 colors of the 6x6x6 cube and the 24-step grayscale ramp,
// picking whichever family is closer by perceptual RGB distance.
func nearestCube256(r, g, b uint8) (uint8, uint8, uint8) {
	target := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}

	cr := nearestCubeComponent(r)
	cg := nearestCubeComponent(g)
	cb := nearestCubeComponent(b)
	cube := colorful.Color{R: float64(cr) / 255, G: float64(cg) / 255, B: float64(cb) / 255}

	// The 24-step ramp occupies indices 232-255 at levels 8, 18, ..., 238.
	step := ((int(r)+int(g)+int(b))/3 - 3) / 10
	if step < 0 {
		step = 0
	} else if step > 23 {
		step = 23
	}
	gray := uint8(8 + 10*step)
	grayColor := colorful.Color{R: float64(gray) / 255, G: float64(gray) / 255, B: float64(gray) / 255}

	if target.DistanceRgb(grayColor) < target.DistanceRgb(cube) {
		return gray, gray, gray
	}
	return cr, cg, cb
}

func nearestCubeComponent(v uint8) uint8 {
	best := cube256Levels[0]
	bestDist := absInt(int(v) - int(best))
	for _, lv := range cube256Levels[1:] {
		d := absInt(int(v) - int(lv))
		if d < bestDist {
			bestDist = d
			best = lv
		}
	}
	return best
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// nearestNamedColor folds an Rgb value to whichever of the eleven base
// named colors is perceptually closest, by RGB distance in go-colorful's
// color space.
func nearestNamedColor(r, g, b uint8) Named {
	target := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}

	best := Black
	bestDist := -1.0
	for n, rgb := range namedRGB {
		c := colorful.Color{R: float64(rgb[0]) / 255, G: float64(rgb[1]) / 255, B: float64(rgb[2]) / 255}
		d := target.DistanceRgb(c)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = Named(n)
		}
	}
	return best
}
