package paintcore

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a straight (non-premultiplied) fixed-point color.
// Each component is in the range [0, One].
//
// RGB is used for paint colors handed to dab operators and for flat
// backgrounds.
type RGB struct {
	R, G, B uint16
}

// White is the default flat background.
var White = RGB{R: One, G: One, B: One}

// FromColorful converts a go-colorful color, clamping it into gamut first.
func FromColorful(c colorful.Color) RGB {
	c = c.Clamped()
	return RGB{R: FromFloat(c.R), G: FromFloat(c.G), B: FromFloat(c.B)}
}

// FromColor converts a standard color.Color. Alpha is discarded.
func FromColor(c color.Color) RGB {
	cc, _ := colorful.MakeColor(c)
	return FromColorful(cc)
}

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (RGB, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("paintcore: parse color %q: %w", s, err)
	}
	return FromColorful(c), nil
}

// HSV creates a color from hue in degrees [0, 360) and saturation and value
// in [0, 1]. Brush engines keep their color in HSV.
func HSV(h, s, v float64) RGB {
	return FromColorful(colorful.Hsv(h, s, v))
}

// Colorful converts c to a go-colorful color.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: ToFloat(c.R), G: ToFloat(c.G), B: ToFloat(c.B)}
}

// Hex formats c as "#rrggbb".
func (c RGB) Hex() string {
	return c.Colorful().Hex()
}

// Premultiply scales c by alpha a, rounding to nearest.
//
// Formula: (c * a + One/2) / One
func (c RGB) Premultiply(a uint16) (r, g, b uint16) {
	aa := uint32(a)
	r = uint16((uint32(c.R)*aa + Half) >> 15)
	g = uint16((uint32(c.G)*aa + Half) >> 15)
	b = uint16((uint32(c.B)*aa + Half) >> 15)
	return r, g, b
}
