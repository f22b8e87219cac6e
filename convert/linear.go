package convert

import (
	"github.com/gogpu/paintcore"
	"github.com/lucasb-eyer/go-colorful"
)

// Lookup tables between 15-bit sRGB-encoded and 15-bit linear-light values,
// indexed by the fixed-point input in [0, One]. 64KiB each, built at package
// initialization.
var (
	srgbToLinear = buildCurve(func(v float64) float64 {
		r, _, _ := colorful.Color{R: v, G: v, B: v}.LinearRgb()
		return r
	})
	linearToSRGB = buildCurve(func(v float64) float64 {
		return colorful.LinearRgb(v, v, v).R
	})
)

func buildCurve(f func(float64) float64) *[paintcore.One + 1]uint16 {
	var t [paintcore.One + 1]uint16
	for i := range t {
		t[i] = paintcore.FromFloat(f(float64(i) / paintcore.One))
	}
	return &t
}

// SRGBToLinear converts a 15-bit sRGB-encoded value to linear light.
func SRGBToLinear(v uint16) uint16 {
	return srgbToLinear[v]
}

// LinearToSRGB converts a 15-bit linear-light value to sRGB encoding.
func LinearToSRGB(v uint16) uint16 {
	return linearToSRGB[v]
}

// RGBA8ToLinearRGBA16 converts an 8-bit sRGB straight-alpha tile to 16-bit
// premultiplied linear light. Alpha is not gamma-encoded and is only
// rescaled.
func RGBA8ToLinearRGBA16(src []uint8, dst []uint16) {
	if paintcore.HeavyDebug {
		paintcore.Assert(paintcore.ValidateTile8(src))
		paintcore.Assert(paintcore.ValidateTile16(dst))
	}

	src = src[:paintcore.TileLen]
	dst = dst[:paintcore.TileLen]
	for i := 0; i < paintcore.TileLen; i += 4 {
		a := to15(src[i+3])
		r := uint32(srgbToLinear[to15(src[i])])
		g := uint32(srgbToLinear[to15(src[i+1])])
		b := uint32(srgbToLinear[to15(src[i+2])])

		dst[i] = uint16((r*a + paintcore.Half) >> 15)
		dst[i+1] = uint16((g*a + paintcore.Half) >> 15)
		dst[i+2] = uint16((b*a + paintcore.Half) >> 15)
		dst[i+3] = uint16(a)
	}
}

// LinearRGBU16ToRGBU8 converts an opaque linear-light tile to 8-bit sRGB
// for display, dithering like RGBU16ToRGBU8.
func LinearRGBU16ToRGBU8(src []uint16, dst []uint8) {
	if paintcore.HeavyDebug {
		paintcore.Assert(paintcore.ValidateTile16(src))
		paintcore.Assert(paintcore.ValidateTile8(dst))
	}

	src = src[:paintcore.TileLen]
	dst = dst[:paintcore.TileLen]
	for i := 0; i < paintcore.TileLen; i += 4 {
		add := uint32(noise[i>>2])

		dst[i] = uint8((uint32(linearToSRGB[src[i]])*255 + add) >> 15)
		dst[i+1] = uint8((uint32(linearToSRGB[src[i+1]])*255 + add) >> 15)
		dst[i+2] = uint8((uint32(linearToSRGB[src[i+2]])*255 + add) >> 15)
		dst[i+3] = 255
	}
}
