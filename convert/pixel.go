// Package convert converts tiles between the 16-bit premultiplied working
// format and the 8-bit straight-alpha storage format.
//
// Conversions from 16 to 8 bits are dithered with a fixed noise table. The
// noise range is narrowed so that an 8-bit pixel converted to 16 bits and
// back comes out unchanged: alpha always round-trips, and colors round-trip
// whenever the pixel keeps enough coverage to hold 8 bits of color after
// premultiplication (alpha >= 37 of 255).
package convert

import "github.com/gogpu/paintcore"

// AlphaPolicy selects how To16 treats the 8-bit alpha channel.
type AlphaPolicy int

const (
	// KeepAlpha converts the 8-bit alpha like any other channel.
	KeepAlpha AlphaPolicy = iota

	// IgnoreAlpha treats the source as opaque and writes alpha = One.
	IgnoreAlpha
)

// String returns the policy name.
func (p AlphaPolicy) String() string {
	switch p {
	case KeepAlpha:
		return "KeepAlpha"
	case IgnoreAlpha:
		return "IgnoreAlpha"
	default:
		return "AlphaPolicy(?)"
	}
}

// to15 scales an 8-bit channel to fixed point, rounding to nearest.
//
// Formula: (v * One + 255/2) / 255
func to15(v uint8) uint32 {
	return (uint32(v)*paintcore.One + 255/2) / 255
}

// To16 converts one 8-bit straight-alpha pixel to a 16-bit premultiplied
// pixel.
func To16(r8, g8, b8, a8 uint8, policy AlphaPolicy) (r, g, b, a uint16) {
	aa := uint32(paintcore.One)
	if policy == KeepAlpha {
		aa = to15(a8)
	}
	r = uint16((to15(r8)*aa + paintcore.Half) >> 15)
	g = uint16((to15(g8)*aa + paintcore.Half) >> 15)
	b = uint16((to15(b8)*aa + paintcore.Half) >> 15)
	return r, g, b, uint16(aa)
}

// unpremultiply divides a premultiplied channel by alpha, rounding to
// nearest. The result is clamped to One so that a channel one unit above
// its alpha still converts to full intensity. The caller guarantees a != 0.
func unpremultiply(c, a uint32) uint32 {
	return min(((c<<15)+a/2)/a, paintcore.One)
}

// To8 converts one 16-bit premultiplied pixel to 8-bit straight alpha,
// dithering with the noise samples at cursor. It returns the cursor for the
// next pixel.
//
// The three color channels share one noise sample so dithering adds no hue
// noise; alpha draws its own sample. Fully transparent pixels come out as
// black.
func To8(r, g, b, a uint16, cursor int) (r8, g8, b8, a8 uint8, next int) {
	aa := uint32(a)
	var rr, gg, bb uint32
	if aa != 0 {
		rr = unpremultiply(uint32(r), aa)
		gg = unpremultiply(uint32(g), aa)
		bb = unpremultiply(uint32(b), aa)
	}

	addColor := uint32(noise[cursor])
	addAlpha := uint32(noise[cursor+1])

	r8 = uint8((rr*255 + addColor) >> 15)
	g8 = uint8((gg*255 + addColor) >> 15)
	b8 = uint8((bb*255 + addColor) >> 15)
	a8 = uint8((aa*255 + addAlpha) >> 15)
	return r8, g8, b8, a8, nextCursor(cursor)
}
