// Package backdrop converts tiles between the translucent premultiplied
// representation and an opaque representation composited over a flat
// background.
//
// Flatten composites a layer over its background. Unflatten goes the other
// way: it finds the least opaque layer that, composited over the same
// background, reproduces the flat colors. Layers that were flattened and
// unflattened against the same background come back with their original
// colors and at least their original alpha.
package backdrop

import "github.com/gogpu/paintcore"

// Background is a flat, non-premultiplied color source sampled per pixel.
// Its alpha, if any, is ignored.
type Background struct {
	pix  []uint16
	step int
}

// Solid returns a background that repeats c over the whole tile.
func Solid(c paintcore.RGB) Background {
	return Background{pix: []uint16{c.R, c.G, c.B, paintcore.One}}
}

// Tile returns a background that samples a full 16-bit tile, one pixel per
// destination pixel. Use it for patterned backgrounds.
func Tile(buf []uint16) Background {
	if paintcore.HeavyDebug {
		paintcore.Assert(paintcore.ValidateTile16(buf))
	}
	return Background{pix: buf, step: 4}
}

// At returns the background color under pixel i of the tile.
func (bg Background) At(i int) (r, g, b uint16) {
	o := i * bg.step
	p := bg.pix[o : o+3 : o+3]
	return p[0], p[1], p[2]
}

// RequiredAlpha returns the smallest alpha at which a premultiplied color
// composited over bg yields the flat value c, for one channel.
//
// A color above the background needs at least (c - bg) / (1 - bg); one below
// it needs (bg - c) / bg. The divisors cannot be zero: c > bg implies
// bg < One, and c < bg implies bg > 0.
func RequiredAlpha(c, bg uint32) uint32 {
	switch {
	case c > bg:
		return (c - bg) * paintcore.One / (paintcore.One - bg)
	case c < bg:
		return (bg - c) * paintcore.One / bg
	default:
		return 0
	}
}

// Recover returns the premultiplied color, at alpha a, that composited over
// bg yields the flat value c. The result is unclamped: rounding can push it
// slightly outside [0, a].
//
// Formula: bg * a / One + (c - bg)
func Recover(c, bg, a uint32) int64 {
	return int64(bg*a>>15) + int64(c) - int64(bg)
}

// Flatten composites each pixel of dst over bg in place.
//
//	dst.color = dst.color + (1 - dst.alpha) * bg
//	dst.alpha = unmodified
//
// Afterwards the tile is opaque in meaning. The alpha channel keeps its old
// value only so that Unflatten can use it as a lower bound.
func Flatten(dst []uint16, bg Background) {
	if paintcore.HeavyDebug {
		paintcore.Assert(paintcore.ValidateTile16(dst))
		paintcore.Assert(paintcore.ValidatePremultiplied(dst, 1))
	}

	dst = dst[:paintcore.TileLen]
	for i := 0; i < paintcore.TileLen; i += 4 {
		br, bgg, bb := bg.At(i >> 2)
		inv := paintcore.One - uint32(dst[i+3])
		dst[i] += uint16(inv * uint32(br) >> 15)
		dst[i+1] += uint16(inv * uint32(bgg) >> 15)
		dst[i+2] += uint16(inv * uint32(bb) >> 15)
	}
}

// Unflatten makes a flattened tile translucent again, assuming it will be
// displayed over bg. Each pixel gets the larger of its current alpha and
// the minimal alpha needed to reproduce its flat color; alpha never
// decreases. Colors are then recomputed so that dst over bg equals the input
// colors, and clamped to [0, alpha] to absorb rounding.
//
// Recovery is ill-conditioned where a background channel is close to 0 or
// One: the flat color still reproduces, but the recovered layer color may
// differ widely from the one that was flattened.
func Unflatten(dst []uint16, bg Background) {
	if paintcore.HeavyDebug {
		paintcore.Assert(paintcore.ValidateTile16(dst))
	}

	dst = dst[:paintcore.TileLen]
	for i := 0; i < paintcore.TileLen; i += 4 {
		br, bgg, bb := bg.At(i >> 2)
		back := [3]uint32{uint32(br), uint32(bgg), uint32(bb)}
		px := dst[i : i+4 : i+4]

		final := uint32(px[3])
		for c := range 3 {
			final = max(final, RequiredAlpha(uint32(px[c]), back[c]))
		}
		if paintcore.HeavyDebug && final > paintcore.One {
			panic("backdrop: recovered alpha exceeds One")
		}

		px[3] = uint16(final)
		if final == 0 {
			px[0], px[1], px[2] = 0, 0, 0
			continue
		}
		for c := range 3 {
			px[c] = uint16(paintcore.Clamp(Recover(uint32(px[c]), back[c], final), 0, int64(final)))
		}
	}
}
