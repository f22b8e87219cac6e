package paintcore

import (
	"cmp"
	"math"
)

// Fixed-point and tile geometry constants shared by every package.
const (
	// One is the fixed-point representation of 1.0.
	One = 1 << 15

	// Half is the fixed-point representation of 0.5.
	Half = One / 2

	// TileSize is the edge length of a tile in pixels.
	TileSize = 64

	// TilePixels is the number of pixels in a tile.
	TilePixels = TileSize * TileSize

	// TileLen is the number of channel values in a tile buffer
	// (four channels per pixel, for both the 16-bit and the 8-bit format).
	TileLen = TilePixels * 4
)

// FromFloat converts f in [0, 1] to fixed point, rounding to nearest.
// Values outside [0, 1] (and NaN) are clamped.
func FromFloat(f float64) uint16 {
	if !(f > 0) {
		return 0
	}
	if f >= 1 {
		return One
	}
	return uint16(math.Round(f * One))
}

// ToFloat converts a fixed-point value to a float in [0, 1].
func ToFloat(v uint16) float64 {
	return float64(v) / One
}

// Mul multiplies two fixed-point values, truncating.
//
// Formula: a * b / One
func Mul(a, b uint32) uint32 {
	return a * b >> 15
}

// Clamp limits v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PixelOffset returns the index of the red channel of pixel (x, y)
// in a tile buffer.
func PixelOffset(x, y int) int {
	return (y*TileSize + x) * 4
}

// NewTile allocates a zeroed (fully transparent) 16-bit tile.
// The core itself never allocates; this is for callers and tests.
func NewTile() []uint16 {
	return make([]uint16, TileLen)
}

// FillTile sets every pixel of a 16-bit tile to the same premultiplied value.
func FillTile(dst []uint16, r, g, b, a uint16) {
	for i := 0; i+3 < len(dst); i += 4 {
		dst[i] = r
		dst[i+1] = g
		dst[i+2] = b
		dst[i+3] = a
	}
}
