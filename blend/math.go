package blend

import "github.com/gogpu/paintcore"

// Fixed-point helpers for the blend functions. Values are 15-bit fixed
// point held in wider integers so intermediate products cannot overflow.

const one = paintcore.One

// unpremultiply divides a premultiplied channel by alpha with rounding.
// The result is clamped to one so that pixels off by a rounding unit
// (c = a + 1) stay in range. The caller guarantees a != 0.
//
// Formula: (c * One + a/2) / a
func unpremultiply(c, a uint32) uint32 {
	return min(((c<<15)+a/2)/a, one)
}

// mul multiplies two fixed-point values, truncating.
func mul(a, b uint32) uint32 {
	return paintcore.Mul(a, b)
}

// isqrt returns floor(sqrt(n)).
func isqrt(n uint32) uint32 {
	var r uint32
	bit := uint32(1) << 30
	for bit > n {
		bit >>= 2
	}
	for bit != 0 {
		if n >= r+bit {
			n -= r + bit
			r = r>>1 + bit
		} else {
			r >>= 1
		}
		bit >>= 2
	}
	return r
}

// sqrt15 returns the fixed-point square root of a fixed-point value.
//
// Formula: sqrt(x / One) * One = sqrt(x * One)
func sqrt15(x uint32) uint32 {
	return isqrt(x << 15)
}

func clamp15(v int64) uint32 {
	return uint32(paintcore.Clamp(v, 0, one))
}
