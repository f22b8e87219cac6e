package convert

import "github.com/gogpu/paintcore"

// RGBA8ToRGBA16 converts an 8-bit straight-alpha tile to the 16-bit
// premultiplied format. Used when loading layers.
func RGBA8ToRGBA16(src []uint8, dst []uint16, policy AlphaPolicy) {
	if paintcore.HeavyDebug {
		paintcore.Assert(paintcore.ValidateTile8(src))
		paintcore.Assert(paintcore.ValidateTile16(dst))
	}

	src = src[:paintcore.TileLen]
	dst = dst[:paintcore.TileLen]
	for i := 0; i < paintcore.TileLen; i += 4 {
		dst[i], dst[i+1], dst[i+2], dst[i+3] = To16(src[i], src[i+1], src[i+2], src[i+3], policy)
	}
}

// RGBA16ToRGBA8 converts a 16-bit premultiplied tile to 8-bit straight
// alpha with dithering. Used when saving layers with transparency.
//
// The dither cursor restarts at the beginning of the noise table for every
// tile, so identical tiles always convert identically.
func RGBA16ToRGBA8(src []uint16, dst []uint8) {
	if paintcore.HeavyDebug {
		paintcore.Assert(paintcore.ValidateTile16(src))
		paintcore.Assert(paintcore.ValidatePremultiplied(src, 1))
		paintcore.Assert(paintcore.ValidateTile8(dst))
	}

	src = src[:paintcore.TileLen]
	dst = dst[:paintcore.TileLen]
	cursor := 0
	for i := 0; i < paintcore.TileLen; i += 4 {
		dst[i], dst[i+1], dst[i+2], dst[i+3], cursor = To8(src[i], src[i+1], src[i+2], src[i+3], cursor)
	}
}

// RGBU16ToRGBU8 converts an opaque 16-bit tile (the result of compositing
// onto a background) to 8 bits for display or for saving without alpha.
// The source alpha channel is ignored and the destination alpha is 255.
func RGBU16ToRGBU8(src []uint16, dst []uint8) {
	if paintcore.HeavyDebug {
		paintcore.Assert(paintcore.ValidateTile16(src))
		paintcore.Assert(paintcore.ValidateTile8(dst))
	}

	src = src[:paintcore.TileLen]
	dst = dst[:paintcore.TileLen]
	for i := 0; i < paintcore.TileLen; i += 4 {
		// One sample per pixel; there is no alpha to dither.
		add := uint32(noise[i>>2])

		dst[i] = uint8((uint32(src[i])*255 + add) >> 15)
		dst[i+1] = uint8((uint32(src[i+1])*255 + add) >> 15)
		dst[i+2] = uint8((uint32(src[i+2])*255 + add) >> 15)
		dst[i+3] = 255
	}
}

// Copy copies a 16-bit tile, e.g. the background before compositing
// layers over it.
func Copy(src, dst []uint16) {
	if paintcore.HeavyDebug {
		paintcore.Assert(paintcore.ValidateTile16(src))
		paintcore.Assert(paintcore.ValidateTile16(dst))
	}
	copy(dst[:paintcore.TileLen], src[:paintcore.TileLen])
}

// Clear8 zeroes an 8-bit tile.
func Clear8(dst []uint8) {
	clear(dst[:paintcore.TileLen])
}
