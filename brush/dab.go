package brush

import "github.com/gogpu/paintcore"

// The Draw functions blend premultiplied pixels directly. For a pixel with
// mask coverage m the dab's effective alpha is
//
//	topA = m * opacity / One
//
// and the pixel is composited with the paint on top ("over"):
//
//	resultAlpha = topA + (1 - topA) * dstAlpha
//	resultColor = topA * paint + (1 - topA) * dstColor
//
// dst is a 16-bit tile. The paint color is straight (not premultiplied).

// DrawNormal paints color over the pixels covered by mask.
func DrawNormal(mask Mask, dst []uint16, color paintcore.RGB, opacity uint16) {
	if paintcore.HeavyDebug {
		checkDab(mask, dst, opacity)
	}

	op := uint32(opacity)
	cr, cg, cb := uint32(color.R), uint32(color.G), uint32(color.B)

	p := 0
	for i := 0; ; i += 2 {
		for ; mask[i] != 0; i++ {
			topA := uint32(mask[i]) * op >> 15
			botA := paintcore.One - topA

			px := dst[p : p+4 : p+4]
			px[3] = uint16(topA + botA*uint32(px[3])>>15)
			px[0] = uint16((topA*cr + botA*uint32(px[0])) >> 15)
			px[1] = uint16((topA*cg + botA*uint32(px[1])) >> 15)
			px[2] = uint16((topA*cb + botA*uint32(px[2])) >> 15)
			p += 4
		}
		skip := mask[i+1]
		if skip == 0 {
			break
		}
		p += int(skip) * 4
	}

	if paintcore.HeavyDebug {
		paintcore.Assert(paintcore.ValidatePremultiplied(dst, 1))
	}
}

// DrawNormalAndEraser paints color with alpha paintAlpha. It serves three
// purposes:
//
//   - paintAlpha = One paints exactly like DrawNormal
//   - paintAlpha = 0 erases; the color is ignored
//   - anything in between smudges, dragging transparency around as if it
//     were a color: smudging over a region that is 60% opaque keeps it 60%
//     opaque when paintAlpha is 0.6
func DrawNormalAndEraser(mask Mask, dst []uint16, color paintcore.RGB, paintAlpha, opacity uint16) {
	if paintcore.HeavyDebug {
		checkDab(mask, dst, opacity)
		if paintAlpha > paintcore.One {
			panic("brush: paint alpha out of range")
		}
	}

	op := uint32(opacity)
	pa := uint32(paintAlpha)
	cr, cg, cb := uint32(color.R), uint32(color.G), uint32(color.B)

	p := 0
	for i := 0; ; i += 2 {
		for ; mask[i] != 0; i++ {
			topA := uint32(mask[i]) * op >> 15
			botA := paintcore.One - topA
			topA = topA * pa >> 15

			px := dst[p : p+4 : p+4]
			px[3] = uint16(topA + botA*uint32(px[3])>>15)
			px[0] = uint16((topA*cr + botA*uint32(px[0])) >> 15)
			px[1] = uint16((topA*cg + botA*uint32(px[1])) >> 15)
			px[2] = uint16((topA*cb + botA*uint32(px[2])) >> 15)
			p += 4
		}
		skip := mask[i+1]
		if skip == 0 {
			break
		}
		p += int(skip) * 4
	}

	if paintcore.HeavyDebug {
		paintcore.Assert(paintcore.ValidatePremultiplied(dst, 1))
	}
}

// DrawLockAlpha paints color without changing coverage. The dab's alpha is
// scaled by each pixel's own alpha and the alpha channel is left alone, so
// only existing paint is recolored.
func DrawLockAlpha(mask Mask, dst []uint16, color paintcore.RGB, opacity uint16) {
	if paintcore.HeavyDebug {
		checkDab(mask, dst, opacity)
	}

	op := uint32(opacity)
	cr, cg, cb := uint32(color.R), uint32(color.G), uint32(color.B)

	p := 0
	for i := 0; ; i += 2 {
		for ; mask[i] != 0; i++ {
			topA := uint32(mask[i]) * op >> 15
			botA := paintcore.One - topA

			px := dst[p : p+4 : p+4]
			topA = topA * uint32(px[3]) >> 15
			px[0] = uint16((topA*cr + botA*uint32(px[0])) >> 15)
			px[1] = uint16((topA*cg + botA*uint32(px[1])) >> 15)
			px[2] = uint16((topA*cb + botA*uint32(px[2])) >> 15)
			p += 4
		}
		skip := mask[i+1]
		if skip == 0 {
			break
		}
		p += int(skip) * 4
	}

	if paintcore.HeavyDebug {
		paintcore.Assert(paintcore.ValidatePremultiplied(dst, 1))
	}
}

// checkDab asserts the preconditions shared by all dab operators.
func checkDab(mask Mask, dst []uint16, opacity uint16) {
	paintcore.Assert(paintcore.ValidateTile16(dst))
	paintcore.Assert(paintcore.ValidatePremultiplied(dst, 1))
	paintcore.Assert(mask.Validate(paintcore.TilePixels))
	if opacity > paintcore.One {
		panic("brush: opacity out of range")
	}
}
