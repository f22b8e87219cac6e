package blend

import (
	"log/slog"

	"github.com/gogpu/paintcore"
)

// Func computes the blended source color for one pixel. All inputs are
// premultiplied fixed-point channels; the result is the premultiplied
// source color to composite over the destination, still scaled by the
// source alpha sa.
type Func func(sr, sg, sb, sa, dr, dg, db, da uint32) (r, g, b uint32)

var funcs = [numModes]Func{
	Normal:     blendNormal,
	Multiply:   separable(multiplyChan),
	Screen:     separable(screenChan),
	Overlay:    separable(overlayChan),
	HardLight:  separable(hardLightChan),
	SoftLight:  separable(softLightChan),
	Lighten:    separable(lightenChan),
	Darken:     separable(darkenChan),
	ColorDodge: separable(colorDodgeChan),
	ColorBurn:  separable(colorBurnChan),
	Difference: separable(differenceChan),
	Exclusion:  separable(exclusionChan),
	Hue:        nonSeparable(hueTriplet),
	Saturation: nonSeparable(saturationTriplet),
	Color:      nonSeparable(colorTriplet),
	Luminosity: nonSeparable(luminosityTriplet),
}

// Func returns the pixel function for m. Unknown modes fall back to Normal.
func (m Mode) Func() Func {
	if !m.Valid() {
		paintcore.Logger().Warn("blend: unknown mode, using normal", slog.Int("mode", int(m)))
		return blendNormal
	}
	return funcs[m]
}

// Composite blends the src tile over dst in place using mode, scaled by
// opacity in [0, 1].
//
// For every pixel the blended source color is composited source-over:
//
//	as = Sa * opacity
//	Co = blended * opacity + Cd * (1 - as)
//	ao = as + Da * (1 - as)
//
// If dstHasAlpha is false, dst is an opaque surface: its alpha is treated
// as One and never written. An opacity that rounds to zero leaves dst
// untouched.
func Composite(mode Mode, src, dst []uint16, dstHasAlpha bool, opacity float64) {
	opac := uint32(paintcore.FromFloat(opacity))
	if opac == 0 {
		return
	}
	if paintcore.HeavyDebug {
		paintcore.Assert(paintcore.ValidateTile16(src))
		paintcore.Assert(paintcore.ValidateTile16(dst))
	}

	fn := mode.Func()
	if dstHasAlpha {
		compositeRGBA(fn, src, dst, opac)
	} else {
		compositeRGBX(fn, src, dst, opac)
	}

	if paintcore.HeavyDebug {
		paintcore.Assert(paintcore.ValidateTile16(dst))
		if dstHasAlpha {
			paintcore.Assert(paintcore.ValidatePremultiplied(dst, 1))
		}
	}
}

func compositeRGBA(fn Func, src, dst []uint16, opac uint32) {
	for i := 0; i < paintcore.TileLen; i += 4 {
		s := src[i : i+4 : i+4]
		d := dst[i : i+4 : i+4]
		sa := uint32(s[3])
		if sa == 0 {
			continue
		}
		dr, dg, db, da := uint32(d[0]), uint32(d[1]), uint32(d[2]), uint32(d[3])
		r, g, b := fn(uint32(s[0]), uint32(s[1]), uint32(s[2]), sa, dr, dg, db, da)

		as := sa * opac >> 15
		inv := one - as
		a := as + inv*da>>15
		d[0] = uint16(min((r*opac+inv*dr)>>15, a))
		d[1] = uint16(min((g*opac+inv*dg)>>15, a))
		d[2] = uint16(min((b*opac+inv*db)>>15, a))
		d[3] = uint16(a)
	}
}

func compositeRGBX(fn Func, src, dst []uint16, opac uint32) {
	for i := 0; i < paintcore.TileLen; i += 4 {
		s := src[i : i+4 : i+4]
		d := dst[i : i+4 : i+4]
		sa := uint32(s[3])
		if sa == 0 {
			continue
		}
		dr, dg, db := uint32(d[0]), uint32(d[1]), uint32(d[2])
		r, g, b := fn(uint32(s[0]), uint32(s[1]), uint32(s[2]), sa, dr, dg, db, one)

		inv := one - sa*opac>>15
		d[0] = uint16(min((r*opac+inv*dr)>>15, one))
		d[1] = uint16(min((g*opac+inv*dg)>>15, one))
		d[2] = uint16(min((b*opac+inv*db)>>15, one))
	}
}
