package brush

import (
	"github.com/gogpu/paintcore"
	"github.com/gogpu/paintcore/backdrop"
)

// DrawOverlay applies an overlay-style contrast effect to what the pixel
// looks like over bg.
//
// Each covered pixel is first flattened over bg. The visible color is then
// pushed towards the paint color: paint above one half screens, paint below
// one half multiplies, and the push is scaled by the dab's alpha. Finally
// the pixel is unflattened again: alpha grows to the minimum needed for
// the new visible color over bg, and the color is solved for that alpha.
func DrawOverlay(mask Mask, dst []uint16, bg backdrop.Background, color paintcore.RGB, opacity uint16) {
	if paintcore.HeavyDebug {
		checkDab(mask, dst, opacity)
	}

	op := uint32(opacity)
	paint := [3]int64{int64(color.R), int64(color.G), int64(color.B)}

	p := 0
	for i := 0; ; i += 2 {
		for ; mask[i] != 0; i++ {
			topA := int64(uint32(mask[i]) * op >> 15)

			px := dst[p : p+4 : p+4]
			br, bgg, bb := bg.At(p >> 2)
			back := [3]uint32{uint32(br), uint32(bgg), uint32(bb)}
			inv := paintcore.One - uint32(px[3])

			var visible [3]uint32
			for k := range 3 {
				v := uint32(px[k]) + inv*back[k]>>15

				slope := 2*paint[k] - paintcore.One
				var room int64
				if v < paintcore.Half {
					room = int64(v) // multiply
				} else {
					room = paintcore.One - int64(v) // screen
				}
				change := room * slope / paintcore.One
				visible[k] = uint32(paintcore.Clamp(int64(v)+topA*change/paintcore.One, 0, paintcore.One))
			}

			final := uint32(px[3])
			for k := range 3 {
				final = max(final, backdrop.RequiredAlpha(visible[k], back[k]))
			}
			px[3] = uint16(final)
			if final == 0 {
				px[0], px[1], px[2] = 0, 0, 0
			} else {
				// The clamp is to One, not to final. Rounding may leave a
				// channel one unit above alpha.
				for k := range 3 {
					px[k] = uint16(paintcore.Clamp(backdrop.Recover(visible[k], back[k], final), 0, paintcore.One))
				}
			}
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
