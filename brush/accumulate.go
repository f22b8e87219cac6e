package brush

import "github.com/gogpu/paintcore"

// Sums accumulates mask-weighted channel totals over one or more tiles.
// Brush engines use it to pick up the canvas color under a dab for
// smudging.
//
// Totals are kept in fixed-point units: Weight is the sum of coverage
// values and R, G, B, A are sums of coverage * channel / One.
type Sums struct {
	Weight     float64
	R, G, B, A float64
}

// Accumulate adds the pixels of src covered by mask to s.
//
// The totals for a single tile fit in uint32, so the loop runs in integers
// and converts once at the end; s itself uses floats so that any number of
// tiles can be added.
func (s *Sums) Accumulate(mask Mask, src []uint16) {
	if paintcore.HeavyDebug {
		paintcore.Assert(paintcore.ValidateTile16(src))
		paintcore.Assert(mask.Validate(paintcore.TilePixels))
	}

	var weight, r, g, b, a uint32

	p := 0
	for i := 0; ; i += 2 {
		for ; mask[i] != 0; i++ {
			m := uint32(mask[i])
			px := src[p : p+4 : p+4]
			weight += m
			r += m * uint32(px[0]) >> 15
			g += m * uint32(px[1]) >> 15
			b += m * uint32(px[2]) >> 15
			a += m * uint32(px[3]) >> 15
			p += 4
		}
		skip := mask[i+1]
		if skip == 0 {
			break
		}
		p += int(skip) * 4
	}

	s.Weight += float64(weight)
	s.R += float64(r)
	s.G += float64(g)
	s.B += float64(b)
	s.A += float64(a)
}

// Average returns the weighted average straight color and alpha.
// With no weight, or no alpha, the color is black.
func (s Sums) Average() (paintcore.RGB, uint16) {
	if s.Weight <= 0 {
		return paintcore.RGB{}, 0
	}
	alpha := s.A / s.Weight
	if alpha <= 0 {
		return paintcore.RGB{}, 0
	}
	c := paintcore.RGB{
		R: paintcore.FromFloat(s.R / s.A),
		G: paintcore.FromFloat(s.G / s.A),
		B: paintcore.FromFloat(s.B / s.A),
	}
	return c, paintcore.FromFloat(alpha)
}
