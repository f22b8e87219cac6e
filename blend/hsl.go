package blend

// Non-separable blend modes (Hue, Saturation, Color, Luminosity) operate on
// the whole RGB triplet. The helpers below implement the W3C Lum, Sat,
// ClipColor, SetLum and SetSat functions in fixed point. Components are
// int64 because intermediate colors may leave [0, One] before ClipColor
// pulls them back.

// BT.601 luma weights in fixed point (0.30, 0.59, 0.11). The blue weight
// is rounded up so that the weights sum to exactly One.
const (
	lumR = 9830
	lumG = 19333
	lumB = 3605
)

// lum returns the luminosity of a color.
// Formula: Lum(C) = 0.30*R + 0.59*G + 0.11*B
func lum(r, g, b int64) int64 {
	return (r*lumR + g*lumG + b*lumB) >> 15
}

// sat returns the saturation of a color.
// Formula: Sat(C) = max(R, G, B) - min(R, G, B)
func sat(r, g, b int64) int64 {
	return max(r, g, b) - min(r, g, b)
}

// clipColor scales a color towards its luminosity until every component is
// within [0, One].
func clipColor(r, g, b int64) (int64, int64, int64) {
	l := lum(r, g, b)
	n := min(r, g, b)
	x := max(r, g, b)

	if n < 0 && l != n {
		r = l + (r-l)*l/(l-n)
		g = l + (g-l)*l/(l-n)
		b = l + (b-l)*l/(l-n)
	}
	if x > one && x != l {
		r = l + (r-l)*(one-l)/(x-l)
		g = l + (g-l)*(one-l)/(x-l)
		b = l + (b-l)*(one-l)/(x-l)
	}
	return r, g, b
}

// setLum shifts a color to luminosity l, then clips it.
func setLum(r, g, b, l int64) (int64, int64, int64) {
	d := l - lum(r, g, b)
	return clipColor(r+d, g+d, b+d)
}

// setSat rescales a color to saturation s, keeping the order of its
// components. Gray inputs have no hue to keep and become black.
func setSat(r, g, b, s int64) (int64, int64, int64) {
	c := [3]int64{r, g, b}
	lo, mid, hi := sortIndex(c)
	if c[hi] > c[lo] {
		c[mid] = (c[mid] - c[lo]) * s / (c[hi] - c[lo])
		c[hi] = s
	} else {
		c[mid], c[hi] = 0, 0
	}
	c[lo] = 0
	return c[0], c[1], c[2]
}

// sortIndex returns the indices of the smallest, middle and largest
// components.
func sortIndex(c [3]int64) (lo, mid, hi int) {
	lo, mid, hi = 0, 1, 2
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	if c[mid] > c[hi] {
		mid, hi = hi, mid
	}
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	return lo, mid, hi
}

// tripletFunc is a non-separable blend function B(Cs, Cb) on
// unpremultiplied colors.
type tripletFunc func(sr, sg, sb, dr, dg, db int64) (int64, int64, int64)

// hueTriplet uses the hue of the source with saturation and luminosity of
// the backdrop.
// Formula: SetLum(SetSat(Cs, Sat(Cb)), Lum(Cb))
func hueTriplet(sr, sg, sb, dr, dg, db int64) (int64, int64, int64) {
	r, g, b := setSat(sr, sg, sb, sat(dr, dg, db))
	return setLum(r, g, b, lum(dr, dg, db))
}

// saturationTriplet uses the saturation of the source with hue and
// luminosity of the backdrop.
// Formula: SetLum(SetSat(Cb, Sat(Cs)), Lum(Cb))
func saturationTriplet(sr, sg, sb, dr, dg, db int64) (int64, int64, int64) {
	r, g, b := setSat(dr, dg, db, sat(sr, sg, sb))
	return setLum(r, g, b, lum(dr, dg, db))
}

// colorTriplet uses hue and saturation of the source with luminosity of the
// backdrop.
// Formula: SetLum(Cs, Lum(Cb))
func colorTriplet(sr, sg, sb, dr, dg, db int64) (int64, int64, int64) {
	return setLum(sr, sg, sb, lum(dr, dg, db))
}

// luminosityTriplet uses the luminosity of the source with hue and
// saturation of the backdrop.
// Formula: SetLum(Cb, Lum(Cs))
func luminosityTriplet(sr, sg, sb, dr, dg, db int64) (int64, int64, int64) {
	return setLum(dr, dg, db, lum(sr, sg, sb))
}

// nonSeparable builds a Func from a triplet blend function. Colors are
// unpremultiplied first; a transparent layer contributes black (its color
// flattened against zero). The result is mixed and premultiplied like the
// separable modes:
//
//	Cs' = (1 - Da) * Cs + Da * B(Cs, Cb)
func nonSeparable(blendFunc tripletFunc) Func {
	return func(sr, sg, sb, sa, dr, dg, db, da uint32) (uint32, uint32, uint32) {
		if sa == 0 || da == 0 {
			return sr, sg, sb
		}

		sur, sug, sub := unpremultiply(sr, sa), unpremultiply(sg, sa), unpremultiply(sb, sa)
		dur, dug, dub := unpremultiply(dr, da), unpremultiply(dg, da), unpremultiply(db, da)

		br, bg, bb := blendFunc(int64(sur), int64(sug), int64(sub), int64(dur), int64(dug), int64(dub))

		invDa := one - da
		r := (invDa*sur + da*clamp15(br)) >> 15
		g := (invDa*sug + da*clamp15(bg)) >> 15
		b := (invDa*sub + da*clamp15(bb)) >> 15

		return mul(r, sa), mul(g, sa), mul(b, sa)
	}
}
