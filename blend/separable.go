package blend

// channelFunc is a separable blend function B(Cs, Cb) on unpremultiplied
// fixed-point channels.
type channelFunc func(s, d uint32) uint32

// separable builds a Func from a per-channel blend function.
//
// With Cs and Cb the unpremultiplied source and backdrop colors, the source
// color is first mixed with the blend result according to backdrop alpha:
//
//	Cs' = (1 - Da) * Cs + Da * B(Cs, Cb)
//
// and then premultiplied by the source alpha again. Where the backdrop is
// transparent the source passes through unchanged.
func separable(blendChan channelFunc) Func {
	return func(sr, sg, sb, sa, dr, dg, db, da uint32) (uint32, uint32, uint32) {
		if sa == 0 || da == 0 {
			return sr, sg, sb
		}

		sur, sug, sub := unpremultiply(sr, sa), unpremultiply(sg, sa), unpremultiply(sb, sa)
		dur, dug, dub := unpremultiply(dr, da), unpremultiply(dg, da), unpremultiply(db, da)

		invDa := one - da
		r := (invDa*sur + da*blendChan(sur, dur)) >> 15
		g := (invDa*sug + da*blendChan(sug, dug)) >> 15
		b := (invDa*sub + da*blendChan(sub, dub)) >> 15

		return mul(r, sa), mul(g, sa), mul(b, sa)
	}
}

// blendNormal returns the source unchanged.
func blendNormal(sr, sg, sb, _, _, _, _, _ uint32) (uint32, uint32, uint32) {
	return sr, sg, sb
}

// multiplyChan multiplies source and backdrop.
// Formula: B(Cb, Cs) = Cb * Cs
func multiplyChan(s, d uint32) uint32 {
	return mul(s, d)
}

// screenChan produces a lighter result than multiply.
// Formula: B(Cb, Cs) = Cb + Cs - Cb * Cs
func screenChan(s, d uint32) uint32 {
	return s + d - mul(s, d)
}

// hardLightChan multiplies or screens depending on the source.
// Formula: B(Cb, Cs) = if Cs <= 0.5: Multiply(Cb, 2*Cs), else: Screen(Cb, 2*Cs - 1)
func hardLightChan(s, d uint32) uint32 {
	if s <= one/2 {
		return multiplyChan(2*s, d)
	}
	return screenChan(2*s-one, d)
}

// overlayChan is HardLight with the layers swapped.
// Formula: B(Cb, Cs) = HardLight(Cs, Cb)
func overlayChan(s, d uint32) uint32 {
	return hardLightChan(d, s)
}

// softLightChan is a softer version of HardLight.
// Formula:
//
//	if Cs <= 0.5: Cb - (1 - 2*Cs) * Cb * (1 - Cb)
//	else:         Cb + (2*Cs - 1) * (D(Cb) - Cb)
//	where D(x) = if x <= 0.25: ((16*x - 12)*x + 4)*x, else: sqrt(x)
func softLightChan(s, d uint32) uint32 {
	cs, cb := int64(s), int64(d)
	if cs <= one/2 {
		return clamp15(cb - (one-2*cs)*cb/one*(one-cb)/one)
	}
	var dx int64
	if cb <= one/4 {
		dx = ((16*cb-12*one)*cb/one + 4*one) * cb / one
	} else {
		dx = int64(sqrt15(d))
	}
	return clamp15(cb + (2*cs-one)*(dx-cb)/one)
}

// lightenChan selects the lighter channel.
// Formula: B(Cb, Cs) = max(Cb, Cs)
func lightenChan(s, d uint32) uint32 {
	return max(s, d)
}

// darkenChan selects the darker channel.
// Formula: B(Cb, Cs) = min(Cb, Cs)
func darkenChan(s, d uint32) uint32 {
	return min(s, d)
}

// colorDodgeChan brightens the backdrop to reflect the source.
// Formula: B(Cb, Cs) = if Cb == 0: 0, if Cs == 1: 1, else: min(1, Cb / (1 - Cs))
func colorDodgeChan(s, d uint32) uint32 {
	if d == 0 {
		return 0
	}
	if s >= one {
		return one
	}
	return min(d*one/(one-s), one)
}

// colorBurnChan darkens the backdrop to reflect the source.
// Formula: B(Cb, Cs) = if Cb == 1: 1, if Cs == 0: 0, else: 1 - min(1, (1 - Cb) / Cs)
func colorBurnChan(s, d uint32) uint32 {
	if d >= one {
		return one
	}
	if s == 0 {
		return 0
	}
	return one - min((one-d)*one/s, one)
}

// differenceChan is the absolute difference.
// Formula: B(Cb, Cs) = |Cb - Cs|
func differenceChan(s, d uint32) uint32 {
	if s > d {
		return s - d
	}
	return d - s
}

// exclusionChan is similar to Difference with lower contrast.
// Formula: B(Cb, Cs) = Cb + Cs - 2 * Cb * Cs
func exclusionChan(s, d uint32) uint32 {
	return ((s+d)<<15 - 2*s*d) >> 15
}
