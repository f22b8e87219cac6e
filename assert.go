package paintcore

import "fmt"

// ValidateTile16 checks that buf holds one 16-bit tile with every channel
// in [0, One]. The orchestration layer should call it on externally loaded
// data before handing tiles to the core.
func ValidateTile16(buf []uint16) error {
	if len(buf) != TileLen {
		return fmt.Errorf("%w: %d channels, want %d", ErrTileShape, len(buf), TileLen)
	}
	for i, v := range buf {
		if v > One {
			return fmt.Errorf("%w: pixel %d channel %d = %d", ErrChannelRange, i/4, i%4, v)
		}
	}
	return nil
}

// ValidateTile8 checks that buf holds one 8-bit tile.
func ValidateTile8(buf []uint8) error {
	if len(buf) != TileLen {
		return fmt.Errorf("%w: %d channels, want %d", ErrTileShape, len(buf), TileLen)
	}
	return nil
}

// ValidatePremultiplied checks that no color channel exceeds its pixel's
// alpha by more than tolerance.
func ValidatePremultiplied(buf []uint16, tolerance uint16) error {
	for i := 0; i+3 < len(buf); i += 4 {
		limit := uint32(buf[i+3]) + uint32(tolerance)
		if uint32(buf[i]) > limit || uint32(buf[i+1]) > limit || uint32(buf[i+2]) > limit {
			return fmt.Errorf("%w: pixel %d = (%d, %d, %d, %d)",
				ErrNotPremultiplied, i/4, buf[i], buf[i+1], buf[i+2], buf[i+3])
		}
	}
	return nil
}

// Assert panics if err is not nil. Callers guard it with HeavyDebug so the
// check compiles away in normal builds:
//
//	if paintcore.HeavyDebug {
//	    paintcore.Assert(paintcore.ValidateTile16(dst))
//	}
func Assert(err error) {
	if err != nil {
		panic(err)
	}
}
