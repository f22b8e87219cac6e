// Package brush applies brush dabs to tiles.
//
// A dab is described by a run-length encoded coverage Mask over one tile and
// a paint color. Each Draw function walks the mask once and blends the paint
// into the covered pixels in place; pixels outside the mask are never read
// or written.
package brush

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrMaskUnterminated is returned when a mask ends without a zero skip.
	ErrMaskUnterminated = errors.New("brush: mask is not terminated")

	// ErrMaskOverrun is returned when a mask addresses pixels past the tile.
	ErrMaskOverrun = errors.New("brush: mask runs past the tile")
)

// Mask is a run-length encoded dab shape over one tile.
//
// It alternates between runs of nonzero coverage values, one per pixel in
// the same fixed point as alpha, and skip counts. Every run ends with a zero
// value, which is followed by the number of pixels to jump before the next
// run. A skip count of zero ends the mask. A mask that starts with an empty
// run ({0, n, ...}) skips n leading pixels.
//
// Example: {c, c, c, 0, 2, c, 0, 0} covers pixels 0-2 and 5.
type Mask []uint16

// EncodeMask builds a mask from dense per-pixel coverage, appending to dst
// (which may be nil) and returning the extended slice. Zero coverage marks
// uncovered pixels.
func EncodeMask(coverage []uint16, dst Mask) Mask {
	n := len(coverage)
	i := 0
	for {
		for ; i < n && coverage[i] != 0; i++ {
			dst = append(dst, coverage[i])
		}
		dst = append(dst, 0)

		start := i
		for i < n && coverage[i] == 0 {
			i++
		}
		if i == n {
			return append(dst, 0)
		}
		dst = append(dst, uint16(i-start))
	}
}

// Validate checks that m is terminated and stays within the first pixels
// pixels of a tile.
func (m Mask) Validate(pixels int) error {
	p, i := 0, 0
	for {
		for ; i < len(m) && m[i] != 0; i++ {
			p++
		}
		if p > pixels {
			return fmt.Errorf("%w: pixel %d of %d", ErrMaskOverrun, p-1, pixels)
		}
		if i+1 >= len(m) {
			return fmt.Errorf("%w: %d values", ErrMaskUnterminated, len(m))
		}
		skip := int(m[i+1])
		if skip == 0 {
			return nil
		}
		p += skip
		i += 2
	}
}

// All yields the pixel index and coverage of every covered pixel in order.
// The Draw functions walk the mask inline; All is for callers that need the
// shape itself.
func (m Mask) All() iter.Seq2[int, uint16] {
	return func(yield func(int, uint16) bool) {
		p := 0
		for i := 0; ; i += 2 {
			for ; m[i] != 0; i++ {
				if !yield(p, m[i]) {
					return
				}
				p++
			}
			skip := m[i+1]
			if skip == 0 {
				return
			}
			p += int(skip)
		}
	}
}
