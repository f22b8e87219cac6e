// Package strokemap decides which pixels of a tile a paint stroke visibly
// touched.
//
// The result is used for stroke picking: clicking a pixel selects the most
// recent stroke whose map covers it. Thresholds are deliberately generous
// for freshly painted areas so thin strokes remain easy to hit.
package strokemap

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"

	"github.com/32bitkid/bitreader"

	"github.com/gogpu/paintcore"
)

// ErrPackedSize is returned by Unpack when the packed data does not hold
// one bit per tile pixel.
var ErrPackedSize = errors.New("strokemap: packed bitmap has wrong size")

// PackedLen is the length in bytes of a packed bitmap.
const PackedLen = paintcore.TilePixels / 8

// Bitmap holds one byte per tile pixel, 1 where the stroke changed the
// pixel and 0 elsewhere.
type Bitmap []uint8

// NewBitmap allocates an empty bitmap.
func NewBitmap() Bitmap {
	return make(Bitmap, paintcore.TilePixels)
}

// PerceptualChange compares the before and after versions of a tile and
// marks in res every pixel with a visible change.
//
// Colors are compared after scaling each by the other tile's alpha, so no
// division is needed. A pixel is changed if any of the following holds:
//
//   - the summed color difference exceeds max(aBefore, aAfter)/16
//   - alpha grew by at least One/4
//   - alpha grew by more than One/64 and by more than half of aBefore
//
// Alpha decreases (erasing) never count by themselves.
func PerceptualChange(before, after []uint16, res Bitmap) {
	if paintcore.HeavyDebug {
		paintcore.Assert(paintcore.ValidateTile16(before))
		paintcore.Assert(paintcore.ValidateTile16(after))
		paintcore.Assert(checkBitmap(res))
	}

	for p := range paintcore.TilePixels {
		a := before[4*p : 4*p+4 : 4*p+4]
		b := after[4*p : 4*p+4 : 4*p+4]
		alphaOld, alphaNew := int32(a[3]), int32(b[3])

		var colorChange int32
		for c := range 3 {
			aCol := int32(uint32(a[c]) * uint32(b[3]) >> 15)
			bCol := int32(uint32(b[c]) * uint32(a[3]) >> 15)
			colorChange += abs(bCol - aCol)
		}

		alphaDiff := alphaNew - alphaOld
		changed := colorChange > max(alphaOld, alphaNew)/16 ||
			alphaDiff >= paintcore.One/4 ||
			(alphaDiff > paintcore.One/64 && alphaDiff > alphaOld/2)

		if changed {
			res[p] = 1
		} else {
			res[p] = 0
		}
	}
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// Count returns the number of changed pixels.
func (m Bitmap) Count() int {
	n := 0
	for _, v := range m {
		if v != 0 {
			n++
		}
	}
	return n
}

// Pack stores m with one bit per pixel, most significant bit first, into
// dst and returns it. A nil or short dst is replaced by a new slice.
func (m Bitmap) Pack(dst []byte) []byte {
	if cap(dst) < PackedLen {
		dst = make([]byte, PackedLen)
	}
	dst = dst[:PackedLen]
	clear(dst)
	for p, v := range m[:paintcore.TilePixels] {
		if v != 0 {
			dst[p/8] |= 0x80 >> (p % 8)
		}
	}
	return dst
}

// Touches reports whether pixel (x, y) of the tile is set in a bitmap
// stored by Pack. Coordinates outside the tile and malformed data report
// false.
func Touches(packed []byte, x, y int) bool {
	if len(packed) != PackedLen || x < 0 || y < 0 || x >= paintcore.TileSize || y >= paintcore.TileSize {
		return false
	}
	p := y*paintcore.TileSize + x
	return packed[p/8]&(0x80>>(p%8)) != 0
}

// Unpack expands a bitmap stored by Pack into res.
func Unpack(packed []byte, res Bitmap) error {
	if len(packed) != PackedLen {
		return fmt.Errorf("%w: %d bytes, want %d", ErrPackedSize, len(packed), PackedLen)
	}
	br := bitreader.NewReader(bufio.NewReader(bytes.NewReader(packed)))
	for p := range paintcore.TilePixels {
		bit, err := br.Read1()
		if err != nil {
			return fmt.Errorf("strokemap: pixel %d: %w", p, err)
		}
		res[p] = 0
		if bit {
			res[p] = 1
		}
	}
	return nil
}

func checkBitmap(res Bitmap) error {
	if len(res) != paintcore.TilePixels {
		return fmt.Errorf("%w: bitmap of %d pixels, want %d", paintcore.ErrTileShape, len(res), paintcore.TilePixels)
	}
	return nil
}
