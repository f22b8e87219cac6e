// Package mipmap builds reduced-resolution tiles for zoomed-out views.
//
// Each mip level halves both dimensions with a 2x2 box filter. A parent
// tile at level n+1 is assembled from the four child tiles it covers at
// level n.
package mipmap

import (
	"fmt"

	"github.com/gogpu/paintcore"
)

const half = paintcore.TileSize / 2

// Downscale writes the half-size version of the src tile into dst, a
// row-major RGBA16 buffer dstWidth pixels wide, with its top-left corner at
// pixel (dstX, dstY).
//
// Every destination channel is the truncated mean of the 2x2 source block.
// Constant input reproduces itself exactly, and premultiplied input stays
// premultiplied.
func Downscale(src, dst []uint16, dstWidth, dstX, dstY int) {
	if paintcore.HeavyDebug {
		paintcore.Assert(paintcore.ValidateTile16(src))
		paintcore.Assert(checkRegion(len(dst), dstWidth, dstX, dstY))
	}

	const row = paintcore.TileSize * 4
	for y := range half {
		s := src[2*y*row:]
		d := dst[((y+dstY)*dstWidth+dstX)*4:]
		for x := range half {
			p0 := s[8*x : 8*x+8 : 8*x+8]
			p1 := s[row+8*x : row+8*x+8 : row+8*x+8]
			for c := range 4 {
				sum := uint32(p0[c]) + uint32(p0[4+c]) + uint32(p1[c]) + uint32(p1[4+c])
				d[4*x+c] = uint16(sum / 4)
			}
		}
	}
}

// Assemble builds a parent tile in dst from the four child tiles it
// covers, ordered top-left, top-right, bottom-left, bottom-right. A nil
// child is treated as fully transparent.
func Assemble(quads [4][]uint16, dst []uint16) {
	for i, q := range quads {
		x, y := (i%2)*half, (i/2)*half
		if q == nil {
			clearRegion(dst, x, y)
			continue
		}
		Downscale(q, dst, paintcore.TileSize, x, y)
	}
}

func clearRegion(dst []uint16, x, y int) {
	for row := y; row < y+half; row++ {
		off := paintcore.PixelOffset(x, row)
		clear(dst[off : off+half*4])
	}
}

func checkRegion(n, width, x, y int) error {
	if x < 0 || y < 0 || x+half > width || (y+half)*width*4 > n {
		return fmt.Errorf("%w: %d-pixel half tile at (%d, %d) outside %d-wide buffer of %d channels",
			paintcore.ErrTileShape, half, x, y, width, n)
	}
	return nil
}
