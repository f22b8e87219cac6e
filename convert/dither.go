package convert

import (
	"math/rand/v2"

	"github.com/gogpu/paintcore"
)

// Dither noise bounds. Samples cover [0.03, 0.97] of One instead of the
// full range so that 8-bit data survives a load/save cycle through the
// 16-bit format unchanged.
const (
	noiseMin = paintcore.One * 8 / 256
	noiseMax = (paintcore.One-1)*240/256 + noiseMin

	// noiseLen holds two samples per pixel of one tile.
	noiseLen = 2 * paintcore.TilePixels

	noiseSeed = 0x6d7970616e74
)

// noise is the dither table shared by every converter. It is built once
// during package initialization and never written afterwards, so converters
// may run on any number of tiles concurrently.
var noise = newNoise(noiseSeed)

func newNoise(seed uint64) *[noiseLen]uint16 {
	var n [noiseLen]uint16
	rng := rand.New(rand.NewPCG(seed, seed>>1))
	for i := range n {
		n[i] = uint16(rng.IntN(paintcore.One)*240/256 + noiseMin)
	}
	return &n
}

// nextCursor advances a dither cursor by one pixel (two samples),
// wrapping at the end of the table.
func nextCursor(cursor int) int {
	cursor += 2
	if cursor >= noiseLen {
		cursor = 0
	}
	return cursor
}
