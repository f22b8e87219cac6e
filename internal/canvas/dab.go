package canvas

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/paintcore"
	"github.com/gogpu/paintcore/backdrop"
	"github.com/gogpu/paintcore/brush"
)

// DabMode selects the brush operator a dab is drawn with.
type DabMode uint8

const (
	// DabNormal paints the dab color over the canvas.
	DabNormal DabMode = iota

	// DabEraser removes paint under the dab; the color is ignored.
	DabEraser

	// DabLockAlpha recolors existing paint without changing its alpha.
	DabLockAlpha

	// DabOverlay applies an overlay contrast effect against Dab.Background.
	DabOverlay
)

var dabModeNames = [...]string{
	DabNormal:    "normal",
	DabEraser:    "eraser",
	DabLockAlpha: "lock-alpha",
	DabOverlay:   "overlay",
}

// String returns the name accepted by ParseDabMode, e.g. "lock-alpha".
func (m DabMode) String() string {
	if int(m) < len(dabModeNames) {
		return dabModeNames[m]
	}
	return fmt.Sprintf("DabMode(%d)", uint8(m))
}

// ParseDabMode parses a name returned by DabMode.String.
func ParseDabMode(name string) (DabMode, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	for i, n := range dabModeNames {
		if n == s {
			return DabMode(i), nil
		}
	}
	return DabNormal, fmt.Errorf("canvas: unknown dab mode %q", name)
}

// Dab is one round brush stamp in canvas pixel coordinates.
type Dab struct {
	X, Y     float64
	Radius   float64
	Hardness float64 // fraction of the radius painted at full strength
	Color    paintcore.RGB
	Opacity  float64
	Mode     DabMode

	// Background must be set for DabOverlay and is ignored otherwise.
	Background backdrop.Background
}

// coverage returns the dab strength at distance d from its center.
func (d Dab) coverage(dist float64) float64 {
	if d.Radius <= 0 {
		return 0
	}
	r := dist / d.Radius
	switch {
	case r >= 1:
		return 0
	case r <= d.Hardness:
		return 1
	default:
		return (1 - r) / (1 - d.Hardness)
	}
}

// dabTiles returns the range of tile keys the dab can touch, clipped to the
// canvas grid.
func (c *Canvas) dabTiles(d Dab) (lo, hi Key) {
	cols, rows := c.Grid()
	ts := float64(paintcore.TileSize)
	lo = Key{
		X: max(int(math.Floor((d.X-d.Radius)/ts)), 0),
		Y: max(int(math.Floor((d.Y-d.Radius)/ts)), 0),
	}
	hi = Key{
		X: min(int(math.Floor((d.X+d.Radius)/ts)), cols-1),
		Y: min(int(math.Floor((d.Y+d.Radius)/ts)), rows-1),
	}
	return lo, hi
}

// dabMask builds the mask of dab d over tile k into buf. It returns false
// if the dab does not cover any pixel of the tile.
func dabMask(d Dab, k Key, coverage []uint16, buf brush.Mask) (brush.Mask, bool) {
	hit := false
	for p := range coverage {
		x := float64(k.X*paintcore.TileSize+p%paintcore.TileSize) + 0.5
		y := float64(k.Y*paintcore.TileSize+p/paintcore.TileSize) + 0.5
		v := paintcore.FromFloat(d.coverage(math.Hypot(x-d.X, y-d.Y)))
		coverage[p] = v
		hit = hit || v != 0
	}
	if !hit {
		return buf, false
	}
	return brush.EncodeMask(coverage, buf[:0]), true
}

// Draw stamps dab d onto c. Tiles are allocated where the dab paints; the
// eraser and lock-alpha modes only visit existing tiles.
func (c *Canvas) Draw(d Dab) {
	opacity := paintcore.FromFloat(d.Opacity)
	if opacity == 0 {
		return
	}
	lo, hi := c.dabTiles(d)
	coverage := make([]uint16, paintcore.TilePixels)
	var mask brush.Mask
	touched := 0

	for ty := lo.Y; ty <= hi.Y; ty++ {
		for tx := lo.X; tx <= hi.X; tx++ {
			k := Key{tx, ty}
			var ok bool
			if mask, ok = dabMask(d, k, coverage, mask); !ok {
				continue
			}

			var t []uint16
			switch d.Mode {
			case DabEraser, DabLockAlpha:
				if t = c.tiles[k]; t == nil {
					continue
				}
			default:
				t = c.tileForWrite(k)
			}

			switch d.Mode {
			case DabEraser:
				brush.DrawNormalAndEraser(mask, t, d.Color, 0, opacity)
			case DabLockAlpha:
				brush.DrawLockAlpha(mask, t, d.Color, opacity)
			case DabOverlay:
				brush.DrawOverlay(mask, t, d.Background, d.Color, opacity)
			default:
				brush.DrawNormal(mask, t, d.Color, opacity)
			}
			touched++
		}
	}
	paintcore.Logger().Debug("canvas: dab", "x", d.X, "y", d.Y, "radius", d.Radius, "mode", d.Mode, "tiles", touched)
}

// Pick returns the average straight color and alpha under the footprint
// of dab d, weighted by its coverage. Smudge brushes pick up color this way.
func (c *Canvas) Pick(d Dab) (paintcore.RGB, uint16) {
	lo, hi := c.dabTiles(d)
	coverage := make([]uint16, paintcore.TilePixels)
	var (
		mask brush.Mask
		sums brush.Sums
	)
	for ty := lo.Y; ty <= hi.Y; ty++ {
		for tx := lo.X; tx <= hi.X; tx++ {
			k := Key{tx, ty}
			var ok bool
			if mask, ok = dabMask(d, k, coverage, mask); !ok {
				continue
			}
			if t := c.tiles[k]; t != nil {
				sums.Accumulate(mask, t)
			} else {
				// Transparent pixels still weigh in.
				sums.Accumulate(mask, emptyTile)
			}
		}
	}
	return sums.Average()
}

var emptyTile = paintcore.NewTile()
