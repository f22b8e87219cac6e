package canvas

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/paintcore"
	"github.com/gogpu/paintcore/backdrop"
	"github.com/gogpu/paintcore/blend"
	"github.com/gogpu/paintcore/internal/parallel"
	"github.com/gogpu/paintcore/mipmap"
	"github.com/gogpu/paintcore/strokemap"
)

// Composite blends src over c with the given mode and opacity. Only tiles
// present in src are visited; c grows tiles where src has content.
func (c *Canvas) Composite(ctx context.Context, pool *parallel.Pool, src *Canvas, mode blend.Mode, opacity float64) error {
	keys := src.Keys()
	dst := make([][]uint16, len(keys))
	for i, k := range keys {
		dst[i] = c.tileForWrite(k)
	}

	paintcore.Logger().Debug("canvas: composite", "mode", mode, "opacity", opacity, "tiles", len(keys))
	return pool.Run(ctx, len(keys), func(i int) error {
		blend.Composite(mode, src.tiles[keys[i]], dst[i], true, opacity)
		return nil
	})
}

// Unflatten treats c as flat colors painted over bg, such as a scan on
// paper, and replaces its alpha with the least alpha that reproduces them.
// Every tile of the grid is allocated; missing tiles count as black.
func (c *Canvas) Unflatten(ctx context.Context, pool *parallel.Pool, bg backdrop.Background) error {
	cols, rows := c.Grid()
	tiles := make([][]uint16, cols*rows)
	for i := range tiles {
		tiles[i] = c.tileForWrite(Key{i % cols, i / cols})
	}

	paintcore.Logger().Debug("canvas: unflatten", "tiles", len(tiles))
	return pool.Run(ctx, len(tiles), func(i int) error {
		t := tiles[i]
		for a := 3; a < len(t); a += 4 {
			t[a] = 0
		}
		backdrop.Unflatten(t, bg)
		return nil
	})
}

// Downscale returns the next mip level of c, half its size in both
// dimensions (rounded up).
func (c *Canvas) Downscale(ctx context.Context, pool *parallel.Pool) (*Canvas, error) {
	out := New((c.width+1)/2, (c.height+1)/2)
	for k := range c.tiles {
		out.tileForWrite(Key{k.X / 2, k.Y / 2})
	}
	keys := out.Keys()

	paintcore.Logger().Debug("canvas: downscale", "width", out.width, "height", out.height, "tiles", len(keys))
	err := pool.Run(ctx, len(keys), func(i int) error {
		k := keys[i]
		var quads [4][]uint16
		for q := range quads {
			quads[q] = c.tiles[Key{2*k.X + q%2, 2*k.Y + q/2}]
		}
		mipmap.Assemble(quads, out.tiles[k])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// StrokeMap compares two versions of a canvas and returns, per tile, the
// packed bitmap of pixels the change visibly touched. Tiles without any
// changed pixel are omitted.
func StrokeMap(ctx context.Context, pool *parallel.Pool, before, after *Canvas) (map[Key][]byte, error) {
	seen := make(map[Key]bool)
	var keys []Key
	for _, cv := range []*Canvas{before, after} {
		for k := range cv.tiles {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}

	packed := make([][]byte, len(keys))
	empty := paintcore.NewTile()
	err := pool.Run(ctx, len(keys), func(i int) error {
		b, a := before.tiles[keys[i]], after.tiles[keys[i]]
		if b == nil {
			b = empty
		}
		if a == nil {
			a = empty
		}
		res := strokemap.NewBitmap()
		strokemap.PerceptualChange(b, a, res)
		if res.Count() > 0 {
			packed[i] = res.Pack(nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make(map[Key][]byte)
	for i, p := range packed {
		if p != nil {
			out[keys[i]] = p
		}
	}
	paintcore.Logger().Debug("canvas: stroke map", "compared", len(keys), "touched", len(out))
	return out, nil
}

// Touches reports whether the stroke described by maps visibly changed
// pixel (x, y). Stroke picking asks this of each stroke, newest first.
func Touches(maps map[Key][]byte, x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	k := Key{x / paintcore.TileSize, y / paintcore.TileSize}
	return strokemap.Touches(maps[k], x%paintcore.TileSize, y%paintcore.TileSize)
}

// StrokeImage renders packed stroke bitmaps as a grayscale mask, white
// where the stroke touched a pixel.
func StrokeImage(width, height int, maps map[Key][]byte) (*image.Gray, error) {
	img := image.NewGray(image.Rect(0, 0, width, height))
	res := strokemap.NewBitmap()
	for k, packed := range maps {
		if err := strokemap.Unpack(packed, res); err != nil {
			return nil, fmt.Errorf("canvas: tile %v: %w", k, err)
		}
		for p, v := range res {
			x := k.X*paintcore.TileSize + p%paintcore.TileSize
			y := k.Y*paintcore.TileSize + p/paintcore.TileSize
			if v != 0 && x < width && y < height {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img, nil
}
