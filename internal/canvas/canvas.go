// Package canvas stores layers as sparse grids of 16-bit tiles and runs the
// paintcore tile operations over them.
//
// Tiles are allocated on first write. A missing tile is fully transparent.
// Whole-canvas passes dispatch one task per tile to a parallel.Pool.
package canvas

import (
	"cmp"
	"slices"

	"github.com/gogpu/paintcore"
)

// Key addresses a tile by column and row.
type Key struct {
	X, Y int
}

func compareKeys(a, b Key) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}

// Canvas is a width x height pixel layer.
//
// A Canvas is not safe for concurrent use; its methods parallelize work
// internally.
type Canvas struct {
	width, height int
	tiles         map[Key][]uint16
}

// New creates an empty, fully transparent canvas.
func New(width, height int) *Canvas {
	return &Canvas{
		width:  max(width, 0),
		height: max(height, 0),
		tiles:  make(map[Key][]uint16),
	}
}

// Size returns the canvas dimensions in pixels.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Grid returns the number of tile columns and rows.
func (c *Canvas) Grid() (cols, rows int) {
	return tilesFor(c.width), tilesFor(c.height)
}

func tilesFor(n int) int {
	return (n + paintcore.TileSize - 1) / paintcore.TileSize
}

// Len returns the number of allocated tiles.
func (c *Canvas) Len() int {
	return len(c.tiles)
}

// Tile returns the tile at k, or nil if it was never written.
func (c *Canvas) Tile(k Key) []uint16 {
	return c.tiles[k]
}

// Contains reports whether k lies within the canvas grid.
func (c *Canvas) Contains(k Key) bool {
	cols, rows := c.Grid()
	return k.X >= 0 && k.Y >= 0 && k.X < cols && k.Y < rows
}

// tileForWrite returns the tile at k, allocating a transparent one if
// needed.
func (c *Canvas) tileForWrite(k Key) []uint16 {
	t, ok := c.tiles[k]
	if !ok {
		t = paintcore.NewTile()
		c.tiles[k] = t
	}
	return t
}

// Keys returns the allocated tile keys in row-major order.
func (c *Canvas) Keys() []Key {
	keys := make([]Key, 0, len(c.tiles))
	for k := range c.tiles {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)
	return keys
}

// Clone returns a deep copy of c.
func (c *Canvas) Clone() *Canvas {
	out := New(c.width, c.height)
	for k, t := range c.tiles {
		out.tiles[k] = slices.Clone(t)
	}
	return out
}

// At returns the premultiplied pixel at (x, y). Pixels outside the canvas
// or in missing tiles are transparent.
func (c *Canvas) At(x, y int) [4]uint16 {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return [4]uint16{}
	}
	t := c.tiles[Key{x / paintcore.TileSize, y / paintcore.TileSize}]
	if t == nil {
		return [4]uint16{}
	}
	off := paintcore.PixelOffset(x%paintcore.TileSize, y%paintcore.TileSize)
	return [4]uint16(t[off : off+4])
}
