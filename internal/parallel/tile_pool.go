package parallel

import (
	"sync"

	"github.com/gogpu/paintcore"
)

// Tile is a 16-bit RGBA tile. Use t[:] where a tile slice is expected.
type Tile = [paintcore.TileLen]uint16

// TilePool recycles scratch tiles. It is safe for concurrent use.
type TilePool struct {
	pool sync.Pool
}

// NewTilePool creates an empty tile pool.
func NewTilePool() *TilePool {
	p := &TilePool{}
	p.pool.New = func() any { return new(Tile) }
	return p
}

// Get returns a zeroed tile.
func (p *TilePool) Get() *Tile {
	t := p.pool.Get().(*Tile)
	clear(t[:])
	return t
}

// Put returns t to the pool. A nil tile is ignored.
func (p *TilePool) Put(t *Tile) {
	if t == nil {
		return
	}
	p.pool.Put(t)
}

var defaultTiles = NewTilePool()

// GetTile returns a zeroed tile from the shared pool.
func GetTile() *Tile {
	return defaultTiles.Get()
}

// PutTile returns a tile to the shared pool.
func PutTile(t *Tile) {
	defaultTiles.Put(t)
}
