// Package paintcore is the pixel compositing core of a tiled raster painting
// program.
//
// # Overview
//
// Pixels are stored as 15-bit fixed point: every channel is a uint16 in the
// closed range [0, One], where One (1<<15) is exactly 1.0. Color channels are
// premultiplied by alpha, so a stored pixel always satisfies r, g, b <= a.
// The 8-bit storage format keeps straight (non-premultiplied) alpha.
//
// All operations work on one square tile of TileSize x TileSize pixels at a
// time. Tiles are plain row-major slices handed in by the caller; the core
// never allocates, resizes or frees them.
//
// # Packages
//
// The core is split by concern:
//   - paintcore: fixed-point constants and helpers, colors, logger, debug checks
//   - convert: 16 <-> 8 bit conversion with dithering, linear-light tables
//   - brush: RLE coverage masks and dab blend operators
//   - blend: blend modes and the tile compositor
//   - backdrop: flatten and unflatten against a background
//   - strokemap: perceptual stroke-change bitmaps
//   - mipmap: 2x2 box downscaling
//
// # Concurrency
//
// Every operation is a synchronous loop over a single tile with no shared
// mutable state. Distinct tiles may be processed from any number of
// goroutines. Lookup tables (dither noise, linear-light curves) are built
// during package initialization and are read-only afterwards.
//
// # Diagnostics
//
// Building with the heavydebug tag turns on precondition and postcondition
// checks (tile shapes, channel ranges, premultiplication). A failed check
// panics at the point of violation. Without the tag the checks compile away.
package paintcore

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
