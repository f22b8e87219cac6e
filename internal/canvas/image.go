package canvas

import (
	"context"
	"errors"
	"image"
	"image/color"

	"github.com/gogpu/paintcore"
	"github.com/gogpu/paintcore/backdrop"
	"github.com/gogpu/paintcore/convert"
	"github.com/gogpu/paintcore/internal/parallel"
)

// ErrLinearAlpha is returned by ToImage when linear-light output is
// requested without a background. Linear output is display-only and opaque.
var ErrLinearAlpha = errors.New("canvas: linear output needs a background")

// FromImage converts img into a canvas. Tiles whose pixels are all
// transparent are not allocated. With linear set, colors are converted to
// linear light.
func FromImage(img image.Image, linear bool) *Canvas {
	b := img.Bounds()
	c := New(b.Dx(), b.Dy())
	cols, rows := c.Grid()
	buf := make([]uint8, paintcore.TileLen)

	for ty := range rows {
		for tx := range cols {
			if !readTile8(img, tx, ty, buf) {
				continue
			}
			t := c.tileForWrite(Key{tx, ty})
			if linear {
				convert.RGBA8ToLinearRGBA16(buf, t)
			} else {
				convert.RGBA8ToRGBA16(buf, t, convert.KeepAlpha)
			}
		}
	}
	paintcore.Logger().Debug("canvas: loaded image",
		"width", c.width, "height", c.height, "tiles", len(c.tiles), "linear", linear)
	return c
}

// readTile8 fills buf with the straight-alpha pixels of tile (tx, ty) and
// reports whether any of them is visible.
func readTile8(img image.Image, tx, ty int, buf []uint8) bool {
	convert.Clear8(buf)
	b := img.Bounds()
	x0 := b.Min.X + tx*paintcore.TileSize
	y0 := b.Min.Y + ty*paintcore.TileSize
	w := min(paintcore.TileSize, b.Max.X-x0)
	h := min(paintcore.TileSize, b.Max.Y-y0)

	nrgba, fast := img.(*image.NRGBA)
	for y := range h {
		row := buf[paintcore.PixelOffset(0, y):]
		if fast {
			off := nrgba.PixOffset(x0, y0+y)
			copy(row[:w*4], nrgba.Pix[off:off+w*4])
			continue
		}
		for x := range w {
			px := color.NRGBAModel.Convert(img.At(x0+x, y0+y)).(color.NRGBA)
			row[4*x], row[4*x+1], row[4*x+2], row[4*x+3] = px.R, px.G, px.B, px.A
		}
	}

	for i := 3; i < len(buf); i += 4 {
		if buf[i] != 0 {
			return true
		}
	}
	return false
}

// ToImage renders c to an 8-bit image. With a background the result is
// flattened against it and opaque; without one it keeps its alpha. Linear
// canvases must pass linear so the output is encoded back to sRGB.
func (c *Canvas) ToImage(ctx context.Context, pool *parallel.Pool, bg *backdrop.Background, linear bool) (*image.NRGBA, error) {
	if linear && bg == nil {
		return nil, ErrLinearAlpha
	}

	img := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	cols, rows := c.Grid()
	err := pool.Run(ctx, cols*rows, func(i int) error {
		k := Key{i % cols, i / cols}
		scratch := parallel.GetTile()
		defer parallel.PutTile(scratch)
		if t := c.tiles[k]; t != nil {
			convert.Copy(t, scratch[:])
		}

		buf := make([]uint8, paintcore.TileLen)
		switch {
		case bg == nil:
			convert.RGBA16ToRGBA8(scratch[:], buf)
		case linear:
			backdrop.Flatten(scratch[:], *bg)
			convert.LinearRGBU16ToRGBU8(scratch[:], buf)
		default:
			backdrop.Flatten(scratch[:], *bg)
			convert.RGBU16ToRGBU8(scratch[:], buf)
		}
		writeTile8(img, k, buf)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// writeTile8 copies the part of an 8-bit tile that lies inside img.
func writeTile8(img *image.NRGBA, k Key, buf []uint8) {
	x0, y0 := k.X*paintcore.TileSize, k.Y*paintcore.TileSize
	w := min(paintcore.TileSize, img.Rect.Dx()-x0)
	h := min(paintcore.TileSize, img.Rect.Dy()-y0)
	for y := range h {
		off := img.PixOffset(x0, y0+y)
		src := buf[paintcore.PixelOffset(0, y):]
		copy(img.Pix[off:off+w*4], src[:w*4])
	}
}
