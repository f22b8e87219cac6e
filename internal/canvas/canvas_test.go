package canvas

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/gogpu/paintcore"
	"github.com/gogpu/paintcore/backdrop"
	"github.com/gogpu/paintcore/blend"
	"github.com/gogpu/paintcore/internal/parallel"
)

var red = paintcore.RGB{R: paintcore.One}

func newPool(t *testing.T) *parallel.Pool {
	t.Helper()
	pool := parallel.NewPool(4)
	t.Cleanup(pool.Close)
	return pool
}

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestGrid(t *testing.T) {
	tests := []struct {
		w, h       int
		cols, rows int
	}{
		{0, 0, 0, 0},
		{1, 1, 1, 1},
		{64, 64, 1, 1},
		{65, 128, 2, 2},
		{200, 10, 4, 1},
	}
	for _, tt := range tests {
		cols, rows := New(tt.w, tt.h).Grid()
		if cols != tt.cols || rows != tt.rows {
			t.Errorf("New(%d, %d).Grid() = %d, %d, want %d, %d", tt.w, tt.h, cols, rows, tt.cols, tt.rows)
		}
	}
}

func TestImageRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	img := image.NewNRGBA(image.Rect(0, 0, 100, 70))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(rng.IntN(256))
		img.Pix[i+1] = uint8(rng.IntN(256))
		img.Pix[i+2] = uint8(rng.IntN(256))
		img.Pix[i+3] = uint8(37 + rng.IntN(256-37))
	}

	c := FromImage(img, false)
	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", c.Len())
	}
	out, err := c.ToImage(context.Background(), newPool(t), nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rect != img.Rect {
		t.Fatalf("bounds = %v, want %v", out.Rect, img.Rect)
	}
	for i := range img.Pix {
		if out.Pix[i] != img.Pix[i] {
			t.Fatalf("Pix[%d] = %d, want %d", i, out.Pix[i], img.Pix[i])
		}
	}
}

func TestFromImageSkipsTransparent(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 10+130, 10+64))
	img.Set(10+129, 10, color.RGBA{R: 255, A: 255})

	c := FromImage(img, false)
	if w, h := c.Size(); w != 130 || h != 64 {
		t.Fatalf("Size() = %d, %d", w, h)
	}
	keys := c.Keys()
	if len(keys) != 1 || keys[0] != (Key{2, 0}) {
		t.Fatalf("Keys() = %v, want [{2 0}]", keys)
	}
	if got := c.At(129, 0); got != [4]uint16{paintcore.One, 0, 0, paintcore.One} {
		t.Errorf("At(129, 0) = %v", got)
	}
}

func TestToImageBackground(t *testing.T) {
	c := New(10, 10)
	bg := backdrop.Solid(paintcore.RGB{R: paintcore.One, G: paintcore.One, B: paintcore.One})
	out, err := c.ToImage(context.Background(), newPool(t), &bg, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.NRGBAAt(5, 5); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("empty canvas over white = %v", got)
	}

	if _, err := c.ToImage(context.Background(), newPool(t), nil, true); !errors.Is(err, ErrLinearAlpha) {
		t.Errorf("ToImage(linear, no bg) error = %v, want ErrLinearAlpha", err)
	}
	if _, err := c.ToImage(context.Background(), newPool(t), &bg, true); err != nil {
		t.Errorf("ToImage(linear) error: %v", err)
	}
}

func TestComposite(t *testing.T) {
	pool := newPool(t)
	dst := FromImage(solidImage(80, 80, color.NRGBA{0, 0, 255, 255}), false)
	src := New(80, 80)
	src.Draw(Dab{X: 70, Y: 70, Radius: 5, Hardness: 1, Color: red, Opacity: 1})

	if err := dst.Composite(context.Background(), pool, src, blend.Normal, 1); err != nil {
		t.Fatal(err)
	}
	if got := dst.At(70, 70); got != [4]uint16{paintcore.One, 0, 0, paintcore.One} {
		t.Errorf("At(70, 70) = %v, want red", got)
	}
	if got := dst.At(10, 10); got != [4]uint16{0, 0, paintcore.One, paintcore.One} {
		t.Errorf("At(10, 10) = %v, want blue", got)
	}

	before := dst.Clone()
	if err := dst.Composite(context.Background(), pool, src, blend.Multiply, 0); err != nil {
		t.Fatal(err)
	}
	if dst.At(70, 70) != before.At(70, 70) {
		t.Error("zero-opacity composite changed the canvas")
	}
}

func TestUnflatten(t *testing.T) {
	white := paintcore.RGB{R: paintcore.One, G: paintcore.One, B: paintcore.One}
	c := FromImage(solidImage(70, 10, color.NRGBA{255, 255, 255, 255}), false)
	if err := c.Unflatten(context.Background(), newPool(t), backdrop.Solid(white)); err != nil {
		t.Fatal(err)
	}
	if got := c.At(3, 3); got != [4]uint16{} {
		t.Errorf("white over white unflattened to %v, want transparent", got)
	}
}

func TestDownscale(t *testing.T) {
	pool := newPool(t)
	c := FromImage(solidImage(129, 65, color.NRGBA{255, 0, 0, 255}), false)
	mip, err := c.Downscale(context.Background(), pool)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := mip.Size(); w != 65 || h != 33 {
		t.Fatalf("Size() = %d, %d, want 65, 33", w, h)
	}
	if got := mip.At(10, 10); got != [4]uint16{paintcore.One, 0, 0, paintcore.One} {
		t.Errorf("At(10, 10) = %v, want red", got)
	}
	if mip.Len() != 2 {
		t.Errorf("Len() = %d, want 2", mip.Len())
	}
}

func TestStrokeMap(t *testing.T) {
	pool := newPool(t)
	before := New(200, 100)
	after := before.Clone()
	after.Draw(Dab{X: 100, Y: 50, Radius: 8, Hardness: 0.5, Color: red, Opacity: 1})

	maps, err := StrokeMap(context.Background(), pool, before, after)
	if err != nil {
		t.Fatal(err)
	}
	if len(maps) == 0 {
		t.Fatal("StrokeMap() found no change")
	}
	img, err := StrokeImage(200, 100, maps)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.GrayAt(100, 50).Y; got != 255 {
		t.Errorf("center = %d, want 255", got)
	}
	if got := img.GrayAt(10, 10).Y; got != 0 {
		t.Errorf("far pixel = %d, want 0", got)
	}
	for _, tt := range []struct {
		x, y int
		want bool
	}{
		{100, 50, true},
		{10, 10, false},
		{-5, 50, false},
		{500, 50, false},
	} {
		if got := Touches(maps, tt.x, tt.y); got != tt.want {
			t.Errorf("Touches(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	same, err := StrokeMap(context.Background(), pool, after, after.Clone())
	if err != nil {
		t.Fatal(err)
	}
	if len(same) != 0 {
		t.Errorf("StrokeMap(identical) = %d tiles, want 0", len(same))
	}
}

func TestDrawModes(t *testing.T) {
	c := FromImage(solidImage(64, 64, color.NRGBA{0, 255, 0, 255}), false)
	c.Draw(Dab{X: 10, Y: 10, Radius: 4, Hardness: 1, Opacity: 1, Mode: DabEraser})
	if got := c.At(10, 10); got[3] != 0 {
		t.Errorf("erased alpha = %d, want 0", got[3])
	}

	c.Draw(Dab{X: 40, Y: 40, Radius: 4, Hardness: 1, Color: red, Opacity: 1, Mode: DabLockAlpha})
	if got := c.At(40, 40); got != [4]uint16{paintcore.One, 0, 0, paintcore.One} {
		t.Errorf("lock-alpha pixel = %v, want red", got)
	}

	empty := New(64, 64)
	empty.Draw(Dab{X: 10, Y: 10, Radius: 4, Hardness: 1, Color: red, Opacity: 1, Mode: DabLockAlpha})
	if empty.Len() != 0 {
		t.Error("lock-alpha allocated a tile on an empty canvas")
	}

	gray := backdrop.Solid(paintcore.RGB{R: paintcore.Half, G: paintcore.Half, B: paintcore.Half})
	empty.Draw(Dab{X: 10, Y: 10, Radius: 4, Hardness: 1, Opacity: 1, Mode: DabOverlay, Background: gray})
	if got := empty.At(10, 10); got != [4]uint16{0, 0, 0, paintcore.One} {
		t.Errorf("black overlay over gray = %v, want opaque black", got)
	}
}

func TestDrawOutside(t *testing.T) {
	c := New(64, 64)
	c.Draw(Dab{X: -100, Y: -100, Radius: 10, Hardness: 1, Color: red, Opacity: 1})
	c.Draw(Dab{X: 10, Y: 10, Radius: 10, Hardness: 1, Color: red, Opacity: 0})
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestPick(t *testing.T) {
	c := FromImage(solidImage(64, 64, color.NRGBA{255, 0, 0, 255}), false)
	got, alpha := c.Pick(Dab{X: 32, Y: 32, Radius: 6, Hardness: 0.3})
	if got != red || alpha != paintcore.One {
		t.Errorf("Pick() = %+v, %d, want red, One", got, alpha)
	}

	half := New(128, 64)
	half.Draw(Dab{X: 32, Y: 32, Radius: 40, Hardness: 1, Color: red, Opacity: 1})
	_, alpha = half.Pick(Dab{X: 72, Y: 32, Radius: 3, Hardness: 1})
	if alpha == 0 || alpha == paintcore.One {
		t.Errorf("Pick() across an edge alpha = %d, want partial", alpha)
	}
}

func TestParseDabMode(t *testing.T) {
	for _, m := range []DabMode{DabNormal, DabEraser, DabLockAlpha, DabOverlay} {
		got, err := ParseDabMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseDabMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseDabMode("smudge"); err == nil {
		t.Error("ParseDabMode(smudge) succeeded")
	}
}
