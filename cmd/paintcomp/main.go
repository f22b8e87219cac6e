// Command paintcomp composites image layers with the paintcore tile
// operations.
//
// Usage:
//
//	paintcomp [flags] layer[:mode[:opacity]] ...
//
// Layers are listed bottom first. Modes are the CSS blend mode names
// (run paintcomp -modes for the list). Dabs given with -dab are painted on
// top of the composite, -strokemap writes the pixels they touched and -hit
// tests single pixels against them.
//
// Environment (also read from ./.env):
//
//	PAINTCORE_LOG         log level: debug, info, warn, error (default warn)
//	PAINTCORE_WORKERS     worker goroutines (default GOMAXPROCS)
//	PAINTCORE_BACKGROUND  default -bg color
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/paintcore"
	"github.com/gogpu/paintcore/backdrop"
	"github.com/gogpu/paintcore/blend"
	"github.com/gogpu/paintcore/convert"
	"github.com/gogpu/paintcore/internal/canvas"
	"github.com/gogpu/paintcore/internal/parallel"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "paintcomp:", err)
		os.Exit(1)
	}
}

type options struct {
	output      string
	background  string
	transparent bool
	linear      bool
	unflatten   bool
	mip         int
	dabs        []canvas.Dab
	strokeMap   string
	pick        *canvas.Dab
	hits        []image.Point
	listModes   bool
	layers      []layerArg
}

func parseArgs(args []string, cfg config, stderr io.Writer) (*options, error) {
	opts := &options{}
	flags := flag.NewFlagSet("paintcomp", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&opts.output, "o", "out.png", "output PNG file")
	flags.StringVar(&opts.background, "bg", cfg.background, "background color as #rrggbb")
	flags.BoolVar(&opts.transparent, "transparent", false, "keep alpha instead of flattening onto -bg")
	flags.BoolVar(&opts.linear, "linear", false, "composite in linear light")
	flags.BoolVar(&opts.unflatten, "unflatten", false, "treat the bottom layer as a flat scan over -bg and recover its alpha")
	flags.IntVar(&opts.mip, "mip", 0, "halve the output size this many times")
	flags.StringVar(&opts.strokeMap, "strokemap", "", "write a mask of the pixels touched by -dab to this PNG file")
	flags.BoolVar(&opts.listModes, "modes", false, "list blend modes and exit")
	flags.Func("dab", "paint a dab: x,y,radius[,#rrggbb[,opacity[,mode[,hardness]]]] (repeatable)", func(s string) error {
		d, err := parseDab(s)
		if err == nil {
			opts.dabs = append(opts.dabs, d)
		}
		return err
	})
	flags.Func("pick", "print the average color under x,y,radius", func(s string) error {
		d, err := parsePick(s)
		if err == nil {
			opts.pick = &d
		}
		return err
	})
	flags.Func("hit", "report whether the -dab strokes visibly touched x,y (repeatable)", func(s string) error {
		p, err := parsePoint(s)
		if err == nil {
			opts.hits = append(opts.hits, p)
		}
		return err
	})
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	for _, a := range flags.Args() {
		l, err := parseLayer(a)
		if err != nil {
			return nil, err
		}
		opts.layers = append(opts.layers, l)
	}
	switch {
	case opts.listModes:
	case len(opts.layers) == 0:
		return nil, errors.New("no layers given")
	case opts.mip < 0:
		return nil, fmt.Errorf("-mip %d: must not be negative", opts.mip)
	case opts.linear && opts.transparent:
		return nil, errors.New("-linear output needs a background; drop -transparent")
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.logLevel}))
	paintcore.SetLogger(logger)
	defer paintcore.SetLogger(nil)

	opts, err := parseArgs(args, cfg, stderr)
	if err != nil {
		return err
	}
	if opts.listModes {
		return listModes(stdout)
	}

	bgColor, err := paintcore.ParseHex(opts.background)
	if err != nil {
		return fmt.Errorf("-bg: %w", err)
	}
	if opts.linear {
		bgColor = linearRGB(bgColor)
		for i := range opts.dabs {
			opts.dabs[i].Color = linearRGB(opts.dabs[i].Color)
		}
	}
	bg := backdrop.Solid(bgColor)

	pool := parallel.NewPool(cfg.workers)
	defer pool.Close()
	logger.Info("starting", "layers", len(opts.layers), "workers", pool.Workers(), "linear", opts.linear)

	c, err := compositeLayers(ctx, pool, opts, bg)
	if err != nil {
		return err
	}

	var strokes map[canvas.Key][]byte
	if len(opts.dabs) > 0 {
		before := c.Clone()
		for _, d := range opts.dabs {
			d.Background = bg
			c.Draw(d)
		}
		if opts.strokeMap != "" || len(opts.hits) > 0 {
			if strokes, err = canvas.StrokeMap(ctx, pool, before, c); err != nil {
				return err
			}
		}
		if opts.strokeMap != "" {
			if err := writeStrokeMap(c, strokes, opts.strokeMap); err != nil {
				return err
			}
		}
	}
	for _, p := range opts.hits {
		fmt.Fprintf(stdout, "hit %d,%d %v\n", p.X, p.Y, canvas.Touches(strokes, p.X, p.Y))
	}

	if opts.pick != nil {
		rgb, alpha := c.Pick(*opts.pick)
		if opts.linear {
			rgb = sRGB(rgb)
		}
		fmt.Fprintf(stdout, "%s alpha=%.3f\n", rgb.Hex(), paintcore.ToFloat(alpha))
	}

	for range opts.mip {
		if c, err = c.Downscale(ctx, pool); err != nil {
			return err
		}
	}

	var flat *backdrop.Background
	if !opts.transparent {
		flat = &bg
	}
	img, err := c.ToImage(ctx, pool, flat, opts.linear)
	if err != nil {
		return err
	}
	if err := writePNG(opts.output, img); err != nil {
		return err
	}
	logger.Info("wrote output", "path", opts.output, "width", img.Rect.Dx(), "height", img.Rect.Dy())
	return nil
}

// compositeLayers loads the layers and blends them bottom-up onto a
// transparent canvas the size of the bottom layer.
func compositeLayers(ctx context.Context, pool *parallel.Pool, opts *options, bg backdrop.Background) (*canvas.Canvas, error) {
	var out *canvas.Canvas
	for i, l := range opts.layers {
		img, err := readImage(l.path)
		if err != nil {
			return nil, err
		}
		layer := canvas.FromImage(img, opts.linear)
		if i == 0 {
			if opts.unflatten {
				if err := layer.Unflatten(ctx, pool, bg); err != nil {
					return nil, err
				}
			}
			out = canvas.New(layer.Size())
		}
		if err := out.Composite(ctx, pool, layer, l.mode, l.opacity); err != nil {
			return nil, fmt.Errorf("composite %s: %w", l.path, err)
		}
		paintcore.Logger().Debug("composited layer", "path", l.path, "mode", l.mode, "opacity", l.opacity)
	}
	return out, nil
}

func writeStrokeMap(c *canvas.Canvas, maps map[canvas.Key][]byte, path string) error {
	w, h := c.Size()
	img, err := canvas.StrokeImage(w, h, maps)
	if err != nil {
		return err
	}
	return writePNG(path, img)
}

func listModes(w io.Writer) error {
	title := cases.Title(language.English)
	for _, m := range blend.Modes() {
		name := title.String(strings.ReplaceAll(m.String(), "-", " "))
		if _, err := fmt.Fprintf(w, "%-12s %-12s %s\n", m, name, m.OpenRasterName()); err != nil {
			return err
		}
	}
	return nil
}

func linearRGB(c paintcore.RGB) paintcore.RGB {
	return paintcore.RGB{R: convert.SRGBToLinear(c.R), G: convert.SRGBToLinear(c.G), B: convert.SRGBToLinear(c.B)}
}

func sRGB(c paintcore.RGB) paintcore.RGB {
	return paintcore.RGB{R: convert.LinearToSRGB(c.R), G: convert.LinearToSRGB(c.G), B: convert.LinearToSRGB(c.B)}
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
