package main

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/gogpu/paintcore"
	"github.com/gogpu/paintcore/blend"
	"github.com/gogpu/paintcore/internal/canvas"
)

// layerArg is one positional argument: path[:mode[:opacity]].
type layerArg struct {
	path    string
	mode    blend.Mode
	opacity float64
}

func parseLayer(s string) (layerArg, error) {
	parts := strings.Split(s, ":")
	l := layerArg{path: parts[0], mode: blend.Normal, opacity: 1}
	if l.path == "" || len(parts) > 3 {
		return layerArg{}, fmt.Errorf("layer %q: want path[:mode[:opacity]]", s)
	}
	if len(parts) > 1 && parts[1] != "" {
		m, err := blend.ParseMode(parts[1])
		if err != nil {
			return layerArg{}, fmt.Errorf("layer %q: %w", s, err)
		}
		l.mode = m
	}
	if len(parts) > 2 {
		op, err := parseUnit(parts[2])
		if err != nil {
			return layerArg{}, fmt.Errorf("layer %q: opacity: %w", s, err)
		}
		l.opacity = op
	}
	return l, nil
}

// parseDab parses x,y,radius[,color[,opacity[,mode[,hardness]]]].
func parseDab(s string) (canvas.Dab, error) {
	fields := strings.Split(s, ",")
	if len(fields) < 3 || len(fields) > 7 {
		return canvas.Dab{}, fmt.Errorf("dab %q: want x,y,radius[,color[,opacity[,mode[,hardness]]]]", s)
	}
	d := canvas.Dab{Opacity: 1, Hardness: 0.8}

	var err error
	nums := []*float64{&d.X, &d.Y, &d.Radius}
	for i, p := range nums {
		if *p, err = strconv.ParseFloat(strings.TrimSpace(fields[i]), 64); err != nil {
			return canvas.Dab{}, fmt.Errorf("dab %q: %w", s, err)
		}
	}
	if d.Radius <= 0 {
		return canvas.Dab{}, fmt.Errorf("dab %q: radius must be positive", s)
	}
	if len(fields) > 3 {
		if d.Color, err = paintcore.ParseHex(fields[3]); err != nil {
			return canvas.Dab{}, fmt.Errorf("dab %q: %w", s, err)
		}
	}
	if len(fields) > 4 {
		if d.Opacity, err = parseUnit(fields[4]); err != nil {
			return canvas.Dab{}, fmt.Errorf("dab %q: opacity: %w", s, err)
		}
	}
	if len(fields) > 5 {
		if d.Mode, err = canvas.ParseDabMode(fields[5]); err != nil {
			return canvas.Dab{}, fmt.Errorf("dab %q: %w", s, err)
		}
	}
	if len(fields) > 6 {
		if d.Hardness, err = parseUnit(fields[6]); err != nil {
			return canvas.Dab{}, fmt.Errorf("dab %q: hardness: %w", s, err)
		}
	}
	return d, nil
}

// parsePick parses x,y,radius.
func parsePick(s string) (canvas.Dab, error) {
	d, err := parseDab(s)
	if err != nil {
		return canvas.Dab{}, err
	}
	if strings.Count(s, ",") != 2 {
		return canvas.Dab{}, fmt.Errorf("pick %q: want x,y,radius", s)
	}
	return d, nil
}

// parsePoint parses x,y pixel coordinates.
func parsePoint(s string) (image.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return image.Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return image.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return image.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return image.Pt(x, y), nil
}

// parseUnit parses a number in [0, 1].
func parseUnit(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("%v out of range [0, 1]", v)
	}
	return v, nil
}
