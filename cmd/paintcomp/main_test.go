package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{envLog, envWorkers, envBackground} {
		t.Setenv(k, "")
	}
}

func writeTestPNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	if err := writePNG(path, img); err != nil {
		t.Fatal(err)
	}
}

func readTestPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestRunComposite(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	bottom := filepath.Join(dir, "bottom.png")
	top := filepath.Join(dir, "top.png")
	out := filepath.Join(dir, "out.png")
	strokes := filepath.Join(dir, "strokes.png")
	writeTestPNG(t, bottom, 100, 80, color.NRGBA{0, 0, 255, 255})
	writeTestPNG(t, top, 100, 80, color.NRGBA{255, 0, 0, 0})

	var stdout, stderr bytes.Buffer
	args := []string{
		"-o", out, "-strokemap", strokes,
		"-dab", "50,40,6,#00ff00,1,normal,1",
		"-pick", "50,40,2",
		"-hit", "50,40", "-hit", "5,5",
		bottom, top + ":multiply:0.5",
	}
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatalf("run() error: %v\n%s", err, stderr.String())
	}

	img := readTestPNG(t, out)
	if got := img.Bounds(); got != image.Rect(0, 0, 100, 80) {
		t.Fatalf("bounds = %v", got)
	}
	if got := color.NRGBAModel.Convert(img.At(5, 5)); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("background pixel = %v, want blue", got)
	}
	if got := color.NRGBAModel.Convert(img.At(50, 40)); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("dab pixel = %v, want green", got)
	}
	want := "hit 50,40 true\nhit 5,5 false\n#00ff00 alpha=1.000\n"
	if got := stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}

	mask := readTestPNG(t, strokes)
	if got := color.GrayModel.Convert(mask.At(50, 40)).(color.Gray).Y; got != 255 {
		t.Errorf("stroke map at dab = %d, want 255", got)
	}
	if got := color.GrayModel.Convert(mask.At(5, 5)).(color.Gray).Y; got != 0 {
		t.Errorf("stroke map away from dab = %d, want 0", got)
	}
}

func TestRunMip(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	layer := filepath.Join(dir, "layer.png")
	out := filepath.Join(dir, "out.png")
	writeTestPNG(t, layer, 130, 70, color.NRGBA{255, 255, 255, 0})

	var stdout, stderr bytes.Buffer
	args := []string{"-o", out, "-mip", "2", "-bg", "#000000", layer}
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	img := readTestPNG(t, out)
	if got := img.Bounds(); got != image.Rect(0, 0, 33, 18) {
		t.Errorf("bounds = %v, want 33x18", got)
	}
	if got := color.NRGBAModel.Convert(img.At(3, 3)); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("pixel = %v, want black", got)
	}
}

func TestRunModes(t *testing.T) {
	clearEnv(t)
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-modes"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	out := stdout.String()
	for _, want := range []string{"color-dodge  Color Dodge  svg:color-dodge", "normal       Normal       svg:src-over"} {
		if !strings.Contains(out, want) {
			t.Errorf("-modes output missing %q:\n%s", want, out)
		}
	}
}

func TestRunErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"no layers", nil},
		{"missing file", []string{filepath.Join(dir, "missing.png")}},
		{"bad background", []string{"-bg", "#12", "x.png"}},
		{"negative mip", []string{"-mip", "-1", "x.png"}},
		{"linear transparent", []string{"-linear", "-transparent", "x.png"}},
		{"unknown flag", []string{"-nope"}},
		{"bad hit", []string{"-hit", "3", "x.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if err := run(context.Background(), tt.args, &stdout, &stderr); err == nil {
				t.Error("run() succeeded")
			}
		})
	}
}
