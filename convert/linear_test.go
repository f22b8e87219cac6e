package convert

import (
	"testing"

	"github.com/gogpu/paintcore"
)

func TestCurveEndpoints(t *testing.T) {
	tests := []struct {
		name string
		f    func(uint16) uint16
		in   uint16
		want uint16
	}{
		{"srgb->linear 0", SRGBToLinear, 0, 0},
		{"srgb->linear 1", SRGBToLinear, paintcore.One, paintcore.One},
		{"linear->srgb 0", LinearToSRGB, 0, 0},
		{"linear->srgb 1", LinearToSRGB, paintcore.One, paintcore.One},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f(tt.in); got != tt.want {
				t.Errorf("f(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestCurveMidpoint(t *testing.T) {
	// sRGB 0.5 is about 0.214 in linear light.
	got := paintcore.ToFloat(SRGBToLinear(paintcore.Half))
	if got < 0.21 || got > 0.22 {
		t.Errorf("SRGBToLinear(0.5) = %.4f, want ~0.214", got)
	}
}

func TestCurvesMonotonic(t *testing.T) {
	for i := 1; i <= paintcore.One; i++ {
		if srgbToLinear[i] < srgbToLinear[i-1] {
			t.Fatalf("srgbToLinear decreases at %d", i)
		}
		if linearToSRGB[i] < linearToSRGB[i-1] {
			t.Fatalf("linearToSRGB decreases at %d", i)
		}
	}
}

func TestCurvesRoundTrip(t *testing.T) {
	for i := paintcore.One / 8; i <= paintcore.One; i += 7 {
		v := uint16(i)
		back := LinearToSRGB(SRGBToLinear(v))
		diff := int(back) - int(v)
		if diff < -4 || diff > 4 {
			t.Fatalf("LinearToSRGB(SRGBToLinear(%d)) = %d", v, back)
		}
	}
}

func TestLinearTileConversion(t *testing.T) {
	src := make([]uint8, paintcore.TileLen)
	fillPattern(src, 255)
	mid := paintcore.NewTile()
	RGBA8ToLinearRGBA16(src, mid)

	for i := 0; i < paintcore.TileLen; i += 4 {
		if mid[i+3] != paintcore.One {
			t.Fatalf("pixel %d alpha = %d, want One", i/4, mid[i+3])
		}
	}

	dst := make([]uint8, paintcore.TileLen)
	LinearRGBU16ToRGBU8(mid, dst)
	for i := range src {
		diff := int(dst[i]) - int(src[i])
		if diff < -1 || diff > 1 {
			t.Fatalf("channel %d of pixel %d = %d, want %d±1", i%4, i/4, dst[i], src[i])
		}
	}
}
