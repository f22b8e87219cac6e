package paintcore

import (
	"errors"
	"math"
	"testing"
)

func TestFromFloat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want uint16
	}{
		{"zero", 0, 0},
		{"one", 1, One},
		{"half", 0.5, Half},
		{"negative clamps", -0.25, 0},
		{"above one clamps", 1.5, One},
		{"NaN", math.NaN(), 0},
		{"rounds to nearest", 1.6 / One, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromFloat(tt.in); got != tt.want {
				t.Errorf("FromFloat(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestToFloat(t *testing.T) {
	if got := ToFloat(One); got != 1 {
		t.Errorf("ToFloat(One) = %v, want 1", got)
	}
	if got := ToFloat(Half); got != 0.5 {
		t.Errorf("ToFloat(Half) = %v, want 0.5", got)
	}
}

func TestMul(t *testing.T) {
	tests := []struct {
		a, b, want uint32
	}{
		{One, One, One},
		{One, Half, Half},
		{Half, Half, One / 4},
		{0, One, 0},
		{1, 1, 0},
	}
	for _, tt := range tests {
		if got := Mul(tt.a, tt.b); got != tt.want {
			t.Errorf("Mul(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(int64(-5), 0, One); got != 0 {
		t.Errorf("Clamp(-5) = %d, want 0", got)
	}
	if got := Clamp(int64(One+3), 0, One); got != One {
		t.Errorf("Clamp(One+3) = %d, want %d", got, One)
	}
	if got := Clamp(int64(77), 0, One); got != 77 {
		t.Errorf("Clamp(77) = %d, want 77", got)
	}
}

func TestPixelOffset(t *testing.T) {
	if got := PixelOffset(0, 0); got != 0 {
		t.Errorf("PixelOffset(0, 0) = %d, want 0", got)
	}
	if got := PixelOffset(3, 2); got != (2*TileSize+3)*4 {
		t.Errorf("PixelOffset(3, 2) = %d, want %d", got, (2*TileSize+3)*4)
	}
	if got := PixelOffset(TileSize-1, TileSize-1); got != TileLen-4 {
		t.Errorf("last pixel offset = %d, want %d", got, TileLen-4)
	}
}

func TestFillTile(t *testing.T) {
	tile := NewTile()
	FillTile(tile, 1, 2, 3, 4)
	for i := 0; i < len(tile); i += 4 {
		if tile[i] != 1 || tile[i+1] != 2 || tile[i+2] != 3 || tile[i+3] != 4 {
			t.Fatalf("pixel %d = %v, want [1 2 3 4]", i/4, tile[i:i+4])
		}
	}
}

func TestValidateTile16(t *testing.T) {
	if err := ValidateTile16(NewTile()); err != nil {
		t.Errorf("ValidateTile16(empty tile) = %v, want nil", err)
	}
	if err := ValidateTile16(make([]uint16, 12)); !errors.Is(err, ErrTileShape) {
		t.Errorf("ValidateTile16(short) = %v, want ErrTileShape", err)
	}
	tile := NewTile()
	tile[7] = One + 1
	if err := ValidateTile16(tile); !errors.Is(err, ErrChannelRange) {
		t.Errorf("ValidateTile16(out of range) = %v, want ErrChannelRange", err)
	}
}

func TestValidateTile8(t *testing.T) {
	if err := ValidateTile8(make([]uint8, TileLen)); err != nil {
		t.Errorf("ValidateTile8(tile) = %v, want nil", err)
	}
	if err := ValidateTile8(make([]uint8, TileLen+1)); !errors.Is(err, ErrTileShape) {
		t.Errorf("ValidateTile8(long) = %v, want ErrTileShape", err)
	}
}

func TestValidatePremultiplied(t *testing.T) {
	buf := []uint16{10, 10, 10, 10, 11, 0, 0, 10}
	if err := ValidatePremultiplied(buf, 1); err != nil {
		t.Errorf("ValidatePremultiplied(tolerance 1) = %v, want nil", err)
	}
	if err := ValidatePremultiplied(buf, 0); !errors.Is(err, ErrNotPremultiplied) {
		t.Errorf("ValidatePremultiplied(tolerance 0) = %v, want ErrNotPremultiplied", err)
	}
}

func TestAssert(t *testing.T) {
	Assert(nil)

	defer func() {
		if recover() == nil {
			t.Error("Assert(err) did not panic")
		}
	}()
	Assert(ErrTileShape)
}
