package raster

import (
	"image/color"
	"math"
	"testing"

	"phong-renderer/internal/mathutil"
)

func TestRGBFromVec3(t *testing.T) {
	tests := []struct {
		in   mathutil.Vec3
		want RGB
	}{
		{mathutil.Vec3{0, 128, 255}, RGB{0, 128, 255}},
		{mathutil.Vec3{0.49, 0.5, 254.6}, RGB{0, 1, 255}},
		{mathutil.Vec3{-3, 256, 765}, RGB{0, 255, 255}},
		{mathutil.Vec3{math.NaN(), math.Inf(1), math.Inf(-1)}, RGB{0, 255, 0}},
	}
	for _, tt := range tests {
		if got := RGBFromVec3(tt.in); got != tt.want {
			t.Errorf("RGBFromVec3(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRGBVec3RoundTrip(t *testing.T) {
	c := RGB{252, 219, 3}
	if got := RGBFromVec3(c.Vec3()); got != c {
		t.Errorf("RGBFromVec3(%v.Vec3()) = %v", c, got)
	}
}

func TestRGBImplementsColor(t *testing.T) {
	var c color.Color = RGB{255, 0, 128}
	got := color.NRGBAModel.Convert(c).(color.NRGBA)
	want := color.NRGBA{255, 0, 128, 255}
	if got != want {
		t.Errorf("NRGBAModel.Convert(RGB) = %v, want %v", got, want)
	}
	if s := (RGB{252, 219, 3}).String(); s != "#fcdb03" {
		t.Errorf("RGB.String() = %q, want #fcdb03", s)
	}
}
