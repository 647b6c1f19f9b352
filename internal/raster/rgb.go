package raster

import (
	"fmt"
	"math"

	"phong-renderer/internal/mathutil"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// RGBA implements color.Color with full alpha.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Vec3 maps each channel to a float component unchanged.
func (c RGB) Vec3() mathutil.Vec3 {
	return mathutil.Vec3{float64(c.R), float64(c.G), float64(c.B)}
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBFromVec3 rounds each component to the nearest channel value,
// saturating at 0 and 255. NaN becomes 0.
func RGBFromVec3(v mathutil.Vec3) RGB {
	return RGB{R: clamp8(v[0]), G: clamp8(v[1]), B: clamp8(v[2])}
}

func clamp8(v float64) uint8 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
