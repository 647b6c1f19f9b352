package raster

import (
	"image"

	"phong-renderer/internal/mathutil"
)

// SampleNormal performs bilinear filtering of a tangent-space normal map with
// UV wrapping. Channels are decoded as n = 2*c/255 - 1. The returned alpha is
// the filtered coverage in [0, 1]. Accesses tex.Pix directly for performance.
func SampleNormal(tex *image.NRGBA, u, v float64) (mathutil.Vec3, float64) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()
	if w == 0 || h == 0 {
		return mathutil.Vec3{}, 0
	}

	// Wrap UVs
	u = u - float64(int(u))
	if u < 0 {
		u += 1.0
	}
	v = v - float64(int(v))
	if v < 0 {
		v += 1.0
	}

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1 := (x0 + 1) % w
	y1 := (y0 + 1) % h
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	stride := tex.Stride
	pix := tex.Pix

	// Four texels
	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	var n mathutil.Vec3
	for k := 0; k < 3; k++ {
		c := float64(pix[i00+k])*w00 + float64(pix[i10+k])*w10 + float64(pix[i01+k])*w01 + float64(pix[i11+k])*w11
		n[k] = c/127.5 - 1
	}
	a := float64(pix[i00+3])*w00 + float64(pix[i10+3])*w10 + float64(pix[i01+3])*w01 + float64(pix[i11+3])*w11

	return n, a / 255
}
