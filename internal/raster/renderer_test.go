package raster

import (
	"image"
	"image/color"
	"testing"

	"phong-renderer/internal/mathutil"
)

func pixel(img *image.NRGBA, x, y int) color.NRGBA {
	return img.NRGBAAt(x, y)
}

func TestRenderSphere(t *testing.T) {
	lc := TestLight
	img := RenderSphere(65, mathutil.Mat3Identity(), &lc)

	if b := img.Bounds(); b.Dx() != 65 || b.Dy() != 65 {
		t.Fatalf("RenderSphere bounds = %v, want 65×65", b)
	}

	want := lc.ColorFromNorm(mathutil.Vec3{0, 0, 1})
	got := pixel(img, 32, 32)
	if got != (color.NRGBA{want.R, want.G, want.B, 255}) {
		t.Errorf("center pixel = %v, want %v", got, want)
	}

	if a := pixel(img, 0, 0).A; a != 0 {
		t.Errorf("corner alpha = %d, want 0 (outside the sphere)", a)
	}

	// The lit side faces +x +y, so the upper-right quadrant is brighter.
	ur := pixel(img, 44, 20)
	ll := pixel(img, 20, 44)
	if ur.R <= ll.R {
		t.Errorf("upper-right R = %d, lower-left R = %d, want upper-right brighter", ur.R, ll.R)
	}
}

func TestRenderSphereRotated(t *testing.T) {
	lc := TestLight
	img := RenderSphere(33, mathutil.RotY(mathutil.Deg2Rad(180)), &lc)

	// The center normal now points away from the light: only ambient (black).
	got := pixel(img, 16, 16)
	if got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("center pixel = %v, want opaque black", got)
	}
}

func TestRenderSphereEmpty(t *testing.T) {
	img := RenderSphere(0, mathutil.Mat3Identity(), &TestLight)
	if !img.Bounds().Empty() {
		t.Errorf("RenderSphere(0) bounds = %v, want empty", img.Bounds())
	}
}

func uniformMap(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestShadeNormalMap(t *testing.T) {
	lc := TestLight
	nm := uniformMap(4, 4, color.NRGBA{128, 128, 255, 255})

	img := ShadeNormalMap(nm, 8, 6, &lc)
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Fatalf("ShadeNormalMap bounds = %v, want 8×6", b)
	}

	want := lc.ColorFromNorm(mathutil.Vec3{128/127.5 - 1, 128/127.5 - 1, 1})
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			p := pixel(img, x, y)
			if p.A != 255 || !within(RGB{p.R, p.G, p.B}, want, 1) {
				t.Fatalf("pixel (%d,%d) = %v, want %v opaque", x, y, p, want)
			}
		}
	}
}

func TestShadeNormalMapTransparent(t *testing.T) {
	nm := uniformMap(2, 2, color.NRGBA{128, 128, 255, 0})
	img := ShadeNormalMap(nm, 4, 4, &TestLight)
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			t.Fatalf("alpha at %d = %d, want 0", i, img.Pix[i])
		}
	}
}

func TestSampleNormalDecode(t *testing.T) {
	nm := uniformMap(3, 3, color.NRGBA{0, 255, 255, 255})
	n, a := SampleNormal(nm, 0.5, 0.5)
	if !(n[0] < -0.99 && n[1] > 0.99 && n[2] > 0.99) {
		t.Errorf("SampleNormal() = %v, want ~(-1, 1, 1)", n)
	}
	if a < 0.999 {
		t.Errorf("SampleNormal() alpha = %v, want 1", a)
	}
}

func TestAverageColor(t *testing.T) {
	img := uniformMap(3, 3, color.NRGBA{10, 20, 30, 255})
	img.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 0}) // transparent pixels are ignored
	if got := AverageColor(img); got != (RGB{10, 20, 30}) {
		t.Errorf("AverageColor() = %v, want {10 20 30}", got)
	}
	if got := AverageColor(image.NewNRGBA(image.Rect(0, 0, 2, 2))); got != (RGB{}) {
		t.Errorf("AverageColor(transparent) = %v, want zero", got)
	}
}

func TestFrameBufferSetIgnoresOutOfRange(t *testing.T) {
	fb := NewFrameBuffer(2, 2)
	fb.Set(-1, 0, RGB{1, 2, 3})
	fb.Set(2, 1, RGB{1, 2, 3})
	fb.Set(1, 1, RGB{7, 8, 9})
	img := fb.Image()
	if p := img.NRGBAAt(1, 1); p != (color.NRGBA{7, 8, 9, 255}) {
		t.Errorf("pixel (1,1) = %v, want {7 8 9 255}", p)
	}
	if p := img.NRGBAAt(0, 0); p.A != 0 {
		t.Errorf("pixel (0,0) = %v, want untouched", p)
	}
}
