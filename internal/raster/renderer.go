package raster

import (
	"image"
	"math"
	"runtime"
	"sync"

	"phong-renderer/internal/mathutil"
)

// RenderSphere shades a unit sphere filling a size×size square, seen along -Z.
// rot is applied to every surface normal before shading, so a tilted model
// can be lit by a fixed light. Pixels outside the disc are transparent.
func RenderSphere(size int, rot mathutil.Mat3, lc *LightConfig) *image.NRGBA {
	fb := NewFrameBuffer(size, size)
	if size <= 0 {
		return fb.Image()
	}

	half := float64(size) / 2
	shadeRows(size, func(y int) {
		ny := -(float64(y) + 0.5 - half) / half
		for x := 0; x < size; x++ {
			nx := (float64(x) + 0.5 - half) / half
			d := nx*nx + ny*ny
			if d > 1 {
				continue
			}
			n := rot.MulVec3(mathutil.Vec3{nx, ny, math.Sqrt(1 - d)})
			fb.Set(x, y, lc.ColorFromNorm(n))
		}
	})

	return fb.Image()
}

// ShadeNormalMap shades every pixel of a width×height target using normals
// sampled from a tangent-space normal map. Texels with zero coverage stay
// transparent.
func ShadeNormalMap(nm *image.NRGBA, width, height int, lc *LightConfig) *image.NRGBA {
	fb := NewFrameBuffer(width, height)
	if width <= 0 || height <= 0 || nm == nil {
		return fb.Image()
	}

	shadeRows(height, func(y int) {
		v := (float64(y) + 0.5) / float64(height)
		for x := 0; x < width; x++ {
			u := (float64(x) + 0.5) / float64(width)
			n, a := SampleNormal(nm, u, v)
			if a <= 0 {
				continue
			}
			fb.SetAlpha(x, y, lc.ColorFromNorm(n), clamp8(a*255))
		}
	})

	return fb.Image()
}

// shadeRows calls fn for every row in [0, rows), spreading rows across
// NumCPU goroutines. Each row is written by exactly one goroutine.
func shadeRows(rows int, fn func(y int)) {
	workers := runtime.NumCPU()
	if workers > rows {
		workers = rows
	}

	rowChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rowChan {
				fn(y)
			}
		}()
	}

	for y := 0; y < rows; y++ {
		rowChan <- y
	}
	close(rowChan)

	wg.Wait()
}

// AverageColor returns the mean color of the opaque pixels of img.
func AverageColor(img *image.NRGBA) RGB {
	b := img.Bounds()
	var sum mathutil.Vec3
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			i := off + x*4
			if img.Pix[i+3] == 0 {
				continue
			}
			sum = sum.Add(mathutil.Vec3{float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2])})
			n++
		}
	}
	if n == 0 {
		return RGB{}
	}
	return RGBFromVec3(sum.Scale(1 / float64(n)))
}
