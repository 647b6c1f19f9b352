package raster

import "image"

// FrameBuffer holds the rendering target as a flat slice for cache locality.
// Pixels never written stay fully transparent.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8 // RGBA interleaved, len = W*H*4
}

// NewFrameBuffer allocates a zeroed (transparent) color buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
	}
}

// Set writes an opaque pixel. Out-of-range coordinates are ignored.
func (fb *FrameBuffer) Set(x, y int, c RGB) {
	fb.SetAlpha(x, y, c, 255)
}

// SetAlpha writes a pixel with the given alpha.
func (fb *FrameBuffer) SetAlpha(x, y int, c RGB, a uint8) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	i := (y*fb.Width + x) * 4
	fb.Color[i] = c.R
	fb.Color[i+1] = c.G
	fb.Color[i+2] = c.B
	fb.Color[i+3] = a
}

// Image copies the buffer into a new NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}
