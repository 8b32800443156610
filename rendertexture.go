package hologram

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RenderTexture is a persistent offscreen canvas sized in device pixels. The
// renderer draws each frame into one and the host blits it to the screen.
type RenderTexture struct {
	image *ebiten.Image
	w, h  int
}

// NewRenderTexture creates a persistent offscreen canvas of the given size.
// Non-positive dimensions are raised to 1.
func NewRenderTexture(w, h int) *RenderTexture {
	w, h = max(w, 1), max(h, 1)
	return &RenderTexture{
		image: ebiten.NewImage(w, h),
		w:     w,
		h:     h,
	}
}

// Image returns the underlying *ebiten.Image for direct manipulation.
func (rt *RenderTexture) Image() *ebiten.Image {
	return rt.image
}

// Width returns the texture width in pixels.
func (rt *RenderTexture) Width() int {
	return rt.w
}

// Height returns the texture height in pixels.
func (rt *RenderTexture) Height() int {
	return rt.h
}

// Fill fills the entire texture with the given color.
func (rt *RenderTexture) Fill(c Color) {
	rt.image.Fill(c.RGBA())
}

// DrawImageAt draws src at (x, y) scaled by (sx, sy) and tinted by c.
func (rt *RenderTexture) DrawImageAt(src *ebiten.Image, x, y, sx, sy float64, c Color) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(x, y)
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	op.Filter = ebiten.FilterLinear
	rt.image.DrawImage(src, &op)
}

// DrawTo draws the texture onto dst, scaled to cover dst's bounds.
func (rt *RenderTexture) DrawTo(dst *ebiten.Image) {
	if rt.image == nil {
		return
	}
	b := dst.Bounds()
	var op ebiten.DrawImageOptions
	if b.Dx() != rt.w || b.Dy() != rt.h {
		op.GeoM.Scale(float64(b.Dx())/float64(rt.w), float64(b.Dy())/float64(rt.h))
		op.Filter = ebiten.FilterLinear
	}
	op.GeoM.Translate(float64(b.Min.X), float64(b.Min.Y))
	dst.DrawImage(rt.image, &op)
}

// Resize deallocates the old image and creates a new one at the given
// dimensions. Resizing to the current size is a no-op.
func (rt *RenderTexture) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if rt.image != nil && width == rt.w && height == rt.h {
		return
	}
	if rt.image != nil {
		rt.image.Deallocate()
	}
	rt.image = ebiten.NewImage(width, height)
	rt.w = width
	rt.h = height
}

// Dispose deallocates the underlying image. The RenderTexture should not be
// used after calling Dispose.
func (rt *RenderTexture) Dispose() {
	if rt.image != nil {
		rt.image.Deallocate()
		rt.image = nil
	}
}
