package hologram

import (
	"testing"
)

func TestNewRenderTextureDimensions(t *testing.T) {
	rt := NewRenderTexture(128, 64)
	defer rt.Dispose()

	if rt.Width() != 128 {
		t.Errorf("Width = %d, want 128", rt.Width())
	}
	if rt.Height() != 64 {
		t.Errorf("Height = %d, want 64", rt.Height())
	}
	if rt.Image() == nil {
		t.Error("Image() should not be nil")
	}
}

func TestNewRenderTextureMinimumSize(t *testing.T) {
	rt := NewRenderTexture(0, -5)
	defer rt.Dispose()
	if rt.Width() != 1 || rt.Height() != 1 {
		t.Errorf("size = %dx%d, want 1x1", rt.Width(), rt.Height())
	}
}

func TestRenderTextureResize(t *testing.T) {
	rt := NewRenderTexture(32, 32)
	defer rt.Dispose()

	old := rt.Image()
	rt.Resize(32, 32)
	if rt.Image() != old {
		t.Error("same-size Resize reallocated the image")
	}

	rt.Resize(64, 48)
	if rt.Image() == old {
		t.Error("Resize should allocate a new image")
	}
	if b := rt.Image().Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("image bounds = %v, want 64x48", b)
	}
	if rt.Width() != 64 || rt.Height() != 48 {
		t.Errorf("size = %dx%d, want 64x48", rt.Width(), rt.Height())
	}
}

func TestRenderTextureDispose(t *testing.T) {
	rt := NewRenderTexture(8, 8)
	rt.Dispose()
	if rt.Image() != nil {
		t.Error("Image should be nil after Dispose")
	}
	rt.Dispose()
}
