package hologram

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/hologram/resources"
)

func TestFacing(t *testing.T) {
	tests := []struct {
		dir  mgl32.Vec3
		want resources.Face
	}{
		{mgl32.Vec3{1, 0, 0}, resources.FacePosX},
		{mgl32.Vec3{-2, 1, 1}, resources.FaceNegX},
		{mgl32.Vec3{0.1, 0.9, 0.2}, resources.FacePosY},
		{mgl32.Vec3{0, -1, 0.5}, resources.FaceNegY},
		{mgl32.Vec3{0.3, 0.2, 1}, resources.FacePosZ},
		{mgl32.Vec3{-2, -1.25, -3}, resources.FaceNegZ},
	}
	for _, tt := range tests {
		if got := facing(tt.dir); got != tt.want {
			t.Errorf("facing(%v) = %s, want %s", tt.dir, got, tt.want)
		}
	}
}

func TestNoiseOverlayScrollWraps(t *testing.T) {
	n := NewNoiseOverlay(nil)
	for i := 0; i < 100; i++ {
		n.Update(0.5)
	}
	if n.offset < 0 || n.offset >= 1 {
		t.Errorf("offset = %v, want in [0, 1)", n.offset)
	}
	want := math.Mod(100*0.5*n.Scroll, 1)
	if math.Abs(n.offset-want) > 1e-9 {
		t.Errorf("offset = %v, want %v", n.offset, want)
	}
}
