package hologram

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/hologram/resources"
)

// NoiseOverlay tiles a noise texture over the frame, scrolling slowly, to
// give the projection a grainy look.
type NoiseOverlay struct {
	Texture *resources.Texture
	// Opacity of the overlay.
	Opacity float64
	// Scroll speed in texture widths per second.
	Scroll float64

	offset float64
}

// NewNoiseOverlay creates an overlay for tex.
func NewNoiseOverlay(tex *resources.Texture) *NoiseOverlay {
	return &NoiseOverlay{Texture: tex, Opacity: 0.06, Scroll: 0.35}
}

// Update advances the scroll by dt seconds.
func (n *NoiseOverlay) Update(dt float64) {
	n.offset = math.Mod(n.offset+n.Scroll*dt, 1)
}

// Draw implements Layer.
func (n *NoiseOverlay) Draw(dst *ebiten.Image, _ *Camera) {
	if n.Texture == nil || n.Texture.Width() == 0 || n.Texture.Height() == 0 {
		return
	}
	src := n.Texture.Image()
	if src == nil {
		return
	}
	tw, th := float64(n.Texture.Width()), float64(n.Texture.Height())
	b := dst.Bounds()
	c := ColorWhite.WithAlpha(n.Opacity)
	for y := -th + n.offset*th; y < float64(b.Dy()); y += th {
		for x := -tw + n.offset*tw; x < float64(b.Dx()); x += tw {
			var op ebiten.DrawImageOptions
			op.GeoM.Translate(x, y)
			op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
			op.Blend = ebiten.BlendLighter
			dst.DrawImage(src, &op)
		}
	}
}

// Environment draws the cube-map face the camera is looking toward as a
// dim backdrop behind the scene.
type Environment struct {
	Cube    *resources.CubeTexture
	Opacity float64
}

// NewEnvironment creates a backdrop for cube.
func NewEnvironment(cube *resources.CubeTexture) *Environment {
	return &Environment{Cube: cube, Opacity: 0.35}
}

// facing returns the cube face whose outward axis best matches dir.
func facing(dir mgl32.Vec3) resources.Face {
	ax, ay, az := math.Abs(float64(dir.X())), math.Abs(float64(dir.Y())), math.Abs(float64(dir.Z()))
	switch {
	case ax >= ay && ax >= az:
		if dir.X() >= 0 {
			return resources.FacePosX
		}
		return resources.FaceNegX
	case ay >= az:
		if dir.Y() >= 0 {
			return resources.FacePosY
		}
		return resources.FaceNegY
	default:
		if dir.Z() >= 0 {
			return resources.FacePosZ
		}
		return resources.FaceNegZ
	}
}

// Draw implements Layer.
func (e *Environment) Draw(dst *ebiten.Image, cam *Camera) {
	if e.Cube == nil {
		return
	}
	face := e.Cube.Face(facing(cam.Target.Sub(cam.Position())))
	if face == nil || face.Width() == 0 {
		return
	}
	img := face.Image()
	if img == nil {
		return
	}
	b := dst.Bounds()
	// Cover the target, cropping the longer axis.
	s := math.Max(float64(b.Dx()), float64(b.Dy())) / float64(face.Width())
	x := (float64(b.Dx()) - float64(face.Width())*s) / 2
	y := (float64(b.Dy()) - float64(face.Height())*s) / 2

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(e.Opacity))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, &op)
}
