package hologram

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera defaults.
const (
	DefaultFOV  = 70  // vertical field of view in degrees
	DefaultNear = 0.1 // near clip plane
	DefaultFar  = 100 // far clip plane

	// DefaultDamping is the fraction of the remaining orbit velocity applied
	// each update.
	DefaultDamping = 0.05
	// DefaultMaxDistance limits how far the camera may orbit from Target.
	DefaultMaxDistance = 4
)

// minPolar keeps the orbit away from the poles, where the view's up vector
// degenerates.
const minPolar = 0.01

// Camera is a perspective camera orbiting Target with damped motion.
type Camera struct {
	// FOV is the vertical field of view in degrees.
	FOV float32
	// Near and Far are the clip planes.
	Near, Far float32
	// Target is the point the camera looks at and orbits.
	Target mgl32.Vec3
	// MaxDistance clamps the orbit radius. Zero disables the clamp.
	MaxDistance float64
	// Damping in (0, 1]; 1 applies orbit input instantly.
	Damping float64

	aspect float32

	// spherical orbit around Target (y up)
	azimuth, polar, distance float64
	velAzimuth, velPolar     float64
	zoomTween                *gween.Tween

	position   mgl32.Vec3
	view       mgl32.Mat4
	projection mgl32.Mat4
	dirty      bool
}

// NewCamera creates a camera for a width x height viewport at the default
// framing.
func NewCamera(width, height int) *Camera {
	c := &Camera{
		FOV:         DefaultFOV,
		Near:        DefaultNear,
		Far:         DefaultFar,
		Target:      mgl32.Vec3{0, -0.25, 0},
		MaxDistance: DefaultMaxDistance,
		Damping:     DefaultDamping,
		aspect:      1,
	}
	c.SetPosition(mgl32.Vec3{2, 1, 3})
	c.Resize(width, height)
	return c
}

// SetPosition places the camera and derives the orbit from it.
func (c *Camera) SetPosition(p mgl32.Vec3) {
	off := p.Sub(c.Target)
	c.distance = float64(off.Len())
	if c.distance == 0 {
		c.distance = 1
		off = mgl32.Vec3{0, 0, 1}
	}
	c.azimuth = math.Atan2(float64(off.X()), float64(off.Z()))
	c.polar = math.Acos(clampF(float64(off.Y())/c.distance, -1, 1))
	c.clampOrbit()
	c.dirty = true
	c.recompute()
}

// Position returns the camera's world position.
func (c *Camera) Position() mgl32.Vec3 {
	c.recompute()
	return c.position
}

// Distance returns the orbit radius.
func (c *Camera) Distance() float64 { return c.distance }

// Aspect returns the projection's width / height ratio.
func (c *Camera) Aspect() float32 { return c.aspect }

// Orbit adds angular velocity in radians. The motion is spread over the
// following updates according to Damping.
func (c *Camera) Orbit(dAzimuth, dPolar float64) {
	c.velAzimuth += dAzimuth
	c.velPolar += dPolar
}

// ZoomTo animates the orbit radius to distance over duration seconds.
func (c *Camera) ZoomTo(distance float64, duration float32, fn ease.TweenFunc) {
	if c.MaxDistance > 0 {
		distance = math.Min(distance, c.MaxDistance)
	}
	distance = math.Max(distance, float64(c.Near))
	if fn == nil {
		fn = ease.OutQuad
	}
	c.zoomTween = gween.New(float32(c.distance), float32(distance), duration, fn)
}

// Update advances damping and any zoom animation by dt seconds.
func (c *Camera) Update(dt float64) {
	damp := c.Damping
	if damp <= 0 || damp > 1 {
		damp = 1
	}
	if c.velAzimuth != 0 || c.velPolar != 0 {
		c.azimuth += c.velAzimuth * damp
		c.polar += c.velPolar * damp
		c.velAzimuth *= 1 - damp
		c.velPolar *= 1 - damp
		if math.Abs(c.velAzimuth) < 1e-6 {
			c.velAzimuth = 0
		}
		if math.Abs(c.velPolar) < 1e-6 {
			c.velPolar = 0
		}
		c.dirty = true
	}
	if c.zoomTween != nil {
		v, done := c.zoomTween.Update(float32(dt))
		c.distance = float64(v)
		if done {
			c.zoomTween = nil
		}
		c.dirty = true
	}
	c.clampOrbit()
	c.recompute()
}

// Resize updates the projection for a width x height viewport. Degenerate
// sizes keep the previous aspect.
func (c *Camera) Resize(width, height int) {
	if width > 0 && height > 0 {
		c.aspect = float32(width) / float32(height)
	}
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.aspect, c.Near, c.Far)
	logger.Debug().Float32("aspect", c.aspect).Msg("camera resized")
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	c.recompute()
	return c.view
}

// Projection returns the camera-to-clip matrix.
func (c *Camera) Projection() mgl32.Mat4 { return c.projection }

// ViewProjection returns Projection * View.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Project maps a world point to pixel coordinates in a width x height target.
// ok is false for points behind the near plane.
func (c *Camera) Project(p mgl32.Vec3, width, height int) (x, y float64, ok bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	if clip.W() < c.Near {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (float64(ndc.X()) + 1) / 2 * float64(width)
	y = (1 - float64(ndc.Y())) / 2 * float64(height)
	return x, y, true
}

func (c *Camera) clampOrbit() {
	c.polar = clampF(c.polar, minPolar, math.Pi-minPolar)
	if c.MaxDistance > 0 && c.distance > c.MaxDistance {
		c.distance = c.MaxDistance
	}
}

func (c *Camera) recompute() {
	if !c.dirty {
		return
	}
	c.dirty = false
	sinP := math.Sin(c.polar)
	off := mgl32.Vec3{
		float32(c.distance * sinP * math.Sin(c.azimuth)),
		float32(c.distance * math.Cos(c.polar)),
		float32(c.distance * sinP * math.Cos(c.azimuth)),
	}
	c.position = c.Target.Add(off)
	c.view = mgl32.LookAtV(c.position, c.Target, mgl32.Vec3{0, 1, 0})
}

func clampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
