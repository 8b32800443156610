package hologram

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/hologram/resources"
	"github.com/tanema/gween/ease"
)

// HologramStyle controls how a model is drawn as a hologram.
type HologramStyle struct {
	Color Color
	// Stripes is the number of scan stripes across the target's height.
	Stripes float64
	// StripeSharpness raises the stripe ramp to this power.
	StripeSharpness float64
	// Speed is how fast stripes scroll, in target heights per second.
	Speed float64
	// GlitchIntensity is the peak horizontal displacement in model units.
	GlitchIntensity float64
	// LineWidth is the wireframe stroke width in device pixels.
	LineWidth float64
}

// DefaultHologramStyle is a blue, finely striped hologram.
var DefaultHologramStyle = HologramStyle{
	Color:           ColorFromHex(0x2475cc),
	Stripes:         70,
	StripeSharpness: 3,
	Speed:           0.01,
	GlitchIntensity: 0.05,
	LineWidth:       1,
}

// maxHologramSegments bounds the wireframe work per frame.
const maxHologramSegments = 60000

// Hologram draws a model as a flickering, scan-striped wireframe.
type Hologram struct {
	Model    *resources.Model
	Style    HologramStyle
	Position mgl32.Vec3
	// Spin is the rotation about Y in radians per second.
	Spin float64

	elapsed  float64
	angle    float64
	batch    lineBatch
	segments int

	// color is the drawn color while fade runs.
	color Color
	fade  *TweenGroup
}

// NewHologram creates a hologram for m, lowered half a unit so it sits on
// the projector.
func NewHologram(m *resources.Model) *Hologram {
	return &Hologram{
		Model:    m,
		Style:    DefaultHologramStyle,
		Position: mgl32.Vec3{0, -0.5, 0},
		Spin:     0.2,
	}
}

// FadeIn fades the hologram from transparent to Style.Color over duration
// seconds, restarting any fade in progress.
func (h *Hologram) FadeIn(duration float32) {
	if h.fade != nil {
		h.fade.Stop()
	}
	h.color = h.Style.Color.WithAlpha(0)
	h.fade = TweenColor(&h.color, h.Style.Color, duration, ease.InOutQuad)
}

// Fading reports whether a fade is in progress.
func (h *Hologram) Fading() bool { return h.fade != nil }

// Update advances the animation to elapsed seconds.
func (h *Hologram) Update(elapsed, delta float64) {
	h.elapsed = elapsed
	h.angle = math.Mod(h.angle+h.Spin*delta, 2*math.Pi)
	if h.fade != nil {
		h.fade.Update(float32(delta))
		if h.fade.Done {
			h.fade = nil
		}
	}
}

// currentColor is the fade color while fading, Style.Color otherwise.
func (h *Hologram) currentColor() Color {
	if h.fade != nil {
		return h.color
	}
	return h.Style.Color
}

// Segments returns the number of wireframe segments drawn last frame.
func (h *Hologram) Segments() int { return h.segments }

// glitch returns the horizontal displacement at time t: mostly zero, with
// short bursts where three out-of-phase sines line up.
func glitch(t, intensity float64) float64 {
	g := (math.Sin(t) + math.Sin(t*3.45) + math.Sin(t*8.76)) / 3
	return smoothstep(0.3, 1, g) * intensity * math.Sin(t*47.3)
}

// stripe returns the stripe brightness in [0, 1] at normalized height y.
func (s HologramStyle) stripe(y, t float64) float64 {
	v := math.Mod((y-t*s.Speed)*s.Stripes, 1)
	if v < 0 {
		v++
	}
	return math.Pow(v, s.StripeSharpness)
}

// transform returns the model-to-world matrix for the current frame.
func (h *Hologram) transform() mgl32.Mat4 {
	dx := glitch(h.elapsed, h.Style.GlitchIntensity)
	return mgl32.Translate3D(h.Position.X()+float32(dx), h.Position.Y(), h.Position.Z()).
		Mul4(mgl32.HomogRotate3DY(float32(h.angle)))
}

// Draw implements Layer.
func (h *Hologram) Draw(dst *ebiten.Image, cam *Camera) {
	if h.Model == nil {
		return
	}
	b := dst.Bounds()
	w, ht := b.Dx(), b.Dy()
	h.batch.width = h.Style.LineWidth
	c := h.currentColor()
	if c.A <= 0 {
		h.segments = 0
		return
	}
	style := wireframeStyle{
		maxSegments: maxHologramSegments,
		shade: func(y float64) Color {
			s := h.Style.stripe(y/float64(ht), h.elapsed)
			return c.WithAlpha(c.A * (0.2 + 0.8*s))
		},
	}
	h.segments = h.batch.addModel(h.Model, h.transform(), cam, w, ht, style)
	h.batch.flush(dst, ebiten.BlendLighter)
}

func smoothstep(e0, e1, x float64) float64 {
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}
