package hologram

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/hologram/viewport"
)

// ClearColor is the renderer's default background, #03090f.
var ClearColor = ColorFromHex(0x03090f)

// Layer is something the renderer draws each frame. Layers are drawn in the
// order they were added, followed by overlays.
type Layer interface {
	Draw(dst *ebiten.Image, cam *Camera)
}

// LayerFunc adapts a function to Layer.
type LayerFunc func(dst *ebiten.Image, cam *Camera)

// Draw calls f(dst, cam).
func (f LayerFunc) Draw(dst *ebiten.Image, cam *Camera) { f(dst, cam) }

// RendererOptions configures a Renderer.
type RendererOptions struct {
	// ClearColor defaults to ClearColor when zero.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNGs. Defaults to "screenshots".
	ScreenshotDir string
	// Debug enables per-frame timing logs and the stats overlay.
	Debug bool
}

// Renderer draws the scene into an offscreen target sized to the viewport
// in device pixels.
type Renderer struct {
	camera *Camera
	target *RenderTexture
	state  viewport.State
	clear  Color

	layers   []Layer
	overlays []Layer

	debug   bool
	overlay *statsOverlay
	stats   frameStats

	screenshotDir   string
	screenshotQueue []string

	frames   uint64
	disposed bool
}

// NewRenderer allocates a target for state.
func NewRenderer(cam *Camera, state viewport.State, opts RendererOptions) *Renderer {
	r := &Renderer{
		camera:        cam,
		state:         state,
		clear:         opts.ClearColor,
		debug:         opts.Debug,
		screenshotDir: opts.ScreenshotDir,
	}
	if r.clear == (Color{}) {
		r.clear = ClearColor
	}
	if r.screenshotDir == "" {
		r.screenshotDir = "screenshots"
	}
	if r.debug {
		r.overlay = newStatsOverlay()
	}
	w, h := state.PixelSize()
	r.target = NewRenderTexture(w, h)
	return r
}

// Add appends a layer.
func (r *Renderer) Add(l Layer) {
	r.layers = append(r.layers, l)
}

// AddOverlay appends a layer drawn above every regular layer.
func (r *Renderer) AddOverlay(l Layer) {
	r.overlays = append(r.overlays, l)
}

// Remove drops a layer or overlay. Unknown layers are ignored.
func (r *Renderer) Remove(l Layer) {
	r.layers = removeLayer(r.layers, l)
	r.overlays = removeLayer(r.overlays, l)
}

func removeLayer(ls []Layer, l Layer) []Layer {
	for i, x := range ls {
		if x == l {
			return append(ls[:i], ls[i+1:]...)
		}
	}
	return ls
}

// Layers returns the number of layers and overlays.
func (r *Renderer) Layers() int { return len(r.layers) + len(r.overlays) }

// Target returns the offscreen render target.
func (r *Renderer) Target() *RenderTexture { return r.target }

// State returns the viewport state the target is sized for.
func (r *Renderer) State() viewport.State { return r.state }

// Frames returns the number of rendered frames.
func (r *Renderer) Frames() uint64 { return r.frames }

// Resize reallocates the target at width x height x density.
func (r *Renderer) Resize(state viewport.State) {
	if r.disposed {
		return
	}
	r.state = state
	w, h := state.PixelSize()
	r.target.Resize(w, h)
	logger.Debug().Int("width", w).Int("height", h).Float64("density", state.Density).Msg("render target resized")
}

// Render clears the target and draws every layer, then the stats overlay
// and any queued screenshots.
func (r *Renderer) Render() {
	if r.disposed {
		return
	}
	var t0 time.Time
	if r.debug {
		t0 = time.Now()
	}

	dst := r.target.Image()
	r.target.Fill(r.clear)
	for _, l := range r.layers {
		l.Draw(dst, r.camera)
	}
	for _, l := range r.overlays {
		l.Draw(dst, r.camera)
	}
	if r.overlay != nil {
		r.overlay.Draw(r.target, r.state.Density)
	}
	r.flushScreenshots()
	r.frames++
	framesRendered.Inc()

	if r.debug {
		r.stats.renderTime = time.Since(t0)
		r.stats.layers = r.Layers()
		r.stats.frame = r.frames
		r.debugLog()
	}
}

// DrawTo blits the latest frame onto screen.
func (r *Renderer) DrawTo(screen *ebiten.Image) {
	if r.disposed {
		return
	}
	r.target.DrawTo(screen)
}

// SetOverlayText sets extra lines shown under the FPS readout when the
// stats overlay is enabled.
func (r *Renderer) SetOverlayText(s string) {
	if r.overlay != nil {
		r.overlay.extra = s
	}
}

// Dispose releases the render target. Idempotent.
func (r *Renderer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.layers = nil
	r.overlays = nil
	r.screenshotQueue = nil
	r.target.Dispose()
	if r.overlay != nil {
		r.overlay.dispose()
	}
}
