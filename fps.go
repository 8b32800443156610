package hologram

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// statsRefresh is how often the overlay redraws its text, in seconds.
const statsRefresh = 0.5

// statsOverlay displays the current FPS and TPS plus optional extra lines.
// Its image is only redrawn every statsRefresh seconds.
type statsOverlay struct {
	img   *ebiten.Image
	extra string
	since float64
	text  string
}

func newStatsOverlay() *statsOverlay {
	// 160x48 fits "FPS: 60.0\nTPS: 60.0" and two extra lines.
	return &statsOverlay{img: ebiten.NewImage(160, 48), since: statsRefresh}
}

// advance accumulates dt and reports whether the text is due for a redraw.
func (o *statsOverlay) advance(dt float64) bool {
	o.since += dt
	if o.since < statsRefresh {
		return false
	}
	o.since = 0
	return true
}

func (o *statsOverlay) format(fps, tps float64) string {
	s := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps)
	if o.extra != "" {
		s += "\n" + o.extra
	}
	return s
}

// Draw refreshes the readout when due and draws it top-left of dst, scaled
// by density.
func (o *statsOverlay) Draw(dst *RenderTexture, density float64) {
	if o.advance(1 / float64(ebiten.TPS())) {
		o.text = o.format(ebiten.ActualFPS(), ebiten.ActualTPS())
		o.img.Clear()
		// Semi-transparent background for readability
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, o.text)
	}
	if density <= 0 {
		density = 1
	}
	dst.DrawImageAt(o.img, 0, 0, density, density, ColorWhite)
}

func (o *statsOverlay) dispose() {
	o.img.Deallocate()
}
