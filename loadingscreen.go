package hologram

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/hologram/events"
	"github.com/tanema/gween/ease"
)

// Loading screen timings, in seconds.
const (
	progressTweenDuration = 0.25
	fadeOutDuration       = 1.25
)

// hiltRects is the saber hilt drawing in a 228x111 design space.
var hiltRects = []struct {
	r Rect
	c Color
}{
	{Rect{0, 17, 170, 77}, ColorFromHex(0x485052)},
	{Rect{115, 24, 113, 62}, ColorFromHex(0x95a5a5)},
	{Rect{168, 4, 42, 33}, ColorFromHex(0x313942)},
	{Rect{30, 0, 38, 111}, ColorFromHex(0x303840)},
	{Rect{30, 31, 38, 48}, ColorFromHex(0x646d76)},
}

const (
	hiltWidth   = 228
	hiltHeight  = 111
	bladeLength = 2.5 * hiltWidth
	bladeHeight = 26
)

// BladeColor is the loading bar's color.
var BladeColor = ColorFromHex(0xff1331)

// LoadingScreen is an overlay showing load progress as a lightsaber blade
// that extends as assets settle. It fades out once everything has settled.
type LoadingScreen struct {
	progress float64
	alpha    float64
	target   float64

	bar  *TweenGroup
	fade *TweenGroup

	settled bool
	visible bool
}

// NewLoadingScreen creates a visible loading screen driven by the bus's
// settlement events.
func NewLoadingScreen(bus *events.Bus) *LoadingScreen {
	ls := &LoadingScreen{alpha: 1, visible: true}
	events.Subscribe(bus, events.ItemSettledTopic, func(e events.ItemSettled) {
		ls.SetProgress(e.Progress)
	})
	events.Subscribe(bus, events.AllSettledTopic, func(events.AllSettled) {
		if ls.target < 1 {
			ls.SetProgress(1)
		}
		ls.FadeOut()
	})
	return ls
}

// SetProgress animates the bar toward p in [0, 1].
func (ls *LoadingScreen) SetProgress(p float64) {
	ls.target = clamp01(p)
	if ls.bar != nil {
		ls.bar.Stop()
	}
	ls.bar = TweenValue(&ls.progress, ls.target, progressTweenDuration, ease.OutQuad)
}

// FadeOut starts hiding the screen. Later calls are ignored.
func (ls *LoadingScreen) FadeOut() {
	if ls.settled {
		return
	}
	ls.settled = true
	ls.fade = TweenValue(&ls.alpha, 0, fadeOutDuration, ease.InOutQuad)
	ls.fade.OnComplete = func() {
		ls.visible = false
		logger.Debug().Msg("loading screen hidden")
	}
}

// Update advances the bar and fade by dt seconds.
func (ls *LoadingScreen) Update(dt float64) {
	if ls.bar != nil {
		ls.bar.Update(float32(dt))
		if ls.bar.Done {
			ls.bar = nil
		}
	}
	if ls.fade != nil {
		ls.fade.Update(float32(dt))
		if ls.fade.Done {
			ls.fade = nil
		}
	}
}

// Progress returns the displayed progress.
func (ls *LoadingScreen) Progress() float64 { return ls.progress }

// Alpha returns the overlay opacity.
func (ls *LoadingScreen) Alpha() float64 { return ls.alpha }

// Visible reports whether the screen still draws.
func (ls *LoadingScreen) Visible() bool { return ls.visible }

// Draw implements Layer.
func (ls *LoadingScreen) Draw(dst *ebiten.Image, _ *Camera) {
	if !ls.visible || ls.alpha <= 0 {
		return
	}
	b := dst.Bounds()
	fillRect(dst, Rect{0, 0, float64(b.Dx()), float64(b.Dy())}, ClearColor.WithAlpha(ls.alpha))

	layout := ls.layout(float64(b.Dx()), float64(b.Dy()))
	for _, h := range hiltRects {
		fillRect(dst, layout.place(h.r), h.c.WithAlpha(ls.alpha))
	}
	if blade := layout.blade(ls.progress); blade.Width > 0 {
		glow := blade
		glow.Y -= blade.Height / 2
		glow.Height *= 2
		fillRect(dst, glow, BladeColor.WithAlpha(0.25*ls.alpha))
		fillRect(dst, blade, BladeColor.WithAlpha(ls.alpha))
	}
}

// saberLayout maps the design space onto the target.
type saberLayout struct {
	x, y, scale float64
}

func (ls *LoadingScreen) layout(w, h float64) saberLayout {
	total := hiltWidth + bladeLength
	scale := 0.6 * w / total
	if maxScale := 0.25 * h / hiltHeight; scale > maxScale {
		scale = maxScale
	}
	return saberLayout{
		x:     (w - total*scale) / 2,
		y:     (h - hiltHeight*scale) / 2,
		scale: scale,
	}
}

func (l saberLayout) place(r Rect) Rect {
	return Rect{
		X:      l.x + r.X*l.scale,
		Y:      l.y + r.Y*l.scale,
		Width:  r.Width * l.scale,
		Height: r.Height * l.scale,
	}
}

// blade returns the blade rectangle at progress p.
func (l saberLayout) blade(p float64) Rect {
	return l.place(Rect{
		X:      hiltWidth,
		Y:      (hiltHeight - bladeHeight) / 2,
		Width:  bladeLength * clamp01(p),
		Height: bladeHeight,
	})
}

// fillRect draws a solid rectangle using the shared white pixel.
func fillRect(dst *ebiten.Image, r Rect, c Color) {
	if r.Width <= 0 || r.Height <= 0 || c.A <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	dst.DrawImage(whitePixel(), &op)
}
