package host

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height set the initial window size in logical pixels.
	// Zero values default to 1280x720.
	Width, Height int
	// TPS is the update rate. Zero keeps Ebitengine's default of 60.
	TPS int
	// Resizable allows the user to resize the window.
	Resizable bool
}

// Run opens a window and drives g until the window closes or g.Stop is
// called. A Stop-initiated exit returns nil.
func Run(g *Game, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = 1280
	}
	if h <= 0 {
		h = 720
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(cfg.Title)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	logger.Info().Str("title", cfg.Title).Int("width", w).Int("height", h).Msg("starting game loop")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
