package hologram

import (
	"context"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/hologram/debugserver"
	"github.com/phanxgames/hologram/host"
	"github.com/phanxgames/hologram/resources"
)

// ScreenshotKey captures the next frame to Config.ScreenshotDir.
const ScreenshotKey = ebiten.KeyF12

// Run opens a window and runs the experience described by cfg until the
// window closes or ctx is done.
func Run(ctx context.Context, cfg Config) error {
	cfg = cfg.WithDefaults()

	manifest, err := loadManifest(cfg)
	if err != nil {
		return err
	}
	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}
	var runner *ScriptRunner
	if cfg.Script != "" {
		if runner, err = LoadScriptFile(cfg.Script); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	game := host.NewGame(host.WithSize(cfg.Width, cfg.Height))
	exp, err := New(ctx, Options{
		Scheduler:     game,
		Surface:       game,
		Dispatcher:    game,
		Manifest:      manifest,
		LoaderOptions: []resources.Option{resources.WithFetcher(fetcher)},
		Assets:        cfg.World,
		Renderer: RendererOptions{
			ScreenshotDir: cfg.ScreenshotDir,
			Debug:         cfg.Debug,
		},
		AudioContext: audio.NewContext(resources.DefaultSampleRate),
	})
	if err != nil {
		return err
	}
	defer exp.Dispose()

	if cfg.DebugAddr != "" {
		go func() {
			h := debugserver.NewMux(exp.Loader(), debugOptions(cfg))
			if err := debugserver.Serve(ctx, cfg.DebugAddr, h); err != nil {
				logger.Error().Err(err).Str("addr", cfg.DebugAddr).Msg("debug server stopped")
			}
		}()
	}
	go func() {
		<-ctx.Done()
		game.Stop()
	}()

	target := &scriptHost{exp: exp, controls: NewOrbitControls(exp.Camera())}
	scriptFinished := false
	game.SetUpdateFunc(func() error {
		if runner != nil {
			// Stop one frame after the last step so its screenshot renders.
			if scriptFinished {
				game.Stop()
			}
			runner.Step(target)
			scriptFinished = runner.Done()
		}
		target.controls.Update()
		if inpututil.IsKeyJustPressed(ScreenshotKey) {
			exp.Renderer().Screenshot("capture")
		}
		if cfg.Debug {
			l := exp.Loader()
			exp.Renderer().SetOverlayText(fmt.Sprintf("assets: %d/%d", l.Completed(), l.Total()))
		}
		return nil
	})
	game.SetDrawFunc(exp.Draw)

	return host.Run(game, host.RunConfig{
		Title:     cfg.Title,
		Width:     cfg.Width,
		Height:    cfg.Height,
		TPS:       cfg.TPS,
		Resizable: true,
	})
}

// scriptHost adapts an Experience to ScriptTarget.
type scriptHost struct {
	exp      *Experience
	controls *OrbitControls
}

func (h *scriptHost) Screenshot(label string)  { h.exp.Renderer().Screenshot(label) }
func (h *scriptHost) Ready() bool              { return h.exp.World().Ready() }
func (h *scriptHost) Controls() *OrbitControls { return h.controls }

func debugOptions(cfg Config) debugserver.Options {
	return debugserver.Options{CORSOrigins: cfg.DebugCORS}
}

func loadManifest(cfg Config) (*resources.Manifest, error) {
	if cfg.Manifest == "" {
		return DefaultManifest(), nil
	}
	return resources.LoadManifest(cfg.Manifest)
}

func newFetcher(cfg Config) (resources.Fetcher, error) {
	if cfg.AssetsURL != "" {
		f, err := resources.NewHTTPFetcher(cfg.AssetsURL, nil)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return resources.NewFSFetcher(os.DirFS(cfg.AssetsDir)), nil
}
