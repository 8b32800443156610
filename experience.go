package hologram

import (
	"context"
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/phanxgames/hologram/clock"
	"github.com/phanxgames/hologram/events"
	"github.com/phanxgames/hologram/resources"
	"github.com/phanxgames/hologram/viewport"
)

// Options configures an Experience. Scheduler and Surface are required, and
// so is a Dispatcher unless the Scheduler is one.
type Options struct {
	// Bus is the event bus subsystems communicate over. A new bus is created
	// when nil.
	Bus *events.Bus
	// Scheduler drives the frame clock.
	Scheduler clock.Scheduler
	// Surface is observed for size and density changes.
	Surface viewport.Surface
	// Dispatcher is where loader settlements run, so it must run callbacks
	// on the frame goroutine. Defaults to Scheduler when it implements
	// resources.Dispatcher, as host.Game does.
	Dispatcher resources.Dispatcher
	// Manifest defaults to DefaultManifest.
	Manifest *resources.Manifest
	// LoaderOptions are passed to resources.NewLoader after the dispatcher.
	LoaderOptions []resources.Option
	// Assets names the manifest entries the world is built from. Defaults
	// to DefaultWorldAssets when zero.
	Assets WorldAssets
	// Renderer configures the renderer.
	Renderer RendererOptions
	// AudioContext plays ambience. Audio is silent when nil.
	AudioContext *audio.Context
	// Now replaces the clock's time source.
	Now func() time.Time
}

// Experience is the composition root. It owns every subsystem and wires
// them together over one event bus. Construct with New; there is no shared
// instance.
//
// Subsystems are built in dependency order: clock and viewport, the asset
// loader, then the camera, renderer, world, loading screen and audio
// registry. Every tick runs Update and every resize runs Resize. Dispose
// tears down in reverse order.
type Experience struct {
	bus      *events.Bus
	clock    *clock.Clock
	viewport *viewport.Monitor
	loader   *resources.Loader
	camera   *Camera
	renderer *Renderer
	world    *World
	loading  *LoadingScreen
	audio    *AudioRegistry

	disposed bool
}

// New builds an Experience and starts loading the manifest. ctx bounds the
// asset loads only.
func New(ctx context.Context, opts Options) (*Experience, error) {
	if opts.Scheduler == nil {
		return nil, errors.New("hologram: nil scheduler")
	}
	if opts.Surface == nil {
		return nil, errors.New("hologram: nil surface")
	}
	if opts.Dispatcher == nil {
		d, ok := opts.Scheduler.(resources.Dispatcher)
		if !ok {
			return nil, errors.New("hologram: nil dispatcher")
		}
		opts.Dispatcher = d
	}
	if opts.Manifest == nil {
		opts.Manifest = DefaultManifest()
	}
	if opts.Assets == (WorldAssets{}) {
		opts.Assets = DefaultWorldAssets
	}

	e := &Experience{bus: opts.Bus}
	if e.bus == nil {
		e.bus = events.NewBus()
	}

	var clockOpts []clock.Option
	if opts.Now != nil {
		clockOpts = append(clockOpts, clock.WithNow(opts.Now))
	}
	e.clock = clock.New(e.bus, opts.Scheduler, clockOpts...)
	e.viewport = viewport.New(e.bus, opts.Surface)

	loaderOpts := append([]resources.Option{resources.WithDispatcher(opts.Dispatcher)}, opts.LoaderOptions...)
	loader, err := resources.NewLoader(e.bus, opts.Manifest, loaderOpts...)
	if err != nil {
		e.viewport.Dispose()
		e.clock.Dispose()
		return nil, err
	}
	e.loader = loader

	state := e.viewport.State()
	e.camera = NewCamera(state.Width, state.Height)
	e.renderer = NewRenderer(e.camera, state, opts.Renderer)
	e.world = newWorld(e, opts.Assets)
	e.loading = NewLoadingScreen(e.bus)
	e.renderer.AddOverlay(e.loading)
	e.audio = NewAudioRegistry(opts.AudioContext)

	events.Subscribe(e.bus, events.TickTopic, e.Update)
	events.Subscribe(e.bus, events.ResizeTopic, func(events.Resize) { e.Resize() })

	logger.Info().
		Int("assets", opts.Manifest.Len()).
		Int("width", state.Width).
		Int("height", state.Height).
		Float64("density", state.Density).
		Msg("experience started")
	e.loader.Start(ctx)
	return e, nil
}

// Update runs one frame: camera, world, loading screen, audio fades, then
// render, so the render sees the frame's final transforms.
func (e *Experience) Update(t events.Tick) {
	if e.disposed {
		return
	}
	start := time.Now()
	e.camera.Update(t.Delta)
	e.world.Update(t)
	e.loading.Update(t.Delta)
	e.audio.Update(t.Delta)

	segments := 0
	if h := e.world.Hologram(); h != nil {
		segments = h.Segments()
	}
	e.renderer.recordUpdate(time.Since(start), segments)
	e.renderer.Render()
}

// Resize updates the camera projection, then reallocates the render target
// for the current viewport.
func (e *Experience) Resize() {
	if e.disposed {
		return
	}
	state := e.viewport.State()
	e.camera.Resize(state.Width, state.Height)
	e.renderer.Resize(state)
}

// Draw blits the latest frame onto screen.
func (e *Experience) Draw(screen *ebiten.Image) {
	e.renderer.DrawTo(screen)
}

// Dispose tears every subsystem down in reverse construction order and
// clears the bus. Idempotent.
func (e *Experience) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.audio.Dispose()
	e.renderer.Remove(e.loading)
	e.world.Dispose()
	e.renderer.Dispose()
	e.loader.Dispose()
	e.viewport.Dispose()
	e.clock.Dispose()
	e.bus.Clear()
	logger.Info().Msg("experience disposed")
}

// Bus returns the event bus.
func (e *Experience) Bus() *events.Bus { return e.bus }

// Clock returns the frame clock.
func (e *Experience) Clock() *clock.Clock { return e.clock }

// Viewport returns the viewport monitor.
func (e *Experience) Viewport() *viewport.Monitor { return e.viewport }

// Loader returns the asset loader.
func (e *Experience) Loader() *resources.Loader { return e.loader }

// Camera returns the camera.
func (e *Experience) Camera() *Camera { return e.camera }

// Renderer returns the renderer.
func (e *Experience) Renderer() *Renderer { return e.renderer }

// World returns the scene content.
func (e *Experience) World() *World { return e.world }

// LoadingScreen returns the loading overlay.
func (e *Experience) LoadingScreen() *LoadingScreen { return e.loading }

// Audio returns the audio registry.
func (e *Experience) Audio() *AudioRegistry { return e.audio }

// Disposed reports whether Dispose has run.
func (e *Experience) Disposed() bool { return e.disposed }
