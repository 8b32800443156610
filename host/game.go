// Package host adapts Ebitengine's game loop to the primitives the runtime
// is written against: a per-frame scheduler, a resizable drawing surface
// and a main-loop dispatcher.
//
// A Game owns three queues, all drained at the top of Update in this order:
// dispatched callbacks (e.g. loader settlements from worker goroutines),
// the pending resize notification recorded by Layout, then frame callbacks
// requested before this Update began. Callbacks requested while the frame
// queue is running are deferred to the next Update.
package host

import (
	"math"
	"sort"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/hologram/clock"
	"github.com/phanxgames/hologram/viewport"
	"github.com/rs/zerolog"
)

var logger = zerolog.Nop()

// SetLogger sets the package logger.
func SetLogger(l zerolog.Logger) { logger = l.With().Str("component", "host").Logger() }

// Option configures a Game.
type Option func(*Game)

// WithScaleFunc replaces the device scale source. The default asks the
// monitor the window is on.
func WithScaleFunc(fn func() float64) Option {
	return func(g *Game) { g.scale = fn }
}

// WithSize sets the logical size reported before the first Layout.
func WithSize(w, h int) Option {
	return func(g *Game) { g.width, g.height = w, h }
}

// Game implements ebiten.Game, clock.Scheduler, viewport.Surface and
// resources.Dispatcher.
type Game struct {
	mu sync.Mutex

	// dispatched callbacks, FIFO
	queue []func()

	frames  map[clock.FrameID]func()
	nextID  clock.FrameID
	drawFn  func(screen *ebiten.Image)
	afterFn func() error

	scale         func() float64
	width, height int
	lastScale     float64
	resizeDirty   bool
	listeners     map[int]func()
	nextListener  int
	stopRequested bool
}

// NewGame returns a Game with no callbacks scheduled.
func NewGame(opts ...Option) *Game {
	g := &Game{
		frames:    make(map[clock.FrameID]func()),
		listeners: make(map[int]func()),
		scale:     monitorScale,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

func monitorScale() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}

// RequestFrame schedules fn to run once during the next Update.
func (g *Game) RequestFrame(fn func()) clock.FrameID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	g.frames[g.nextID] = fn
	return g.nextID
}

// CancelFrame drops a pending frame callback. Unknown IDs are ignored.
func (g *Game) CancelFrame(id clock.FrameID) {
	g.mu.Lock()
	delete(g.frames, id)
	g.mu.Unlock()
}

// Dispatch queues fn to run on the game goroutine at the top of the next
// Update. Safe for concurrent use.
func (g *Game) Dispatch(fn func()) {
	g.mu.Lock()
	g.queue = append(g.queue, fn)
	g.mu.Unlock()
}

// Size returns the logical outside size last reported by Ebitengine.
func (g *Game) Size() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.width, g.height
}

// DeviceScaleFactor returns the device scale observed by the latest Layout,
// or 1 before the first one.
func (g *Game) DeviceScaleFactor() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.lastScale <= 0 {
		return 1
	}
	return g.lastScale
}

// OnResize registers fn to be called when the outside size or device scale
// changes. The returned func unregisters it.
func (g *Game) OnResize(fn func()) (cancel func()) {
	g.mu.Lock()
	id := g.nextListener
	g.nextListener++
	g.listeners[id] = fn
	g.mu.Unlock()
	return func() {
		g.mu.Lock()
		delete(g.listeners, id)
		g.mu.Unlock()
	}
}

// SetDrawFunc sets the callback that paints each frame.
func (g *Game) SetDrawFunc(fn func(screen *ebiten.Image)) { g.drawFn = fn }

// SetUpdateFunc sets a callback run at the end of every Update. A non-nil
// error stops the game loop.
func (g *Game) SetUpdateFunc(fn func() error) { g.afterFn = fn }

// Stop makes the next Update end the game loop.
func (g *Game) Stop() {
	g.mu.Lock()
	g.stopRequested = true
	g.mu.Unlock()
}

// Pending returns the number of queued frame callbacks.
func (g *Game) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.frames)
}

// Queued returns the number of dispatched callbacks waiting for Update.
func (g *Game) Queued() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.queue)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.mu.Lock()
	if g.stopRequested {
		g.mu.Unlock()
		return ebiten.Termination
	}
	queue := g.queue
	g.queue = nil
	g.mu.Unlock()

	for _, fn := range queue {
		fn()
	}

	g.flushResize()
	g.runFrames()

	if g.afterFn != nil {
		return g.afterFn()
	}
	return nil
}

// runFrames runs every callback requested before it was entered. A callback
// cancelled by an earlier one in the same batch is skipped.
func (g *Game) runFrames() {
	g.mu.Lock()
	cutoff := g.nextID
	due := make([]clock.FrameID, 0, len(g.frames))
	for id := range g.frames {
		due = append(due, id)
	}
	g.mu.Unlock()
	sort.Slice(due, func(i, j int) bool { return due[i] < due[j] })

	for _, id := range due {
		if id > cutoff {
			continue
		}
		g.mu.Lock()
		fn, ok := g.frames[id]
		delete(g.frames, id)
		g.mu.Unlock()
		if ok {
			fn()
		}
	}
}

func (g *Game) flushResize() {
	g.mu.Lock()
	if !g.resizeDirty {
		g.mu.Unlock()
		return
	}
	g.resizeDirty = false
	ids := make([]int, 0, len(g.listeners))
	for id := range g.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, g.listeners[id])
	}
	g.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.drawFn != nil {
		g.drawFn(screen)
	}
}

// Layout implements ebiten.Game. It records the outside size and returns a
// screen sized in device pixels, using the same density clamp as the
// viewport monitor so the screen matches the renderer's target.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.scale()
	g.mu.Lock()
	if outsideWidth != g.width || outsideHeight != g.height || s != g.lastScale {
		g.width, g.height = outsideWidth, outsideHeight
		g.lastScale = s
		g.resizeDirty = true
		logger.Debug().Int("width", outsideWidth).Int("height", outsideHeight).Float64("scale", s).Msg("layout changed")
	}
	g.mu.Unlock()
	return screenSize(outsideWidth, outsideHeight, s)
}

func screenSize(w, h int, scale float64) (int, int) {
	st := viewport.State{Width: w, Height: h, Density: clampScale(scale)}
	pw, ph := st.PixelSize()
	return max(pw, 1), max(ph, 1)
}

func clampScale(s float64) float64 {
	if s <= 0 || math.IsNaN(s) {
		return 1
	}
	return math.Min(s, viewport.MaxDensity)
}
