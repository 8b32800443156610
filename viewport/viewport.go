// Package viewport observes the host surface's logical size and pixel
// density and publishes a resize event when either changes.
package viewport

import (
	"math"

	"github.com/phanxgames/hologram/events"
)

// MaxDensity bounds the pixel density used for render targets. Higher
// device scale factors are clamped to it.
const MaxDensity = 2.0

// Surface is the host display surface. OnResize registers fn to be called on
// every native resize notification and returns a function that removes it.
type Surface interface {
	Size() (width, height int)
	DeviceScaleFactor() float64
	OnResize(fn func()) (cancel func())
}

// State is a snapshot of the viewport. States compare by value.
type State struct {
	Width, Height int
	Density       float64
}

// Aspect returns Width/Height, or 1 for a degenerate viewport.
func (s State) Aspect() float64 {
	if s.Width <= 0 || s.Height <= 0 {
		return 1
	}
	return float64(s.Width) / float64(s.Height)
}

// PixelSize returns the physical pixel dimensions, width and height scaled by
// density and rounded up.
func (s State) PixelSize() (int, int) {
	return int(math.Ceil(float64(s.Width) * s.Density)), int(math.Ceil(float64(s.Height) * s.Density))
}

// Monitor tracks the Surface and publishes events.ResizeTopic on change.
type Monitor struct {
	bus      *events.Bus
	surface  Surface
	state    State
	cancel   func()
	disposed bool
}

// New captures the current surface state as the baseline and subscribes to
// native resize notifications.
func New(bus *events.Bus, surface Surface) *Monitor {
	m := &Monitor{bus: bus, surface: surface}
	m.state = m.read()
	m.cancel = surface.OnResize(m.handleResize)
	return m
}

func (m *Monitor) read() State {
	w, h := m.surface.Size()
	return State{Width: w, Height: h, Density: clampDensity(m.surface.DeviceScaleFactor())}
}

func clampDensity(d float64) float64 {
	if d <= 0 || math.IsNaN(d) {
		return 1
	}
	return math.Min(d, MaxDensity)
}

func (m *Monitor) handleResize() {
	if m.disposed {
		return
	}
	next := m.read()
	if next == m.state {
		return
	}
	m.state = next
	events.Publish(m.bus, events.ResizeTopic, events.Resize{
		Width:   next.Width,
		Height:  next.Height,
		Density: next.Density,
	})
}

// State returns the latest snapshot.
func (m *Monitor) State() State { return m.state }

// Width returns the logical width.
func (m *Monitor) Width() int { return m.state.Width }

// Height returns the logical height.
func (m *Monitor) Height() int { return m.state.Height }

// Density returns the clamped pixel density.
func (m *Monitor) Density() float64 { return m.state.Density }

// Dispose unsubscribes from the surface. No resize is published afterwards.
func (m *Monitor) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	if m.cancel != nil {
		m.cancel()
	}
	m.bus.Off(events.NameResize)
}
