package viewport

import (
	"testing"

	"github.com/phanxgames/hologram/events"
)

type fakeSurface struct {
	w, h      int
	scale     float64
	listeners map[int]func()
	nextID    int
}

func newFakeSurface(w, h int, scale float64) *fakeSurface {
	return &fakeSurface{w: w, h: h, scale: scale, listeners: make(map[int]func())}
}

func (s *fakeSurface) Size() (int, int)           { return s.w, s.h }
func (s *fakeSurface) DeviceScaleFactor() float64 { return s.scale }

func (s *fakeSurface) OnResize(fn func()) func() {
	s.nextID++
	id := s.nextID
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *fakeSurface) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

func countResizes(bus *events.Bus) *int {
	n := new(int)
	events.Subscribe(bus, events.ResizeTopic, func(events.Resize) { *n++ })
	return n
}

func TestBaseline(t *testing.T) {
	s := newFakeSurface(800, 600, 3)
	m := New(events.NewBus(), s)
	want := State{Width: 800, Height: 600, Density: 2}
	if m.State() != want {
		t.Errorf("State = %+v, want %+v", m.State(), want)
	}
}

func TestIdenticalNotificationsDoNotEmit(t *testing.T) {
	s := newFakeSurface(800, 600, 1)
	bus := events.NewBus()
	New(bus, s)
	n := countResizes(bus)
	s.notify()
	s.notify()
	if *n != 0 {
		t.Errorf("resizes = %d, want 0", *n)
	}
}

func TestDensityOnlyChangeEmits(t *testing.T) {
	s := newFakeSurface(800, 600, 1)
	bus := events.NewBus()
	m := New(bus, s)
	var got events.Resize
	events.Subscribe(bus, events.ResizeTopic, func(e events.Resize) { got = e })
	s.scale = 1.5
	s.notify()
	if got.Density != 1.5 || got.Width != 800 || got.Height != 600 {
		t.Errorf("resize = %+v", got)
	}
	if m.Density() != 1.5 {
		t.Errorf("Density = %v, want 1.5", m.Density())
	}
}

func TestSizeChangeEmitsOnce(t *testing.T) {
	s := newFakeSurface(800, 600, 1)
	bus := events.NewBus()
	m := New(bus, s)
	n := countResizes(bus)
	s.w, s.h = 1024, 768
	s.notify()
	s.notify()
	if *n != 1 {
		t.Errorf("resizes = %d, want 1", *n)
	}
	if m.Width() != 1024 || m.Height() != 768 {
		t.Errorf("size = %dx%d, want 1024x768", m.Width(), m.Height())
	}
}

func TestDensityClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.5, 0.5},
		{1, 1},
		{2, 2},
		{3.5, 2},
		{0, 1},
		{-1, 1},
	}
	for _, tt := range tests {
		if got := clampDensity(tt.in); got != tt.want {
			t.Errorf("clampDensity(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampedDensityChangeIgnored(t *testing.T) {
	s := newFakeSurface(800, 600, 2)
	bus := events.NewBus()
	New(bus, s)
	n := countResizes(bus)
	s.scale = 3
	s.notify()
	if *n != 0 {
		t.Errorf("resizes = %d, want 0 (both clamp to %v)", *n, MaxDensity)
	}
}

func TestDisposeUnsubscribes(t *testing.T) {
	s := newFakeSurface(800, 600, 1)
	bus := events.NewBus()
	m := New(bus, s)
	m.Dispose()
	if len(s.listeners) != 0 {
		t.Errorf("listeners = %d after Dispose, want 0", len(s.listeners))
	}
	n := countResizes(bus)
	s.w = 10
	m.handleResize()
	if *n != 0 {
		t.Errorf("resizes after Dispose = %d, want 0", *n)
	}
	m.Dispose()
}

func TestStateHelpers(t *testing.T) {
	st := State{Width: 101, Height: 50, Density: 1.5}
	if w, h := st.PixelSize(); w != 152 || h != 75 {
		t.Errorf("PixelSize = %dx%d, want 152x75", w, h)
	}
	if a := (State{}).Aspect(); a != 1 {
		t.Errorf("zero Aspect = %v, want 1", a)
	}
	if a := (State{Width: 200, Height: 100}).Aspect(); a != 2 {
		t.Errorf("Aspect = %v, want 2", a)
	}
}
