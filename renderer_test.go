package hologram

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/hologram/viewport"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r := NewRenderer(NewCamera(32, 16), viewport.State{Width: 32, Height: 16, Density: 1}, RendererOptions{})
	t.Cleanup(r.Dispose)
	return r
}

func TestRendererLayerOrder(t *testing.T) {
	r := newTestRenderer(t)
	var order []string
	layer := func(name string) Layer {
		return LayerFunc(func(dst *ebiten.Image, cam *Camera) {
			if cam != r.camera {
				t.Errorf("%s: wrong camera", name)
			}
			order = append(order, name)
		})
	}
	r.AddOverlay(layer("overlay"))
	r.Add(layer("a"))
	r.Add(layer("b"))
	r.Render()

	want := []string{"a", "b", "overlay"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}
	if r.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", r.Frames())
	}
}

func TestRendererRemove(t *testing.T) {
	r := newTestRenderer(t)
	a := &NoiseOverlay{}
	b := &NoiseOverlay{}
	o := &LoadingScreen{}
	r.Add(a)
	r.Add(b)
	r.AddOverlay(o)
	if r.Layers() != 3 {
		t.Fatalf("Layers = %d, want 3", r.Layers())
	}
	r.Remove(a)
	r.Remove(o)
	r.Remove(&NoiseOverlay{})
	if r.Layers() != 1 || r.layers[0] != Layer(b) {
		t.Errorf("layers = %v, overlays = %v", r.layers, r.overlays)
	}
}

func TestRendererDefaults(t *testing.T) {
	r := newTestRenderer(t)
	if r.clear != ClearColor {
		t.Errorf("clear = %v, want %v", r.clear, ClearColor)
	}
	c := ColorFromHex(0x102030)
	r2 := NewRenderer(NewCamera(8, 8), viewport.State{Width: 8, Height: 8, Density: 1}, RendererOptions{ClearColor: c})
	defer r2.Dispose()
	if r2.clear != c {
		t.Errorf("clear = %v, want %v", r2.clear, c)
	}
}

func TestRendererResize(t *testing.T) {
	r := newTestRenderer(t)
	state := viewport.State{Width: 100, Height: 50, Density: 1.5}
	r.Resize(state)
	if r.State() != state {
		t.Errorf("State = %+v, want %+v", r.State(), state)
	}
	if w, h := r.Target().Width(), r.Target().Height(); w != 150 || h != 75 {
		t.Errorf("target = %dx%d, want 150x75", w, h)
	}
}

func TestRendererDispose(t *testing.T) {
	r := NewRenderer(NewCamera(8, 8), viewport.State{Width: 8, Height: 8, Density: 1}, RendererOptions{})
	called := false
	r.Add(LayerFunc(func(*ebiten.Image, *Camera) { called = true }))
	r.Dispose()
	r.Dispose()
	r.Render()
	r.Resize(viewport.State{Width: 20, Height: 20, Density: 1})
	if called {
		t.Error("layer drawn after Dispose")
	}
	if r.Frames() != 0 {
		t.Errorf("Frames = %d, want 0", r.Frames())
	}
}
