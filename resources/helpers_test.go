package resources

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/phanxgames/hologram/events"
)

func pngBytes(t testing.TB, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.NRGBA{R: 3, G: 9, B: 15, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// wavBytes returns a 16-bit stereo PCM WAV file with frames silent frames.
func wavBytes(sampleRate, frames int) []byte {
	const channels, bits = 2, 16
	dataLen := frames * channels * bits / 8
	var b bytes.Buffer
	b.WriteString("RIFF")
	_ = binary.Write(&b, binary.LittleEndian, uint32(36+dataLen))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	_ = binary.Write(&b, binary.LittleEndian, uint32(16))
	_ = binary.Write(&b, binary.LittleEndian, uint16(1))
	_ = binary.Write(&b, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&b, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&b, binary.LittleEndian, uint32(sampleRate*channels*bits/8))
	_ = binary.Write(&b, binary.LittleEndian, uint16(channels*bits/8))
	_ = binary.Write(&b, binary.LittleEndian, uint16(bits))
	b.WriteString("data")
	_ = binary.Write(&b, binary.LittleEndian, uint32(dataLen))
	b.Write(make([]byte, dataLen))
	return b.Bytes()
}

// glbBytes returns a binary glTF with a root node and one child carrying a
// single indexed triangle.
func glbBytes(t testing.TB) []byte {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 2, -1}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Meshes = []*gltf.Mesh{{
		Name: "triangle",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos},
		}},
	}}
	doc.Nodes = []*gltf.Node{
		{Name: "root", Children: []int{1}},
		{Name: "body", Mesh: gltf.Index(0), Translation: [3]float64{0, 1, 0}},
	}
	doc.Scenes[0].Nodes = []int{0}

	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		t.Fatalf("encode glb: %v", err)
	}
	return buf.Bytes()
}

// recorder is a strategy that records the paths it was asked to load and
// fails for names listed in fail.
type recorder struct {
	mu    sync.Mutex
	paths map[string][]string
	fail  map[string]bool
}

func newRecorder(fail ...string) *recorder {
	r := &recorder{paths: make(map[string][]string), fail: make(map[string]bool)}
	for _, n := range fail {
		r.fail[n] = true
	}
	return r
}

func (r *recorder) Load(_ context.Context, req Request) (any, error) {
	r.mu.Lock()
	r.paths[req.Source.Name] = req.Paths
	r.mu.Unlock()
	if r.fail[req.Source.Name] {
		return nil, errFake
	}
	return &req.Source, nil
}

func (r *recorder) pathsFor(name string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paths[name]
}

func (r *recorder) registry() *Registry {
	reg := NewRegistry()
	for _, k := range Kinds {
		reg.Register(k, r)
	}
	return reg
}

var errFake = fakeError("fake failure")

type fakeError string

func (e fakeError) Error() string { return string(e) }

// settleLog collects every settlement event published on a bus.
type settleLog struct {
	mu    sync.Mutex
	items []events.ItemSettled
	all   []events.AllSettled
	// itemsAtAll is len(items) when each all-settled arrived.
	itemsAtAll []int
}

func watch(bus *events.Bus) *settleLog {
	s := &settleLog{}
	events.Subscribe(bus, events.ItemSettledTopic, func(e events.ItemSettled) {
		s.mu.Lock()
		s.items = append(s.items, e)
		s.mu.Unlock()
	})
	events.Subscribe(bus, events.AllSettledTopic, func(e events.AllSettled) {
		s.mu.Lock()
		s.all = append(s.all, e)
		s.itemsAtAll = append(s.itemsAtAll, len(s.items))
		s.mu.Unlock()
	})
	return s
}

func waitLoader(t *testing.T, l *Loader) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("loader did not settle: %v", err)
	}
}

func cubePaths(prefix string) []string {
	return []string{
		prefix + "px.png", prefix + "nx.png",
		prefix + "py.png", prefix + "ny.png",
		prefix + "pz.png", prefix + "nz.png",
	}
}
