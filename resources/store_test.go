package resources

import (
	"image"
	"reflect"
	"testing"
	"time"
)

func TestStoreWriteOnce(t *testing.T) {
	s := NewStore()
	tex := NewTexture("a.png", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if err := s.put("a", tex); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.put("a", &AudioClip{}); err == nil {
		t.Error("second put succeeded")
	}
	got, err := s.Texture("a")
	if err != nil || got != tex {
		t.Errorf("Texture(a) = %v, %v; want original", got, err)
	}
}

func TestStoreLookup(t *testing.T) {
	s := NewStore()
	_ = s.put("clip", &AudioClip{SampleRate: DefaultSampleRate})
	_ = s.put("ship", &Model{Path: "ship.glb"})

	if _, err := s.Get("missing"); !IsNotFound(err) {
		t.Errorf("Get(missing) err = %v, want not found", err)
	}
	if _, err := s.Texture("clip"); !IsNotFound(err) {
		t.Errorf("Texture(clip) err = %v, want not found", err)
	}
	if m, err := s.Model("ship"); err != nil || m.Path != "ship.glb" {
		t.Errorf("Model(ship) = %v, %v", m, err)
	}
	if !s.Has("clip") || s.Has("missing") {
		t.Error("Has reports wrong membership")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	if got, want := s.Names(), []string{"clip", "ship"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
}

func TestStoreRelease(t *testing.T) {
	s := NewStore()
	tex := NewTexture("a.png", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if tex.Image() == nil {
		t.Fatal("Image = nil before release")
	}
	cube := &CubeTexture{}
	for i := range cube.Faces {
		cube.Faces[i] = NewTexture("face.png", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	}
	_ = s.put("a", tex)
	_ = s.put("cube", cube)
	_ = s.put("clip", &AudioClip{})

	s.Release()
	s.Release()
	if !tex.Disposed() {
		t.Error("texture not disposed")
	}
	if tex.Image() != nil {
		t.Error("Image re-uploaded after release")
	}
	for i, f := range cube.Faces {
		if !f.Disposed() {
			t.Errorf("face %d not disposed", i)
		}
	}
	if !s.Has("a") {
		t.Error("released store dropped its entries")
	}

	late := NewTexture("late.png", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if err := s.put("late", late); err == nil {
		t.Error("put after release succeeded")
	}
	if !late.Disposed() {
		t.Error("texture put after release not disposed")
	}
}

func TestAudioClipDuration(t *testing.T) {
	tests := []struct {
		clip AudioClip
		want time.Duration
	}{
		{AudioClip{SampleRate: 44100, PCM: make([]byte, 44100*bytesPerFrame)}, time.Second},
		{AudioClip{SampleRate: 48000, PCM: make([]byte, 24000*bytesPerFrame)}, 500 * time.Millisecond},
		{AudioClip{SampleRate: 0, PCM: make([]byte, 16)}, 0},
		{AudioClip{SampleRate: 44100}, 0},
	}
	for _, tt := range tests {
		if got := tt.clip.Duration(); got != tt.want {
			t.Errorf("Duration(%d bytes @ %d) = %v, want %v", len(tt.clip.PCM), tt.clip.SampleRate, got, tt.want)
		}
	}
}

func TestDecodeAudioUnsupported(t *testing.T) {
	if _, err := decodeAudio(DefaultSampleRate, "hum.flac", nil); err == nil {
		t.Error("want error for .flac")
	}
}
