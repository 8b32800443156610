package hologram

import (
	"math"
	"testing"

	"github.com/phanxgames/hologram/resources"
)

type fakePlayer struct {
	playing bool
	volume  float64
	sets    int
}

func (p *fakePlayer) Play()           { p.playing = true }
func (p *fakePlayer) Pause()          { p.playing = false }
func (p *fakePlayer) IsPlaying() bool { return p.playing }
func (p *fakePlayer) Volume() float64 { return p.volume }

func (p *fakePlayer) SetVolume(v float64) {
	p.volume = v
	p.sets++
}

func TestAudioRegistryGet(t *testing.T) {
	r := NewAudioRegistry(nil)
	p := &fakePlayer{}
	r.Register("hum", p)

	got, err := r.Get("hum")
	if err != nil || got != p {
		t.Errorf("Get(hum) = %v, %v; want registered player", got, err)
	}
	if _, err := r.Get("missing"); !IsAudioNotFound(err) {
		t.Errorf("Get(missing) err = %v, want audio not found", err)
	}
	if names := r.Names(); len(names) != 1 || names[0] != "hum" {
		t.Errorf("Names = %v, want [hum]", names)
	}
}

func TestAudioRegistryRegisterReplaces(t *testing.T) {
	r := NewAudioRegistry(nil)
	a, b := &fakePlayer{}, &fakePlayer{}
	r.Register("x", a)
	r.Register("x", b)
	if got, _ := r.Get("x"); got != b {
		t.Error("Register did not replace the player")
	}
}

func TestFadeIn(t *testing.T) {
	r := NewAudioRegistry(nil)
	p := &fakePlayer{volume: 1}
	r.FadeIn(p, 0.8, 1)

	if !p.playing || p.volume != 0 {
		t.Fatalf("after FadeIn: playing = %v, volume = %v; want true, 0", p.playing, p.volume)
	}
	r.Update(0.5)
	if math.Abs(p.volume-0.4) > 1e-3 {
		t.Errorf("volume at half time = %v, want 0.4", p.volume)
	}
	r.Update(0.5)
	if math.Abs(p.volume-0.8) > 1e-3 {
		t.Errorf("volume = %v, want 0.8", p.volume)
	}
	if r.Fading() != 0 {
		t.Errorf("Fading = %d after completion, want 0", r.Fading())
	}
	sets := p.sets
	r.Update(0.5)
	if p.sets != sets {
		t.Error("finished fade still writing volume")
	}
}

func TestFadeInDefaults(t *testing.T) {
	r := NewAudioRegistry(nil)
	p := &fakePlayer{}
	r.FadeIn(p, 5, 0)
	r.Update(DefaultFadeDuration)
	if math.Abs(p.volume-1) > 1e-3 {
		t.Errorf("volume = %v, want clamped to 1", p.volume)
	}
}

func TestAudioRegistryDispose(t *testing.T) {
	r := NewAudioRegistry(nil)
	p := &fakePlayer{}
	r.Register("hum", p)
	r.FadeIn(p, 1, 1)
	r.Dispose()
	if p.playing {
		t.Error("player still playing after Dispose")
	}
	if r.Fading() != 0 {
		t.Errorf("Fading = %d after Dispose", r.Fading())
	}
}

func TestNewLoopPlayerWithoutContext(t *testing.T) {
	r := NewAudioRegistry(nil)
	if _, err := r.NewLoopPlayer(&resources.AudioClip{SampleRate: resources.DefaultSampleRate}); err == nil {
		t.Error("want error without an audio context")
	}
}
