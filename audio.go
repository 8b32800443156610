package hologram

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/phanxgames/hologram/resources"
	"github.com/tanema/gween/ease"
)

// DefaultFadeDuration is FadeIn's duration when none is given, in seconds.
const DefaultFadeDuration = 2

// Player is the playback surface the registry manages. *audio.Player
// satisfies it.
type Player interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(volume float64)
	Volume() float64
}

type audioNotFoundError struct{ name string }

func (e *audioNotFoundError) Error() string {
	return fmt.Sprintf("hologram: %q audio was not found in the registry", e.name)
}

// IsAudioNotFound reports whether err is a registry lookup miss.
func IsAudioNotFound(err error) bool {
	var e *audioNotFoundError
	return errors.As(err, &e)
}

// volumeFade animates a player's volume.
type volumeFade struct {
	player Player
	volume float64
	tween  *TweenGroup
}

// AudioRegistry names players so scene objects can find each other's sounds,
// and runs volume fades on the frame loop.
type AudioRegistry struct {
	ctx *audio.Context

	mu      sync.RWMutex
	players map[string]Player
	fades   []*volumeFade
}

// NewAudioRegistry creates an empty registry. ctx may be nil, in which case
// NewLoopPlayer is unavailable.
func NewAudioRegistry(ctx *audio.Context) *AudioRegistry {
	return &AudioRegistry{ctx: ctx, players: make(map[string]Player)}
}

// Register stores p under name, replacing any previous player.
func (r *AudioRegistry) Register(name string, p Player) {
	r.mu.Lock()
	r.players[name] = p
	r.mu.Unlock()
}

// Get returns the player named name, or an error satisfying
// IsAudioNotFound.
func (r *AudioRegistry) Get(name string) (Player, error) {
	r.mu.RLock()
	p, ok := r.players[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &audioNotFoundError{name: name}
	}
	return p, nil
}

// Names returns the registered names, sorted.
func (r *AudioRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.players))
	for n := range r.players {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewLoopPlayer creates a player that repeats clip forever.
func (r *AudioRegistry) NewLoopPlayer(clip *resources.AudioClip) (Player, error) {
	if r.ctx == nil {
		return nil, errors.New("hologram: no audio context")
	}
	if clip.SampleRate != r.ctx.SampleRate() {
		return nil, fmt.Errorf("hologram: clip %s is %d Hz, audio context is %d Hz", clip.Path, clip.SampleRate, r.ctx.SampleRate())
	}
	loop := audio.NewInfiniteLoop(bytes.NewReader(clip.PCM), int64(len(clip.PCM)))
	p, err := r.ctx.NewPlayer(loop)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FadeIn starts p silent and raises its volume to `to` over duration
// seconds. A non-positive duration uses DefaultFadeDuration.
func (r *AudioRegistry) FadeIn(p Player, to float64, duration float32) {
	if duration <= 0 {
		duration = DefaultFadeDuration
	}
	f := &volumeFade{player: p}
	p.SetVolume(0)
	p.Play()
	f.tween = TweenValue(&f.volume, clamp01(to), duration, ease.Linear)
	r.mu.Lock()
	r.fades = append(r.fades, f)
	r.mu.Unlock()
}

// Update advances running fades by dt seconds.
func (r *AudioRegistry) Update(dt float64) {
	r.mu.Lock()
	fades := r.fades
	r.mu.Unlock()

	live := make([]*volumeFade, 0, len(fades))
	for _, f := range fades {
		f.tween.Update(float32(dt))
		f.player.SetVolume(f.volume)
		if !f.tween.Done {
			live = append(live, f)
		}
	}

	r.mu.Lock()
	r.fades = append(live, r.fades[len(fades):]...)
	r.mu.Unlock()
}

// Fading returns the number of running fades.
func (r *AudioRegistry) Fading() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fades)
}

// Dispose pauses every registered player and drops running fades.
func (r *AudioRegistry) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		p.Pause()
	}
	r.fades = nil
}
