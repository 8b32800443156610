package hologram

import (
	"github.com/phanxgames/hologram/events"
	"github.com/phanxgames/hologram/resources"
)

// WorldAssets names the manifest entries the world is built from. An empty
// name skips that component.
type WorldAssets struct {
	Hologram    string `json:"hologram" yaml:"hologram" toml:"hologram"`
	Noise       string `json:"noise" yaml:"noise" toml:"noise"`
	Environment string `json:"environment" yaml:"environment" toml:"environment"`
	Ambience    string `json:"ambience" yaml:"ambience" toml:"ambience"`
}

// DefaultWorldAssets matches DefaultSources. Manifests that add a cube map
// or an ambience clip name them in the config.
var DefaultWorldAssets = WorldAssets{
	Hologram: "darth_vader_model",
	Noise:    "noise_texture",
}

const (
	// ambienceVolume is the target volume of the ambience fade-in.
	ambienceVolume = 0.5
	// hologramFadeIn matches the loading screen fade-out.
	hologramFadeIn = fadeOutDuration
)

// World owns the scene content. Content is built once every asset has
// settled; any asset that failed to load leaves its component out.
type World struct {
	exp    *Experience
	assets WorldAssets

	environment *Environment
	hologram    *Hologram
	noise       *NoiseOverlay

	ready    bool
	disposed bool
}

// newWorld subscribes to all-settled on exp's bus.
func newWorld(exp *Experience, assets WorldAssets) *World {
	w := &World{exp: exp, assets: assets}
	events.Subscribe(exp.bus, events.AllSettledTopic, func(events.AllSettled) {
		w.build()
	})
	return w
}

// build creates the scene content from the loader's store. Called once.
func (w *World) build() {
	if w.ready || w.disposed {
		return
	}
	w.ready = true
	worldReady.Set(1)
	store := w.exp.loader.Store()

	if name := w.assets.Environment; name != "" {
		if cube, err := store.Cube(name); err != nil {
			w.skip("environment", err)
		} else {
			w.environment = NewEnvironment(cube)
			w.exp.renderer.Add(w.environment)
		}
	}
	if name := w.assets.Hologram; name != "" {
		if m, err := store.Model(name); err != nil {
			w.skip("hologram", err)
		} else {
			w.hologram = NewHologram(m)
			w.hologram.FadeIn(hologramFadeIn)
			w.exp.renderer.Add(w.hologram)
		}
	}
	if name := w.assets.Noise; name != "" {
		if tex, err := store.Texture(name); err != nil {
			w.skip("noise", err)
		} else {
			w.noise = NewNoiseOverlay(tex)
			w.exp.renderer.Add(w.noise)
		}
	}
	if name := w.assets.Ambience; name != "" {
		w.startAmbience(name, store)
	}
	logger.Info().
		Bool("environment", w.environment != nil).
		Bool("hologram", w.hologram != nil).
		Bool("noise", w.noise != nil).
		Msg("world ready")
}

func (w *World) startAmbience(name string, store *resources.Store) {
	clip, err := store.Audio(name)
	if err != nil {
		w.skip("ambience", err)
		return
	}
	reg := w.exp.audio
	p, err := reg.NewLoopPlayer(clip)
	if err != nil {
		w.skip("ambience", err)
		return
	}
	reg.Register(name, p)
	reg.FadeIn(p, ambienceVolume, DefaultFadeDuration)
}

func (w *World) skip(component string, err error) {
	logger.Warn().Err(err).Str("component", component).Msg("world component skipped")
}

// Update advances the scene content.
func (w *World) Update(t events.Tick) {
	if w.hologram != nil {
		w.hologram.Update(t.Elapsed, t.Delta)
	}
	if w.noise != nil {
		w.noise.Update(t.Delta)
	}
}

// Ready reports whether the content has been built.
func (w *World) Ready() bool { return w.ready }

// Hologram returns the hologram, or nil if its model did not load.
func (w *World) Hologram() *Hologram { return w.hologram }

// Environment returns the backdrop, or nil if the cube map did not load.
func (w *World) Environment() *Environment { return w.environment }

// Noise returns the noise overlay, or nil if its texture did not load.
func (w *World) Noise() *NoiseOverlay { return w.noise }

// Dispose removes the content from the renderer. Idempotent.
func (w *World) Dispose() {
	if w.disposed {
		return
	}
	w.disposed = true
	if w.noise != nil {
		w.exp.renderer.Remove(w.noise)
	}
	if w.hologram != nil {
		w.exp.renderer.Remove(w.hologram)
	}
	if w.environment != nil {
		w.exp.renderer.Remove(w.environment)
	}
	worldReady.Set(0)
}
