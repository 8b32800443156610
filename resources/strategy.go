package resources

import (
	"context"
	"sync"
)

// Request is the input to a Strategy: the manifest entry, the paths chosen
// after the capability probe, and the fetcher to read them with.
type Request struct {
	Source  Source
	Paths   []string
	Fetcher Fetcher
}

// Strategy loads one manifest entry and returns its artifact.
type Strategy interface {
	Load(ctx context.Context, req Request) (any, error)
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(ctx context.Context, req Request) (any, error)

// Load calls f.
func (f StrategyFunc) Load(ctx context.Context, req Request) (any, error) { return f(ctx, req) }

// Registry maps each Kind to the Strategy that loads it. Replacing a
// strategy does not touch the loader's aggregation logic.
type Registry struct {
	mu         sync.RWMutex
	strategies map[Kind]Strategy
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[Kind]Strategy)}
}

// DefaultRegistry returns a registry with the built-in glTF, image,
// cube-map and audio strategies.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindModel, ModelStrategy{})
	r.Register(KindImage, ImageStrategy{})
	r.Register(KindCubemap, CubemapStrategy{})
	r.Register(KindAudio, AudioStrategy{SampleRate: DefaultSampleRate})
	return r
}

// Register installs s for k, replacing any previous strategy.
func (r *Registry) Register(k Kind, s Strategy) {
	r.mu.Lock()
	r.strategies[k] = s
	r.mu.Unlock()
}

// Lookup returns the strategy for k.
func (r *Registry) Lookup(k Kind) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[k]
	return s, ok
}
