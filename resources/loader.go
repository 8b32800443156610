package resources

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/phanxgames/hologram/events"
)

// Phase is the loader lifecycle: Idle -> Probing -> Loading -> Settled.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseProbing
	PhaseLoading
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseProbing:
		return "probing"
	case PhaseLoading:
		return "loading"
	case PhaseSettled:
		return "settled"
	default:
		return fmt.Sprintf("Phase(%d)", int32(p))
	}
}

// Dispatcher runs settlement callbacks. Implementations must run callbacks
// one at a time; the host's frame-loop queue is the usual choice, so that
// progress events reach subscribers on the frame goroutine.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(fn func())

// Dispatch calls f(fn).
func (f DispatcherFunc) Dispatch(fn func()) { f(fn) }

// serialDispatcher runs callbacks inline, serialized by a mutex.
type serialDispatcher struct{ mu sync.Mutex }

func (d *serialDispatcher) Dispatch(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
}

// EntryState is the settlement state of one manifest entry.
type EntryState string

const (
	EntryPending EntryState = "pending"
	EntryLoaded  EntryState = "loaded"
	EntryFailed  EntryState = "failed"
)

// EntryStatus describes one manifest entry for diagnostics.
type EntryStatus struct {
	Name     string        `json:"name"`
	Kind     Kind          `json:"kind"`
	Paths    []string      `json:"paths,omitempty"`
	State    EntryState    `json:"state"`
	Err      string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns,omitempty"`
}

// Option configures a Loader.
type Option func(*Loader)

// WithFetcher sets where asset bytes come from. The default reads the
// working directory.
func WithFetcher(f Fetcher) Option { return func(l *Loader) { l.fetcher = f } }

// WithRegistry replaces the strategy registry. The default is
// DefaultRegistry().
func WithRegistry(r *Registry) Option { return func(l *Loader) { l.registry = r } }

// WithProbe replaces the capability probe. The default is WebPSupported.
func WithProbe(p Probe) Option { return func(l *Loader) { l.probe = p } }

// WithDispatcher sets where settlement callbacks run.
func WithDispatcher(d Dispatcher) Option { return func(l *Loader) { l.dispatcher = d } }

// Loader loads every entry of a Manifest concurrently and publishes
// events.ItemSettledTopic after each settlement and events.AllSettledTopic
// exactly once, after the last.
type Loader struct {
	bus        *events.Bus
	manifest   *Manifest
	registry   *Registry
	fetcher    Fetcher
	probe      Probe
	dispatcher Dispatcher
	store      *Store

	startOnce sync.Once
	done      chan struct{}

	mu        sync.Mutex
	phase     Phase
	supported bool
	probed    bool
	completed int
	failed    int
	finished  bool
	status    []EntryStatus
}

// NewLoader validates that every entry in m has a strategy and returns an
// idle loader. Call Start to begin loading.
func NewLoader(bus *events.Bus, m *Manifest, opts ...Option) (*Loader, error) {
	if m == nil {
		return nil, configErrorf("nil manifest")
	}
	l := &Loader{
		bus:      bus,
		manifest: m,
		store:    NewStore(),
		done:     make(chan struct{}),
		status:   make([]EntryStatus, m.Len()),
	}
	for _, o := range opts {
		o(l)
	}
	if l.fetcher == nil {
		l.fetcher = NewFSFetcher(os.DirFS("."))
	}
	if l.registry == nil {
		l.registry = DefaultRegistry()
	}
	if l.probe == nil {
		l.probe = WebPSupported
	}
	if l.dispatcher == nil {
		l.dispatcher = &serialDispatcher{}
	}

	var errs []error
	for i, src := range m.sources {
		if _, ok := l.registry.Lookup(src.Kind); !ok {
			errs = append(errs, configErrorf("%q: no strategy registered for kind %s", src.Name, src.Kind))
		}
		l.status[i] = EntryStatus{Name: src.Name, Kind: src.Kind, State: EntryPending}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return l, nil
}

// Start runs the capability probe and then dispatches every entry. It
// returns immediately; only the first call has an effect.
func (l *Loader) Start(ctx context.Context) {
	l.startOnce.Do(func() {
		l.setPhase(PhaseProbing)
		go l.run(ctx)
	})
}

func (l *Loader) run(ctx context.Context) {
	supported := l.runProbe(ctx)

	l.mu.Lock()
	l.supported = supported
	l.probed = true
	l.phase = PhaseLoading
	l.mu.Unlock()

	logger.Info().Bool("webp", supported).Int("total", l.manifest.Len()).Msg("loading manifest")

	if l.manifest.Len() == 0 {
		l.dispatcher.Dispatch(l.finishEmpty)
		return
	}
	for i, src := range l.manifest.sources {
		go l.load(ctx, i, src, supported)
	}
}

func (l *Loader) runProbe(ctx context.Context) (supported bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn().Interface("panic", r).Msg("capability probe failed")
			supported = false
		}
	}()
	return l.probe(ctx)
}

func (l *Loader) load(ctx context.Context, i int, src Source, supported bool) {
	paths := src.SelectPaths(supported)
	l.mu.Lock()
	l.status[i].Paths = paths
	l.mu.Unlock()

	strategy, _ := l.registry.Lookup(src.Kind)
	start := time.Now()
	artifact, err := invoke(ctx, strategy, Request{Source: src, Paths: paths, Fetcher: l.fetcher})
	if err == nil && artifact == nil {
		err = errors.New("strategy returned no artifact")
	}
	if err != nil {
		err = &loadError{name: src.Name, path: strings.Join(paths, ", "), err: err}
	}
	elapsed := time.Since(start)
	l.dispatcher.Dispatch(func() { l.settle(i, src, artifact, err, elapsed) })
}

func invoke(ctx context.Context, s Strategy, req Request) (artifact any, err error) {
	defer func() {
		if r := recover(); r != nil {
			artifact, err = nil, fmt.Errorf("strategy panic: %v", r)
		}
	}()
	return s.Load(ctx, req)
}

// settle records one outcome. Counting and the terminal check happen under
// one lock so all-settled is published exactly once.
func (l *Loader) settle(i int, src Source, artifact any, err error, elapsed time.Duration) {
	l.mu.Lock()
	if l.status[i].State != EntryPending {
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()

	if err == nil {
		if perr := l.store.put(src.Name, artifact); perr != nil {
			err = &loadError{name: src.Name, err: perr}
		}
	}

	l.mu.Lock()
	st := &l.status[i]
	st.Duration = elapsed
	if err != nil {
		st.State = EntryFailed
		st.Err = err.Error()
		l.failed++
	} else {
		st.State = EntryLoaded
	}
	l.completed++
	total := l.manifest.Len()
	progress := float64(l.completed) / float64(total)
	final := l.completed == total && !l.finished
	if final {
		l.finished = true
		l.phase = PhaseSettled
	}
	loaded, failed := l.completed-l.failed, l.failed
	l.mu.Unlock()

	if err != nil {
		logger.Error().Err(err).Str("asset", src.Name).Str("kind", string(src.Kind)).Msg("asset load failed")
	} else {
		logger.Debug().Str("asset", src.Name).Str("kind", string(src.Kind)).Dur("took", elapsed).Float64("progress", progress).Msg("asset loaded")
	}
	observeSettle(src.Kind, err != nil, elapsed.Seconds(), progress)

	events.Publish(l.bus, events.ItemSettledTopic, events.ItemSettled{
		Name:     src.Name,
		Kind:     string(src.Kind),
		Err:      err,
		Progress: progress,
	})
	if final {
		logger.Info().Int("loaded", loaded).Int("failed", failed).Msg("manifest settled")
		events.Publish(l.bus, events.AllSettledTopic, events.AllSettled{Loaded: loaded, Failed: failed})
		close(l.done)
	}
}

func (l *Loader) finishEmpty() {
	l.mu.Lock()
	if l.finished {
		l.mu.Unlock()
		return
	}
	l.finished = true
	l.phase = PhaseSettled
	l.mu.Unlock()
	assetsProgress.Set(1)
	events.Publish(l.bus, events.AllSettledTopic, events.AllSettled{})
	close(l.done)
}

func (l *Loader) setPhase(p Phase) {
	l.mu.Lock()
	l.phase = p
	l.mu.Unlock()
}

// Done is closed after all-settled has been published.
func (l *Loader) Done() <-chan struct{} { return l.done }

// Wait blocks until the manifest settles or ctx is done.
func (l *Loader) Wait(ctx context.Context) error {
	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Phase returns the current lifecycle phase.
func (l *Loader) Phase() Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase
}

// Total returns the manifest length.
func (l *Loader) Total() int { return l.manifest.Len() }

// Completed returns the number of settled entries.
func (l *Loader) Completed() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.completed
}

// Failed returns the number of entries that settled with an error.
func (l *Loader) Failed() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failed
}

// Progress returns completed/total in [0, 1]. An empty manifest reports 1
// once settled.
func (l *Loader) Progress() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := l.manifest.Len()
	if total == 0 {
		if l.finished {
			return 1
		}
		return 0
	}
	return float64(l.completed) / float64(total)
}

// ProbeResult returns the capability probe outcome and whether the probe
// has run yet.
func (l *Loader) ProbeResult() (supported, probed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.supported, l.probed
}

// Store returns the artifact store.
func (l *Loader) Store() *Store { return l.store }

// Get returns the artifact loaded for name. Names that failed or are unknown
// return an error satisfying IsNotFound.
func (l *Loader) Get(name string) (any, error) { return l.store.Get(name) }

// Manifest returns the manifest being loaded.
func (l *Loader) Manifest() *Manifest { return l.manifest }

// Snapshot returns the status of every entry in manifest order.
func (l *Loader) Snapshot() []EntryStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]EntryStatus, len(l.status))
	for i, st := range l.status {
		st.Paths = append([]string(nil), st.Paths...)
		out[i] = st
	}
	return out
}

// Dispose removes every progress subscriber and releases the GPU memory of
// stored textures. Loads still in flight are dropped when they settle.
func (l *Loader) Dispose() {
	l.bus.Off(events.NameItemSettled)
	l.bus.Off(events.NameAllSettled)
	l.store.Release()
}
