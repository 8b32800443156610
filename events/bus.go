// Package events implements the named publish/subscribe bus every other
// component of the runtime is built on.
package events

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Name identifies an event on a Bus.
type Name string

// Handler receives the payload passed to Emit.
type Handler func(payload any)

var logger = zerolog.Nop()

// SetLogger installs the structured logger used to report handler panics.
func SetLogger(l zerolog.Logger) { logger = l.With().Str("component", "events").Logger() }

// Bus maps event names to an ordered list of handlers. Handlers run
// synchronously in registration order. A panicking handler is recovered and
// reported; the remaining handlers still run.
//
// The zero value is not usable; create buses with NewBus.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Name][]Handler
	onError  func(name Name, err error)
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Name][]Handler)}
}

// On registers h for name. There is no per-handler removal; use Off.
func (b *Bus) On(name Name, h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	b.handlers[name] = append(b.handlers[name], h)
	b.mu.Unlock()
}

// Emit invokes every handler registered for name with payload. Emitting an
// event with no handlers is a no-op.
func (b *Bus) Emit(name Name, payload any) {
	b.mu.RLock()
	hs := b.handlers[name]
	b.mu.RUnlock()

	// The snapshot's length is fixed; handlers registered during the emit
	// only write past it and run from the next Emit on.
	for i, h := range hs {
		if err := b.invoke(h, payload); err != nil {
			b.report(name, i, err)
		}
	}
}

// Off removes all handlers for name. Calling it for a name with no handlers
// does nothing.
func (b *Bus) Off(name Name) {
	b.mu.Lock()
	delete(b.handlers, name)
	b.mu.Unlock()
}

// Clear removes every handler for every name.
func (b *Bus) Clear() {
	b.mu.Lock()
	b.handlers = make(map[Name][]Handler)
	b.mu.Unlock()
}

// Handlers returns the number of handlers registered for name.
func (b *Bus) Handlers(name Name) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[name])
}

// OnError sets a hook called with every recovered handler panic, in addition
// to the log entry. Pass nil to remove it.
func (b *Bus) OnError(fn func(name Name, err error)) {
	b.mu.Lock()
	b.onError = fn
	b.mu.Unlock()
}

func (b *Bus) invoke(h Handler, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = &HandlerError{Err: e}
				return
			}
			err = &HandlerError{Err: fmt.Errorf("%v", r)}
		}
	}()
	h(payload)
	return nil
}

func (b *Bus) report(name Name, index int, err error) {
	logger.Error().Err(err).Str("event", string(name)).Int("handler", index).Msg("event handler panicked")
	b.mu.RLock()
	fn := b.onError
	b.mu.RUnlock()
	if fn != nil {
		fn(name, err)
	}
}

// HandlerError wraps a value recovered from a panicking handler.
type HandlerError struct {
	Err error
}

func (e *HandlerError) Error() string { return "event handler panic: " + e.Err.Error() }

func (e *HandlerError) Unwrap() error { return e.Err }
