// Package clock drives a continuous sequence of tick events synchronized to
// the host's display refresh.
package clock

import (
	"time"

	"github.com/phanxgames/hologram/events"
)

// FrameID identifies a pending frame callback.
type FrameID uint64

// Scheduler is the host's per-display-frame primitive. RequestFrame arranges
// for fn to be called once before the next repaint; CancelFrame drops a
// pending request. Cancelling an already-run or unknown ID is a no-op.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// Option configures a Clock.
type Option func(*Clock)

// WithNow replaces the wall-clock source. Intended for tests.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) { c.now = now }
}

// Clock publishes events.TickTopic once per frame until disposed. It has no
// pause state: a Clock is running from construction until Dispose.
//
// Clock is driven by the host frame loop and is not safe for concurrent use.
type Clock struct {
	bus   *events.Bus
	sched Scheduler
	now   func() time.Time

	start    time.Time
	elapsed  float64
	delta    float64
	frames   uint64
	pending  FrameID
	disposed bool
}

// New creates a running clock and schedules its first tick.
func New(bus *events.Bus, sched Scheduler, opts ...Option) *Clock {
	c := &Clock{bus: bus, sched: sched, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	c.start = c.now()
	c.pending = c.sched.RequestFrame(c.tick)
	return c
}

// tick re-schedules before doing any work so a slow or panicking subscriber
// cannot cost the next frame.
func (c *Clock) tick() {
	if c.disposed {
		return
	}
	c.pending = c.sched.RequestFrame(c.tick)

	elapsed := c.now().Sub(c.start).Seconds()
	if elapsed < c.elapsed {
		elapsed = c.elapsed
	}
	c.delta = elapsed - c.elapsed
	c.elapsed = elapsed
	c.frames++

	events.Publish(c.bus, events.TickTopic, events.Tick{Elapsed: c.elapsed, Delta: c.delta})
}

// Elapsed returns the seconds between construction and the latest tick.
func (c *Clock) Elapsed() float64 { return c.elapsed }

// Delta returns the seconds between the latest tick and the one before it.
func (c *Clock) Delta() float64 { return c.delta }

// Frames returns the number of ticks published so far.
func (c *Clock) Frames() uint64 { return c.frames }

// Running reports whether the clock has not been disposed.
func (c *Clock) Running() bool { return !c.disposed }

// Dispose cancels the pending frame and removes every tick handler. No tick
// is published afterwards, even if the host invokes a stale callback.
func (c *Clock) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.sched.CancelFrame(c.pending)
	c.bus.Off(events.NameTick)
}
