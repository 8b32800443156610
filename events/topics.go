package events

import "fmt"

// Event names published by the runtime core.
const (
	NameTick        Name = "tick"
	NameResize      Name = "resize"
	NameItemSettled Name = "item-settled"
	NameAllSettled  Name = "all-settled"
)

// Tick is published once per display frame by the frame clock.
type Tick struct {
	// Elapsed is the wall time since the clock started.
	Elapsed float64
	// Delta is the wall time since the previous tick, or since the clock
	// started for the first tick.
	Delta float64
}

// Resize is published when the viewport size or pixel density changes.
type Resize struct {
	Width, Height int
	Density       float64
}

// ItemSettled is published every time one manifest entry finishes loading,
// successfully or not.
type ItemSettled struct {
	Name     string
	Kind     string
	Err      error
	Progress float64
}

// AllSettled is published exactly once, after the last ItemSettled.
type AllSettled struct {
	Loaded int
	Failed int
}

// Topic binds an event name to its payload type so that subscribers and
// publishers are checked by the compiler.
type Topic[T any] struct {
	name Name
}

// NewTopic declares a typed topic for name.
func NewTopic[T any](name Name) Topic[T] { return Topic[T]{name: name} }

// Name returns the underlying event name.
func (t Topic[T]) Name() Name { return t.name }

// Topics of the runtime core.
var (
	TickTopic        = NewTopic[Tick](NameTick)
	ResizeTopic      = NewTopic[Resize](NameResize)
	ItemSettledTopic = NewTopic[ItemSettled](NameItemSettled)
	AllSettledTopic  = NewTopic[AllSettled](NameAllSettled)
)

// Subscribe registers fn for topic t on b.
func Subscribe[T any](b *Bus, t Topic[T], fn func(T)) {
	b.On(t.name, func(payload any) {
		v, ok := payload.(T)
		if !ok {
			panic(fmt.Errorf("event %q: payload %T, want %T", t.name, payload, v))
		}
		fn(v)
	})
}

// Publish emits v on topic t.
func Publish[T any](b *Bus, t Topic[T], v T) {
	b.Emit(t.name, v)
}
