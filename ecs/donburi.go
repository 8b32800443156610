package ecs

import (
	"github.com/yohamta/donburi"
	devents "github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/hologram/events"
)

// Donburi event types carrying the bus payloads unchanged.
var (
	TickEventType        = devents.NewEventType[events.Tick]()
	ResizeEventType      = devents.NewEventType[events.Resize]()
	ItemSettledEventType = devents.NewEventType[events.ItemSettled]()
	AllSettledEventType  = devents.NewEventType[events.AllSettled]()
)

// Progress is the loading state mirrored into the world.
type Progress struct {
	Ratio   float64
	Settled int
	Failed  int
	Done    bool
}

// ProgressComponent is the component holding Progress on the bridge's
// singleton entity.
var ProgressComponent = donburi.NewComponentType[Progress]()

// Bridge forwards bus events into a Donburi world. Events are queued; run
// ProcessEvents from the ECS update to deliver them.
type Bridge struct {
	world  donburi.World
	bus    *events.Bus
	entity donburi.Entity
	closed bool
}

// NewBridge subscribes to every runtime topic on bus.
func NewBridge(world donburi.World, bus *events.Bus) *Bridge {
	b := &Bridge{world: world, bus: bus}
	b.entity = world.Create(ProgressComponent)

	events.Subscribe(bus, events.TickTopic, func(t events.Tick) {
		if !b.closed {
			TickEventType.Publish(world, t)
		}
	})
	events.Subscribe(bus, events.ResizeTopic, func(r events.Resize) {
		if !b.closed {
			ResizeEventType.Publish(world, r)
		}
	})
	events.Subscribe(bus, events.ItemSettledTopic, func(e events.ItemSettled) {
		if b.closed {
			return
		}
		p := b.progress()
		p.Ratio = e.Progress
		p.Settled++
		if e.Err != nil {
			p.Failed++
		}
		ItemSettledEventType.Publish(world, e)
	})
	events.Subscribe(bus, events.AllSettledTopic, func(e events.AllSettled) {
		if b.closed {
			return
		}
		p := b.progress()
		p.Ratio = 1
		p.Done = true
		AllSettledEventType.Publish(world, e)
	})
	return b
}

func (b *Bridge) progress() *Progress {
	return ProgressComponent.Get(b.world.Entry(b.entity))
}

// Progress returns the mirrored loading state.
func (b *Bridge) Progress() Progress { return *b.progress() }

// Entity returns the entity holding ProgressComponent.
func (b *Bridge) Entity() donburi.Entity { return b.entity }

// ProcessEvents delivers every queued event to its Donburi subscribers.
func ProcessEvents(world donburi.World) {
	TickEventType.ProcessEvents(world)
	ResizeEventType.ProcessEvents(world)
	ItemSettledEventType.ProcessEvents(world)
	AllSettledEventType.ProcessEvents(world)
}

// Close stops forwarding. The bus handlers stay registered until the bus
// is cleared; they ignore events after Close.
func (b *Bridge) Close() {
	b.closed = true
}
