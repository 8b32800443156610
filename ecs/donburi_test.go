package ecs

import (
	"errors"
	"testing"

	"github.com/yohamta/donburi"

	"github.com/phanxgames/hologram/events"
)

func TestNewBridge(t *testing.T) {
	world := donburi.NewWorld()
	b := NewBridge(world, events.NewBus())
	if !world.Valid(b.Entity()) {
		t.Fatal("progress entity not created")
	}
	if p := b.Progress(); p != (Progress{}) {
		t.Errorf("Progress = %+v, want zero", p)
	}
}

func TestBridgeForwardsTicks(t *testing.T) {
	world := donburi.NewWorld()
	bus := events.NewBus()
	NewBridge(world, bus)

	var received []events.Tick
	TickEventType.Subscribe(world, func(w donburi.World, e events.Tick) {
		received = append(received, e)
	})

	events.Publish(bus, events.TickTopic, events.Tick{Elapsed: 1, Delta: 0.5})
	events.Publish(bus, events.TickTopic, events.Tick{Elapsed: 2, Delta: 1})
	if len(received) != 0 {
		t.Fatal("events delivered before ProcessEvents")
	}
	ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[1].Elapsed != 2 || received[1].Delta != 1 {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestBridgeForwardsResize(t *testing.T) {
	world := donburi.NewWorld()
	bus := events.NewBus()
	NewBridge(world, bus)

	var got events.Resize
	ResizeEventType.Subscribe(world, func(w donburi.World, e events.Resize) { got = e })
	events.Publish(bus, events.ResizeTopic, events.Resize{Width: 800, Height: 600, Density: 2})
	ProcessEvents(world)

	if got.Width != 800 || got.Height != 600 || got.Density != 2 {
		t.Errorf("resize = %+v", got)
	}
}

func TestBridgeTracksProgress(t *testing.T) {
	world := donburi.NewWorld()
	bus := events.NewBus()
	b := NewBridge(world, bus)

	var all int
	AllSettledEventType.Subscribe(world, func(w donburi.World, e events.AllSettled) { all++ })

	events.Publish(bus, events.ItemSettledTopic, events.ItemSettled{Name: "a", Progress: 0.5})
	events.Publish(bus, events.ItemSettledTopic, events.ItemSettled{Name: "b", Progress: 1, Err: errors.New("missing")})
	if p := b.Progress(); p.Ratio != 1 || p.Settled != 2 || p.Failed != 1 || p.Done {
		t.Errorf("Progress = %+v", p)
	}

	events.Publish(bus, events.AllSettledTopic, events.AllSettled{Loaded: 1, Failed: 1})
	if !b.Progress().Done {
		t.Error("Done = false after all-settled")
	}
	ProcessEvents(world)
	if all != 1 {
		t.Errorf("all-settled delivered %d times, want 1", all)
	}
}

func TestBridgeClose(t *testing.T) {
	world := donburi.NewWorld()
	bus := events.NewBus()
	b := NewBridge(world, bus)

	n := 0
	TickEventType.Subscribe(world, func(w donburi.World, e events.Tick) { n++ })
	b.Close()
	events.Publish(bus, events.TickTopic, events.Tick{})
	events.Publish(bus, events.ItemSettledTopic, events.ItemSettled{Progress: 1})
	ProcessEvents(world)

	if n != 0 {
		t.Errorf("received %d ticks after Close", n)
	}
	if b.Progress().Settled != 0 {
		t.Errorf("progress updated after Close: %+v", b.Progress())
	}
}

func TestBridgeMultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	bus := events.NewBus()
	NewBridge(world, bus)

	var count1, count2 int
	TickEventType.Subscribe(world, func(w donburi.World, e events.Tick) { count1++ })
	TickEventType.Subscribe(world, func(w donburi.World, e events.Tick) { count2++ })
	events.Publish(bus, events.TickTopic, events.Tick{})
	ProcessEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("counts = %d, %d, want 1, 1", count1, count2)
	}
}
