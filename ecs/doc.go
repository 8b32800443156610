// Package ecs bridges the hologram event bus into a [Donburi] world.
//
// [NewBridge] republishes tick, resize and settlement events as typed
// Donburi events and keeps a singleton [Progress] component up to date, so
// ECS systems can react to loading without touching the bus.
//
// Usage:
//
//	world := donburi.NewWorld()
//	bridge := ecs.NewBridge(world, exp.Bus())
//	defer bridge.Close()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
