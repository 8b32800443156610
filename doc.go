// Package hologram renders an animated wireframe hologram with
// [Ebitengine], behind a lightsaber loading screen.
//
// The runtime core lives in subpackages: [events] is the typed event bus,
// [clock] publishes a tick per display frame, [viewport] publishes resize
// when the surface size or density changes, and [resources] loads the asset
// manifest concurrently and reports progress. This package composes them.
//
// # Quick start
//
// [Run] opens a window and drives everything from a [Config]:
//
//	cfg, err := hologram.LoadConfig("hologram.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := hologram.Run(ctx, cfg); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, build an [Experience] over your own host. Anything
// implementing [clock.Scheduler] and [viewport.Surface] works; [host.Game]
// implements both over Ebitengine:
//
//	game := host.NewGame()
//	exp, err := hologram.New(ctx, hologram.Options{
//		Scheduler:  game,
//		Surface:    game,
//		Dispatcher: game,
//	})
//	game.SetDrawFunc(exp.Draw)
//	host.Run(game, host.RunConfig{Title: "Hologram"})
//
// # Frame order
//
// Every tick runs [Experience.Update]: camera, world, loading screen, audio
// fades, then [Renderer.Render]. Every resize runs [Experience.Resize]:
// camera projection first, then the render target.
//
// # Assets
//
// The world is built once every manifest entry has settled. Entries that
// failed to load are skipped; the hologram still shows without its noise
// texture and the backdrop is optional.
//
// [Ebitengine]: https://ebitengine.org
package hologram
