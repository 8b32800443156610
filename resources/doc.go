// Package resources loads a declarative manifest of heterogeneous assets
// (glTF models, raster images, cube maps and audio clips) concurrently,
// reports aggregate progress on an events.Bus and exposes the results
// through a write-once Store.
//
// Loading starts with a one-time capability probe: if the host cannot decode
// WebP, image and cube-map entries that declare fallback paths load those
// instead. A failed entry is logged and counted as settled; it never blocks
// the rest of the manifest.
//
//	m, err := resources.NewManifest(sources...)
//	l, err := resources.NewLoader(bus, m, resources.WithFetcher(resources.NewFSFetcher(os.DirFS("assets"))))
//	l.Start(ctx)
//	<-l.Done()
//	tex, err := l.Store().Texture("noise_texture")
package resources
