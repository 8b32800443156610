package hologram

import "github.com/phanxgames/hologram/resources"

// DefaultSources is the manifest used when no manifest file is configured.
// Paths are relative to the asset root.
var DefaultSources = []resources.Source{
	{
		Name: "darth_vader_model",
		Kind: resources.KindModel,
		Path: "models/darth_vader.glb",
	},
	{
		Name: "noise_texture",
		Kind: resources.KindImage,
		Path: "textures/noise.png",
	},
}

// DefaultManifest returns a manifest of DefaultSources.
func DefaultManifest() *resources.Manifest {
	return resources.MustManifest(DefaultSources...)
}
