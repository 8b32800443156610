package resources

import (
	"errors"
	"fmt"
)

// Kind is the closed set of asset kinds a manifest entry can declare.
type Kind string

const (
	KindModel   Kind = "model"
	KindImage   Kind = "image"
	KindCubemap Kind = "cubemap"
	KindAudio   Kind = "audio"
)

// Kinds lists every valid Kind.
var Kinds = []Kind{KindModel, KindImage, KindCubemap, KindAudio}

// Valid reports whether k is one of Kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindModel, KindImage, KindCubemap, KindAudio:
		return true
	}
	return false
}

// UsesProbe reports whether entries of this kind switch to their fallback
// paths when the capability probe fails.
func (k Kind) UsesProbe() bool {
	return k == KindImage || k == KindCubemap
}

// CubeFaces is the number of images in a cube map.
const CubeFaces = 6

// Face indexes a cube-map image. Order is fixed: +X, -X, +Y, -Y, +Z, -Z.
type Face int

const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

var faceNames = [CubeFaces]string{"+x", "-x", "+y", "-y", "+z", "-z"}

func (f Face) String() string {
	if f < 0 || int(f) >= CubeFaces {
		return fmt.Sprintf("Face(%d)", int(f))
	}
	return faceNames[f]
}

// Source is one manifest entry. Single-file kinds use Path and
// FallbackPath; cube maps use Paths and FallbackPaths, six each.
type Source struct {
	Name          string   `json:"name" yaml:"name" toml:"name"`
	Kind          Kind     `json:"kind" yaml:"kind" toml:"kind"`
	Path          string   `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	Paths         []string `json:"paths,omitempty" yaml:"paths,omitempty" toml:"paths,omitempty"`
	FallbackPath  string   `json:"fallback_path,omitempty" yaml:"fallback_path,omitempty" toml:"fallback_path,omitempty"`
	FallbackPaths []string `json:"fallback_paths,omitempty" yaml:"fallback_paths,omitempty" toml:"fallback_paths,omitempty"`
}

// HasFallback reports whether the entry declares fallback paths.
func (s Source) HasFallback() bool {
	return s.FallbackPath != "" || len(s.FallbackPaths) > 0
}

// primary returns the paths used when the probe succeeds.
func (s Source) primary() []string {
	if s.Kind == KindCubemap {
		return s.Paths
	}
	return []string{s.Path}
}

// fallback returns the fallback paths, or nil.
func (s Source) fallback() []string {
	if s.Kind == KindCubemap {
		return s.FallbackPaths
	}
	if s.FallbackPath == "" {
		return nil
	}
	return []string{s.FallbackPath}
}

// SelectPaths returns the paths to load given the probe result. An entry
// without a fallback always uses its primary paths.
func (s Source) SelectPaths(supported bool) []string {
	if !supported && s.Kind.UsesProbe() {
		if fb := s.fallback(); len(fb) > 0 {
			return fb
		}
	}
	return s.primary()
}

func (s Source) validate() error {
	if s.Name == "" {
		return configErrorf("entry with empty name")
	}
	if !s.Kind.Valid() {
		return configErrorf("%q: unknown kind %q", s.Name, s.Kind)
	}
	if s.HasFallback() && !s.Kind.UsesProbe() {
		return configErrorf("%q: kind %s does not take fallback paths", s.Name, s.Kind)
	}
	if s.Kind == KindCubemap {
		if s.Path != "" || s.FallbackPath != "" {
			return configErrorf("%q: cubemap uses paths, not path", s.Name)
		}
		if len(s.Paths) != CubeFaces {
			return configErrorf("%q: cubemap needs %d paths, got %d", s.Name, CubeFaces, len(s.Paths))
		}
		if len(s.FallbackPaths) != 0 && len(s.FallbackPaths) != CubeFaces {
			return configErrorf("%q: cubemap needs %d fallback paths, got %d", s.Name, CubeFaces, len(s.FallbackPaths))
		}
		for i, p := range s.Paths {
			if p == "" {
				return configErrorf("%q: empty path for face %s", s.Name, Face(i))
			}
		}
		return nil
	}
	if s.Path == "" {
		return configErrorf("%q: %s needs a path", s.Name, s.Kind)
	}
	if len(s.Paths) > 0 || len(s.FallbackPaths) > 0 {
		return configErrorf("%q: %s uses path, not paths", s.Name, s.Kind)
	}
	return nil
}

// Manifest is a validated, ordered list of sources.
type Manifest struct {
	sources []Source
	index   map[string]int
}

// NewManifest validates sources and returns a Manifest. Every problem found
// is reported; the returned error satisfies IsConfigError.
func NewManifest(sources ...Source) (*Manifest, error) {
	m := &Manifest{
		sources: make([]Source, len(sources)),
		index:   make(map[string]int, len(sources)),
	}
	var errs []error
	for i, s := range sources {
		if err := s.validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := m.index[s.Name]; dup {
			errs = append(errs, configErrorf("duplicate name %q", s.Name))
			continue
		}
		m.index[s.Name] = i
		m.sources[i] = s
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return m, nil
}

// MustManifest is like NewManifest but panics on error. Intended for
// manifests declared in Go source.
func MustManifest(sources ...Source) *Manifest {
	m, err := NewManifest(sources...)
	if err != nil {
		panic(err)
	}
	return m
}

// Len returns the number of entries.
func (m *Manifest) Len() int { return len(m.sources) }

// Sources returns a copy of the entries in manifest order.
func (m *Manifest) Sources() []Source {
	out := make([]Source, len(m.sources))
	copy(out, m.sources)
	return out
}

// Lookup returns the entry named name.
func (m *Manifest) Lookup(name string) (Source, bool) {
	i, ok := m.index[name]
	if !ok {
		return Source{}, false
	}
	return m.sources[i], true
}
