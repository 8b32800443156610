package resources

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type manifestFile struct {
	Sources []Source `json:"sources" yaml:"sources" toml:"sources"`
}

// LoadManifest reads a manifest file and validates it.
// Supports: .yaml/.yml, .json, .toml
func LoadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseManifest(b, filepath.Ext(path))
}

// ParseManifest decodes manifest data in the format named by ext (".yaml",
// ".yml", ".json" or ".toml") and validates it.
func ParseManifest(data []byte, ext string) (*Manifest, error) {
	var f manifestFile
	switch ext = strings.ToLower(ext); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse manifest: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse manifest: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest extension: %s", ext)
	}
	return NewManifest(f.Sources...)
}
