package hologram

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime parameters of the app.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	Title  string `json:"title" yaml:"title" toml:"title"`
	Width  int    `json:"width" yaml:"width" toml:"width"`
	Height int    `json:"height" yaml:"height" toml:"height"`
	TPS    int    `json:"tps" yaml:"tps" toml:"tps"`

	// AssetsDir is the directory manifest paths are relative to. Ignored
	// when AssetsURL is set.
	AssetsDir string `json:"assets_dir" yaml:"assets_dir" toml:"assets_dir"`
	// AssetsURL serves the assets over HTTP instead.
	AssetsURL string `json:"assets_url" yaml:"assets_url" toml:"assets_url"`
	// Manifest is a manifest file path. DefaultSources is used when empty.
	Manifest string      `json:"manifest" yaml:"manifest" toml:"manifest"`
	World    WorldAssets `json:"world" yaml:"world" toml:"world"`

	LogLevel      string `json:"log_level" yaml:"log_level" toml:"log_level"`
	Debug         bool   `json:"debug" yaml:"debug" toml:"debug"`
	DebugAddr     string `json:"debug_addr" yaml:"debug_addr" toml:"debug_addr"`
	ScreenshotDir string `json:"screenshot_dir" yaml:"screenshot_dir" toml:"screenshot_dir"`
	// Script is a JSON capture script. The window closes when it finishes.
	Script string `json:"script" yaml:"script" toml:"script"`

	// DebugCORS lists the origins allowed to call the debug server from a
	// browser.
	DebugCORS []string `json:"debug_cors" yaml:"debug_cors" toml:"debug_cors"`
}

// Config defaults.
const (
	DefaultTitle     = "Hologram"
	DefaultWidth     = 1280
	DefaultHeight    = 720
	DefaultTPS       = 60
	DefaultAssetsDir = "assets"
	DefaultLogLevel  = "info"
)

// LoadConfig reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// WithDefaults returns a copy of c with every unspecified field filled in.
func (c Config) WithDefaults() Config {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.TPS <= 0 {
		c.TPS = DefaultTPS
	}
	if c.AssetsDir == "" {
		c.AssetsDir = DefaultAssetsDir
	}
	if c.World == (WorldAssets{}) {
		c.World = DefaultWorldAssets
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
	return c
}
