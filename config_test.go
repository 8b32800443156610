package hologram

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadConfigFormats(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"cfg.yaml", "title: Bridge\nwidth: 800\nheight: 600\nassets_dir: /a\ndebug: true\ndebug_cors: [\"http://a\"]\nworld:\n  hologram: vader\n"},
		{"cfg.yml", "title: Bridge\nwidth: 800\nheight: 600\nassets_dir: /a\ndebug: true\ndebug_cors: [\"http://a\"]\nworld:\n  hologram: vader\n"},
		{"cfg.json", `{"title":"Bridge","width":800,"height":600,"assets_dir":"/a","debug":true,"debug_cors":["http://a"],"world":{"hologram":"vader"}}`},
		{"cfg.toml", "title=\"Bridge\"\nwidth=800\nheight=600\nassets_dir=\"/a\"\ndebug=true\ndebug_cors=[\"http://a\"]\n[world]\nhologram=\"vader\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeTempFile(t, t.TempDir(), tt.name, tt.content)
			cfg, err := LoadConfig(p)
			if err != nil {
				t.Fatalf("LoadConfig: %v", err)
			}
			if cfg.Title != "Bridge" || cfg.Width != 800 || cfg.Height != 600 || cfg.AssetsDir != "/a" || !cfg.Debug {
				t.Errorf("unexpected cfg: %+v", cfg)
			}
			if len(cfg.DebugCORS) != 1 || cfg.DebugCORS[0] != "http://a" {
				t.Errorf("DebugCORS = %v, want [http://a]", cfg.DebugCORS)
			}
			if cfg.World.Hologram != "vader" {
				t.Errorf("World.Hologram = %q, want vader", cfg.World.Hologram)
			}
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Error("expected error on empty path")
	}
	d := t.TempDir()
	if _, err := LoadConfig(writeTempFile(t, d, "cfg.txt", "x")); err == nil {
		t.Error("expected unsupported extension error")
	}
	if _, err := LoadConfig(writeTempFile(t, d, "bad.json", "{")); err == nil {
		t.Error("expected parse error")
	}
	if _, err := LoadConfig(filepath.Join(d, "missing.yaml")); !os.IsNotExist(err) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()
	if cfg.Title != DefaultTitle || cfg.Width != DefaultWidth || cfg.Height != DefaultHeight || cfg.TPS != DefaultTPS {
		t.Errorf("window defaults = %+v", cfg)
	}
	if cfg.AssetsDir != DefaultAssetsDir || cfg.LogLevel != DefaultLogLevel || cfg.ScreenshotDir != "screenshots" {
		t.Errorf("path defaults = %+v", cfg)
	}
	if cfg.World != DefaultWorldAssets {
		t.Errorf("World = %+v, want %+v", cfg.World, DefaultWorldAssets)
	}

	set := Config{Title: "t", Width: 10, Height: 20, TPS: 30, World: WorldAssets{Noise: "n"}}.WithDefaults()
	if set.Title != "t" || set.Width != 10 || set.Height != 20 || set.TPS != 30 {
		t.Errorf("explicit values overwritten: %+v", set)
	}
	if set.World.Hologram != "" {
		t.Errorf("World.Hologram = %q, want empty", set.World.Hologram)
	}
}
