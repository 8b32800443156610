package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"

	"github.com/phanxgames/hologram"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := buildRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

const testManifest = `sources:
  - name: noise
    kind: image
    path: textures/noise.webp
    fallback_path: textures/noise.png
  - name: ship
    kind: model
    path: models/ship.glb
`

func TestManifestCheck(t *testing.T) {
	d := t.TempDir()
	p := writeFile(t, d, "manifest.yaml", testManifest)
	out, err := execute(t, "manifest", "check", p)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	for _, want := range []string{"noise", "textures/noise.webp, textures/noise.png", "ship", "2 entries ok"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestManifestCheckAssets(t *testing.T) {
	d := t.TempDir()
	p := writeFile(t, d, "manifest.yaml", testManifest)
	assets := filepath.Join(d, "assets")
	writeFile(t, assets, "textures/noise.png", "x")
	writeFile(t, assets, "models/ship.glb", "x")

	_, err := execute(t, "manifest", "check", p, "--assets", assets)
	if err == nil || !strings.Contains(err.Error(), "textures/noise.webp") {
		t.Fatalf("err = %v, want missing textures/noise.webp", err)
	}
	writeFile(t, assets, "textures/noise.webp", "x")
	if out, err := execute(t, "manifest", "check", p, "--assets", assets); err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
}

func TestManifestCheckInvalid(t *testing.T) {
	d := t.TempDir()
	p := writeFile(t, d, "manifest.json", `{"sources":[{"name":"a","kind":"video","path":"a.mp4"}]}`)
	if _, err := execute(t, "manifest", "check", p); err == nil {
		t.Fatal("invalid manifest accepted")
	}
	if _, err := execute(t, "manifest", "check"); err == nil {
		t.Fatal("check without a file accepted")
	}
	if _, err := execute(t, "manifest"); err == nil {
		t.Fatal("bare manifest command succeeded")
	}
}

func TestProbe(t *testing.T) {
	out, err := execute(t, "probe")
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if !strings.HasPrefix(out, "webp: ") {
		t.Errorf("output = %q, want webp: ...", out)
	}
}

func TestMergeFlags(t *testing.T) {
	cmd := buildRunCmd(new(string))
	if err := cmd.ParseFlags([]string{"--width", "640", "--debug-addr", ":9090", "--debug-cors", "http://a,http://b"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	file := hologram.Config{Width: 800, Height: 600, DebugAddr: ":1", AssetsDir: "/a"}
	flags := hologram.Config{Width: 640, DebugAddr: ":9090", DebugCORS: []string{"http://a", "http://b"}}
	got := mergeFlags(cmd, file, flags)
	if got.Width != 640 || got.DebugAddr != ":9090" || len(got.DebugCORS) != 2 {
		t.Errorf("flags not applied: %+v", got)
	}
	if got.Height != 600 || got.AssetsDir != "/a" {
		t.Errorf("unset flags overrode the file: %+v", got)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := newLogger(&bytes.Buffer{}, tt.in).GetLevel(); got != tt.want {
			t.Errorf("newLogger(%q) level = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMissingFiles(t *testing.T) {
	fsys := fstest.MapFS{"a/b.png": {Data: []byte("x")}}
	got := missingFiles(fsys, []string{"./a/b.png", "/a/b.png", "c.png"})
	if len(got) != 1 || got[0] != "c.png" {
		t.Errorf("missingFiles = %v, want [c.png]", got)
	}
	if d := dedupe([]string{"a", "", "b", "a"}); len(d) != 2 {
		t.Errorf("dedupe = %v, want [a b]", d)
	}
}
