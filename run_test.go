package hologram

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/phanxgames/hologram/debugserver"
	"github.com/phanxgames/hologram/events"
	"github.com/phanxgames/hologram/resources"
)

func TestLoadManifestDefault(t *testing.T) {
	m, err := loadManifest(Config{})
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if m.Len() != len(DefaultSources) {
		t.Errorf("Len = %d, want %d", m.Len(), len(DefaultSources))
	}
	if _, ok := m.Lookup(DefaultWorldAssets.Hologram); !ok {
		t.Errorf("default manifest lacks %q", DefaultWorldAssets.Hologram)
	}
}

func TestLoadManifestFile(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "manifest.yaml", "sources:\n  - name: a\n    kind: image\n    path: a.png\n")
	m, err := loadManifest(Config{Manifest: p})
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}

	bad := writeTempFile(t, d, "bad.yaml", "sources:\n  - name: a\n    kind: nope\n")
	if _, err := loadManifest(Config{Manifest: bad}); !resources.IsConfigError(err) {
		t.Errorf("err = %v, want config error", err)
	}
	if _, err := loadManifest(Config{Manifest: filepath.Join(d, "missing.yaml")}); err == nil {
		t.Error("missing manifest loaded")
	}
}

func TestNewFetcher(t *testing.T) {
	f, err := newFetcher(Config{AssetsDir: t.TempDir()})
	if err != nil {
		t.Fatalf("newFetcher: %v", err)
	}
	if _, ok := f.(*resources.FSFetcher); !ok {
		t.Errorf("fetcher = %T, want *resources.FSFetcher", f)
	}

	f, err = newFetcher(Config{AssetsURL: "http://localhost:8080/assets"})
	if err != nil {
		t.Fatalf("newFetcher: %v", err)
	}
	if _, ok := f.(*resources.HTTPFetcher); !ok {
		t.Errorf("fetcher = %T, want *resources.HTTPFetcher", f)
	}

	if _, err := newFetcher(Config{AssetsURL: "://nope"}); err == nil {
		t.Error("bad url accepted")
	}
}

func TestDebugOptionsCORS(t *testing.T) {
	l, err := resources.NewLoader(events.NewBus(), resources.MustManifest())
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	h := debugserver.NewMux(l, debugOptions(Config{DebugCORS: []string{"http://viewer.test"}}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://viewer.test")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://viewer.test" {
		t.Errorf("Allow-Origin = %q, want http://viewer.test", got)
	}

	h = debugserver.NewMux(l, debugOptions(Config{}))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q without debug_cors, want empty", got)
	}
}
