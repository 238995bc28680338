package motioncore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/motioncore/motioncore/internal/registry"
)

func TestNewWithDefaults(t *testing.T) {
	module, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if module.Registry() == nil {
		t.Fatal("expected a registry client")
	}
	if module.Cache() == nil {
		t.Fatal("expected a cache store")
	}
	if module.Generator() != nil {
		t.Fatal("expected no generator without a docs manifest")
	}
	if module.Library() != nil {
		t.Fatal("expected no library without a docs dir")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Registry.URL = ""
	if _, err := New(cfg); !errors.Is(err, ErrRegistryURLRequired) {
		t.Fatalf("expected ErrRegistryURLRequired, got %v", err)
	}
}

func TestNewBuildsDocsPipeline(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "manifest.json")
	manifest := `{
		"title": "Motion Core",
		"summary": "Animated Svelte components.",
		"gettingStarted": [{"slug": "installation", "name": "Installation"}],
		"components": [{"slug": "glass-pane", "name": "Glass Pane"}]
	}`
	if err := os.WriteFile(manifestPath, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	docsDir := filepath.Join(dir, "content")
	if err := os.MkdirAll(docsDir, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Docs.ManifestPath = manifestPath
	cfg.Docs.Dir = docsDir

	module, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if module.Generator() == nil {
		t.Fatal("expected a generator")
	}
	if module.Library() == nil {
		t.Fatal("expected a library")
	}
	if module.Manifest().Title != "Motion Core" {
		t.Fatalf("unexpected manifest title %q", module.Manifest().Title)
	}

	document, err := module.Generator().LLMSDocument("https://motion-core.dev")
	if err != nil {
		t.Fatalf("LLMSDocument: %v", err)
	}
	if document == "" {
		t.Fatal("expected a rendered document")
	}
}

func TestNewAppliesCacheConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Dir = t.TempDir()
	cfg.Cache.RegistryTTL = time.Second
	cfg.Cache.AssetTTL = time.Minute

	module, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	info := module.Cache().Info()
	if info.Path != cfg.Cache.Dir {
		t.Fatalf("expected cache rooted at %s, got %s", cfg.Cache.Dir, info.Path)
	}
	if info.RegistryTTL != time.Second || info.AssetTTL != time.Minute {
		t.Fatalf("configured TTLs not applied: %+v", info)
	}
}

func TestPublishedManifestsMirrorUpstreamAssets(t *testing.T) {
	manifest, err := json.Marshal(registry.Registry{
		Name:    "motion-core",
		Version: "0.4.0",
		Components: map[string]registry.ComponentRecord{
			"glass-pane": {Name: "Glass Pane"},
		},
	})
	if err != nil {
		t.Fatalf("marshal registry: %v", err)
	}
	assets, err := json.Marshal(map[string]string{
		"glass-pane/GlassPane.svelte": base64.StdEncoding.EncodeToString([]byte("tilt")),
	})
	if err != nil {
		t.Fatalf("marshal assets: %v", err)
	}

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/registry.json":
			w.Write(manifest)
		case "/components.json":
			w.Write(assets)
		default:
			http.NotFound(w, r)
		}
	}))
	defer upstream.Close()

	cfg := DefaultConfig()
	cfg.Registry.URL = upstream.URL
	cfg.Cache.Dir = t.TempDir()

	module, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	published, err := module.publishedManifests(context.Background())
	if err != nil {
		t.Fatalf("publishedManifests: %v", err)
	}
	if published == nil {
		t.Fatal("expected a published mirror with the upstream reachable")
	}
	if len(published.registry.Components) != 1 {
		t.Fatalf("expected 1 mirrored component, got %d", len(published.registry.Components))
	}
	if len(published.assets) != 1 {
		t.Fatalf("expected 1 mirrored asset, got %d", len(published.assets))
	}
}
