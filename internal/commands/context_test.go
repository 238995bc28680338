package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/motioncore/motioncore/internal/cache"
	"github.com/motioncore/motioncore/internal/registry"
	"github.com/motioncore/motioncore/internal/workspace"
)

func TestContextExposesFields(t *testing.T) {
	store := cache.FromPath(filepath.Join(t.TempDir(), "cache"))
	client := registry.NewClient("https://registry.motion-core.dev")

	cctx := NewContext("/workspace", "/workspace/motion-core.json", client, store)

	if cctx.WorkspaceRoot() != "/workspace" {
		t.Fatalf("unexpected workspace root %q", cctx.WorkspaceRoot())
	}
	if cctx.ConfigPath() != "/workspace/motion-core.json" {
		t.Fatalf("unexpected config path %q", cctx.ConfigPath())
	}
	if cctx.Registry().BaseURL() != "https://registry.motion-core.dev" {
		t.Fatalf("unexpected base URL %q", cctx.Registry().BaseURL())
	}
	if cctx.CacheStore() != store {
		t.Fatal("expected the provided cache store")
	}
	if cctx.Logger() == nil {
		t.Fatal("logger must never be nil")
	}
}

func TestLocateConfigFindsInParent(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, workspace.ConfigFileName)
	if err := os.WriteFile(configPath, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "apps", "web", "src")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	foundRoot, foundConfig := locateConfig(nested)

	if resolved, err := filepath.EvalSymlinks(foundRoot); err == nil {
		foundRoot = resolved
	}
	wantRoot := root
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		wantRoot = resolved
	}
	if foundRoot != wantRoot {
		t.Fatalf("expected root %q, got %q", wantRoot, foundRoot)
	}
	if filepath.Base(foundConfig) != workspace.ConfigFileName {
		t.Fatalf("unexpected config path %q", foundConfig)
	}
}

func TestLocateConfigFallsBackToStart(t *testing.T) {
	start := t.TempDir()

	foundRoot, foundConfig := locateConfig(start)

	if foundRoot != start {
		t.Fatalf("expected fallback root %q, got %q", start, foundRoot)
	}
	if foundConfig != filepath.Join(start, workspace.ConfigFileName) {
		t.Fatalf("unexpected config path %q", foundConfig)
	}
}
