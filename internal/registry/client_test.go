package registry

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

	"github.com/motioncore/motioncore/internal/cache"
)

func sampleRegistry() Registry {
	return Registry{
		Name:        "motion-core",
		Version:     "0.4.0",
		Description: "Animated UI components",
		BaseDependencies: map[string]string{
			"motion": "^12.0.0",
		},
		BaseDevDependencies: map[string]string{
			"tailwindcss": "^4.0.0",
		},
		Components: map[string]ComponentRecord{
			"glass-pane": {
				Name:        "Glass Pane",
				Description: "Frosted glass surface",
				Files: []ComponentFileRecord{
					{Path: "glass-pane/GlassPane.svelte"},
				},
			},
			"aurora-text": {
				Name: "Aurora Text",
			},
		},
	}
}

func TestStaticClientListsComponentsSorted(t *testing.T) {
	client := NewStaticClient(sampleRegistry())

	components, err := client.ListComponents(context.Background())
	if err != nil {
		t.Fatalf("ListComponents: %v", err)
	}
	if len(components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(components))
	}
	if components[0].Slug != "aurora-text" || components[1].Slug != "glass-pane" {
		t.Fatalf("components not sorted by slug: %q, %q", components[0].Slug, components[1].Slug)
	}
	if components[1].Record.Name != "Glass Pane" {
		t.Fatalf("unexpected record name %q", components[1].Record.Name)
	}
}

func TestSummaryReportsMetadata(t *testing.T) {
	client := NewStaticClient(sampleRegistry())

	summary, err := client.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Name != "motion-core" || summary.Version != "0.4.0" {
		t.Fatalf("unexpected summary metadata: %+v", summary)
	}
	if summary.ComponentCount != 2 {
		t.Fatalf("expected component count 2, got %d", summary.ComponentCount)
	}
}

func TestReportsBaseDependencies(t *testing.T) {
	client := NewStaticClient(sampleRegistry())

	deps, err := client.BaseDependencies(context.Background())
	if err != nil {
		t.Fatalf("BaseDependencies: %v", err)
	}
	if deps.Dependencies["motion"] != "^12.0.0" {
		t.Fatalf("missing base dependency: %+v", deps.Dependencies)
	}
	if deps.DevDependencies["tailwindcss"] != "^4.0.0" {
		t.Fatalf("missing base dev dependency: %+v", deps.DevDependencies)
	}
}

func TestFetchesComponentFile(t *testing.T) {
	client := NewStaticClient(sampleRegistry())
	client.PreloadAssetManifest(map[string]string{
		"glass-pane/GlassPane.svelte": base64.StdEncoding.EncodeToString([]byte("<script>let tilt = 0;</script>")),
	})

	content, err := client.FetchComponentFile(context.Background(), "glass-pane/GlassPane.svelte")
	if err != nil {
		t.Fatalf("FetchComponentFile: %v", err)
	}
	if string(content) != "<script>let tilt = 0;</script>" {
		t.Fatalf("unexpected file content: %q", content)
	}
}

func TestRejectsInvalidBase64(t *testing.T) {
	client := NewStaticClient(sampleRegistry())
	client.PreloadAssetManifest(map[string]string{
		"glass-pane/GlassPane.svelte": "not-base64!!!",
	})

	_, err := client.FetchComponentFile(context.Background(), "glass-pane/GlassPane.svelte")
	if !errors.Is(err, ErrAssetDecode) {
		t.Fatalf("expected decode error, got %v", err)
	}
	var decodeErr *AssetDecodeError
	if !errors.As(err, &decodeErr) || decodeErr.Path != "glass-pane/GlassPane.svelte" {
		t.Fatalf("expected AssetDecodeError with path, got %v", err)
	}
}

func TestErrorsWhenAssetMissing(t *testing.T) {
	client := NewStaticClient(sampleRegistry())
	client.PreloadAssetManifest(map[string]string{})

	_, err := client.FetchComponentFile(context.Background(), "missing/Nope.svelte")
	if !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("expected asset-not-found error, got %v", err)
	}
	var notFound *AssetNotFoundError
	if !errors.As(err, &notFound) || notFound.Path != "missing/Nope.svelte" {
		t.Fatalf("expected AssetNotFoundError with path, got %v", err)
	}
}

func TestRemoteClientFetchesManifests(t *testing.T) {
	manifest, err := json.Marshal(sampleRegistry())
	if err != nil {
		t.Fatalf("marshal registry: %v", err)
	}
	assets, err := json.Marshal(map[string]string{
		"glass-pane/GlassPane.svelte": base64.StdEncoding.EncodeToString([]byte("tilt")),
	})
	if err != nil {
		t.Fatalf("marshal assets: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/registry.json":
			w.Write(manifest)
		case "/components.json":
			w.Write(assets)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	components, err := client.ListComponents(context.Background())
	if err != nil {
		t.Fatalf("ListComponents: %v", err)
	}
	if len(components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(components))
	}

	content, err := client.FetchComponentFile(context.Background(), "glass-pane/GlassPane.svelte")
	if err != nil {
		t.Fatalf("FetchComponentFile: %v", err)
	}
	if string(content) != "tilt" {
		t.Fatalf("unexpected file content: %q", content)
	}
}

func TestRemoteClientReturnsNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ListComponents(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRemoteClientRejectsInvalidManifest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"version": "1.0.0"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ListComponents(context.Background())
	if !errors.Is(err, ErrManifestInvalid) {
		t.Fatalf("expected schema validation error, got %v", err)
	}
}

func TestRemoteClientUsesFreshCache(t *testing.T) {
	manifest, err := json.Marshal(sampleRegistry())
	if err != nil {
		t.Fatalf("marshal registry: %v", err)
	}

	store := cache.FromPath(t.TempDir())
	scoped := store.Scoped("http://registry.test")
	scoped.WriteRegistryManifest(manifest)

	// No server behind this URL; a fresh cache hit must short-circuit.
	client := NewClient("http://registry.test", WithCache(scoped))
	summary, err := client.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Name != "motion-core" {
		t.Fatalf("unexpected summary from cache: %+v", summary)
	}
}

func TestRemoteClientFallsBackToStaleCache(t *testing.T) {
	manifest, err := json.Marshal(sampleRegistry())
	if err != nil {
		t.Fatalf("marshal registry: %v", err)
	}

	root := t.TempDir()
	store := cache.FromPath(root)
	scoped := store.Scoped("http://registry.test")
	scoped.WriteRegistryManifest(manifest)

	// Age the entry past the registry TTL but inside the stale ceiling.
	aged := time.Now().Add(-time.Hour)
	filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			os.Chtimes(path, aged, aged)
		}
		return nil
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, WithCache(scoped))
	summary, err := client.Summary(context.Background())
	if err != nil {
		t.Fatalf("expected stale fallback, got error: %v", err)
	}
	if summary.ComponentCount != 2 {
		t.Fatalf("unexpected summary from stale cache: %+v", summary)
	}
}

func TestRemoteClientErrorsWithoutCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ListComponents(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestValidateManifestRejectsBadSlugs(t *testing.T) {
	raw := []byte(`{
		"name": "motion-core",
		"version": "0.4.0",
		"components": {
			"Bad Slug": {"name": "Broken"}
		}
	}`)
	err := ValidateManifest(raw)
	if !errors.Is(err, ErrManifestInvalid) {
		t.Fatalf("expected invalid-manifest error, got %v", err)
	}
}

func TestAssetManifestExposesLoadedAssets(t *testing.T) {
	client := NewStaticClient(sampleRegistry())
	seeded := map[string]string{
		"glass-pane/GlassPane.svelte": base64.StdEncoding.EncodeToString([]byte("tilt")),
	}
	client.PreloadAssetManifest(seeded)

	manifest, err := client.AssetManifest(context.Background())
	if err != nil {
		t.Fatalf("AssetManifest: %v", err)
	}
	if len(manifest) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(manifest))
	}
	if manifest["glass-pane/GlassPane.svelte"] != seeded["glass-pane/GlassPane.svelte"] {
		t.Fatal("expected the seeded asset entry")
	}
}
