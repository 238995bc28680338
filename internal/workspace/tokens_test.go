package workspace

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/motioncore/motioncore/internal/registry"
)

func registryWithAssets() *registry.Client {
	client := registry.NewStaticClient(registry.Registry{Name: "motion-core", Version: "0.4.0"})
	tokens := "@import \"tailwindcss\";\n\n" + TokenSentinel + " {\n    color: inherit;\n}\n"
	client.PreloadAssetManifest(map[string]string{
		"utils/cn.ts":     base64.StdEncoding.EncodeToString([]byte(`export function cn() { return ""; }`)),
		TokenRegistryPath: base64.StdEncoding.EncodeToString([]byte(tokens)),
	})
	return client
}

func TestSyncTailwindTokensUpdatesFile(t *testing.T) {
	root := t.TempDir()
	config := DefaultConfig()
	cssPath := filepath.Join(root, "src", "app.css")
	if err := os.MkdirAll(filepath.Dir(cssPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(cssPath, []byte("@import \"tailwindcss\";\n\nbody { color: inherit; }\n"), 0o644); err != nil {
		t.Fatalf("write css: %v", err)
	}

	status, err := SyncTailwindTokens(context.Background(), root, config, registryWithAssets(), false)
	if err != nil {
		t.Fatalf("SyncTailwindTokens: %v", err)
	}
	if status.State != TokenSyncUpdated || status.Target != "src/app.css" {
		t.Fatalf("unexpected status: %+v", status)
	}

	content, err := os.ReadFile(cssPath)
	if err != nil {
		t.Fatalf("read css: %v", err)
	}
	if !strings.Contains(string(content), TokenSentinel) {
		t.Fatalf("tokens missing from stylesheet:\n%s", content)
	}
	if strings.Count(string(content), "@import \"tailwindcss\";") != 1 {
		t.Fatalf("tailwind import duplicated:\n%s", content)
	}
	if !strings.Contains(string(content), "body { color: inherit; }") {
		t.Fatalf("existing rules lost:\n%s", content)
	}
}

func TestSyncTailwindTokensIsIdempotent(t *testing.T) {
	root := t.TempDir()
	config := DefaultConfig()
	cssPath := filepath.Join(root, "src", "app.css")
	if err := os.MkdirAll(filepath.Dir(cssPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(cssPath, []byte("@import \"tailwindcss\";\n"), 0o644); err != nil {
		t.Fatalf("write css: %v", err)
	}

	client := registryWithAssets()
	if _, err := SyncTailwindTokens(context.Background(), root, config, client, false); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	status, err := SyncTailwindTokens(context.Background(), root, config, client, false)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if status.State != TokenSyncAlreadyPresent {
		t.Fatalf("expected already-present, got %+v", status)
	}
}

func TestSyncTailwindTokensHandlesMinifiedCSS(t *testing.T) {
	root := t.TempDir()
	config := DefaultConfig()
	config.Tailwind.CSS = "style.css"
	cssPath := filepath.Join(root, "style.css")
	if err := os.WriteFile(cssPath, []byte("@import \"tailwindcss\";body{color:red}"), 0o644); err != nil {
		t.Fatalf("write css: %v", err)
	}

	status, err := SyncTailwindTokens(context.Background(), root, config, registryWithAssets(), false)
	if err != nil {
		t.Fatalf("SyncTailwindTokens: %v", err)
	}
	if status.State != TokenSyncUpdated {
		t.Fatalf("expected updated, got %+v", status)
	}

	content, err := os.ReadFile(cssPath)
	if err != nil {
		t.Fatalf("read css: %v", err)
	}
	if !strings.Contains(string(content), TokenSentinel) || !strings.Contains(string(content), "body{color:red}") {
		t.Fatalf("unexpected stylesheet:\n%s", content)
	}
}

func TestSyncTailwindTokensPreservesCRLF(t *testing.T) {
	root := t.TempDir()
	config := DefaultConfig()
	config.Tailwind.CSS = "style.css"
	cssPath := filepath.Join(root, "style.css")
	if err := os.WriteFile(cssPath, []byte("@import \"tailwindcss\";\r\n\r\nbody {}\r\n"), 0o644); err != nil {
		t.Fatalf("write css: %v", err)
	}

	if _, err := SyncTailwindTokens(context.Background(), root, config, registryWithAssets(), false); err != nil {
		t.Fatalf("SyncTailwindTokens: %v", err)
	}
	content, err := os.ReadFile(cssPath)
	if err != nil {
		t.Fatalf("read css: %v", err)
	}
	if !strings.Contains(string(content), TokenSentinel+" {\r\n") && !strings.Contains(string(content), "\r\n") {
		t.Fatalf("CRLF convention lost:\n%q", content)
	}
}

func TestSyncTailwindTokensMissingStates(t *testing.T) {
	root := t.TempDir()
	client := registryWithAssets()

	config := DefaultConfig()
	config.Tailwind.CSS = "   "
	status, err := SyncTailwindTokens(context.Background(), root, config, client, false)
	if err != nil || status.State != TokenSyncMissingConfig {
		t.Fatalf("expected missing-config, got %+v (%v)", status, err)
	}

	config = DefaultConfig()
	status, err = SyncTailwindTokens(context.Background(), root, config, client, false)
	if err != nil || status.State != TokenSyncMissingFile {
		t.Fatalf("expected missing-file, got %+v (%v)", status, err)
	}
}

func TestSyncTailwindTokensDryRun(t *testing.T) {
	root := t.TempDir()
	config := DefaultConfig()
	config.Tailwind.CSS = "style.css"
	original := "@import \"tailwindcss\";\n"
	cssPath := filepath.Join(root, "style.css")
	if err := os.WriteFile(cssPath, []byte(original), 0o644); err != nil {
		t.Fatalf("write css: %v", err)
	}

	status, err := SyncTailwindTokens(context.Background(), root, config, registryWithAssets(), true)
	if err != nil {
		t.Fatalf("SyncTailwindTokens: %v", err)
	}
	if status.State != TokenSyncDryRun {
		t.Fatalf("expected dry-run, got %+v", status)
	}
	content, _ := os.ReadFile(cssPath)
	if string(content) != original {
		t.Fatalf("dry run must not modify the stylesheet:\n%q", content)
	}
}

func TestFindImportInsertionIndex(t *testing.T) {
	cases := []struct {
		contents string
		want     int
	}{
		{"", 0},
		{"\n\n", 0},
		{"body {}", 0},
		{"@import 'a';", 12},
		{"@import 'a';\n", 13},
		{"code {}\n@import 'b';", 20},
	}
	for _, tc := range cases {
		if got := findImportInsertionIndex(tc.contents); got != tc.want {
			t.Fatalf("findImportInsertionIndex(%q) = %d, want %d", tc.contents, got, tc.want)
		}
	}
}

func TestSplitTokenBundleStripsBOM(t *testing.T) {
	imports, body := splitTokenBundle("\uFEFF@import \"tailwindcss\";\n.token {}\n")
	if imports != `@import "tailwindcss";` {
		t.Fatalf("unexpected import line %q", imports)
	}
	if strings.Contains(body, "\uFEFF") {
		t.Fatalf("byte order mark leaked into body %q", body)
	}
	if body != ".token {}\n" {
		t.Fatalf("unexpected body %q", body)
	}

	if _, body := splitTokenBundle("\uFEFF.token {}"); body != ".token {}" {
		t.Fatalf("expected mark stripped without imports, got %q", body)
	}
}
