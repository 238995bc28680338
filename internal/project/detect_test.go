package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/motioncore/motioncore/internal/pkgmanager"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDetectPackageManagerWalksUpwards(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package-lock.json"), "{}")
	nested := filepath.Join(root, "apps", "docs")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}

	if got := DetectPackageManager(nested); got != pkgmanager.Npm {
		t.Fatalf("expected npm, got %s", got)
	}
}

func TestDetectPackageManagerPrecedence(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package-lock.json"), "{}")
	writeFile(t, filepath.Join(root, "pnpm-lock.yaml"), "")

	if got := DetectPackageManager(root); got != pkgmanager.Pnpm {
		t.Fatalf("pnpm lockfile must win, got %s", got)
	}
}

func TestDetectPackageManagerMissingLockfiles(t *testing.T) {
	if got := DetectPackageManager(t.TempDir()); got != pkgmanager.Unknown {
		t.Fatalf("expected unknown, got %s", got)
	}
}

func TestDetectFrameworkAndVersions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
		"dependencies": {
			"svelte": "^5.0.0",
			"@sveltejs/kit": "latest"
		},
		"devDependencies": {
			"tailwindcss": "4.1.0"
		}
	}`)

	detection, err := DetectFramework(root)
	if err != nil {
		t.Fatalf("DetectFramework: %v", err)
	}
	if detection.Framework != SvelteKit {
		t.Fatalf("expected sveltekit, got %s", detection.Framework)
	}
	if !detection.SvelteSupported {
		t.Fatalf("svelte %q must be supported", detection.SvelteVersion)
	}
	if !detection.TailwindSupported {
		t.Fatalf("tailwind %q must be supported", detection.TailwindVersion)
	}
}

func TestDetectFrameworkViteSvelte(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
		"devDependencies": {
			"@sveltejs/vite-plugin-svelte": "^4.0.0",
			"svelte": "^4.2.0"
		}
	}`)

	detection, err := DetectFramework(root)
	if err != nil {
		t.Fatalf("DetectFramework: %v", err)
	}
	if detection.Framework != ViteSvelte {
		t.Fatalf("expected vite-svelte, got %s", detection.Framework)
	}
	if detection.SvelteSupported {
		t.Fatal("svelte 4 must not be supported")
	}
}

func TestDetectFrameworkMalformedPackageJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), "{ invalid json ...")

	if _, err := DetectFramework(root); !errors.Is(err, ErrPackageParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestDetectFrameworkMissingPackageJSON(t *testing.T) {
	if _, err := DetectFramework(t.TempDir()); !errors.Is(err, ErrPackageRead) {
		t.Fatalf("expected read error, got %v", err)
	}
}
