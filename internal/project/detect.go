package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/motioncore/motioncore/internal/pkgmanager"
)

var (
	ErrPackageRead  = errors.New("project: failed to read package.json")
	ErrPackageParse = errors.New("project: failed to parse package.json")
)

// Framework identifies the Svelte tooling flavour of a workspace.
type Framework string

const (
	SvelteKit        Framework = "sveltekit"
	ViteSvelte       Framework = "vite-svelte"
	UnknownFramework Framework = "unknown"
)

// Detection summarizes what the workspace's package.json reveals about its
// framework and the toolkit's version requirements.
type Detection struct {
	Framework         Framework
	SvelteVersion     string
	SvelteSupported   bool
	TailwindVersion   string
	TailwindSupported bool
}

var lockfiles = []struct {
	name    string
	manager pkgmanager.Manager
}{
	{"pnpm-lock.yaml", pkgmanager.Pnpm},
	{"yarn.lock", pkgmanager.Yarn},
	{"bun.lockb", pkgmanager.Bun},
	{"bun.lock", pkgmanager.Bun},
	{"package-lock.json", pkgmanager.Npm},
}

// DetectPackageManager walks from root up to the filesystem root looking for
// a lockfile. Monorepos keep lockfiles above the app directory, hence the
// upward walk.
func DetectPackageManager(root string) pkgmanager.Manager {
	current := root
	for {
		for _, lockfile := range lockfiles {
			if _, err := os.Stat(filepath.Join(current, lockfile.name)); err == nil {
				return lockfile.manager
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return pkgmanager.Unknown
		}
		current = parent
	}
}

type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func (p packageJSON) get(name string) (string, bool) {
	if version, ok := p.Dependencies[name]; ok {
		return version, true
	}
	version, ok := p.DevDependencies[name]
	return version, ok
}

// DetectFramework reads root's package.json and classifies the workspace.
// Svelte 5 and Tailwind 4 are the minimum versions the components target.
func DetectFramework(root string) (Detection, error) {
	raw, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return Detection{}, fmt.Errorf("%w: %v", ErrPackageRead, err)
	}
	var pkg packageJSON
	if err := json.Unmarshal(raw, &pkg); err != nil {
		return Detection{}, fmt.Errorf("%w: %v", ErrPackageParse, err)
	}

	framework := UnknownFramework
	if _, ok := pkg.get("@sveltejs/kit"); ok {
		framework = SvelteKit
	} else if _, ok := pkg.get("@sveltejs/vite-plugin-svelte"); ok {
		framework = ViteSvelte
	} else if _, ok := pkg.get("@sveltejs/adapter-auto"); ok {
		framework = ViteSvelte
	}

	detection := Detection{Framework: framework}
	if version, ok := pkg.get("svelte"); ok {
		detection.SvelteVersion = version
		if major, ok := ParseMajor(version); ok {
			detection.SvelteSupported = major >= 5
		}
	}
	if version, ok := pkg.get("tailwindcss"); ok {
		detection.TailwindVersion = version
		if major, ok := ParseMajor(version); ok {
			detection.TailwindSupported = major >= 4
		}
	}
	return detection, nil
}
