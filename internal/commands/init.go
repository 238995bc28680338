package commands

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/motioncore/motioncore/internal/pkgmanager"
	"github.com/motioncore/motioncore/internal/project"
	"github.com/motioncore/motioncore/internal/workspace"
)

// InitOptions controls an init run.
type InitOptions struct {
	DryRun bool
}

// ConfigStateKind classifies what init did with motion-core.json.
type ConfigStateKind int

const (
	// ConfigAlreadyExists means the workspace was configured before init ran.
	ConfigAlreadyExists ConfigStateKind = iota
	// ConfigCreated means init wrote a fresh config.
	ConfigCreated
	// ConfigWouldCreate means a dry run stopped short of writing the config.
	ConfigWouldCreate
)

// ConfigState pairs the outcome with the config path it refers to.
type ConfigState struct {
	Kind ConfigStateKind
	Path string
}

// Changed reports whether init wrote a config file.
func (s ConfigState) Changed() bool { return s.Kind == ConfigCreated }

// InitWarningKind classifies non-fatal init findings.
type InitWarningKind int

const (
	// WarnTailwindUnsupported means Tailwind v4 was not detected.
	WarnTailwindUnsupported InitWarningKind = iota
	// WarnRegistryUnavailable means registry metadata could not be loaded and
	// base dependency installation was skipped.
	WarnRegistryUnavailable
)

// InitWarning is a non-fatal finding surfaced to the user after init.
type InitWarning struct {
	Kind   InitWarningKind
	Detail string
}

// BaseDependencyReport pairs the runtime and dev outcomes of the base
// dependency install.
type BaseDependencyReport struct {
	Runtime DependencyAction
	Dev     DependencyAction
}

// Changed reports whether either set installed anything.
func (r BaseDependencyReport) Changed() bool {
	return r.Runtime.Changed() || r.Dev.Changed()
}

// InitResult is the full picture of an init run for reporting.
type InitResult struct {
	Options        InitOptions
	Framework      project.Detection
	PackageManager pkgmanager.Manager
	ConfigState    ConfigState
	Scaffold       workspace.ScaffoldReport
	Dependencies   BaseDependencyReport
	TokensStatus   workspace.TokenSyncStatus
	Warnings       []InitWarning
}

// HasChanges reports whether init mutated the workspace. Dry runs never do.
func (r InitResult) HasChanges() bool {
	if r.Options.DryRun {
		return false
	}
	return r.ConfigState.Changed() ||
		r.Scaffold.Any() ||
		r.Dependencies.Changed() ||
		r.TokensStatus.State == workspace.TokenSyncUpdated
}

// Init prepares a workspace for motion-core components: it verifies the
// framework, writes motion-core.json, scaffolds the library directories,
// merges the design tokens, and installs the registry's base dependencies.
func Init(ctx context.Context, cctx *CommandContext, options InitOptions) (InitResult, error) {
	result := InitResult{Options: options}
	root := cctx.WorkspaceRoot()

	framework, err := project.DetectFramework(root)
	if err != nil {
		return result, err
	}
	result.Framework = framework
	if !framework.SvelteSupported {
		return result, &UnsupportedSvelteError{Found: framework.SvelteVersion}
	}
	if !framework.TailwindSupported {
		result.Warnings = append(result.Warnings, InitWarning{
			Kind:   WarnTailwindUnsupported,
			Detail: framework.TailwindVersion,
		})
	}

	result.PackageManager = project.DetectPackageManager(root)

	config := workspace.DefaultConfig()
	loaded, exists, err := cctx.LoadConfig()
	if err != nil {
		return result, err
	}
	switch {
	case exists:
		config = loaded
		result.ConfigState = ConfigState{Kind: ConfigAlreadyExists, Path: cctx.ConfigPath()}
	case options.DryRun:
		result.ConfigState = ConfigState{Kind: ConfigWouldCreate, Path: cctx.ConfigPath()}
	default:
		if css, err := locateTailwindCSS(root); err == nil && css != "" {
			config.Tailwind.CSS = css
		}
		if err := workspace.SaveConfig(cctx.ConfigPath(), config); err != nil {
			return result, err
		}
		result.ConfigState = ConfigState{Kind: ConfigCreated, Path: cctx.ConfigPath()}
	}

	scaffold, err := workspace.Scaffold(ctx, root, config, cctx.Registry(), cctx.CacheStore(), options.DryRun)
	if err != nil {
		return result, err
	}
	result.Scaffold = scaffold

	tokens, err := workspace.SyncTailwindTokens(ctx, root, config, cctx.Registry(), options.DryRun)
	if err != nil {
		return result, err
	}
	result.TokensStatus = tokens

	base, err := cctx.Registry().BaseDependencies(ctx)
	if err != nil {
		result.Warnings = append(result.Warnings, InitWarning{
			Kind:   WarnRegistryUnavailable,
			Detail: err.Error(),
		})
		skipped := DependencyAction{
			Kind: DependencySkipped,
			Note: "Registry metadata unavailable; skipping base dependency install.",
		}
		result.Dependencies = BaseDependencyReport{Runtime: skipped, Dev: skipped}
		return result, nil
	}

	runtime, err := installBaseDependencies(ctx, result.PackageManager, root, base.Dependencies, options.DryRun, false)
	if err != nil {
		return result, err
	}
	dev, err := installBaseDependencies(ctx, result.PackageManager, root, base.DevDependencies, options.DryRun, true)
	if err != nil {
		return result, err
	}
	result.Dependencies = BaseDependencyReport{Runtime: runtime, Dev: dev}

	return result, nil
}

func installBaseDependencies(ctx context.Context, manager pkgmanager.Manager, root string, requirements map[string]string, dryRun, dev bool) (DependencyAction, error) {
	if len(requirements) == 0 {
		return DependencyAction{Kind: DependencyAlreadyInstalled}, nil
	}

	snapshot, err := loadPackageSnapshot(root)
	if err != nil {
		return DependencyAction{
			Kind: DependencySkipped,
			Note: "unable to read package.json for dependency check: " + err.Error(),
		}, nil
	}

	return handleDependencies(ctx, requirements, snapshot, manager, root, dryRun, dev)
}

// locateTailwindCSS finds the shallowest stylesheet mentioning Tailwind so
// newly written configs point at the project's real entry stylesheet.
func locateTailwindCSS(root string) (string, error) {
	type match struct {
		depth int
		path  string
	}
	var matches []match

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			name := entry.Name()
			if path != root && (name == "node_modules" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".css" {
			return nil
		}
		contents, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !strings.Contains(string(contents), "@tailwind") && !strings.Contains(string(contents), "tailwindcss") {
			return nil
		}
		relative, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		matches = append(matches, match{
			depth: strings.Count(filepath.ToSlash(relative), "/"),
			path:  filepath.ToSlash(relative),
		})
		return nil
	})
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", nil
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].depth < matches[j].depth })
	return matches[0].path, nil
}
