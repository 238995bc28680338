package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/motioncore/motioncore/internal/cache"
	"github.com/motioncore/motioncore/internal/registry"
)

const (
	// TokenRegistryPath is the registry asset holding the design tokens
	// appended to the workspace's Tailwind stylesheet.
	TokenRegistryPath = "tokens/motion-core.css"

	// TokenSentinel marks a stylesheet that already carries the tokens.
	TokenSentinel = "@utility card-highlight"

	helperRegistryPath = "utils/cn.ts"
)

var ErrTokensEmpty = errors.New("workspace: tailwind token payload is empty")

// HelperDownloadError reports a registry helper that could not be fetched,
// not even from the stale cache.
type HelperDownloadError struct {
	Path  string
	Cause error
}

func (e *HelperDownloadError) Error() string {
	return fmt.Sprintf("workspace: failed to download helper %s: %v", e.Path, e.Cause)
}

func (e *HelperDownloadError) Unwrap() error { return e.Cause }

// ScaffoldReport lists what scaffolding created, or would create in dry-run
// mode.
type ScaffoldReport struct {
	Directories []string
	Files       []string
}

// Any reports whether scaffolding had anything to do.
func (r ScaffoldReport) Any() bool {
	return len(r.Directories) > 0 || len(r.Files) > 0
}

// Scaffold creates the component, helper, utils and asset directories plus
// the cn.ts helper. Existing paths are left untouched; in dry-run mode the
// report reflects what would change without touching the filesystem.
func Scaffold(ctx context.Context, root string, config Config, client *registry.Client, store *cache.Store, dryRun bool) (ScaffoldReport, error) {
	var report ScaffoldReport

	dirs := []string{
		config.Aliases.Components.Filesystem,
		config.Aliases.Helpers.Filesystem,
		config.Aliases.Utils.Filesystem,
		config.Aliases.Assets.Filesystem,
	}
	for _, configured := range dirs {
		target := Path(root, configured)
		created, err := ensureDirectory(target, dryRun)
		if err != nil {
			return ScaffoldReport{}, err
		}
		if created {
			report.Directories = append(report.Directories, relativeDisplay(root, target))
		}
	}

	helperPath := filepath.Join(Path(root, config.Aliases.Utils.Filesystem), "cn.ts")
	if _, err := os.Stat(helperPath); err == nil {
		return report, nil
	}
	if dryRun {
		report.Files = append(report.Files, relativeDisplay(root, helperPath))
		return report, nil
	}

	helper, err := fetchHelper(ctx, client, store)
	if err != nil {
		return ScaffoldReport{}, err
	}
	created, err := writeFileIfMissing(helperPath, helper)
	if err != nil {
		return ScaffoldReport{}, err
	}
	if created {
		report.Files = append(report.Files, relativeDisplay(root, helperPath))
	}
	return report, nil
}

// fetchHelper pulls cn.ts from the registry, recovering through the stale
// component manifest cache when the network is down.
func fetchHelper(ctx context.Context, client *registry.Client, store *cache.Store) ([]byte, error) {
	helper, primaryErr := client.FetchComponentFile(ctx, helperRegistryPath)
	if primaryErr == nil {
		return helper, nil
	}

	if store != nil && client.BaseURL() != "" {
		scoped := store.Scoped(client.BaseURL())
		if entry, ok := scoped.ComponentsManifest(true); ok {
			var manifest map[string]string
			if err := json.Unmarshal(entry.Bytes, &manifest); err == nil {
				client.PreloadAssetManifest(manifest)
				if helper, err := client.FetchComponentFile(ctx, helperRegistryPath); err == nil {
					return helper, nil
				}
			}
		}
	}
	return nil, &HelperDownloadError{Path: helperRegistryPath, Cause: primaryErr}
}

func ensureDirectory(path string, dryRun bool) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if dryRun {
		return true, nil
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return false, fmt.Errorf("workspace: create directory %s: %w", path, err)
	}
	return true, nil
}

func writeFileIfMissing(path string, contents []byte) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("workspace: create directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return false, fmt.Errorf("workspace: write file %s: %w", path, err)
	}
	return true, nil
}
