package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/motioncore/motioncore/internal/pkgmanager"
	"github.com/motioncore/motioncore/internal/project"
)

// DependencyActionKind classifies how a dependency requirement was handled.
type DependencyActionKind int

const (
	// DependencyAlreadyInstalled means package.json already satisfies every
	// requirement.
	DependencyAlreadyInstalled DependencyActionKind = iota
	// DependencyInstalled means the package manager installed the listed
	// packages.
	DependencyInstalled
	// DependencyManual means no supported package manager was detected and
	// the listed packages must be installed by hand.
	DependencyManual
	// DependencyDryRun means the listed packages would have been installed.
	DependencyDryRun
	// DependencySkipped means the check could not run; Note explains why.
	DependencySkipped
)

// DependencyAction reports the outcome of reconciling one dependency set.
type DependencyAction struct {
	Kind     DependencyActionKind
	Packages []string
	Note     string
}

// Changed reports whether the action mutated the workspace.
func (a DependencyAction) Changed() bool {
	return a.Kind == DependencyInstalled
}

// packageSnapshot is the dependency view of a workspace package.json.
type packageSnapshot struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func loadPackageSnapshot(root string) (packageSnapshot, error) {
	var snapshot packageSnapshot
	raw, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return snapshot, fmt.Errorf("failed to read package.json: %w", err)
	}
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return snapshot, fmt.Errorf("failed to parse package.json for dependency analysis: %w", err)
	}
	return snapshot, nil
}

func (s packageSnapshot) spec(name string) string {
	if value, ok := s.Dependencies[name]; ok {
		return value
	}
	return s.DevDependencies[name]
}

// diffDependencies returns the name@version specs that package.json does not
// satisfy, sorted by package name.
func diffDependencies(requirements map[string]string, snapshot packageSnapshot) []string {
	names := make([]string, 0, len(requirements))
	for name := range requirements {
		names = append(names, name)
	}
	sort.Strings(names)

	var missing []string
	for _, name := range names {
		version := requirements[name]
		if !project.SpecSatisfies(snapshot.spec(name), version) {
			missing = append(missing, fmt.Sprintf("%s@%s", name, version))
		}
	}
	return missing
}

// handleDependencies reconciles one dependency set against the workspace,
// installing what is missing unless the run is dry or the manager is unknown.
func handleDependencies(ctx context.Context, requirements map[string]string, snapshot packageSnapshot, manager pkgmanager.Manager, root string, dryRun, dev bool) (DependencyAction, error) {
	missing := diffDependencies(requirements, snapshot)
	if len(missing) == 0 {
		return DependencyAction{Kind: DependencyAlreadyInstalled}, nil
	}

	if !manager.Supported() {
		return DependencyAction{Kind: DependencyManual, Packages: missing}, nil
	}

	if dryRun {
		return DependencyAction{Kind: DependencyDryRun, Packages: missing}, nil
	}

	plan := pkgmanager.NewInstallPlan(manager)
	plan.Dev = dev
	plan.AddPackages(missing...)
	if err := plan.Run(ctx, root); err != nil {
		return DependencyAction{}, fmt.Errorf("failed to install dependencies: %w", err)
	}
	return DependencyAction{Kind: DependencyInstalled, Packages: missing}, nil
}
