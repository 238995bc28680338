package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/motioncore/motioncore/internal/pkgmanager"
	"github.com/motioncore/motioncore/internal/project"
	"github.com/motioncore/motioncore/internal/registry"
	"github.com/motioncore/motioncore/internal/workspace"
)

// PlannedFileStatus classifies what applying a planned file would do.
type PlannedFileStatus int

const (
	// PlannedCreate means the destination does not exist yet.
	PlannedCreate PlannedFileStatus = iota
	// PlannedUpdate means the destination exists with different contents.
	PlannedUpdate
	// PlannedUnchanged means the destination already matches the registry.
	PlannedUnchanged
)

// FileStatus records what applying a planned file actually did.
type FileStatus int

const (
	// FileCreated means a new file was written.
	FileCreated FileStatus = iota
	// FileUpdated means an existing file was overwritten.
	FileUpdated
	// FileUnchanged means the file already matched and was left alone.
	FileUnchanged
	// FileSkipped means the caller deselected the file before applying.
	FileSkipped
)

// PlannedFile is one registry asset scheduled to land in the workspace. Apply
// defaults to true; callers can flip it off to deselect conflicting files.
type PlannedFile struct {
	ComponentName string
	RegistryPath  string
	Destination   string
	Contents      []byte
	Existing      []byte
	Status        PlannedFileStatus
	Apply         bool
}

// FileApplyReport pairs a destination with what happened to it.
type FileApplyReport struct {
	Destination   string
	ComponentName string
	Status        FileStatus
}

// AddPlan is the fully resolved picture of an add run: every file to write,
// every export to register, and every npm package still missing. Plans are
// side-effect free until Apply.
type AddPlan struct {
	ID                     uuid.UUID
	Config                 workspace.Config
	ConfigPath             string
	WorkspaceRoot          string
	RequestedComponents    []string
	ComponentMap           map[string]registry.ComponentRecord
	InstallOrder           []string
	PlannedFiles           []PlannedFile
	InstalledComponents    []workspace.ExportSpec
	RegisteredTypeExports  []workspace.TypeExportSpec
	RuntimeRequirements    map[string]string
	DevRequirements        map[string]string
	BarrelPath             string
	ExistingBarrel         string
	PackageManager         pkgmanager.Manager
	MissingEntryComponents []string

	snapshot packageSnapshot
}

// ApplyOutcome summarises what Apply changed.
type ApplyOutcome struct {
	Files          []FileApplyReport
	ExportsUpdated bool
	Runtime        DependencyAction
	Dev            DependencyAction
}

// PlanAdd resolves the requested component slugs, their internal dependency
// closure, and everything installing them would touch. The registry is the
// only thing contacted; the workspace is read but never written.
func PlanAdd(ctx context.Context, cctx *CommandContext, components []string) (*AddPlan, error) {
	config, exists, err := cctx.LoadConfig()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &MissingConfigError{Path: cctx.ConfigPath()}
	}

	catalog, err := cctx.Registry().ListComponents(ctx)
	if err != nil {
		return nil, err
	}
	componentMap := make(map[string]registry.ComponentRecord, len(catalog))
	for _, entry := range catalog {
		componentMap[entry.Slug] = entry.Record
	}

	installOrder, err := resolveInstallOrder(components, componentMap)
	if err != nil {
		return nil, err
	}

	root := cctx.WorkspaceRoot()
	manager := project.DetectPackageManager(root)
	snapshot, err := loadPackageSnapshot(root)
	if err != nil {
		return nil, err
	}

	plan := &AddPlan{
		ID:                  uuid.New(),
		Config:              config,
		ConfigPath:          cctx.ConfigPath(),
		WorkspaceRoot:       root,
		RequestedComponents: append([]string(nil), components...),
		ComponentMap:        componentMap,
		InstallOrder:        installOrder,
		RuntimeRequirements: map[string]string{},
		DevRequirements:     map[string]string{},
		PackageManager:      manager,
		snapshot:            snapshot,
	}

	for _, slug := range installOrder {
		record, ok := componentMap[slug]
		if !ok {
			return nil, &ComponentNotFoundError{Slug: slug}
		}

		for name, version := range record.Dependencies {
			plan.RuntimeRequirements[name] = version
		}
		for name, version := range record.DevDependencies {
			plan.DevRequirements[name] = version
		}

		var entryPaths []string
		fallbackEntry := ""

		for _, file := range record.Files {
			contents, err := cctx.Registry().FetchComponentFile(ctx, file.Path)
			if err != nil {
				return nil, err
			}
			destination := workspace.ResolveComponentDestination(root, config, file)

			var existing []byte
			status := PlannedCreate
			if current, err := os.ReadFile(destination); err == nil {
				existing = current
				if bytes.Equal(current, contents) {
					status = PlannedUnchanged
				} else {
					status = PlannedUpdate
				}
			} else if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read %s: %w", destination, err)
			}

			plan.PlannedFiles = append(plan.PlannedFiles, PlannedFile{
				ComponentName: record.Name,
				RegistryPath:  file.Path,
				Destination:   destination,
				Contents:      contents,
				Existing:      existing,
				Status:        status,
				Apply:         true,
			})

			if isEntryFile(file) {
				entryPaths = append(entryPaths, destination)
			}
			if fallbackEntry == "" && isSvelteFile(file) {
				fallbackEntry = destination
			}
			if len(file.TypeExports) > 0 {
				plan.RegisteredTypeExports = append(plan.RegisteredTypeExports, workspace.TypeExportSpec{
					ExportNames: append([]string(nil), file.TypeExports...),
					EntryPath:   destination,
				})
			}
		}

		if len(entryPaths) == 0 && fallbackEntry != "" {
			entryPaths = append(entryPaths, fallbackEntry)
		}
		if len(entryPaths) == 0 {
			plan.MissingEntryComponents = append(plan.MissingEntryComponents, record.Name)
			continue
		}

		for idx, entry := range entryPaths {
			plan.InstalledComponents = append(plan.InstalledComponents, workspace.ExportSpec{
				ExportName: entryExportName(slug, entry, idx),
				EntryPath:  entry,
			})
		}
	}

	plan.BarrelPath = workspace.Path(root, plan.Config.Exports.Components.Barrel)
	if raw, err := os.ReadFile(plan.BarrelPath); err == nil {
		plan.ExistingBarrel = string(raw)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", plan.BarrelPath, err)
	}

	cctx.Logger().Debug("add.plan.resolved",
		"plan_id", plan.ID.String(),
		"components", strings.Join(plan.InstallOrder, ","),
		"files", len(plan.PlannedFiles),
	)

	return plan, nil
}

// Apply writes the planned files, regenerates the barrel, and installs
// whatever npm packages are still missing. Dry runs report the same statuses
// without touching the workspace.
func (p *AddPlan) Apply(ctx context.Context, dryRun bool) (ApplyOutcome, error) {
	var outcome ApplyOutcome

	for _, file := range p.PlannedFiles {
		status := FileSkipped
		if file.Apply {
			written, err := writeComponentFile(file.Destination, file.Contents, dryRun)
			if err != nil {
				return outcome, err
			}
			status = written
		}
		outcome.Files = append(outcome.Files, FileApplyReport{
			Destination:   file.Destination,
			ComponentName: file.ComponentName,
			Status:        status,
		})
	}

	if rendered, modified := workspace.RenderComponentBarrel(
		p.WorkspaceRoot, p.Config, p.InstalledComponents, p.RegisteredTypeExports, p.ExistingBarrel,
	); modified {
		outcome.ExportsUpdated = true
		if !dryRun {
			if err := os.MkdirAll(filepath.Dir(p.BarrelPath), 0o755); err != nil {
				return outcome, fmt.Errorf("failed to create %s: %w", filepath.Dir(p.BarrelPath), err)
			}
			if err := os.WriteFile(p.BarrelPath, []byte(rendered), 0o644); err != nil {
				return outcome, fmt.Errorf("failed to write %s: %w", p.BarrelPath, err)
			}
		}
	}

	runtime, err := handleDependencies(ctx, p.RuntimeRequirements, p.snapshot, p.PackageManager, p.WorkspaceRoot, dryRun, false)
	if err != nil {
		return outcome, err
	}
	outcome.Runtime = runtime

	dev, err := handleDependencies(ctx, p.DevRequirements, p.snapshot, p.PackageManager, p.WorkspaceRoot, dryRun, true)
	if err != nil {
		return outcome, err
	}
	outcome.Dev = dev

	return outcome, nil
}

// resolveInstallOrder expands the requested slugs through their
// internalDependencies closure and returns the result in slug order.
func resolveInstallOrder(requested []string, components map[string]registry.ComponentRecord) ([]string, error) {
	resolved := map[string]bool{}
	queue := append([]string(nil), requested...)

	for len(queue) > 0 {
		slug := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		if _, ok := components[slug]; !ok {
			return nil, &ComponentNotFoundError{Slug: slug}
		}
		if resolved[slug] {
			continue
		}
		resolved[slug] = true
		for _, dep := range components[slug].InternalDependencies {
			if !resolved[dep] {
				queue = append(queue, dep)
			}
		}
	}

	order := make([]string, 0, len(resolved))
	for slug := range resolved {
		order = append(order, slug)
	}
	sort.Strings(order)
	return order, nil
}

func writeComponentFile(path string, contents []byte, dryRun bool) (FileStatus, error) {
	if !dryRun {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return FileUnchanged, fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
		}
	}

	existing, err := os.ReadFile(path)
	existed := err == nil
	if err != nil && !os.IsNotExist(err) {
		return FileUnchanged, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if existed && bytes.Equal(existing, contents) {
		return FileUnchanged, nil
	}

	if dryRun {
		if existed {
			return FileUpdated, nil
		}
		return FileCreated, nil
	}

	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return FileUnchanged, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if existed {
		return FileUpdated, nil
	}
	return FileCreated, nil
}

func isEntryFile(file registry.ComponentFileRecord) bool {
	return file.Kind == "entry"
}

func isSvelteFile(file registry.ComponentFileRecord) bool {
	name := file.Path
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.HasSuffix(name, ".svelte")
}

// entryExportName picks the barrel export name for a component entry. The
// first entry takes the slug; additional entries take their file stem.
func entryExportName(slug, entryPath string, index int) string {
	if index == 0 {
		return formatExportName(slug)
	}
	stem := filepath.Base(entryPath)
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	if stem == "" {
		return formatExportName(fmt.Sprintf("%s_%d", slug, index))
	}
	return formatExportName(stem)
}

// formatExportName turns an identifier like "glass-pane" into "GlassPane".
func formatExportName(identifier string) string {
	var b strings.Builder
	segments := strings.FieldsFunc(identifier, func(r rune) bool {
		return !isASCIIAlphanumeric(r)
	})
	for _, segment := range segments {
		b.WriteString(strings.ToUpper(segment[:1]))
		b.WriteString(segment[1:])
	}
	return b.String()
}

func isASCIIAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
