package commands

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/motioncore/motioncore/internal/cache"
	"github.com/motioncore/motioncore/internal/registry"
	"github.com/motioncore/motioncore/internal/workspace"
)

const glassPaneSource = "<script>let { children } = $props();</script>\n"

func catalogRegistry() registry.Registry {
	return registry.Registry{
		Name:    "Motion Core",
		Version: "0.1.0",
		Components: map[string]registry.ComponentRecord{
			"glass-pane": {
				Name: "Glass Pane",
				Files: []registry.ComponentFileRecord{
					{
						Path:        "components/glass-pane/GlassPane.svelte",
						Kind:        "entry",
						TypeExports: []string{"GlassPaneProps"},
					},
				},
				Dependencies:         map[string]string{"clsx": "^2.0.0"},
				InternalDependencies: []string{"aurora-text"},
			},
			"aurora-text": {
				Name: "Aurora Text",
				Files: []registry.ComponentFileRecord{
					{Path: "components/aurora-text/AuroraText.svelte", Kind: "entry"},
				},
			},
			"no-entry": {
				Name: "No Entry",
				Files: []registry.ComponentFileRecord{
					{Path: "helpers/no-entry/helper.ts", Target: "helper"},
				},
			},
		},
	}
}

func catalogAssets() map[string]string {
	encode := base64.StdEncoding.EncodeToString
	return map[string]string{
		"components/glass-pane/GlassPane.svelte":   encode([]byte(glassPaneSource)),
		"components/aurora-text/AuroraText.svelte": encode([]byte("<span></span>\n")),
		"helpers/no-entry/helper.ts":               encode([]byte("export const noop = () => {};\n")),
	}
}

func testAddContext(t *testing.T) *CommandContext {
	t.Helper()
	root := t.TempDir()

	configPath := filepath.Join(root, workspace.ConfigFileName)
	if err := workspace.SaveConfig(configPath, workspace.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	packageJSON := `{"dependencies":{"svelte":"^5.0.0"}}`
	if err := os.WriteFile(filepath.Join(root, "package.json"), []byte(packageJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	client := registry.NewStaticClient(catalogRegistry())
	client.PreloadAssetManifest(catalogAssets())
	store := cache.FromPath(filepath.Join(root, ".cache"))

	return NewContext(root, configPath, client, store)
}

func TestPlanAddResolvesInternalDependencies(t *testing.T) {
	cctx := testAddContext(t)

	plan, err := PlanAdd(context.Background(), cctx, []string{"glass-pane"})
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}

	want := []string{"aurora-text", "glass-pane"}
	if len(plan.InstallOrder) != len(want) {
		t.Fatalf("expected install order %v, got %v", want, plan.InstallOrder)
	}
	for i, slug := range want {
		if plan.InstallOrder[i] != slug {
			t.Fatalf("expected install order %v, got %v", want, plan.InstallOrder)
		}
	}

	if len(plan.PlannedFiles) != 2 {
		t.Fatalf("expected 2 planned files, got %d", len(plan.PlannedFiles))
	}
	for _, file := range plan.PlannedFiles {
		if file.Status != PlannedCreate {
			t.Fatalf("expected create status for %s, got %v", file.Destination, file.Status)
		}
		if !file.Apply {
			t.Fatalf("planned files default to apply")
		}
	}

	if plan.RuntimeRequirements["clsx"] != "^2.0.0" {
		t.Fatalf("expected clsx requirement, got %v", plan.RuntimeRequirements)
	}
	if len(plan.RegisteredTypeExports) != 1 || plan.RegisteredTypeExports[0].ExportNames[0] != "GlassPaneProps" {
		t.Fatalf("unexpected type exports %v", plan.RegisteredTypeExports)
	}
}

func TestPlanAddRequiresConfig(t *testing.T) {
	root := t.TempDir()
	client := registry.NewStaticClient(catalogRegistry())
	store := cache.FromPath(filepath.Join(root, ".cache"))
	cctx := NewContext(root, filepath.Join(root, workspace.ConfigFileName), client, store)

	_, err := PlanAdd(context.Background(), cctx, []string{"glass-pane"})

	if !errors.Is(err, ErrMissingConfig) {
		t.Fatalf("expected ErrMissingConfig, got %v", err)
	}
	var missing *MissingConfigError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingConfigError, got %T", err)
	}
}

func TestPlanAddRejectsUnknownComponents(t *testing.T) {
	cctx := testAddContext(t)

	_, err := PlanAdd(context.Background(), cctx, []string{"does-not-exist"})

	var notFound *ComponentNotFoundError
	if !errors.As(err, &notFound) || notFound.Slug != "does-not-exist" {
		t.Fatalf("expected ComponentNotFoundError for does-not-exist, got %v", err)
	}
}

func TestApplyWritesFilesAndBarrel(t *testing.T) {
	cctx := testAddContext(t)

	plan, err := PlanAdd(context.Background(), cctx, []string{"glass-pane"})
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	outcome, err := plan.Apply(context.Background(), false)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	for _, file := range outcome.Files {
		if file.Status != FileCreated {
			t.Fatalf("expected created status for %s, got %v", file.Destination, file.Status)
		}
		if _, err := os.Stat(file.Destination); err != nil {
			t.Fatalf("file %s not written: %v", file.Destination, err)
		}
	}

	if !outcome.ExportsUpdated {
		t.Fatal("expected exports update")
	}
	barrel, err := os.ReadFile(plan.BarrelPath)
	if err != nil {
		t.Fatalf("barrel not written: %v", err)
	}
	for _, want := range []string{"GlassPane", "AuroraText", "GlassPaneProps"} {
		if !strings.Contains(string(barrel), want) {
			t.Fatalf("barrel missing %s:\n%s", want, barrel)
		}
	}

	// No package manager lockfile exists, so missing deps become manual.
	if outcome.Runtime.Kind != DependencyManual {
		t.Fatalf("expected manual runtime action, got %v", outcome.Runtime)
	}
	if outcome.Runtime.Packages[0] != "clsx@^2.0.0" {
		t.Fatalf("unexpected packages %v", outcome.Runtime.Packages)
	}
	if outcome.Dev.Kind != DependencyAlreadyInstalled {
		t.Fatalf("expected no dev installs, got %v", outcome.Dev)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	cctx := testAddContext(t)

	plan, err := PlanAdd(context.Background(), cctx, []string{"glass-pane"})
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	if _, err := plan.Apply(context.Background(), false); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}

	rerun, err := PlanAdd(context.Background(), cctx, []string{"glass-pane"})
	if err != nil {
		t.Fatalf("second plan failed: %v", err)
	}
	for _, file := range rerun.PlannedFiles {
		if file.Status != PlannedUnchanged {
			t.Fatalf("expected unchanged status for %s, got %v", file.Destination, file.Status)
		}
	}
	outcome, err := rerun.Apply(context.Background(), false)
	if err != nil {
		t.Fatalf("second apply failed: %v", err)
	}
	for _, file := range outcome.Files {
		if file.Status != FileUnchanged {
			t.Fatalf("expected unchanged apply for %s, got %v", file.Destination, file.Status)
		}
	}
	if outcome.ExportsUpdated {
		t.Fatal("barrel should not change on rerun")
	}
}

func TestApplyDryRunLeavesWorkspaceUntouched(t *testing.T) {
	cctx := testAddContext(t)

	plan, err := PlanAdd(context.Background(), cctx, []string{"glass-pane"})
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	outcome, err := plan.Apply(context.Background(), true)
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}

	for _, file := range outcome.Files {
		if file.Status != FileCreated {
			t.Fatalf("dry run should report create, got %v", file.Status)
		}
		if _, err := os.Stat(file.Destination); !os.IsNotExist(err) {
			t.Fatalf("dry run wrote %s", file.Destination)
		}
	}
	if _, err := os.Stat(plan.BarrelPath); !os.IsNotExist(err) {
		t.Fatal("dry run wrote the barrel")
	}
	if outcome.Runtime.Kind != DependencyManual {
		t.Fatalf("dry run with unknown manager reports manual, got %v", outcome.Runtime)
	}
}

func TestApplySkipsDeselectedFiles(t *testing.T) {
	cctx := testAddContext(t)

	// Seed a conflicting destination so the plan marks it as an update.
	plan, err := PlanAdd(context.Background(), cctx, []string{"glass-pane"})
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	target := plan.PlannedFiles[0].Destination
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("local changes\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	plan, err = PlanAdd(context.Background(), cctx, []string{"glass-pane"})
	if err != nil {
		t.Fatalf("replan failed: %v", err)
	}
	for i := range plan.PlannedFiles {
		if plan.PlannedFiles[i].Status == PlannedUpdate {
			plan.PlannedFiles[i].Apply = false
		}
	}

	outcome, err := plan.Apply(context.Background(), false)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	skipped := false
	for _, file := range outcome.Files {
		if file.Destination == target {
			skipped = file.Status == FileSkipped
		}
	}
	if !skipped {
		t.Fatal("deselected file was not skipped")
	}
	contents, err := os.ReadFile(target)
	if err != nil || string(contents) != "local changes\n" {
		t.Fatalf("local changes were clobbered: %q, %v", contents, err)
	}
}

func TestPlanAddReportsMissingEntries(t *testing.T) {
	cctx := testAddContext(t)

	plan, err := PlanAdd(context.Background(), cctx, []string{"no-entry"})
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}

	if len(plan.MissingEntryComponents) != 1 || plan.MissingEntryComponents[0] != "No Entry" {
		t.Fatalf("expected No Entry flagged, got %v", plan.MissingEntryComponents)
	}
	if len(plan.InstalledComponents) != 0 {
		t.Fatalf("components without entries must not export, got %v", plan.InstalledComponents)
	}
}

func TestFormatExportName(t *testing.T) {
	cases := map[string]string{
		"glass-pane":    "GlassPane",
		"aurora_text":   "AuroraText",
		"logo carousel": "LogoCarousel",
		"3d-card":       "3dCard",
		"--":            "",
	}
	for input, want := range cases {
		if got := formatExportName(input); got != want {
			t.Errorf("formatExportName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestEntryExportName(t *testing.T) {
	if got := entryExportName("glass-pane", "/x/GlassPane.svelte", 0); got != "GlassPane" {
		t.Fatalf("first entry takes the slug, got %q", got)
	}
	if got := entryExportName("glass-pane", "/x/PaneOverlay.svelte", 1); got != "PaneOverlay" {
		t.Fatalf("later entries take their stem, got %q", got)
	}
}
