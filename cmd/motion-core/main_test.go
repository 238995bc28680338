package main

import (
	"testing"

	"github.com/motioncore/motioncore/internal/registry"
)

func TestEnvTruthy(t *testing.T) {
	cases := map[string]bool{
		"":      false,
		"0":     false,
		"false": false,
		"no":    false,
		"1":     true,
		"true":  true,
		"yes":   true,
	}
	for value, want := range cases {
		t.Setenv("MOTION_CORE_TEST_FLAG", value)
		if got := envTruthy("MOTION_CORE_TEST_FLAG"); got != want {
			t.Errorf("envTruthy(%q) = %v, want %v", value, got, want)
		}
	}
}

func TestApplyVerb(t *testing.T) {
	if got := applyVerb("Created", false); got != "Created" {
		t.Errorf("got %q", got)
	}
	if got := applyVerb("Created", true); got != "Would create" {
		t.Errorf("got %q", got)
	}
	if got := applyVerb("Updated", true); got != "Would update" {
		t.Errorf("got %q", got)
	}
}

func TestRelativeToWorkspace(t *testing.T) {
	root := t.TempDir()
	if got := relativeToWorkspace(root, root+"/src/lib/components/glass-pane/GlassPane.svelte"); got != "src/lib/components/glass-pane/GlassPane.svelte" {
		t.Errorf("got %q", got)
	}
	if got := relativeToWorkspace(root, "/somewhere/else.ts"); got != "/somewhere/else.ts" {
		t.Errorf("paths outside the workspace stay absolute, got %q", got)
	}
}

func TestGroupByCategory(t *testing.T) {
	components := []registry.Component{
		{Slug: "aurora-text", Record: registry.ComponentRecord{Name: "Aurora Text", Category: "text"}},
		{Slug: "glass-pane", Record: registry.ComponentRecord{Name: "Glass Pane", Category: "surfaces"}},
		{Slug: "logo-carousel", Record: registry.ComponentRecord{Name: "Logo Carousel"}},
		{Slug: "shiny-text", Record: registry.ComponentRecord{Name: "Shiny Text", Category: "text"}},
	}

	groups := groupByCategory(components)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].name != "other" || groups[1].name != "surfaces" || groups[2].name != "text" {
		t.Fatalf("unexpected group order: %q %q %q", groups[0].name, groups[1].name, groups[2].name)
	}
	if len(groups[2].components) != 2 {
		t.Fatalf("expected 2 text components, got %d", len(groups[2].components))
	}
}
