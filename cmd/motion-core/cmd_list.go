package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/motioncore/motioncore/internal/commands"
	"github.com/motioncore/motioncore/internal/logging"
	"github.com/motioncore/motioncore/internal/registry"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the components available in the registry",
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Emit the catalog as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	cctx, err := newCommandContext()
	if err != nil {
		return err
	}

	var result commands.ListResult
	sink := func(r commands.ListResult) { result = r }

	handler := commands.NewListHandler(cctx, logging.CommandsLogger(provider), sink)
	if err := handler.Execute(cmd.Context(), commands.ListCommand{}); err != nil {
		return err
	}

	if listJSON {
		return renderListJSON(result)
	}
	renderListText(result)
	return nil
}

type listPayload struct {
	Name           string                 `json:"name"`
	Version        string                 `json:"version"`
	Description    string                 `json:"description,omitempty"`
	ComponentCount int                    `json:"componentCount"`
	Components     []listComponentPayload `json:"components"`
}

type listComponentPayload struct {
	Slug         string            `json:"slug"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	Category     string            `json:"category,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

func renderListJSON(result commands.ListResult) error {
	payload := listPayload{
		Name:           result.Summary.Name,
		Version:        result.Summary.Version,
		Description:    result.Summary.Description,
		ComponentCount: result.Summary.ComponentCount,
		Components:     make([]listComponentPayload, 0, len(result.Components)),
	}
	for _, component := range result.Components {
		payload.Components = append(payload.Components, listComponentPayload{
			Slug:         component.Slug,
			Name:         component.Record.Name,
			Description:  component.Record.Description,
			Category:     component.Record.Category,
			Dependencies: component.Record.Dependencies,
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func renderListText(result commands.ListResult) {
	title := result.Summary.Name
	if result.Summary.Version != "" {
		title = fmt.Sprintf("%s %s", title, result.Summary.Version)
	}
	reporter.Heading(title)
	if result.Summary.Description != "" {
		reporter.Detail(result.Summary.Description)
	}
	reporter.Blank()

	for _, category := range groupByCategory(result.Components) {
		reporter.Info(category.name)
		for _, component := range category.components {
			line := component.Slug
			if component.Record.Description != "" {
				line = fmt.Sprintf("%s: %s", component.Slug, component.Record.Description)
			}
			reporter.Detail(line)
		}
	}

	reporter.Blank()
	reporter.Detail(fmt.Sprintf("%d components. Install with `motion-core add <name>`.", result.Summary.ComponentCount))
}

type categoryGroup struct {
	name       string
	components []registry.Component
}

// groupByCategory buckets the already slug-sorted catalog into sorted
// category groups. Components without a category land under "other".
func groupByCategory(components []registry.Component) []categoryGroup {
	buckets := map[string][]registry.Component{}
	for _, component := range components {
		category := component.Record.Category
		if category == "" {
			category = "other"
		}
		buckets[category] = append(buckets[category], component)
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]categoryGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, categoryGroup{name: name, components: buckets[name]})
	}
	return groups
}
