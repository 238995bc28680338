package docs

import (
	"encoding/json"
	"fmt"
	"os"
)

type manifestFile struct {
	Title          string          `json:"title"`
	Summary        string          `json:"summary,omitempty"`
	Paragraphs     []string        `json:"paragraphs,omitempty"`
	GettingStarted []manifestEntry `json:"gettingStarted,omitempty"`
	Components     []manifestEntry `json:"components,omitempty"`
	Optional       []manifestLink  `json:"optional,omitempty"`
}

type manifestEntry struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type manifestLink struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// LoadManifest reads and validates a documentation catalog from a JSON file.
func LoadManifest(path string) (Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	var file manifestFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	manifest := Manifest{
		Title:      file.Title,
		Summary:    file.Summary,
		Paragraphs: file.Paragraphs,
	}
	for _, entry := range file.GettingStarted {
		manifest.GettingStarted = append(manifest.GettingStarted, Entry{Slug: entry.Slug, Name: entry.Name})
	}
	for _, entry := range file.Components {
		manifest.Components = append(manifest.Components, Entry{Slug: entry.Slug, Name: entry.Name})
	}
	for _, link := range file.Optional {
		manifest.Optional = append(manifest.Optional, Link{Title: link.Title, URL: link.URL, Description: link.Description})
	}
	return NewManifest(manifest)
}
