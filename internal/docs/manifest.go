package docs

import (
	"fmt"

	"github.com/goliatone/go-slug"
)

// Entry identifies one documentation page. Name is the display fallback used
// when no metadata override exists for the entry's route.
type Entry struct {
	Slug string
	Name string
}

// Link is a fixed external reference rendered in the Optional section.
type Link struct {
	Title       string
	URL         string
	Description string
}

// Manifest is the immutable documentation catalog. It is populated once at
// startup and shared read-only across requests, so no locking is needed.
type Manifest struct {
	// Title is the first line of the generated document.
	Title string
	// Summary is rendered as a blockquote under the title.
	Summary string
	// Paragraphs are free-form description lines between the summary and the
	// first section.
	Paragraphs []string

	GettingStarted []Entry
	Components     []Entry

	// Optional links are fixed references, not derived from the entry lists.
	Optional []Link
}

// NewManifest validates the catalog: every slug must be well formed and
// unique within its list. Empty lists are fine, the matching section is
// simply omitted from generated documents.
func NewManifest(manifest Manifest) (Manifest, error) {
	if err := validateEntries("gettingStarted", manifest.GettingStarted); err != nil {
		return Manifest{}, err
	}
	if err := validateEntries("components", manifest.Components); err != nil {
		return Manifest{}, err
	}
	return manifest, nil
}

// Slugs returns every entry slug in manifest order, getting-started entries
// first. Used to enumerate doc routes for the sitemap.
func (m Manifest) Slugs() []string {
	slugs := make([]string, 0, len(m.GettingStarted)+len(m.Components))
	for _, entry := range m.GettingStarted {
		slugs = append(slugs, entry.Slug)
	}
	for _, entry := range m.Components {
		slugs = append(slugs, entry.Slug)
	}
	return slugs
}

// Contains reports whether any entry carries the given slug.
func (m Manifest) Contains(target string) bool {
	for _, entry := range m.GettingStarted {
		if entry.Slug == target {
			return true
		}
	}
	for _, entry := range m.Components {
		if entry.Slug == target {
			return true
		}
	}
	return false
}

func validateEntries(list string, entries []Entry) error {
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if !slug.IsValid(entry.Slug) {
			return fmt.Errorf("%w: %s entry has malformed slug %q", ErrInvalidManifest, list, entry.Slug)
		}
		if entry.Name == "" {
			return fmt.Errorf("%w: %s entry %q has no name", ErrInvalidManifest, list, entry.Slug)
		}
		if _, dup := seen[entry.Slug]; dup {
			return fmt.Errorf("%w: %s entry %q appears twice", ErrInvalidManifest, list, entry.Slug)
		}
		seen[entry.Slug] = struct{}{}
	}
	return nil
}
