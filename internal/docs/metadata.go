package docs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
)

// Metadata carries optional title/description overrides for a doc route.
type Metadata struct {
	Title       string
	Description string
}

// MetadataResolver looks up metadata overrides keyed by route path, e.g.
// "/docs/glass-pane". Absence is an expected outcome, not a failure.
type MetadataResolver interface {
	Lookup(path string) (Metadata, bool)
}

// StaticMetadata is an in-memory MetadataResolver.
type StaticMetadata map[string]Metadata

// Lookup implements MetadataResolver.
func (s StaticMetadata) Lookup(path string) (Metadata, bool) {
	meta, ok := s[path]
	return meta, ok
}

type sidecarEnvelope struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// LoadSidecarMetadata builds a resolver from the frontmatter of the Markdown
// files in dir. Each {slug}.md contributes overrides for "/docs/{slug}".
// Files without frontmatter contribute nothing.
func LoadSidecarMetadata(dir string) (StaticMetadata, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("docs: read metadata dir: %w", err)
	}

	resolved := StaticMetadata{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		source, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("docs: read metadata file %s: %w", entry.Name(), err)
		}
		var meta sidecarEnvelope
		if _, err := frontmatter.Parse(bytes.NewReader(source), &meta); err != nil {
			return nil, fmt.Errorf("docs: parse frontmatter in %s: %w", entry.Name(), err)
		}
		if meta.Title == "" && meta.Description == "" {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), ".md")
		resolved["/docs/"+slug] = Metadata{
			Title:       meta.Title,
			Description: meta.Description,
		}
	}
	return resolved, nil
}
