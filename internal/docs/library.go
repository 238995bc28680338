package docs

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"

	"github.com/motioncore/motioncore/pkg/interfaces"
)

// Library serves documentation bodies by slug from a content directory of
// {slug}.md files. Lookups are gated by the manifest, so registry data can
// never address files outside the catalog.
type Library struct {
	dir      string
	manifest Manifest
	parser   interfaces.MarkdownParser
}

// NewLibrary builds a Library over the given directory. A nil parser falls
// back to a default goldmark configuration.
func NewLibrary(dir string, manifest Manifest, parser interfaces.MarkdownParser) *Library {
	if parser == nil {
		parser = NewGoldmarkParser(interfaces.ParseOptions{})
	}
	return &Library{dir: dir, manifest: manifest, parser: parser}
}

// Raw returns the Markdown body for a slug with any frontmatter stripped.
func (l *Library) Raw(target string) ([]byte, error) {
	source, err := l.read(target)
	if err != nil {
		return nil, err
	}
	var discard struct{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &discard)
	if err != nil {
		return nil, fmt.Errorf("docs: parse frontmatter for %s: %w", target, err)
	}
	return body, nil
}

// Render returns the HTML rendering of a slug's Markdown body.
func (l *Library) Render(target string) ([]byte, error) {
	body, err := l.Raw(target)
	if err != nil {
		return nil, err
	}
	return l.parser.Parse(body)
}

func (l *Library) read(target string) ([]byte, error) {
	if !slug.IsValid(target) || !l.manifest.Contains(target) {
		return nil, &DocNotFoundError{Slug: target}
	}
	source, err := os.ReadFile(filepath.Join(l.dir, target+".md"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &DocNotFoundError{Slug: target}
		}
		return nil, fmt.Errorf("docs: read document %s: %w", target, err)
	}
	return source, nil
}
