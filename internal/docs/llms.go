package docs

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/motioncore/motioncore/internal/logging"
	"github.com/motioncore/motioncore/pkg/interfaces"
)

// Generator produces the plain-text documents served at llms.txt, robots.txt
// and sitemap.xml. Generation is a pure function of the manifest and the
// request origin, so equal inputs always yield byte-identical output.
type Generator struct {
	manifest Manifest
	resolver MetadataResolver
	logger   interfaces.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithMetadataResolver layers title/description overrides on top of the
// manifest defaults.
func WithMetadataResolver(resolver MetadataResolver) GeneratorOption {
	return func(g *Generator) {
		if resolver != nil {
			g.resolver = resolver
		}
	}
}

// WithGeneratorLogger attaches a logger.
func WithGeneratorLogger(logger interfaces.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator builds a generator over an already validated manifest.
func NewGenerator(manifest Manifest, opts ...GeneratorOption) *Generator {
	generator := &Generator{
		manifest: manifest,
		resolver: StaticMetadata{},
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(generator)
	}
	return generator
}

// LLMSDocument assembles the llms.txt body for the given origin.
func (g *Generator) LLMSDocument(origin string) (string, error) {
	routes, err := newDocRoutes(origin)
	if err != nil {
		return "", err
	}

	gettingStarted, err := g.buildDocEntries(routes, g.manifest.GettingStarted)
	if err != nil {
		return "", err
	}
	components, err := g.buildDocEntries(routes, g.manifest.Components)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, 16+len(gettingStarted)+len(components)+len(g.manifest.Optional))
	lines = append(lines, "# "+g.manifest.Title, "")
	if g.manifest.Summary != "" {
		lines = append(lines, "> "+g.manifest.Summary, "")
	}
	for _, paragraph := range g.manifest.Paragraphs {
		lines = append(lines, paragraph, "")
	}
	lines = append(lines, buildSection("Getting Started", gettingStarted)...)
	lines = append(lines, "")
	lines = append(lines, buildSection("Component Demos", components)...)
	lines = append(lines, "")
	lines = append(lines, buildOptionalSection(buildLinkEntries(g.manifest.Optional))...)

	return finalizeDocument(strings.Join(lines, "\n")), nil
}

// RobotsDocument emits the crawl directives plus a sitemap pointer for the
// given origin.
func (g *Generator) RobotsDocument(origin string) (string, error) {
	routes, err := newDocRoutes(origin)
	if err != nil {
		return "", err
	}
	sitemap, err := routes.sitemapURL()
	if err != nil {
		return "", err
	}
	return "User-agent: *\nAllow: /\nSitemap: " + sitemap + "\n", nil
}

// SitemapDocument renders the XML urlset covering the home page and every
// documentation route, sorted by location.
func (g *Generator) SitemapDocument(origin string) (string, error) {
	routes, err := newDocRoutes(origin)
	if err != nil {
		return "", err
	}

	locations := make([]string, 0, len(g.manifest.Slugs())+1)
	home, err := routes.homeURL()
	if err != nil {
		return "", err
	}
	locations = append(locations, home)
	for _, slug := range g.manifest.Slugs() {
		location, err := routes.docURL(slug)
		if err != nil {
			return "", err
		}
		locations = append(locations, location)
	}
	return buildURLSet(locations), nil
}

func (g *Generator) buildDocEntries(routes *docRoutes, entries []Entry) ([]string, error) {
	items := make([]string, 0, len(entries))
	for _, entry := range entries {
		item, err := g.buildDocEntry(routes, entry)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// buildDocEntry renders one catalog line. Titles and descriptions come from
// the metadata overrides when present, otherwise from the manifest name and a
// templated default.
func (g *Generator) buildDocEntry(routes *docRoutes, entry Entry) (string, error) {
	title := entry.Name
	description := ""
	if meta, ok := g.resolver.Lookup("/docs/" + entry.Slug); ok {
		if meta.Title != "" {
			title = meta.Title
		}
		description = meta.Description
	}
	if description == "" {
		description = fmt.Sprintf("Documentation for %s component.", title)
	}

	link, err := routes.rawURL(entry.Slug)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("- [%s](%s): %s", title, link, description), nil
}

// buildSection omits empty sections entirely so no bare header ever appears.
func buildSection(title string, items []string) []string {
	if len(items) == 0 {
		return nil
	}
	section := make([]string, 0, len(items)+2)
	section = append(section, "## "+title, "")
	section = append(section, items...)
	return section
}

func buildOptionalSection(items []string) []string {
	return buildSection("Optional", items)
}

func buildLinkEntries(links []Link) []string {
	items := make([]string, 0, len(links))
	for _, link := range links {
		if link.Description != "" {
			items = append(items, fmt.Sprintf("- [%s](%s): %s", link.Title, link.URL, link.Description))
			continue
		}
		items = append(items, fmt.Sprintf("- [%s](%s)", link.Title, link.URL))
	}
	return items
}

var newlineRuns = regexp.MustCompile(`\n{3,}`)

// finalizeDocument collapses runs of three or more newlines down to two,
// trims surrounding whitespace, and guarantees exactly one trailing newline.
func finalizeDocument(document string) string {
	collapsed := newlineRuns.ReplaceAllString(document, "\n\n")
	return strings.TrimSpace(collapsed) + "\n"
}
