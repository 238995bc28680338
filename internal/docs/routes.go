package docs

import (
	"fmt"
	"net/url"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

const routeGroup = "docs"

// docRoutes builds absolute links for one request origin. A fresh instance is
// cheap enough to construct per request, which keeps generation stateless.
type docRoutes struct {
	group *urlkit.Group
}

// newDocRoutes validates the origin and prepares the route group against it.
// A malformed origin yields a structured error rather than a panic, since the
// value ultimately comes from request headers.
func newDocRoutes(origin string) (*docRoutes, error) {
	base, err := normalizeOrigin(origin)
	if err != nil {
		return nil, err
	}

	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    routeGroup,
				BaseURL: base,
				Paths: map[string]string{
					"home":    "/",
					"doc":     "/docs/:slug",
					"raw":     "/docs/raw/:slug",
					"sitemap": "/sitemap.xml",
				},
			},
		},
	})

	group, err := lookupGroup(manager, routeGroup)
	if err != nil {
		return nil, err
	}
	return &docRoutes{group: group}, nil
}

func (r *docRoutes) docURL(slug string) (string, error) {
	return r.build("doc", map[string]any{"slug": slug})
}

func (r *docRoutes) rawURL(slug string) (string, error) {
	return r.build("raw", map[string]any{"slug": slug})
}

func (r *docRoutes) sitemapURL() (string, error) {
	return r.build("sitemap", nil)
}

func (r *docRoutes) homeURL() (string, error) {
	return r.build("home", nil)
}

func (r *docRoutes) build(route string, params map[string]any) (string, error) {
	builder, err := safeBuilder(r.group, route)
	if err != nil {
		return "", err
	}
	for key, val := range params {
		builder.WithParam(key, val)
	}
	link, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("docs: build %s link: %w", route, err)
	}
	return link, nil
}

// normalizeOrigin requires an absolute http(s) URL with a host and no path or
// query, returning it without a trailing slash.
func normalizeOrigin(origin string) (string, error) {
	trimmed := strings.TrimSpace(origin)
	if trimmed == "" {
		return "", &InvalidOriginError{Origin: origin}
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", &InvalidOriginError{Origin: origin}
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", &InvalidOriginError{Origin: origin}
	}
	if parsed.RawQuery != "" || parsed.Fragment != "" {
		return "", &InvalidOriginError{Origin: origin}
	}
	if parsed.Path != "" && parsed.Path != "/" {
		return "", &InvalidOriginError{Origin: origin}
	}
	return parsed.Scheme + "://" + parsed.Host, nil
}

// go-urlkit panics on unknown groups and routes; recover into errors so a bad
// route table never takes a request down.
func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("docs: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("docs: route group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("docs: route %q not found", route)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}
