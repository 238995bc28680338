package docs

import (
	"fmt"
	"sort"
	"strings"
)

// buildURLSet renders a sitemap urlset over the given locations. Duplicates
// are dropped and the result is sorted so output stays deterministic.
func buildURLSet(locations []string) string {
	unique := make([]string, 0, len(locations))
	seen := map[string]struct{}{}
	for _, location := range locations {
		if _, ok := seen[location]; ok {
			continue
		}
		seen[location] = struct{}{}
		unique = append(unique, location)
	}
	sort.Strings(unique)

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, location := range unique {
		builder.WriteString("  <url>\n")
		builder.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", location))
		builder.WriteString("  </url>\n")
	}
	builder.WriteString(`</urlset>` + "\n")
	return builder.String()
}
