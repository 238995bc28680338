package workspace

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/motioncore/motioncore/internal/registry"
)

// ExportSpec is one default export to surface through the barrel file.
type ExportSpec struct {
	ExportName string
	EntryPath  string
}

// TypeExportSpec surfaces named type exports from a component's types file.
type TypeExportSpec struct {
	ExportNames []string
	EntryPath   string
}

// ResolveComponentDestination maps a registry file record to its workspace
// location. The record's category prefix is stripped and the target selects
// which alias directory receives the file.
func ResolveComponentDestination(root string, config Config, file registry.ComponentFileRecord) string {
	relative := SanitizeRelativePath(stripCategory(file.Path))

	var base string
	switch file.Target {
	case "helper", "helpers":
		base = config.Aliases.Helpers.Filesystem
	case "utils":
		base = config.Aliases.Utils.Filesystem
	case "asset", "assets":
		base = config.Aliases.Assets.Filesystem
	case "root":
		base = ""
	default:
		base = config.Aliases.Components.Filesystem
	}

	return filepath.Join(Path(root, base), filepath.FromSlash(relative))
}

// RenderComponentBarrel merges new component and type exports into the
// existing barrel contents. It returns the rewritten barrel, or "" and false
// when nothing changed. Lines are keyed by export name and emitted sorted so
// repeated runs are stable.
func RenderComponentBarrel(root string, config Config, components []ExportSpec, typeExports []TypeExportSpec, existing string) (string, bool) {
	if len(components) == 0 && len(typeExports) == 0 {
		return "", false
	}

	exports := parseExportMap(existing)
	modified := false

	barrelPath := Path(root, config.Exports.Components.Barrel)
	barrelDir := filepath.Dir(barrelPath)

	for _, component := range components {
		importPath, ok := computeImportPath(root, barrelDir, config.Aliases.Components.Filesystem, component.EntryPath)
		if !ok {
			continue
		}
		line := fmt.Sprintf("export { default as %s } from %q;", component.ExportName, importPath)
		if exports.components[component.ExportName] != line {
			exports.components[component.ExportName] = line
			modified = true
		}
	}

	for _, typeExport := range typeExports {
		importPath, ok := computeImportPath(root, barrelDir, config.Aliases.Components.Filesystem, typeExport.EntryPath)
		if !ok {
			continue
		}
		for _, name := range typeExport.ExportNames {
			if name == "" {
				continue
			}
			line := fmt.Sprintf("export type { %s } from %q;", name, importPath)
			if exports.types[name] != line {
				exports.types[name] = line
				modified = true
			}
		}
	}

	if !modified || exports.isEmpty() {
		return "", false
	}
	return exports.render(), true
}

func stripCategory(path string) string {
	first, rest, found := strings.Cut(path, "/")
	if !found {
		return path
	}
	switch first {
	case "components", "helpers", "utils", "assets":
		return rest
	}
	return path
}

// computeImportPath prefers a path relative to the components root, falling
// back to a path relative to the barrel's directory.
func computeImportPath(root, barrelDir, componentsBase, entryPath string) (string, bool) {
	componentsRoot := Path(root, componentsBase)
	if rel, err := filepath.Rel(componentsRoot, entryPath); err == nil && !strings.HasPrefix(rel, "..") {
		return "./" + filepath.ToSlash(rel), true
	}

	rel, err := filepath.Rel(barrelDir, entryPath)
	if err != nil {
		return "", false
	}
	slashed := filepath.ToSlash(rel)
	if !strings.HasPrefix(slashed, ".") {
		slashed = "./" + slashed
	}
	return slashed, true
}

type barrelExports struct {
	components map[string]string
	types      map[string]string
}

func (b barrelExports) isEmpty() bool {
	return len(b.components) == 0 && len(b.types) == 0
}

func (b barrelExports) render() string {
	var builder strings.Builder
	for _, name := range sortedKeys(b.components) {
		builder.WriteString(b.components[name])
		builder.WriteByte('\n')
	}
	for _, name := range sortedKeys(b.types) {
		builder.WriteString(b.types[name])
		builder.WriteByte('\n')
	}
	return builder.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// parseExportMap collects the export lines of an existing barrel into maps
// keyed by export name, so merges replace rather than duplicate.
func parseExportMap(contents string) barrelExports {
	exports := barrelExports{
		components: map[string]string{},
		types:      map[string]string{},
	}
	for _, line := range strings.Split(contents, "\n") {
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, "export { default as "); ok {
			name, remainder, found := strings.Cut(rest, " } from ")
			if !found {
				continue
			}
			cleaned := cleanModuleSpecifier(remainder)
			name = strings.TrimSpace(name)
			exports.components[name] = fmt.Sprintf("export { default as %s } from %q;", name, cleaned)
		} else if rest, ok := strings.CutPrefix(trimmed, "export type {"); ok {
			names, remainder, found := strings.Cut(rest, "} from ")
			if !found {
				continue
			}
			cleaned := cleanModuleSpecifier(remainder)
			for _, name := range strings.Split(names, ",") {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				exports.types[name] = fmt.Sprintf("export type { %s } from %q;", name, cleaned)
			}
		}
	}
	return exports
}

func cleanModuleSpecifier(remainder string) string {
	cleaned := strings.TrimSpace(remainder)
	cleaned = strings.TrimPrefix(cleaned, `"`)
	cleaned = strings.TrimSuffix(cleaned, `";`)
	return cleaned
}
