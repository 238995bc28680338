package workspace

import (
	"path/filepath"
	"strings"
)

// SanitizeRelativePath strips traversal and absolute segments from a
// registry-supplied path so it can never escape the workspace root.
func SanitizeRelativePath(raw string) string {
	normalized := strings.ReplaceAll(raw, "\\", "/")
	segments := strings.Split(normalized, "/")

	kept := make([]string, 0, len(segments))
	for _, segment := range segments {
		switch segment {
		case "", ".", "..":
			continue
		}
		// Drop Windows drive prefixes like "C:".
		if strings.Contains(segment, ":") {
			continue
		}
		kept = append(kept, segment)
	}
	return strings.Join(kept, "/")
}

// Path resolves a configured relative path against the workspace root,
// sanitizing it first. An empty configured path yields the root itself.
func Path(root, configured string) string {
	relative := SanitizeRelativePath(configured)
	if relative == "" {
		return root
	}
	return filepath.Join(root, filepath.FromSlash(relative))
}

// relativeDisplay renders target relative to root for reports, falling back
// to the absolute path when target lies outside root.
func relativeDisplay(root, target string) string {
	rel, err := filepath.Rel(root, target)
	if err != nil || strings.HasPrefix(rel, "..") {
		return target
	}
	return filepath.ToSlash(rel)
}
