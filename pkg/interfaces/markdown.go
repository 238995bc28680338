package interfaces

// MarkdownParser converts Markdown source into rendered HTML.
type MarkdownParser interface {
	Parse(markdown []byte) ([]byte, error)
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions tunes Markdown rendering behaviour per invocation.
type ParseOptions struct {
	// Extensions selects named goldmark extensions (gfm, table, strikethrough,
	// linkify, tasklist). Unknown names are ignored.
	Extensions []string
	// HardWraps renders soft line breaks as <br> elements.
	HardWraps bool
	// SafeMode suppresses raw HTML passthrough in the rendered output.
	SafeMode bool
}
