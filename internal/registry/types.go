package registry

// Registry is the top-level manifest served at registry.json. It describes the
// component catalog plus the base dependencies every consuming project needs.
type Registry struct {
	Name                string                     `json:"name"`
	Version             string                     `json:"version"`
	Description         string                     `json:"description,omitempty"`
	BaseDependencies    map[string]string          `json:"baseDependencies,omitempty"`
	BaseDevDependencies map[string]string          `json:"baseDevDependencies,omitempty"`
	Components          map[string]ComponentRecord `json:"components"`
}

// ComponentRecord describes a single installable component: its display
// metadata, the files to copy into a workspace, and the npm packages it needs.
type ComponentRecord struct {
	Name                 string                `json:"name"`
	Description          string                `json:"description,omitempty"`
	Category             string                `json:"category,omitempty"`
	Preview              *ComponentPreview     `json:"preview,omitempty"`
	Files                []ComponentFileRecord `json:"files,omitempty"`
	Dependencies         map[string]string     `json:"dependencies,omitempty"`
	DevDependencies      map[string]string     `json:"devDependencies,omitempty"`
	InternalDependencies []string              `json:"internalDependencies,omitempty"`
}

// ComponentFileRecord locates one source file inside the component asset
// manifest and declares where it lands in a consuming workspace.
type ComponentFileRecord struct {
	Path        string   `json:"path"`
	Target      string   `json:"target,omitempty"`
	Kind        string   `json:"kind,omitempty"`
	TypeExports []string `json:"typeExports,omitempty"`
}

// ComponentPreview references the demo media shown on the docs site.
type ComponentPreview struct {
	Video  string `json:"video,omitempty"`
	Poster string `json:"poster,omitempty"`
}

// Component pairs a catalog slug with its record for ordered listings.
type Component struct {
	Slug   string
	Record ComponentRecord
}

// Summary condenses registry metadata for CLI listings.
type Summary struct {
	Name           string
	Version        string
	Description    string
	ComponentCount int
}

// BaseDependencies groups the registry-wide runtime and dev requirements.
type BaseDependencies struct {
	Dependencies    map[string]string
	DevDependencies map[string]string
}
