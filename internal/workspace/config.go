package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const (
	// ConfigFileName anchors a workspace; commands walk up from the current
	// directory until they find it.
	ConfigFileName = "motion-core.json"

	// ConfigSchemaURL is written into new config files for editor tooling.
	ConfigSchemaURL = "https://motion-core.dev/registry/schema/config-schema.json"
)

var (
	ErrConfigRead  = errors.New("workspace: failed to read config")
	ErrConfigParse = errors.New("workspace: failed to parse config")
	ErrConfigWrite = errors.New("workspace: failed to write config")
)

// Config is the per-workspace configuration stored in motion-core.json.
type Config struct {
	Schema        string        `json:"$schema,omitempty"`
	Tailwind      TailwindEntry `json:"tailwind"`
	Aliases       Aliases       `json:"aliases"`
	AliasPrefixes AliasPrefixes `json:"aliasPrefixes"`
	Exports       Exports       `json:"exports"`
}

// TailwindEntry locates the stylesheet that receives the design tokens.
type TailwindEntry struct {
	CSS string `json:"css"`
}

// Aliases maps each file category to a filesystem directory and the import
// path components reference it by.
type Aliases struct {
	Components AliasEntry `json:"components"`
	Helpers    AliasEntry `json:"helpers"`
	Utils      AliasEntry `json:"utils"`
	Assets     AliasEntry `json:"assets"`
}

// AliasEntry pairs a workspace-relative directory with its import alias.
type AliasEntry struct {
	Filesystem string `json:"filesystem"`
	Import     string `json:"import"`
}

// AliasPrefixes configures the import prefix used in generated code.
type AliasPrefixes struct {
	Components string `json:"components"`
}

// Exports configures barrel generation.
type Exports struct {
	Components ExportEntry `json:"components"`
}

// ExportEntry locates the barrel file and selects the export strategy.
// "named" is the only strategy currently supported.
type ExportEntry struct {
	Barrel   string `json:"barrel"`
	Strategy string `json:"strategy"`
}

// DefaultConfig returns the configuration written by `motion-core init` for a
// stock SvelteKit layout.
func DefaultConfig() Config {
	return Config{
		Schema: ConfigSchemaURL,
		Tailwind: TailwindEntry{
			CSS: "src/app.css",
		},
		Aliases: Aliases{
			Components: AliasEntry{Filesystem: "src/lib/motion-core", Import: "$lib/motion-core"},
			Helpers:    AliasEntry{Filesystem: "src/lib/motion-core/helpers", Import: "$lib/motion-core/helpers"},
			Utils:      AliasEntry{Filesystem: "src/lib/motion-core/utils", Import: "$lib/motion-core/utils"},
			Assets:     AliasEntry{Filesystem: "src/lib/motion-core/assets", Import: "$lib/motion-core/assets"},
		},
		AliasPrefixes: AliasPrefixes{
			Components: "$lib/motion-core",
		},
		Exports: Exports{
			Components: ExportEntry{
				Barrel:   "src/lib/motion-core/index.ts",
				Strategy: "named",
			},
		},
	}
}

// LoadConfig reads and parses a motion-core.json file.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w at %s: %v", ErrConfigRead, path, err)
	}
	var config Config
	if err := json.Unmarshal(raw, &config); err != nil {
		return Config{}, fmt.Errorf("%w at %s: %v", ErrConfigParse, path, err)
	}
	return config, nil
}

// TryLoadConfig loads the config when the file exists; a missing file is not
// an error.
func TryLoadConfig(path string) (Config, bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, false, nil
		}
		return Config{}, false, fmt.Errorf("%w at %s: %v", ErrConfigRead, path, err)
	}
	config, err := LoadConfig(path)
	if err != nil {
		return Config{}, false, err
	}
	return config, true, nil
}

// SaveConfig writes the config as indented JSON.
func SaveConfig(path string, config Config) error {
	encoded, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("%w at %s: %v", ErrConfigWrite, path, err)
	}
	if err := os.WriteFile(path, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("%w at %s: %v", ErrConfigWrite, path, err)
	}
	return nil
}
