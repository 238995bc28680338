package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-slug"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// manifestSchema is the structural contract for registry.json. It guards the
// CLI against half-written manifests before any fields are trusted.
var manifestSchema = map[string]any{
	"type":     "object",
	"required": []any{"name", "version", "components"},
	"properties": map[string]any{
		"name":                map[string]any{"type": "string", "minLength": 1},
		"version":             map[string]any{"type": "string", "minLength": 1},
		"description":         map[string]any{"type": "string"},
		"baseDependencies":    dependencyMapSchema,
		"baseDevDependencies": dependencyMapSchema,
		"components": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":     "object",
				"required": []any{"name"},
				"properties": map[string]any{
					"name":        map[string]any{"type": "string", "minLength": 1},
					"description": map[string]any{"type": "string"},
					"category":    map[string]any{"type": "string"},
					"preview": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"video":  map[string]any{"type": "string"},
							"poster": map[string]any{"type": "string"},
						},
					},
					"files": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"path"},
							"properties": map[string]any{
								"path":        map[string]any{"type": "string", "minLength": 1},
								"target":      map[string]any{"type": "string"},
								"kind":        map[string]any{"type": "string"},
								"typeExports": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
							},
						},
					},
					"dependencies":         dependencyMapSchema,
					"devDependencies":      dependencyMapSchema,
					"internalDependencies": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
		},
	},
}

var dependencyMapSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": map[string]any{"type": "string"},
}

var compiledManifestSchema = mustCompileSchema(manifestSchema)

func mustCompileSchema(schema map[string]any) *jsonschema.Schema {
	encoded, err := json.Marshal(schema)
	if err != nil {
		panic(fmt.Sprintf("registry: encode manifest schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("registry.schema.json", bytes.NewReader(encoded)); err != nil {
		panic(fmt.Sprintf("registry: add manifest schema: %v", err))
	}
	compiled, err := compiler.Compile("registry.schema.json")
	if err != nil {
		panic(fmt.Sprintf("registry: compile manifest schema: %v", err))
	}
	return compiled
}

// ValidateManifest checks the raw registry manifest bytes against the JSON
// schema and verifies that every component key is a well-formed slug.
func ValidateManifest(raw []byte) error {
	var payload any
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}

	if err := compiledManifestSchema.Validate(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrManifestInvalid, err)
	}

	object, ok := payload.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: manifest is not an object", ErrManifestInvalid)
	}
	components, _ := object["components"].(map[string]any)
	invalid := make([]string, 0)
	for key := range components {
		if !slug.IsValid(key) {
			invalid = append(invalid, key)
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("%w: component slugs invalid: %s", ErrManifestInvalid, strings.Join(invalid, ", "))
	}
	return nil
}
