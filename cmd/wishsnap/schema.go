package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/phanxgames/wishheart"
)

func buildSchemas() map[string]*jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
		Mapper:         mapType,
	}

	script := reflector.Reflect(new(wishheart.Script))
	script.Title = "Wishheart Script"
	script.Description = "Input and screenshot steps replayed against a headless scene."

	presets := reflector.Reflect(new(wishheart.Presets))
	presets.Title = "Wishheart Presets"
	presets.Description = "Overrides applied on top of the built-in full and constrained presets."

	return map[string]*jsonschema.Schema{
		"script.schema.json":  script,
		"presets.schema.json": presets,
	}
}

// durationPattern matches time.Duration strings such as "800ms".
const durationPattern = `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`

// mapType describes the types that marshal as strings.
func mapType(t reflect.Type) *jsonschema.Schema {
	switch t {
	case reflect.TypeOf(wishheart.Duration(0)):
		return &jsonschema.Schema{
			Type:    "string",
			Pattern: durationPattern,
		}
	case reflect.TypeOf(wishheart.Tier(0)):
		return &jsonschema.Schema{
			Type: "string",
			Enum: []any{wishheart.TierFull.String(), wishheart.TierConstrained.String()},
		}
	}
	return nil
}

func writeSchemas(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}
	for name, schema := range buildSchemas() {
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
