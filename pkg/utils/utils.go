// Package utils holds small helpers shared across commands.
package utils

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// SchemaFromConfig reflects a config struct into its JSON schema, for editor
// completion on YAML config files.
func SchemaFromConfig(config any) (string, error) {
	schema := jsonschema.Reflect(config)

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(data), nil
}
