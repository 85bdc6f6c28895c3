package config

import (
	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema describing scene configuration files
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	schema := reflector.Reflect(new(SceneConfig))
	schema.Title = "Scene Configuration"
	schema.Description = "Grid size, decoration scatter and hotspot layout of a town scene"
	return schema
}
