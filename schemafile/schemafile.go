// Package schemafile loads panel schema snapshots from configuration
// files. The engine itself never touches the filesystem; hosts and the
// CLI use this package to build the read-only Schema passed into each
// parse call.
//
// Two formats are supported: YAML (.yaml, .yml) and JSON with comments
// (.json, .jsonc).
//
//	panels:
//	  roster:
//	    multi_entity: true
//	    fields:
//	      - key: name
//	        display_name: Name
//	      - key: hp
//	      - key: status
//	        enabled: false
package schemafile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/loveyouguhan/infopanel/panel"
)

type fileSchema struct {
	Panels map[string]filePanel `yaml:"panels" json:"panels"`
}

type filePanel struct {
	MultiEntity bool        `yaml:"multi_entity" json:"multi_entity"`
	Fields      []fileField `yaml:"fields" json:"fields"`
}

type fileField struct {
	Key         string `yaml:"key" json:"key"`
	DisplayName string `yaml:"display_name" json:"display_name"`
	// Enabled defaults to true when omitted.
	Enabled *bool `yaml:"enabled" json:"enabled"`
}

// Load reads a schema snapshot from a file, choosing the format by
// extension.
func Load(path string) (*panel.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json", ".jsonc":
		return ParseJSONC(data)
	default:
		return nil, fmt.Errorf("unsupported schema file extension %q", filepath.Ext(path))
	}
}

// ParseYAML builds a schema from YAML bytes.
func ParseYAML(data []byte) (*panel.Schema, error) {
	var fs fileSchema
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("parse schema yaml: %w", err)
	}
	return build(&fs)
}

// ParseJSONC builds a schema from JSON bytes, with // and /* */ comments
// permitted.
func ParseJSONC(data []byte) (*panel.Schema, error) {
	var fs fileSchema
	if err := json.Unmarshal(jsonc.ToJSON(data), &fs); err != nil {
		return nil, fmt.Errorf("parse schema json: %w", err)
	}
	return build(&fs)
}

func build(fs *fileSchema) (*panel.Schema, error) {
	if len(fs.Panels) == 0 {
		return nil, fmt.Errorf("schema defines no panels")
	}

	schema := &panel.Schema{Panels: make(map[panel.PanelID]panel.PanelSchema, len(fs.Panels))}
	for name, fp := range fs.Panels {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("schema has a panel with an empty name")
		}
		if len(fp.Fields) == 0 {
			return nil, fmt.Errorf("panel %q defines no fields", name)
		}

		fields := make([]panel.FieldDescriptor, 0, len(fp.Fields))
		seen := make(map[string]bool, len(fp.Fields))
		for _, ff := range fp.Fields {
			key := strings.TrimSpace(ff.Key)
			if key == "" {
				return nil, fmt.Errorf("panel %q has a field with an empty key", name)
			}
			if seen[key] {
				return nil, fmt.Errorf("panel %q defines field %q twice", name, key)
			}
			seen[key] = true
			fields = append(fields, panel.FieldDescriptor{
				Key:         key,
				DisplayName: strings.TrimSpace(ff.DisplayName),
				Enabled:     ff.Enabled == nil || *ff.Enabled,
			})
		}

		schema.Panels[panel.PanelID(name)] = panel.PanelSchema{
			Fields:      fields,
			MultiEntity: fp.MultiEntity,
		}
	}

	return schema, nil
}
