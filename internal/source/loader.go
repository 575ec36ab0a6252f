// Package source loads document model definitions from JSON, YAML or BSON files.
//
// A definition file lists models, each with ordered fields:
//
//	models:
//	  - name: Constraints
//	    fields:
//	      - path: requiredProp
//	        type: String
//	        required: true
//	      - path: enumedProp
//	        type: String
//	        enum: [one, two]
//	      - path: root.nestedProp
//	        type: "[Number]"
//	    required: [root.nestedProp]
//
// Type strings use the source vocabulary (String, Number, Integer, Boolean,
// Date, ObjectId, Object, Array, Mixed). "[T]" declares a typed array and
// "[]" an untyped one.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"gopkg.in/yaml.v3"

	"github.com/tordrt/avroschema/internal/schema"
)

// Format identifies the encoding of a definition file
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatBSON Format = "bson"
)

type definitionFile struct {
	Models []modelDef `json:"models" yaml:"models" bson:"models"`
}

type modelDef struct {
	Name     string     `json:"name" yaml:"name" bson:"name"`
	Fields   []fieldDef `json:"fields" yaml:"fields" bson:"fields"`
	Required []string   `json:"required,omitempty" yaml:"required,omitempty" bson:"required,omitempty"`
}

type fieldDef struct {
	Path     string   `json:"path" yaml:"path" bson:"path"`
	Type     typeSpec `json:"type" yaml:"type" bson:"type"`
	Enum     []any    `json:"enum,omitempty" yaml:"enum,omitempty" bson:"enum,omitempty"`
	Default  any      `json:"default,omitempty" yaml:"default,omitempty" bson:"default,omitempty"`
	Required bool     `json:"required,omitempty" yaml:"required,omitempty" bson:"required,omitempty"`
}

// typeSpec is a type string. In YAML an unquoted [T] is accepted as well.
type typeSpec string

func (t *typeSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*t = typeSpec(value.Value)
		return nil
	case yaml.SequenceNode:
		if len(value.Content) > 1 {
			return fmt.Errorf("line %d: typed array takes a single element type", value.Line)
		}
		elem := ""
		if len(value.Content) == 1 {
			elem = value.Content[0].Value
		}
		*t = typeSpec("[" + elem + "]")
		return nil
	default:
		return fmt.Errorf("line %d: type must be a string", value.Line)
	}
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".bson":
		return FormatBSON, nil
	default:
		return "", fmt.Errorf("unsupported definition file extension %q (must be .json, .yaml, .yml or .bson)", filepath.Ext(path))
	}
}

// LoadFile loads and parses a model definition file
func LoadFile(path string) ([]schema.Model, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file %s: %w", path, err)
	}

	models, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return models, nil
}

// Parse decodes definition data in the given format
func Parse(data []byte, format Format) ([]schema.Model, error) {
	var def definitionFile

	switch format {
	case FormatJSON, FormatYAML:
		// YAML is a superset of JSON
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("failed to parse %s definitions: %w", format, err)
		}
	case FormatBSON:
		if err := bson.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("failed to parse bson definitions: %w", err)
		}
		normalizeBSON(&def)
	default:
		return nil, fmt.Errorf("unsupported definition format: %s", format)
	}

	return def.toModels()
}

func (d *definitionFile) toModels() ([]schema.Model, error) {
	if len(d.Models) == 0 {
		return nil, fmt.Errorf("no models defined")
	}

	seenModels := make(map[string]bool)
	models := make([]schema.Model, 0, len(d.Models))
	for i, md := range d.Models {
		if md.Name == "" {
			return nil, fmt.Errorf("model #%d has no name", i+1)
		}
		if seenModels[md.Name] {
			return nil, fmt.Errorf("model %s is defined more than once", md.Name)
		}
		seenModels[md.Name] = true

		m, err := md.toModel()
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", md.Name, err)
		}
		models = append(models, m)
	}
	return models, nil
}

func (md *modelDef) toModel() (schema.Model, error) {
	m := schema.Model{Name: md.Name}

	required := make(map[string]bool)
	addRequired := func(p string) {
		if !required[p] {
			required[p] = true
			m.Required = append(m.Required, p)
		}
	}

	seen := make(map[string]bool)
	for i, fd := range md.Fields {
		if fd.Path == "" {
			return m, fmt.Errorf("field #%d has no path", i+1)
		}
		if strings.HasPrefix(fd.Path, ".") || strings.HasSuffix(fd.Path, ".") || strings.Contains(fd.Path, "..") {
			return m, fmt.Errorf("field %s: malformed path", fd.Path)
		}
		if seen[fd.Path] {
			return m, fmt.Errorf("field %s is defined more than once", fd.Path)
		}
		seen[fd.Path] = true

		m.Paths = append(m.Paths, schema.Path{
			Path:    fd.Path,
			Type:    schema.ParseType(string(fd.Type)),
			Enum:    fd.Enum,
			Default: fd.Default,
		})
		if fd.Required {
			addRequired(fd.Path)
		}
	}

	for _, p := range md.Required {
		if !seen[p] {
			return m, fmt.Errorf("required path %s is not a defined field", p)
		}
		addRequired(p)
	}

	return m, nil
}
