package db

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/tordrt/avroschema/internal/schema"
)

// MongoExtractor describes MongoDB collections as models using their $jsonSchema validators
type MongoExtractor struct {
	client   *MongoClient
	database string
}

// NewMongoExtractor creates an extractor for the given database
func NewMongoExtractor(client *MongoClient, database string) *MongoExtractor {
	return &MongoExtractor{
		client:   client,
		database: database,
	}
}

// ExtractModels extracts one model per collection.
// Collections without a validator produce a model with no fields.
func (e *MongoExtractor) ExtractModels(ctx context.Context, collections []string) ([]schema.Model, error) {
	filter := bson.D{{Key: "type", Value: "collection"}}
	if len(collections) > 0 {
		filter = append(filter, bson.E{Key: "name", Value: bson.D{{Key: "$in", Value: collections}}})
	}

	specs, err := e.client.Database(e.database).ListCollectionSpecifications(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	validators := make(map[string]bson.Raw, len(specs))
	var names []string
	for _, spec := range specs {
		validators[spec.Name] = spec.Options
		names = append(names, spec.Name)
	}

	if len(collections) > 0 {
		for _, name := range collections {
			if _, ok := validators[name]; !ok {
				return nil, fmt.Errorf("collection %s not found", name)
			}
		}
		names = collections
	} else {
		sort.Strings(names)
	}

	models := make([]schema.Model, 0, len(names))
	for _, name := range names {
		js, err := validatorSchema(validators[name])
		if err != nil {
			return nil, fmt.Errorf("failed to read validator of %s: %w", name, err)
		}
		models = append(models, modelFromJSONSchema(name, js))
	}

	return models, nil
}

// validatorSchema extracts validator.$jsonSchema from collection options
func validatorSchema(opts bson.Raw) (bson.D, error) {
	if len(opts) == 0 {
		return nil, nil
	}

	var decoded struct {
		Validator bson.D `bson:"validator"`
	}
	if err := bson.Unmarshal(opts, &decoded); err != nil {
		return nil, err
	}

	js, _ := asDoc(lookup(decoded.Validator, "$jsonSchema"))
	return js, nil
}

// modelFromJSONSchema flattens a $jsonSchema document into dotted paths.
// Objects with properties become nesting levels; their required lists
// become full required paths.
func modelFromJSONSchema(name string, js bson.D) schema.Model {
	m := schema.Model{Name: name}
	walkProperties("", js, &m)
	return m
}

func walkProperties(prefix string, doc bson.D, m *schema.Model) {
	props, _ := asDoc(lookup(doc, "properties"))
	for _, prop := range props {
		path := joinPath(prefix, prop.Key)
		propDoc, _ := asDoc(prop.Value)

		if nested, ok := asDoc(lookup(propDoc, "properties")); ok && len(nested) > 0 && bsonType(propDoc) == "object" {
			walkProperties(path, propDoc, m)
			continue
		}

		p := schema.Path{Path: path, Type: mongoType(propDoc)}
		if values, ok := lookup(propDoc, "enum").(bson.A); ok {
			p.Enum = []any(values)
		}
		m.Paths = append(m.Paths, p)
	}

	if required, ok := lookup(doc, "required").(bson.A); ok {
		for _, r := range required {
			if s, ok := r.(string); ok {
				m.Required = append(m.Required, joinPath(prefix, s))
			}
		}
	}
}

// mongoType maps a property's bsonType onto the source type vocabulary
func mongoType(prop bson.D) schema.Type {
	switch bt := bsonType(prop); bt {
	case "string":
		return schema.Type{Name: schema.TypeString}
	case "bool":
		return schema.Type{Name: schema.TypeBoolean}
	case "date", "timestamp":
		return schema.Type{Name: schema.TypeDate}
	case "objectId":
		return schema.Type{Name: schema.TypeObjectID}
	case "int", "long":
		return schema.Type{Name: schema.TypeInteger}
	case "double", "decimal", "number":
		return schema.Type{Name: schema.TypeNumber}
	case "object", "":
		return schema.Type{Name: schema.TypeMixed, SchemaName: schema.TypeMixed}
	case "array":
		items, ok := asDoc(lookup(prop, "items"))
		if !ok {
			return schema.Type{Name: schema.TypeArray}
		}
		elem := mongoType(items)
		switch {
		case bsonType(items) == "object":
			// Sub-documents are not expanded
			return schema.Type{Array: true, Elem: schema.TypeObject}
		case elem.Array || elem.Name == schema.TypeArray:
			return schema.Type{Name: schema.TypeArray}
		default:
			return schema.Type{Array: true, Elem: elem.String()}
		}
	default:
		return schema.Type{Name: bt}
	}
}

// bsonType returns the first non-null bsonType (or JSON Schema type) of a property
func bsonType(prop bson.D) string {
	if t := firstType(lookup(prop, "bsonType")); t != "" {
		return t
	}

	switch t := firstType(lookup(prop, "type")); t {
	case "integer":
		return "int"
	case "boolean":
		return "bool"
	default:
		return t
	}
}

func firstType(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bson.A:
		for _, e := range t {
			if s, ok := e.(string); ok && s != "null" {
				return s
			}
		}
	}
	return ""
}

func lookup(doc bson.D, key string) any {
	for _, e := range doc {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

func asDoc(v any) (bson.D, bool) {
	switch d := v.(type) {
	case bson.D:
		return d, true
	case bson.M:
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(bson.D, 0, len(d))
		for _, k := range keys {
			out = append(out, bson.E{Key: k, Value: d[k]})
		}
		return out, true
	default:
		return nil, false
	}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
