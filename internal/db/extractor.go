// Package db introspects live databases and describes their tables or
// collections as document models.
package db

import (
	"context"
	"strconv"
	"strings"

	"github.com/tordrt/avroschema/internal/schema"
)

// ModelExtractor reads models from a database.
// If names is empty every table or collection is extracted.
type ModelExtractor interface {
	ExtractModels(ctx context.Context, names []string) ([]schema.Model, error)
}

// column is one introspected column before it becomes a model path
type column struct {
	Name       string
	Type       schema.Type
	Nullable   bool
	Default    *string
	EnumValues []string
}

// buildModel turns the columns of a table into a flat model.
// NOT NULL columns are required; literal defaults carry over.
func buildModel(table string, columns []column) schema.Model {
	m := schema.Model{Name: table}

	for _, col := range columns {
		p := schema.Path{Path: col.Name, Type: col.Type}

		if len(col.EnumValues) > 0 {
			p.Enum = make([]any, len(col.EnumValues))
			for i, v := range col.EnumValues {
				p.Enum[i] = v
			}
		}

		if col.Default != nil {
			if v, ok := literalDefault(*col.Default); ok {
				p.Default = v
			}
		}

		m.Paths = append(m.Paths, p)
		if !col.Nullable {
			m.Required = append(m.Required, col.Name)
		}
	}

	return m
}

// literalDefault extracts a constant from a column default expression.
// Expressions such as nextval(...) or now() are not constants and are dropped.
func literalDefault(expr string) (any, bool) {
	expr = strings.TrimSpace(expr)

	// PostgreSQL casts: 'active'::character varying
	if i := strings.Index(expr, "::"); i > 0 {
		expr = strings.TrimSpace(expr[:i])
	}
	expr = strings.TrimSuffix(strings.TrimPrefix(expr, "("), ")")

	if expr == "" || strings.EqualFold(expr, "null") {
		return nil, false
	}

	if len(expr) >= 2 && expr[0] == '\'' && expr[len(expr)-1] == '\'' {
		return strings.ReplaceAll(expr[1:len(expr)-1], "''", "'"), true
	}

	switch strings.ToLower(expr) {
	case "true":
		return true, true
	case "false":
		return false, true
	}

	if n, err := strconv.ParseInt(expr, 10, 64); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(expr, 64); err == nil {
		return f, true
	}

	// MySQL reports string defaults unquoted; anything with a call is an expression.
	if strings.ContainsAny(expr, "()") || strings.EqualFold(expr, "current_timestamp") {
		return nil, false
	}
	return expr, true
}

// sqlType maps a normalized SQL type name onto the source type vocabulary.
// Unknown types are kept verbatim so the converter reports them.
func sqlType(name string) schema.Type {
	lower := strings.ToLower(strings.TrimSpace(name))

	if strings.HasSuffix(lower, "[]") {
		elem := sqlType(strings.TrimSuffix(lower, "[]"))
		if elem.Name == "" || elem.SchemaName != "" || elem.Array {
			return schema.Type{Name: schema.TypeArray}
		}
		return schema.Type{Array: true, Elem: elem.Name}
	}

	base := lower
	if i := strings.IndexByte(base, '('); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	base = strings.TrimSuffix(base, " unsigned")

	switch base {
	case "text", "varchar", "character varying", "char", "character", "bpchar",
		"citext", "uuid", "name", "tinytext", "mediumtext", "longtext", "clob":
		return schema.Type{Name: schema.TypeString}
	case "boolean", "bool":
		return schema.Type{Name: schema.TypeBoolean}
	case "smallint", "integer", "int", "int2", "int4", "int8", "bigint",
		"serial", "bigserial", "smallserial", "mediumint", "year":
		return schema.Type{Name: schema.TypeInteger}
	case "tinyint":
		if lower == "tinyint(1)" {
			return schema.Type{Name: schema.TypeBoolean}
		}
		return schema.Type{Name: schema.TypeInteger}
	case "real", "float", "float4", "float8", "double", "double precision",
		"numeric", "decimal", "money":
		return schema.Type{Name: schema.TypeNumber}
	case "date", "datetime", "timestamp", "timestamptz",
		"timestamp with time zone", "timestamp without time zone":
		return schema.Type{Name: schema.TypeDate}
	case "json", "jsonb":
		return schema.Type{Name: schema.TypeMixed, SchemaName: schema.TypeMixed}
	case "array":
		return schema.Type{Name: schema.TypeArray}
	}

	return schema.Type{Name: name}
}
