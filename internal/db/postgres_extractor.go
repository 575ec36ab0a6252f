package db

import (
	"context"
	"fmt"

	"github.com/tordrt/avroschema/internal/schema"
)

// PostgresExtractor describes PostgreSQL tables as models
type PostgresExtractor struct {
	client *PostgresClient
	schema string
}

// NewPostgresExtractor creates an extractor for the given schema (e.g. "public")
func NewPostgresExtractor(client *PostgresClient, schemaName string) *PostgresExtractor {
	return &PostgresExtractor{
		client: client,
		schema: schemaName,
	}
}

// ExtractModels extracts one model per table
func (e *PostgresExtractor) ExtractModels(ctx context.Context, tables []string) ([]schema.Model, error) {
	tableNames, err := e.getTableNames(ctx, tables)
	if err != nil {
		return nil, fmt.Errorf("failed to get table names: %w", err)
	}

	models := make([]schema.Model, 0, len(tableNames))
	for _, tableName := range tableNames {
		columns, err := e.extractColumns(ctx, tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to extract table %s: %w", tableName, err)
		}
		models = append(models, buildModel(tableName, columns))
	}

	return models, nil
}

func (e *PostgresExtractor) getTableNames(ctx context.Context, requestedTables []string) ([]string, error) {
	if len(requestedTables) > 0 {
		return requestedTables, nil
	}

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := e.client.Conn().Query(ctx, query, e.schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tables = append(tables, tableName)
	}

	return tables, rows.Err()
}

// postgresTypeName normalizes information_schema type names.
// Arrays come back as "ARRAY" with the element in udt_name ("_int4").
func postgresTypeName(dataType, udtName string) string {
	switch dataType {
	case "ARRAY":
		if len(udtName) > 1 && udtName[0] == '_' {
			return udtName[1:] + "[]"
		}
		return "array"
	case "USER-DEFINED":
		return udtName
	default:
		return dataType
	}
}

func (e *PostgresExtractor) extractColumns(ctx context.Context, tableName string) ([]column, error) {
	query := `
		SELECT
			c.column_name,
			c.data_type,
			c.is_nullable,
			c.column_default,
			c.udt_name
		FROM information_schema.columns c
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`

	rows, err := e.client.Conn().Query(ctx, query, e.schema, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []column
	var enumTypes []string
	userTypes := make(map[int]string)

	for rows.Next() {
		var col column
		var dataType, nullable, udtName string

		if err := rows.Scan(&col.Name, &dataType, &nullable, &col.Default, &udtName); err != nil {
			return nil, err
		}

		col.Nullable = nullable == "YES"
		col.Type = sqlType(postgresTypeName(dataType, udtName))

		if dataType == "USER-DEFINED" {
			enumTypes = append(enumTypes, udtName)
			userTypes[len(columns)] = udtName
		}

		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found", tableName)
	}

	if len(enumTypes) == 0 {
		return columns, nil
	}

	enumValues, err := e.extractEnumValuesMap(ctx, enumTypes)
	if err != nil {
		return nil, err
	}

	// Enum columns hold their labels as strings
	for idx, udtName := range userTypes {
		if values, ok := enumValues[udtName]; ok {
			columns[idx].Type = schema.Type{Name: schema.TypeString}
			columns[idx].EnumValues = values
		}
	}

	return columns, nil
}

func (e *PostgresExtractor) extractEnumValuesMap(ctx context.Context, enumTypeNames []string) (map[string][]string, error) {
	query := `
		SELECT t.typname, e.enumlabel
		FROM pg_type t
		JOIN pg_enum e ON t.oid = e.enumtypid
		JOIN pg_namespace n ON t.typnamespace = n.oid
		WHERE n.nspname = $1 AND t.typname = ANY($2)
		ORDER BY t.typname, e.enumsortorder
	`

	rows, err := e.client.Conn().Query(ctx, query, e.schema, enumTypeNames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]string)
	for rows.Next() {
		var typName, enumLabel string
		if err := rows.Scan(&typName, &enumLabel); err != nil {
			return nil, err
		}
		result[typName] = append(result[typName], enumLabel)
	}

	return result, rows.Err()
}
