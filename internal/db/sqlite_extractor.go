package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tordrt/avroschema/internal/schema"
)

// SQLiteExtractor describes SQLite tables as models
type SQLiteExtractor struct {
	client *SQLiteClient
}

// NewSQLiteExtractor creates a new SQLite extractor
func NewSQLiteExtractor(client *SQLiteClient) *SQLiteExtractor {
	return &SQLiteExtractor{
		client: client,
	}
}

// ExtractModels extracts one model per table
func (e *SQLiteExtractor) ExtractModels(ctx context.Context, tables []string) ([]schema.Model, error) {
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

func (e *SQLiteExtractor) getTableNames(ctx context.Context, requestedTables []string) ([]string, error) {
	if len(requestedTables) > 0 {
		return requestedTables, nil
	}

	query := `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`

	rows, err := e.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tableList []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tableList = append(tableList, tableName)
	}

	return tableList, rows.Err()
}

func (e *SQLiteExtractor) extractColumns(ctx context.Context, tableName string) ([]column, error) {
	query := fmt.Sprintf("PRAGMA table_info(%q)", tableName)

	rows, err := e.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []column
	for rows.Next() {
		var cid, notNull, pk int
		var name, declType string
		var defaultValue sql.NullString

		if err := rows.Scan(&cid, &name, &declType, &notNull, &defaultValue, &pk); err != nil {
			return nil, err
		}

		col := column{
			Name:     name,
			Type:     sqliteType(declType),
			Nullable: notNull == 0 && pk == 0,
		}
		if defaultValue.Valid {
			col.Default = &defaultValue.String
		}

		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found", tableName)
	}

	return columns, nil
}

// sqliteType maps a declared column type, falling back to SQLite's affinity rules
func sqliteType(declType string) schema.Type {
	t := sqlType(declType)
	if t.Name != declType || t.Array {
		return t
	}

	upper := strings.ToUpper(declType)
	switch {
	case strings.Contains(upper, "INT"):
		return schema.Type{Name: schema.TypeInteger}
	case strings.Contains(upper, "CHAR"), strings.Contains(upper, "CLOB"), strings.Contains(upper, "TEXT"):
		return schema.Type{Name: schema.TypeString}
	case strings.Contains(upper, "REAL"), strings.Contains(upper, "FLOA"), strings.Contains(upper, "DOUB"):
		return schema.Type{Name: schema.TypeNumber}
	case strings.Contains(upper, "BOOL"):
		return schema.Type{Name: schema.TypeBoolean}
	case strings.Contains(upper, "DATE"), strings.Contains(upper, "TIME"):
		return schema.Type{Name: schema.TypeDate}
	}

	return t
}
