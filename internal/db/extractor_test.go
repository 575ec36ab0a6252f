package db

import (
	"reflect"
	"testing"

	"github.com/tordrt/avroschema/internal/schema"
)

func strPtr(s string) *string { return &s }

func TestLiteralDefault(t *testing.T) {
	tests := []struct {
		expr   string
		want   any
		wantOK bool
	}{
		{expr: "'active'::character varying", want: "active", wantOK: true},
		{expr: "'it''s'", want: "it's", wantOK: true},
		{expr: "42", want: int64(42), wantOK: true},
		{expr: "(-1)", want: int64(-1), wantOK: true},
		{expr: "0.5", want: 0.5, wantOK: true},
		{expr: "true", want: true, wantOK: true},
		{expr: "FALSE", want: false, wantOK: true},
		{expr: "pending", want: "pending", wantOK: true},
		{expr: "nextval('users_id_seq'::regclass)", wantOK: false},
		{expr: "now()", wantOK: false},
		{expr: "CURRENT_TIMESTAMP", wantOK: false},
		{expr: "NULL", wantOK: false},
		{expr: "NULL::character varying", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, ok := literalDefault(tt.expr)
			if ok != tt.wantOK {
				t.Fatalf("literalDefault(%q) ok = %v, want %v", tt.expr, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("literalDefault(%q) = %#v, want %#v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestSQLType(t *testing.T) {
	tests := []struct {
		in   string
		want schema.Type
	}{
		{in: "varchar(255)", want: schema.Type{Name: schema.TypeString}},
		{in: "character varying", want: schema.Type{Name: schema.TypeString}},
		{in: "uuid", want: schema.Type{Name: schema.TypeString}},
		{in: "INTEGER", want: schema.Type{Name: schema.TypeInteger}},
		{in: "bigint unsigned", want: schema.Type{Name: schema.TypeInteger}},
		{in: "tinyint(1)", want: schema.Type{Name: schema.TypeBoolean}},
		{in: "tinyint(4)", want: schema.Type{Name: schema.TypeInteger}},
		{in: "boolean", want: schema.Type{Name: schema.TypeBoolean}},
		{in: "decimal(10,2)", want: schema.Type{Name: schema.TypeNumber}},
		{in: "double precision", want: schema.Type{Name: schema.TypeNumber}},
		{in: "timestamp with time zone", want: schema.Type{Name: schema.TypeDate}},
		{in: "datetime", want: schema.Type{Name: schema.TypeDate}},
		{in: "jsonb", want: schema.Type{Name: schema.TypeMixed, SchemaName: schema.TypeMixed}},
		{in: "text[]", want: schema.Type{Array: true, Elem: schema.TypeString}},
		{in: "int4[]", want: schema.Type{Array: true, Elem: schema.TypeInteger}},
		{in: "jsonb[]", want: schema.Type{Name: schema.TypeArray}},
		{in: "array", want: schema.Type{Name: schema.TypeArray}},
		{in: "bytea", want: schema.Type{Name: "bytea"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := sqlType(tt.in); got != tt.want {
				t.Errorf("sqlType(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPostgresTypeName(t *testing.T) {
	tests := []struct {
		dataType, udtName, want string
	}{
		{"ARRAY", "_text", "text[]"},
		{"ARRAY", "", "array"},
		{"USER-DEFINED", "mood", "mood"},
		{"integer", "int4", "integer"},
	}

	for _, tt := range tests {
		if got := postgresTypeName(tt.dataType, tt.udtName); got != tt.want {
			t.Errorf("postgresTypeName(%q, %q) = %q, want %q", tt.dataType, tt.udtName, got, tt.want)
		}
	}
}

func TestSQLiteType(t *testing.T) {
	tests := []struct {
		in   string
		want schema.Type
	}{
		{in: "INTEGER", want: schema.Type{Name: schema.TypeInteger}},
		{in: "UNSIGNED BIG INT", want: schema.Type{Name: schema.TypeInteger}},
		{in: "NVARCHAR(100)", want: schema.Type{Name: schema.TypeString}},
		{in: "DOUBLE", want: schema.Type{Name: schema.TypeNumber}},
		{in: "BOOLEAN", want: schema.Type{Name: schema.TypeBoolean}},
		{in: "DATETIME", want: schema.Type{Name: schema.TypeDate}},
		{in: "BLOB", want: schema.Type{Name: "BLOB"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := sqliteType(tt.in); got != tt.want {
				t.Errorf("sqliteType(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildModel(t *testing.T) {
	columns := []column{
		{Name: "id", Type: schema.Type{Name: schema.TypeInteger}, Default: strPtr("nextval('users_id_seq'::regclass)")},
		{Name: "status", Type: schema.Type{Name: schema.TypeString}, Default: strPtr("'active'::text"), EnumValues: []string{"active", "banned"}},
		{Name: "bio", Type: schema.Type{Name: schema.TypeString}, Nullable: true},
	}

	m := buildModel("users", columns)

	if m.Name != "users" {
		t.Errorf("Name = %q, want users", m.Name)
	}
	if want := []string{"id", "status"}; !reflect.DeepEqual(m.Required, want) {
		t.Errorf("Required = %v, want %v", m.Required, want)
	}
	if len(m.Paths) != 3 {
		t.Fatalf("expected 3 paths, got %d", len(m.Paths))
	}
	if m.Paths[0].Default != nil {
		t.Errorf("sequence default should be dropped, got %v", m.Paths[0].Default)
	}
	if m.Paths[1].Default != "active" {
		t.Errorf("status default = %v, want active", m.Paths[1].Default)
	}
	if want := []any{"active", "banned"}; !reflect.DeepEqual(m.Paths[1].Enum, want) {
		t.Errorf("status enum = %v, want %v", m.Paths[1].Enum, want)
	}
	if m.Paths[2].Enum != nil {
		t.Errorf("bio enum = %v, want nil", m.Paths[2].Enum)
	}
}

func TestParseEnumValues(t *testing.T) {
	got, err := parseEnumValues("enum('small','medium','it''s large')")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"small", "medium", "it's large"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseEnumValues() = %v, want %v", got, want)
	}

	if _, err := parseEnumValues("enum"); err == nil {
		t.Error("expected error for malformed enum type")
	}
}

func TestParseDatabaseName(t *testing.T) {
	name, err := ParseDatabaseName("user:pass@tcp(localhost:3306)/shop?parseTime=true")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "shop" {
		t.Errorf("ParseDatabaseName() = %q, want shop", name)
	}

	if _, err := ParseDatabaseName("user:pass@tcp(localhost:3306)/"); err == nil {
		t.Error("expected error for DSN without database")
	}
}

func TestParseMongoDatabaseName(t *testing.T) {
	name, err := ParseMongoDatabaseName("mongodb://localhost:27017/shop?retryWrites=true")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "shop" {
		t.Errorf("ParseMongoDatabaseName() = %q, want shop", name)
	}

	if _, err := ParseMongoDatabaseName("mongodb://localhost:27017"); err == nil {
		t.Error("expected error for URI without database")
	}
}
