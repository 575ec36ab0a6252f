package schema

import (
	"testing"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
		str  string
	}{
		{in: "String", want: Type{Name: TypeString}, str: "String"},
		{in: "string", want: Type{Name: TypeString}, str: "String"},
		{in: " objectid ", want: Type{Name: TypeObjectID}, str: "ObjectId"},
		{in: "Mixed", want: Type{Name: TypeMixed, SchemaName: TypeMixed}, str: "Mixed"},
		{in: "[]", want: Type{Name: TypeArray}, str: "Array"},
		{in: "[number]", want: Type{Array: true, Elem: TypeNumber}, str: "[Number]"},
		{in: "[Point]", want: Type{Array: true, Elem: "Point"}, str: "[Point]"},
		{in: "Buffer", want: Type{Name: "Buffer"}, str: "Buffer"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseType(tt.in)
			if got != tt.want {
				t.Errorf("ParseType(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
			if got.String() != tt.str {
				t.Errorf("ParseType(%q).String() = %q, want %q", tt.in, got.String(), tt.str)
			}
		})
	}
}

func TestModelRequired(t *testing.T) {
	m := &Model{
		Name:     "Nested",
		Required: []string{"title", "root.nestedProp", "count"},
	}

	top := m.TopLevelRequired()
	if len(top) != 2 || top[0] != "title" || top[1] != "count" {
		t.Errorf("TopLevelRequired() = %v, want [title count]", top)
	}

	all := m.RequiredPaths()
	all[0] = "changed"
	if m.Required[0] != "title" {
		t.Error("RequiredPaths() must return a copy")
	}
}

func TestModelLookup(t *testing.T) {
	m := &Model{Paths: []Path{{Path: "a"}, {Path: "b.c"}}}

	if p, ok := m.Lookup("b.c"); !ok || p.Path != "b.c" {
		t.Errorf("Lookup(b.c) = %v, %v", p, ok)
	}
	if _, ok := m.Lookup("c"); ok {
		t.Error("Lookup(c) should not find a path")
	}
}
