package schema

import "strings"

// Source type names understood by the converter
const (
	TypeArray    = "Array"
	TypeBoolean  = "Boolean"
	TypeObject   = "Object"
	TypeString   = "String"
	TypeDate     = "Date"
	TypeObjectID = "ObjectId"
	TypeInteger  = "Integer"
	TypeNumber   = "Number"
	TypeMixed    = "Mixed"
)

var knownTypes = []string{
	TypeArray, TypeBoolean, TypeObject, TypeString, TypeDate,
	TypeObjectID, TypeInteger, TypeNumber, TypeMixed,
}

// Model represents a document model: a name plus its fields addressed by dotted paths
type Model struct {
	Name  string
	Paths []Path
	// Required lists every required path, nested ones included
	Required []string
}

// Path represents one field of a model
type Path struct {
	Path    string
	Type    Type
	Enum    []any
	Default any
}

// Type describes the declared type of a path
type Type struct {
	// Name is the declared type name, empty for typed arrays
	Name string
	// SchemaName is set for named nested schema types such as Mixed
	SchemaName string
	// Array marks a typed array whose element type is Elem
	Array bool
	Elem  string
}

// ParseType parses a type string such as "String", "Mixed", "[Number]" or "[]".
// Known names are matched case-insensitively; anything else is kept verbatim.
func ParseType(s string) Type {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		elem := strings.TrimSpace(s[1 : len(s)-1])
		if elem == "" {
			return Type{Name: TypeArray}
		}
		return Type{Array: true, Elem: canonicalName(elem)}
	}

	name := canonicalName(s)
	if name == TypeMixed {
		return Type{Name: TypeMixed, SchemaName: TypeMixed}
	}
	return Type{Name: name}
}

// String returns the type in the notation accepted by ParseType
func (t Type) String() string {
	if t.Array {
		return "[" + t.Elem + "]"
	}
	if t.Name == "" && t.SchemaName != "" {
		return t.SchemaName
	}
	return t.Name
}

func canonicalName(s string) string {
	for _, known := range knownTypes {
		if strings.EqualFold(s, known) {
			return known
		}
	}
	return s
}

// RequiredPaths returns every required path of the model
func (m *Model) RequiredPaths() []string {
	out := make([]string, len(m.Required))
	copy(out, m.Required)
	return out
}

// TopLevelRequired returns the required paths that have no nesting separator
func (m *Model) TopLevelRequired() []string {
	var out []string
	for _, p := range m.Required {
		if !strings.Contains(p, ".") {
			out = append(out, p)
		}
	}
	return out
}

// Lookup returns the path with the given dotted name
func (m *Model) Lookup(path string) (*Path, bool) {
	for i := range m.Paths {
		if m.Paths[i].Path == path {
			return &m.Paths[i], true
		}
	}
	return nil, false
}
