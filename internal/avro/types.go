// Package avro holds the Avro schema tree produced by the converter.
package avro

// Avro type tags used by the converter
const (
	TypeNull    = "null"
	TypeRecord  = "record"
	TypeArray   = "array"
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeLong    = "long"
	TypeInt     = "int"
	TypeFloat   = "float"

	LogicalTimestampMillis = "timestamp-millis"
)

// Node is a child of a record: either a *Field or a nested *Record
type Node interface {
	NodeName() string
	isNode()
}

// Type is a primitive type tag, optionally wrapped in a ["null", T] union
type Type struct {
	Name     string
	Nullable bool
}

// IsZero reports whether no type was resolved
func (t Type) IsZero() bool {
	return t.Name == ""
}

// Items describes array elements: either a primitive tag or a {"type": ...} descriptor
type Items struct {
	Primitive string
	Type      string
}

// Field is a leaf field of a record
type Field struct {
	Name        string
	Type        Type
	Items       *Items
	LogicalType string
	Enum        []any
	Default     any
}

func (f *Field) NodeName() string { return f.Name }
func (*Field) isNode()            {}

// Record is a record definition with ordered children
type Record struct {
	Name     string
	Children []Node
	Required []string

	nested map[string]int
}

// NewRecord creates an empty record
func NewRecord(name string) *Record {
	return &Record{Name: name, nested: make(map[string]int)}
}

func (r *Record) NodeName() string { return r.Name }
func (*Record) isNode()            {}

// Nested returns the nested record with the given name, creating and appending it if absent
func (r *Record) Nested(name string) *Record {
	if r.nested == nil {
		r.nested = make(map[string]int)
	}
	if idx, ok := r.nested[name]; ok {
		return r.Children[idx].(*Record)
	}

	child := NewRecord(name)
	r.nested[name] = len(r.Children)
	r.Children = append(r.Children, child)
	return child
}

// Append adds a leaf field after the existing children
func (r *Record) Append(f *Field) {
	r.Children = append(r.Children, f)
}

// MarkRequired appends name to the record's required list
func (r *Record) MarkRequired(name string) {
	r.Required = append(r.Required, name)
}

// Field returns the first leaf field with the given name
func (r *Record) Field(name string) *Field {
	for _, c := range r.Children {
		if f, ok := c.(*Field); ok && f.Name == name {
			return f
		}
	}
	return nil
}

// Record returns the nested record with the given name
func (r *Record) Record(name string) *Record {
	if idx, ok := r.nested[name]; ok {
		return r.Children[idx].(*Record)
	}
	return nil
}

// Names returns the names of all children in order
func (r *Record) Names() []string {
	names := make([]string, 0, len(r.Children))
	for _, c := range r.Children {
		names = append(names, c.NodeName())
	}
	return names
}
