package avro

import "encoding/json"

// MarshalJSON encodes the type as "T" or ["null", "T"]
func (t Type) MarshalJSON() ([]byte, error) {
	if t.Nullable {
		return json.Marshal([]string{TypeNull, t.Name})
	}
	return json.Marshal(t.Name)
}

// MarshalJSON encodes the items as "T" or {"type": "T"}
func (i Items) MarshalJSON() ([]byte, error) {
	if i.Primitive != "" {
		return json.Marshal(i.Primitive)
	}
	return json.Marshal(struct {
		Type string `json:"type"`
	}{i.Type})
}

type fieldJSON struct {
	Name        string `json:"name"`
	Type        *Type  `json:"type,omitempty"`
	Items       *Items `json:"items,omitempty"`
	LogicalType string `json:"logicalType,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Default     any    `json:"default,omitempty"`
}

// MarshalJSON encodes the field, omitting the type key when none was resolved
func (f *Field) MarshalJSON() ([]byte, error) {
	out := fieldJSON{
		Name:        f.Name,
		Items:       f.Items,
		LogicalType: f.LogicalType,
		Enum:        f.Enum,
		Default:     f.Default,
	}
	if !f.Type.IsZero() {
		t := f.Type
		out.Type = &t
	}
	return json.Marshal(out)
}

type recordJSON struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Fields   []Node   `json:"fields"`
	Required []string `json:"required,omitempty"`
}

// MarshalJSON encodes the record as {"name", "type": "record", "fields", "required"}
func (r *Record) MarshalJSON() ([]byte, error) {
	fields := r.Children
	if fields == nil {
		fields = []Node{}
	}
	return json.Marshal(recordJSON{
		Name:     r.Name,
		Type:     TypeRecord,
		Fields:   fields,
		Required: r.Required,
	})
}
