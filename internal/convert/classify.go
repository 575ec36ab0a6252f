package convert

import (
	"fmt"
	"strings"

	"github.com/tordrt/avroschema/internal/avro"
	"github.com/tordrt/avroschema/internal/schema"
)

// Classification is the outcome of mapping one source type.
// Mapped is false when no rule matched; Reason then says why.
type Classification struct {
	Mapped      bool
	Reason      string
	Type        string
	Items       *avro.Items
	LogicalType string
}

func mapped(typ string) Classification {
	return Classification{Mapped: true, Type: typ}
}

// Classify maps a source type to its Avro type attributes
func Classify(t schema.Type) Classification {
	switch t.Name {
	case schema.TypeArray:
		c := mapped(avro.TypeArray)
		c.Items = &avro.Items{Primitive: avro.TypeString}
		return c
	case schema.TypeBoolean, schema.TypeObject, schema.TypeString:
		return mapped(strings.ToLower(t.Name))
	case schema.TypeDate:
		c := mapped(avro.TypeLong)
		c.LogicalType = avro.LogicalTimestampMillis
		return c
	case schema.TypeObjectID:
		return mapped(avro.TypeString)
	case schema.TypeInteger:
		return mapped(avro.TypeInt)
	case schema.TypeNumber:
		return mapped(avro.TypeFloat)
	}

	// Named schema and typed array are checked independently; a typed array wins.
	var c Classification
	if t.SchemaName != "" {
		c = mapped(avro.TypeObject)
	}
	if t.Array {
		c = mapped(avro.TypeArray)
		c.Items = &avro.Items{Type: strings.ToLower(t.Elem)}
	}

	if !c.Mapped {
		c.Reason = fmt.Sprintf("no mapping for type %q", t.String())
	}
	return c
}
