package convert

import (
	"strings"

	"github.com/tordrt/avroschema/internal/avro"
)

// assembler places leaf fields into a record tree following their dotted paths
type assembler struct {
	root *avro.Record
	// required holds every required path of the model, nested ones included
	required map[string]bool
}

func newAssembler(required []string) *assembler {
	a := &assembler{
		root:     avro.NewRecord(""),
		required: make(map[string]bool, len(required)),
	}
	for _, p := range required {
		a.required[p] = true
	}
	return a
}

// add attaches field under the records named by the segments of path before the leaf
func (a *assembler) add(path string, field *avro.Field) {
	segments := strings.Split(path, ".")
	segments = segments[:len(segments)-1]

	node := a.root
	for i, seg := range segments {
		node = node.Nested(seg)

		if i == len(segments)-1 && a.required[strings.Join(segments, ".")+"."+field.Name] {
			node.MarkRequired(field.Name)
		}
	}

	node.Append(field)
}
