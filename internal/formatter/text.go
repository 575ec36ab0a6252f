package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/avroschema/internal/avro"
)

// TextFormatter formats records as a compact indented tree
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// Format writes the records in compact text format
func (f *TextFormatter) Format(records []*avro.Record) error {
	for i, r := range records {
		if i > 0 {
			_, _ = fmt.Fprintln(f.writer) // Blank line between records
		}
		_, _ = fmt.Fprintf(f.writer, "RECORD %s\n", r.Name)
		f.formatChildren(r, 1)
	}
	return nil
}

func (f *TextFormatter) formatChildren(r *avro.Record, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, child := range r.Children {
		switch n := child.(type) {
		case *avro.Field:
			_, _ = fmt.Fprintf(f.writer, "%s%s\n", indent, f.formatField(n))
		case *avro.Record:
			_, _ = fmt.Fprintf(f.writer, "%s%s: RECORD\n", indent, n.Name)
			f.formatChildren(n, depth+1)
		}
	}

	if len(r.Required) > 0 {
		_, _ = fmt.Fprintf(f.writer, "%sREQUIRED: %s\n", indent, strings.Join(r.Required, ", "))
	}
}

func (f *TextFormatter) formatField(field *avro.Field) string {
	parts := []string{fmt.Sprintf("%s: %s", field.Name, typeLabel(field))}

	if field.Type.Nullable {
		parts = append(parts, "NULLABLE")
	}
	if len(field.Enum) > 0 {
		parts = append(parts, fmt.Sprintf("ENUM(%s)", enumLabel(field.Enum)))
	}
	if field.Default != nil {
		parts = append(parts, "DEFAULT "+valueLabel(field.Default))
	}

	return strings.Join(parts, " ")
}
