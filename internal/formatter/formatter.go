// Package formatter renders converted Avro records as JSON, text or markdown.
package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/avroschema/internal/avro"
)

// Output formats
const (
	FormatJSON     = "json"
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// Formatter writes a set of records to its destination
type Formatter interface {
	Format(records []*avro.Record) error
}

// New returns the single-stream formatter for the given format
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case FormatJSON, "":
		return NewJSONFormatter(w), nil
	case FormatText:
		return NewTextFormatter(w), nil
	case FormatMarkdown:
		return NewMarkdownFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (use json, text or markdown)", format)
	}
}

// typeLabel renders a field's type as e.g. "string", "array<int>" or "long (timestamp-millis)".
// Fields without a resolved type render as "?".
func typeLabel(f *avro.Field) string {
	if f.Type.IsZero() {
		return "?"
	}

	label := f.Type.Name
	if f.Items != nil {
		elem := f.Items.Primitive
		if elem == "" {
			elem = "{" + f.Items.Type + "}"
		}
		label = fmt.Sprintf("%s<%s>", label, elem)
	}
	if f.LogicalType != "" {
		label = fmt.Sprintf("%s (%s)", label, f.LogicalType)
	}
	return label
}

func enumLabel(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, "|")
}

func valueLabel(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}
