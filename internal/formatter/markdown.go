package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/avroschema/internal/avro"
)

// MarkdownFormatter formats records as markdown
type MarkdownFormatter struct {
	writer io.Writer
}

// NewMarkdownFormatter creates a new markdown formatter
func NewMarkdownFormatter(w io.Writer) *MarkdownFormatter {
	return &MarkdownFormatter{writer: w}
}

// Format writes the records in markdown format
func (f *MarkdownFormatter) Format(records []*avro.Record) error {
	_, _ = fmt.Fprintln(f.writer, "# Avro Schemas")
	_, _ = fmt.Fprintln(f.writer)

	for _, r := range records {
		f.FormatRecord(r)
	}
	return nil
}

// FormatRecord writes a single record section (exported for use by multifile formatter)
func (f *MarkdownFormatter) FormatRecord(r *avro.Record) {
	_, _ = fmt.Fprintf(f.writer, "## %s\n\n", r.Name)
	_, _ = fmt.Fprintln(f.writer, "### Fields")
	_, _ = fmt.Fprintln(f.writer)

	f.formatChildren(r, 0)
	_, _ = fmt.Fprintln(f.writer)
}

func (f *MarkdownFormatter) formatChildren(r *avro.Record, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, child := range r.Children {
		switch n := child.(type) {
		case *avro.Field:
			_, _ = fmt.Fprintf(f.writer, "%s- **%s:** %s\n", indent, n.Name, f.describe(n))
		case *avro.Record:
			_, _ = fmt.Fprintf(f.writer, "%s- **%s:** record\n", indent, n.Name)
			f.formatChildren(n, depth+1)
		}
	}

	if len(r.Required) > 0 {
		_, _ = fmt.Fprintf(f.writer, "%s- _required:_ %s\n", indent, strings.Join(r.Required, ", "))
	}
}

func (f *MarkdownFormatter) describe(field *avro.Field) string {
	parts := []string{"`" + typeLabel(field) + "`"}

	if field.Type.Nullable {
		parts = append(parts, "nullable")
	}
	if len(field.Enum) > 0 {
		parts = append(parts, fmt.Sprintf("enum (%s)", enumLabel(field.Enum)))
	}
	if field.Default != nil {
		parts = append(parts, "default "+valueLabel(field.Default))
	}

	return strings.Join(parts, ", ")
}
