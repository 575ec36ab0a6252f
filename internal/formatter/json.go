package formatter

import (
	"encoding/json"
	"io"

	"github.com/tordrt/avroschema/internal/avro"
)

// JSONFormatter writes records as indented Avro schema JSON
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// Format writes a single record as one document and several as a JSON array
func (f *JSONFormatter) Format(records []*avro.Record) error {
	var v any = records
	if len(records) == 1 {
		v = records[0]
	}

	enc := json.NewEncoder(f.writer)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
