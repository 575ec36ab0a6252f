package formatter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/tordrt/avroschema/internal/avro"
)

// MultiFileFormatter writes one file per record plus an overview into a directory
type MultiFileFormatter struct {
	OutputDir    string
	OutputFormat string // "json", "text" or "markdown"
}

// NewMultiFileFormatter creates a new multi-file formatter
func NewMultiFileFormatter(outputDir, format string) *MultiFileFormatter {
	return &MultiFileFormatter{
		OutputDir:    outputDir,
		OutputFormat: format,
	}
}

// Format writes the records to multiple files
func (f *MultiFileFormatter) Format(records []*avro.Record) error {
	if _, err := New(f.OutputFormat, io.Discard); err != nil {
		return err
	}

	for _, r := range records {
		if r.Name == "" || r.Name != filepath.Base(r.Name) {
			return fmt.Errorf("invalid model name for output file: %q", r.Name)
		}
	}

	if err := os.MkdirAll(f.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := f.writeOverview(records); err != nil {
		return fmt.Errorf("failed to write overview: %w", err)
	}

	for _, r := range records {
		if err := f.writeRecordFile(r); err != nil {
			return fmt.Errorf("failed to write schema file for %s: %w", r.Name, err)
		}
	}

	return nil
}

func (f *MultiFileFormatter) writeOverview(records []*avro.Record) error {
	ext := ".txt"
	if f.OutputFormat == FormatMarkdown {
		ext = ".md"
	}

	file, err := os.Create(filepath.Join(f.OutputDir, "_overview"+ext))
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	sorted := make([]*avro.Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	if f.OutputFormat == FormatMarkdown {
		_, _ = fmt.Fprintf(file, "# Schema Overview\n\n")
		_, _ = fmt.Fprintf(file, "Each model has a corresponding file: `<model>%s`\n\n", f.fileExtension())
		_, _ = fmt.Fprintf(file, "## Models\n\n")
		for _, r := range sorted {
			_, _ = fmt.Fprintf(file, "- **%s** (%s)\n", r.Name, countLabel(r))
		}
		return nil
	}

	_, _ = fmt.Fprintf(file, "SCHEMA OVERVIEW\n")
	_, _ = fmt.Fprintf(file, "Each model has a file: <model>%s\n\n", f.fileExtension())
	for _, r := range sorted {
		_, _ = fmt.Fprintf(file, "%s (%s)\n", r.Name, countLabel(r))
	}
	return nil
}

func (f *MultiFileFormatter) writeRecordFile(r *avro.Record) error {
	file, err := os.Create(filepath.Join(f.OutputDir, r.Name+f.fileExtension()))
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	switch f.OutputFormat {
	case FormatMarkdown:
		NewMarkdownFormatter(file).FormatRecord(r)
		return nil
	case FormatText:
		return NewTextFormatter(file).Format([]*avro.Record{r})
	default:
		return NewJSONFormatter(file).Format([]*avro.Record{r})
	}
}

func (f *MultiFileFormatter) fileExtension() string {
	switch f.OutputFormat {
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	default:
		return ".avsc"
	}
}

// countLabel summarizes a record as "N fields, M nested records"
func countLabel(r *avro.Record) string {
	var fields, records int
	for _, c := range r.Children {
		if _, ok := c.(*avro.Record); ok {
			records++
		} else {
			fields++
		}
	}

	label := fmt.Sprintf("%d fields", fields)
	if records > 0 {
		label += fmt.Sprintf(", %d nested records", records)
	}
	return label
}
