// Package convert turns a document model into an Avro record schema.
//
// Conversion is a single pass over the model's paths in declaration order.
// Each path is classified (see Classify), wrapped in a ["null", T] union
// unless it is required at the top level or is an array, and attached to
// the record tree under the nested records named by its dotted prefix.
package convert

import (
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tordrt/avroschema/internal/avro"
	"github.com/tordrt/avroschema/internal/schema"
)

// Options configures a Converter
type Options struct {
	// Reserved is merged over DefaultReserved
	Reserved Reserved
	Logger   *zap.Logger
}

// Converter converts models. It holds no per-call state and is safe for concurrent use.
type Converter struct {
	reserved Reserved
	logger   *zap.Logger
}

// New creates a Converter
func New(opts Options) *Converter {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Converter{
		reserved: DefaultReserved().Merge(opts.Reserved),
		logger:   logger,
	}
}

// Convert builds the record schema for m.
// The schema is always returned; the error, if any, combines one
// *UnsupportedTypeError per field whose type could not be mapped
// (use multierr.Errors to list them). Such fields are emitted without a type.
func (c *Converter) Convert(m *schema.Model) (*avro.Record, error) {
	logger := c.logger.With(zap.String("model", m.Name))

	topRequired := make(map[string]bool)
	for _, p := range m.TopLevelRequired() {
		topRequired[p] = true
	}

	asm := newAssembler(m.RequiredPaths())

	var errs error
	for i := range m.Paths {
		p := &m.Paths[i]
		if c.reserved.Excludes(p.Path) {
			logger.Debug("skipping reserved path", zap.String("path", p.Path))
			continue
		}

		field, err := buildField(p, topRequired[p.Path])
		if err != nil {
			logger.Warn("unsupported field type",
				zap.String("path", p.Path),
				zap.Stringer("type", p.Type))
			errs = multierr.Append(errs, err)
		} else {
			logger.Debug("classified field",
				zap.String("path", p.Path),
				zap.Stringer("source_type", p.Type),
				zap.String("avro_type", field.Type.Name),
				zap.Bool("nullable", field.Type.Nullable))
		}

		asm.add(p.Path, field)
	}

	return asm.emit(m.Name), errs
}

// buildField classifies p and attaches its constraint metadata
func buildField(p *schema.Path, required bool) (*avro.Field, error) {
	field := &avro.Field{Name: leafName(p.Path)}

	cls := Classify(p.Type)
	if cls.Mapped {
		field.Type = avro.Type{Name: cls.Type}
		field.Items = cls.Items
		field.LogicalType = cls.LogicalType
	}

	if len(p.Enum) > 0 {
		field.Enum = p.Enum
	}
	if p.Default != nil {
		field.Default = p.Default
	}

	if cls.Mapped && !required && cls.Type != avro.TypeArray {
		field.Type.Nullable = true
	}

	if !cls.Mapped {
		return field, &UnsupportedTypeError{Path: p.Path, Type: p.Type.String(), Reason: cls.Reason}
	}
	return field, nil
}

func leafName(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}
