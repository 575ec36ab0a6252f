package avro

import (
	"encoding/json"
	"fmt"

	"github.com/linkedin/goavro/v2"
)

// Validate compiles the record with a strict Avro parser.
// Generated schemas may use constructs Avro itself rejects (object types,
// inline nested records), so a non-nil error is a diagnostic, not a conversion failure.
func Validate(r *Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode schema %s: %w", r.Name, err)
	}

	if _, err := goavro.NewCodec(string(data)); err != nil {
		return fmt.Errorf("schema %s is not valid Avro: %w", r.Name, err)
	}
	return nil
}
