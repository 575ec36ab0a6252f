package convert

import "fmt"

// UnsupportedTypeError reports a field whose declared type has no Avro mapping
type UnsupportedTypeError struct {
	Path   string
	Type   string
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("field %s: unsupported type %q", e.Path, e.Type)
	}
	return fmt.Sprintf("field %s: %s", e.Path, e.Reason)
}
