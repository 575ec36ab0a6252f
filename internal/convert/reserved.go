package convert

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Reserved maps a field path to whether it is excluded from conversion
type Reserved map[string]bool

// DefaultReserved returns the identity and version paths excluded by default
func DefaultReserved() Reserved {
	return Reserved{
		"_id": true,
		"__v": true,
	}
}

// ReservedNames builds a Reserved set where every name is excluded
func ReservedNames(names ...string) Reserved {
	r := make(Reserved, len(names))
	for _, n := range names {
		r[n] = true
	}
	return r
}

// Merge returns the defaults overlaid with the given overrides.
// An explicit false in overrides un-reserves a default.
func (r Reserved) Merge(overrides Reserved) Reserved {
	out := make(Reserved, len(r)+len(overrides))
	for k, v := range r {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Excludes reports whether path is reserved
func (r Reserved) Excludes(path string) bool {
	return r[path]
}

// UnmarshalYAML accepts either a list of names or a name: bool mapping
func (r *Reserved) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return fmt.Errorf("invalid reserved list: %w", err)
		}
		*r = ReservedNames(names...)
		return nil
	case yaml.MappingNode:
		var flags map[string]bool
		if err := value.Decode(&flags); err != nil {
			return fmt.Errorf("invalid reserved mapping: %w", err)
		}
		*r = flags
		return nil
	default:
		return fmt.Errorf("reserved must be a list or a mapping (line %d)", value.Line)
	}
}

// UnmarshalJSON accepts either a list of names or a name: bool object
func (r *Reserved) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		*r = ReservedNames(names...)
		return nil
	}

	var flags map[string]bool
	if err := json.Unmarshal(data, &flags); err != nil {
		return fmt.Errorf("reserved must be a list or an object: %w", err)
	}
	*r = flags
	return nil
}
