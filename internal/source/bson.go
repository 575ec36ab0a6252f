package source

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// normalizeBSON converts decoded enum and default values to plain Go values
// so they encode to JSON the same way values read from YAML do.
func normalizeBSON(def *definitionFile) {
	for i := range def.Models {
		for j := range def.Models[i].Fields {
			f := &def.Models[i].Fields[j]
			for k, v := range f.Enum {
				f.Enum[k] = plainValue(v)
			}
			f.Default = plainValue(f.Default)
		}
	}
}

func plainValue(v any) any {
	switch val := v.(type) {
	case bson.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = plainValue(e.Value)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = plainValue(e)
		}
		return out
	case bson.A:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = plainValue(e)
		}
		return out
	case int32:
		return int64(val)
	case primitive.DateTime:
		return int64(val)
	case primitive.ObjectID:
		return val.Hex()
	default:
		return v
	}
}
