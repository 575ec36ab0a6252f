package convert

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestReservedMerge(t *testing.T) {
	merged := DefaultReserved().Merge(Reserved{"_id": false, "secret": true})

	assert.False(t, merged.Excludes("_id"))
	assert.True(t, merged.Excludes("__v"))
	assert.True(t, merged.Excludes("secret"))
	assert.False(t, merged.Excludes("name"))

	// Merge must not mutate the receiver.
	assert.True(t, DefaultReserved().Excludes("_id"))
}

func TestReservedUnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    Reserved
		wantErr bool
	}{
		{name: "list", doc: "reserved: [a, b]", want: Reserved{"a": true, "b": true}},
		{name: "mapping", doc: "reserved:\n  a: true\n  _id: false", want: Reserved{"a": true, "_id": false}},
		{name: "scalar", doc: "reserved: a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				Reserved Reserved `yaml:"reserved"`
			}
			err := yaml.Unmarshal([]byte(tt.doc), &out)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Reserved)
		})
	}
}

func TestReservedUnmarshalJSON(t *testing.T) {
	var list Reserved
	require.NoError(t, json.Unmarshal([]byte(`["stringProp"]`), &list))
	assert.Equal(t, Reserved{"stringProp": true}, list)

	var flags Reserved
	require.NoError(t, json.Unmarshal([]byte(`{"stringProp": true, "_id": false}`), &flags))
	assert.Equal(t, Reserved{"stringProp": true, "_id": false}, flags)

	var bad Reserved
	assert.Error(t, json.Unmarshal([]byte(`"stringProp"`), &bad))
}
