package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tordrt/avroschema/internal/schema"
)

func ordersJSONSchema() bson.D {
	return bson.D{
		{Key: "bsonType", Value: "object"},
		{Key: "required", Value: bson.A{"number", "customer"}},
		{Key: "properties", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "bsonType", Value: "objectId"}}},
			{Key: "number", Value: bson.D{{Key: "bsonType", Value: "int"}}},
			{Key: "status", Value: bson.D{
				{Key: "bsonType", Value: "string"},
				{Key: "enum", Value: bson.A{"open", "closed"}},
			}},
			{Key: "customer", Value: bson.D{
				{Key: "bsonType", Value: "object"},
				{Key: "required", Value: bson.A{"email"}},
				{Key: "properties", Value: bson.D{
					{Key: "name", Value: bson.D{{Key: "bsonType", Value: bson.A{"null", "string"}}}},
					{Key: "email", Value: bson.D{{Key: "bsonType", Value: "string"}}},
				}},
			}},
			{Key: "tags", Value: bson.D{
				{Key: "bsonType", Value: "array"},
				{Key: "items", Value: bson.D{{Key: "bsonType", Value: "string"}}},
			}},
			{Key: "lines", Value: bson.D{
				{Key: "bsonType", Value: "array"},
				{Key: "items", Value: bson.D{
					{Key: "bsonType", Value: "object"},
					{Key: "properties", Value: bson.D{{Key: "sku", Value: bson.D{{Key: "bsonType", Value: "string"}}}}},
				}},
			}},
			{Key: "notes", Value: bson.D{{Key: "bsonType", Value: "array"}}},
			{Key: "meta", Value: bson.D{{Key: "bsonType", Value: "object"}}},
			{Key: "total", Value: bson.D{{Key: "type", Value: "number"}}},
			{Key: "paid", Value: bson.D{{Key: "type", Value: "boolean"}}},
			{Key: "placedAt", Value: bson.D{{Key: "bsonType", Value: "date"}}},
			{Key: "receipt", Value: bson.D{{Key: "bsonType", Value: "binData"}}},
		}},
	}
}

func TestModelFromJSONSchema(t *testing.T) {
	m := modelFromJSONSchema("orders", ordersJSONSchema())

	assert.Equal(t, "orders", m.Name)

	var paths []string
	for _, p := range m.Paths {
		paths = append(paths, p.Path)
	}
	assert.Equal(t, []string{
		"_id", "number", "status", "customer.name", "customer.email",
		"tags", "lines", "notes", "meta", "total", "paid", "placedAt", "receipt",
	}, paths)

	assert.ElementsMatch(t, []string{"number", "customer", "customer.email"}, m.Required)

	want := map[string]schema.Type{
		"_id":           {Name: schema.TypeObjectID},
		"number":        {Name: schema.TypeInteger},
		"status":        {Name: schema.TypeString},
		"customer.name": {Name: schema.TypeString},
		"tags":          {Array: true, Elem: schema.TypeString},
		"lines":         {Array: true, Elem: schema.TypeObject},
		"notes":         {Name: schema.TypeArray},
		"meta":          {Name: schema.TypeMixed, SchemaName: schema.TypeMixed},
		"total":         {Name: schema.TypeNumber},
		"paid":          {Name: schema.TypeBoolean},
		"placedAt":      {Name: schema.TypeDate},
		"receipt":       {Name: "binData"},
	}
	for path, typ := range want {
		p, ok := m.Lookup(path)
		require.True(t, ok, path)
		assert.Equal(t, typ, p.Type, path)
	}

	status, _ := m.Lookup("status")
	assert.Equal(t, []any{"open", "closed"}, status.Enum)
}

func TestValidatorSchema(t *testing.T) {
	raw, err := bson.Marshal(bson.D{
		{Key: "validator", Value: bson.D{{Key: "$jsonSchema", Value: ordersJSONSchema()}}},
		{Key: "validationLevel", Value: "strict"},
	})
	require.NoError(t, err)

	js, err := validatorSchema(raw)
	require.NoError(t, err)
	require.NotNil(t, js)

	m := modelFromJSONSchema("orders", js)
	assert.Len(t, m.Paths, 13)

	empty, err := validatorSchema(nil)
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestAsDocSortsMapKeys(t *testing.T) {
	d, ok := asDoc(bson.M{"b": 1, "a": 2})
	require.True(t, ok)
	assert.Equal(t, bson.D{{Key: "a", Value: 2}, {Key: "b", Value: 1}}, d)

	_, ok = asDoc("nope")
	assert.False(t, ok)
}
