package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0},
		"role": {"enum": ["admin", "member"]}
	},
	"required": ["name"]
}`

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	v := NewSchemaValidator()
	require.NoError(t, v.AddSchema("person", []byte(personSchema)))

	tests := []struct {
		name      string
		data      string
		wantError bool
		errorMsg  string
	}{
		{"valid data", `{"name": "John", "age": 30}`, false, ""},
		{"valid without optional field", `{"name": "Jane"}`, false, ""},
		{"missing required field", `{"age": 25}`, true, "name"},
		{"wrong type", `{"name": "John", "age": "thirty"}`, true, "/age"},
		{"below minimum", `{"name": "John", "age": -1}`, true, "/age"},
		{"not in enum", `{"name": "John", "role": "owner"}`, true, "/role"},
		{"not JSON", `{"name":`, true, "not valid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), "person")
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSchemaValidation)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_UnknownSchema(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateBytes([]byte(`{}`), "missing")

	assert.ErrorIs(t, err, ErrUnknownSchema)
	assert.False(t, v.HasSchema("missing"))
}

func TestSchemaValidator_AddSchemaErrors(t *testing.T) {
	v := NewSchemaValidator()

	assert.Error(t, v.AddSchema("broken", []byte(`{"type":`)), "unparseable schema")
	assert.Error(t, v.AddSchema("bad-type", []byte(`{"type": 12}`)), "schema that fails its metaschema")

	require.NoError(t, v.AddSchema("person", []byte(personSchema)))
	assert.Error(t, v.AddSchema("person", []byte(personSchema)), "duplicate name")
	assert.True(t, v.HasSchema("person"))
}

func TestSchemaValidator_ReportsEveryFailure(t *testing.T) {
	v := NewSchemaValidator()
	require.NoError(t, v.AddSchema("person", []byte(personSchema)))

	err := v.ValidateBytes([]byte(`{"age": -5, "role": "owner"}`), "person")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "/age")
	assert.Contains(t, err.Error(), "/role")
}
