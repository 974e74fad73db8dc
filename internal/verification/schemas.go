package verification

import (
	"embed"
	"encoding/json"
	"fmt"
)

// paramSchemas holds one JSON schema per built-in key that takes parameters
//
//go:embed schemas/*.json
var paramSchemas embed.FS

func builtinSchema(key string) []byte {
	data, err := paramSchemas.ReadFile("schemas/" + key + ".json")
	if err != nil {
		return nil
	}
	return data
}

// ValidateParams checks a challenge's verification_params against the schema registered
// for key. Keys without a schema accept anything.
func (r *Registry) ValidateParams(key string, params json.RawMessage) error {
	if !r.schemas.HasSchema(key) {
		return nil
	}

	data := []byte(params)
	if len(data) == 0 {
		data = []byte("null")
	}
	if err := r.schemas.ValidateBytes(data, key); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}
