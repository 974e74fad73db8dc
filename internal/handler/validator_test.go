package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rewardInput struct {
	RewardCore string          `validate:"max=50,reward_core"`
	Params     json.RawMessage `validate:"json"`
}

func TestValidator_RewardCore(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		core    string
		wantErr bool
	}{
		// Best case
		{"currency only", "5$", false},
		{"currency and item", "10$+?", false},

		// Boundary
		{"empty means no core reward", "", false},
		{"zero currency", "0$", false},

		// Edge
		{"surrounding whitespace", " 7$ ", false},

		// Invalid
		{"missing dollar", "10", true},
		{"words", "lots", true},
		{"negative", "-5$", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(rewardInput{RewardCore: tt.core})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, FormatValidationError(err), "rewardcore")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_JSON(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		raw     json.RawMessage
		wantErr bool
	}{
		{"object", json.RawMessage(`{"target":3}`), false},
		{"array", json.RawMessage(`["a","b"]`), false},
		{"nil", nil, false},
		{"truncated", json.RawMessage(`{"target":`), true},
		{"bare word", json.RawMessage(`target`), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(rewardInput{Params: tt.raw})
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "Must be valid JSON", FormatValidationError(err)["params"])
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(assert.AnError))

	err := GetValidator().ValidateStruct(UpdateParticipationRequest{Status: "paused"})
	require.Error(t, err)
	assert.Equal(t, "Must be one of: active completed", FormatValidationError(err)["status"])

	err = GetValidator().ValidateStruct(UpdateParticipationRequest{})
	require.Error(t, err)
	assert.Equal(t, "This field is required", FormatValidationError(err)["status"])
}
