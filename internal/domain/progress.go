package domain

import (
	"encoding/json"
	"fmt"
)

// CounterProgress is the payload for counter-style challenges ("do X N times")
type CounterProgress struct {
	Current int `json:"current"`
}

// ChecklistProgress is the payload for step-list challenges
type ChecklistProgress struct {
	Done []string `json:"done"`
}

// DecodeProgress unmarshals raw progress data into a typed payload.
// Empty input yields the zero value.
func DecodeProgress[T any](raw json.RawMessage) (T, error) {
	var out T
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: progress data: %v", ErrInvalidInput, err)
	}
	return out, nil
}
