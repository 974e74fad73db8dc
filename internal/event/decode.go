package event

import "encoding/json"

// DecodePayload returns input as T. Payloads published on the MemoryBus are already
// typed; anything else (maps from storage, or a narrower view such as a subject
// struct) goes through a JSON round-trip.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	err = json.Unmarshal(data, &result)
	return result, err
}
