package storage

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// ExtensionState keeps small named JSON values next to a record, such as the
// last layout a player opened.
type ExtensionState map[string]json.RawMessage

// Set stores v under key after marshalling it to JSON.
func (e *ExtensionState) Set(key string, v any) error {
	if key == "" {
		return fmt.Errorf("extension key is required")
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal extension %q: %w", key, err)
	}

	if *e == nil {
		*e = ExtensionState{}
	}
	(*e)[key] = json.RawMessage(b)
	return nil
}

// Get unmarshals the extension value at key into out.
// Returns (found=false, nil) if not present.
func (e ExtensionState) Get(key string, out any) (bool, error) {
	raw, ok := e[key]
	if !ok || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshal extension %q: %w", key, err)
	}
	return true, nil
}

// Delete removes the extension key, if present.
func (e ExtensionState) Delete(key string) {
	delete(e, key)
}

// Keys returns the stored keys in order.
func (e ExtensionState) Keys() []string {
	return slices.Sorted(maps.Keys(e))
}

// Clone returns a copy that shares no storage with e.
func (e ExtensionState) Clone() ExtensionState {
	if e == nil {
		return nil
	}
	out := make(ExtensionState, len(e))
	for k, v := range e {
		out[k] = slices.Clone(v)
	}
	return out
}
