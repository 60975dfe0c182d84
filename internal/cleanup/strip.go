package cleanup

import (
	"encoding/json"
	"fmt"
)

// StripField returns a copy of a decoded JSON tree with every object entry
// keyed by field removed, at any depth including inside arrays. Array order
// and length are preserved; scalars are returned unchanged.
func StripField(value any, field string) any {
	switch node := value.(type) {
	case map[string]any:
		cleaned := make(map[string]any, len(node))
		for key, child := range node {
			if key == field {
				continue
			}
			cleaned[key] = StripField(child, field)
		}
		return cleaned
	case []any:
		cleaned := make([]any, len(node))
		for i, child := range node {
			cleaned[i] = StripField(child, field)
		}
		return cleaned
	default:
		return value
	}
}

// CanonicalJSON renders a decoded JSON tree in its deterministic text form.
// encoding/json marshals map keys in sorted order, so equal trees always
// produce equal bytes regardless of the key order they were decoded from.
func CanonicalJSON(value any) ([]byte, error) {
	data, errMarshal := json.Marshal(value)
	if errMarshal != nil {
		return nil, fmt.Errorf("cleanup: canonical marshal: %w", errMarshal)
	}
	return data, nil
}
