package workflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// CanonicalJSON serializes an arbitrary decoded YAML value to compact JSON
// with mapping keys sorted at every level, so equal values always produce
// equal text regardless of the key order they were written in.
func CanonicalJSON(value any) (string, error) {
	normalized, err := normalize(value)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return "", fmt.Errorf("failed to encode runner selector: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// normalize converts ordered YAML mappings into map[string]any, which
// encoding/json emits with sorted keys.
func normalize(value any) (any, error) {
	switch v := value.(type) {
	case yaml.MapSlice:
		out := make(map[string]any, len(v))
		for _, item := range v {
			n, err := normalize(item.Value)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(item.Key)] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	default:
		return v, nil
	}
}
