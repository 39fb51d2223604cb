package options

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Load decodes a YAML (or JSON) document into Options. An empty document
// yields an empty bag.
func Load(r io.Reader) (Options, error) {
	var raw any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Options{}, nil
		}
		return nil, fmt.Errorf("failed to decode options: %w", err)
	}
	if raw == nil {
		return Options{}, nil
	}
	m, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("options document must be a mapping, got %T", raw)
	}
	return m, nil
}

// normalize converts decoder output to the JSON data model, turning any
// map with non-string keys into map[string]any.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, inner := range t {
			t[k] = normalize(inner)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[fmt.Sprint(k)] = normalize(inner)
		}
		return out
	case []any:
		for i, inner := range t {
			t[i] = normalize(inner)
		}
		return t
	default:
		return v
	}
}
