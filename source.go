package goresolve

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// SchemaFromJSON decodes a schema document from JSON bytes.
func SchemaFromJSON(data []byte) (Schema, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("goresolve: invalid schema JSON: %w", err)
	}
	return Schema(m), nil
}

// ValueFromJSON decodes an arbitrary value document from JSON bytes.
func ValueFromJSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("goresolve: invalid value JSON: %w", err)
	}
	return v, nil
}

// SchemaFromYAML decodes a schema document from YAML bytes (configuration
// files are the common case). Mapping keys are normalized to strings.
func SchemaFromYAML(data []byte) (Schema, error) {
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("goresolve: invalid schema YAML: %w", err)
	}
	m, ok := normalizeYAML(node).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("goresolve: schema YAML root is not a mapping")
	}
	return Schema(m), nil
}

// ValueFromYAML decodes an arbitrary value document from YAML bytes.
func ValueFromYAML(data []byte) (any, error) {
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("goresolve: invalid value YAML: %w", err)
	}
	return normalizeYAML(node), nil
}

// normalizeYAML converts YAML-decoded values (which may contain map[any]any)
// into the JSON-shaped map[string]any / []any representation the engine
// works on.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, el := range t {
			out[k] = normalizeYAML(el)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, el := range t {
			out[fmt.Sprint(k)] = normalizeYAML(el)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = normalizeYAML(el)
		}
		return out
	default:
		return v
	}
}
